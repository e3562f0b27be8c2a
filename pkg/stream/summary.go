/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package stream

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Summary renders the counters as a short human readable report
func (s Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s received in %s chunks\n", humanize.Bytes(uint64(s.Bytes)), humanize.Comma(int64(s.Chunks)))
	fmt.Fprintf(&b, "%s frames, %s readings\n", humanize.Comma(int64(s.Frames)), humanize.Comma(int64(s.Readings)))
	fmt.Fprintf(&b, "%s unknown frames, %s CRC errors\n", humanize.Comma(int64(s.UnknownFrames)), humanize.Comma(int64(s.CRCErrors)))
	fmt.Fprintf(&b, "%s skipped, %s dropped in %s fatal errors\n",
		humanize.Bytes(uint64(s.SkippedBytes)), humanize.Bytes(uint64(s.DroppedBytes)), humanize.Comma(int64(s.FatalErrors)))
	return b.String()
}
