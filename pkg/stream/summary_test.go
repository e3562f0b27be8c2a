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
	"testing"

	"jinr.ru/greenlab/go-crsf/pkg/crsf"
)

func TestStatsSummary(t *testing.T) {
	s := Stats{
		Stats:        crsf.Stats{Bytes: 2048, SkippedBytes: 3, Frames: 12345, Readings: 40, UnknownFrames: 1, CRCErrors: 2},
		Chunks:       2,
		FatalErrors:  1,
		DroppedBytes: 10,
	}
	want := "2.0 kB received in 2 chunks\n" +
		"12,345 frames, 40 readings\n" +
		"1 unknown frames, 2 CRC errors\n" +
		"3 B skipped, 10 B dropped in 1 fatal errors\n"
	if got := s.Summary(); got != want {
		t.Errorf("Summary() =\n%s\nwant\n%s", got, want)
	}
}
