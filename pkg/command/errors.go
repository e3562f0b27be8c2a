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

package command

import (
	"fmt"
	"strings"
)

// ErrApiStatus returned when the API server answers with a non 200 status
type ErrApiStatus struct {
	Path    string
	Status  string
	Message string
}

func (e ErrApiStatus) Error() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return fmt.Sprintf("API request %s failed: %s: %s", e.Path, e.Status, msg)
	}
	return fmt.Sprintf("API request %s failed: %s", e.Path, e.Status)
}
