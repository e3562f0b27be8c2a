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

package layers

import (
	"fmt"
)

// ErrCRCMismatch returned when the trailing CRC byte of a frame does not match its contents
type ErrCRCMismatch struct {
	Type     FrameType
	Expected uint8
	Actual   uint8
}

func (e *ErrCRCMismatch) Error() string {
	return fmt.Sprintf("CRC mismatch in %s frame: computed 0x%02x, received 0x%02x", e.Type, e.Expected, e.Actual)
}

// ErrFrameTooShort returned when the bytes given to the Crossfire layer can not hold a frame
type ErrFrameTooShort struct {
	Length int
	What   string
}

func (e *ErrFrameTooShort) Error() string {
	return fmt.Sprintf("Crossfire frame too short (%d bytes): %s", e.Length, e.What)
}

// ErrPayloadTooLong returned on serialization when the payload does not fit the length byte
type ErrPayloadTooLong struct {
	Length int
}

func (e *ErrPayloadTooLong) Error() string {
	return fmt.Sprintf("Crossfire payload too long: %d bytes, max %d", e.Length, MaxPayloadLen)
}
