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

package crsf

import (
	"errors"
	"fmt"

	"jinr.ru/greenlab/go-crsf/pkg/layers"
)

var (
	// ErrFrameLength is a length byte below the protocol minimum
	ErrFrameLength = errors.New("invalid frame length")
	// ErrBufferOverrun is a frame which extends past the end of the buffer
	ErrBufferOverrun = errors.New("frame extends past end of buffer")
)

type ErrorKind uint8

const (
	KindFrameLength ErrorKind = iota + 1
	KindBufferOverrun
)

func (k ErrorKind) String() string {
	switch k {
	case KindFrameLength:
		return "FrameLength"
	case KindBufferOverrun:
		return "BufferOverrun"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// DecodeError stops decoding of the buffer. Offset is the address byte of
// the offending frame, Length its declared length byte (0 when missing) and
// Available the number of bytes from Offset to the end of the buffer.
type DecodeError struct {
	Kind      ErrorKind
	Offset    int
	Length    int
	Available int
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindFrameLength:
		return fmt.Sprintf("%s at offset %d: length byte %d, minimum %d",
			ErrFrameLength, e.Offset, e.Length, layers.MinFrameLen)
	case KindBufferOverrun:
		if e.Available < 2 {
			return fmt.Sprintf("%s at offset %d: length byte missing", ErrBufferOverrun, e.Offset)
		}
		return fmt.Sprintf("%s at offset %d: frame needs %d bytes, %d available",
			ErrBufferOverrun, e.Offset, e.Length+2, e.Available)
	}
	return fmt.Sprintf("decode error %s at offset %d", e.Kind, e.Offset)
}

// Unwrap makes errors.Is match ErrFrameLength and ErrBufferOverrun
func (e *DecodeError) Unwrap() error {
	switch e.Kind {
	case KindFrameLength:
		return ErrFrameLength
	case KindBufferOverrun:
		return ErrBufferOverrun
	}
	return nil
}

// FrameError reports a single frame which was skipped, decoding goes on
// with the next frame
type FrameError struct {
	Offset  int
	FrameID uint8
	Err     error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame 0x%02x at offset %d skipped: %s", e.FrameID, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
