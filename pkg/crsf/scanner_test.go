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
	"bytes"
	"errors"
	"testing"

	"jinr.ru/greenlab/go-crsf/pkg/layers"
)

func frame(address uint8, frameType layers.FrameType, payload ...byte) []byte {
	data := []byte{address, byte(len(payload) + 2), byte(frameType)}
	data = append(data, payload...)
	crc := layers.Checksum(append([]byte{byte(frameType)}, payload...))
	return append(data, crc)
}

func concat(parts ...[]byte) []byte {
	var data []byte
	for _, p := range parts {
		data = append(data, p...)
	}
	return data
}

func TestScanner(t *testing.T) {
	vario := frame(layers.RadioAddress, layers.FrameTypeVario, 0x00, 0x64)
	link := frame(layers.RadioAddress, layers.FrameTypeLink, 0xb0)
	other := frame(layers.FlightControllerAddress, layers.FrameTypeVario, 0x00, 0x10)

	tests := []struct {
		name    string
		data    []byte
		offsets []int
		skipped int
		kind    ErrorKind
		errAt   int
	}{
		{name: "empty"},
		{name: "single frame", data: vario, offsets: []int{0}},
		{name: "leading junk", data: concat([]byte{0x00}, link), offsets: []int{1}, skipped: 1},
		{name: "back to back", data: concat(vario, link), offsets: []int{0, 6}},
		{name: "other address", data: concat(other, vario), offsets: []int{6}, skipped: 6},
		{name: "junk only", data: []byte{0x01, 0x02, 0x03}, skipped: 3},
		{name: "length below minimum", data: concat(vario, []byte{0xea, 0x02, 0x07, 0x00}, link),
			offsets: []int{0}, kind: KindFrameLength, errAt: 6},
		{name: "truncated frame", data: concat(vario, link[:len(link)-1]),
			offsets: []int{0}, kind: KindBufferOverrun, errAt: 6},
		{name: "address at end", data: concat(vario, []byte{0xea}),
			offsets: []int{0}, kind: KindBufferOverrun, errAt: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(tt.data, layers.RadioAddress)
			var offsets []int
			for s.Next() {
				f := s.Frame()
				offsets = append(offsets, f.Offset)
				if int(f.Length)+2 != len(f.Bytes) || len(f.Payload) != int(f.Length)-2 {
					t.Errorf("frame at %d: length %d, %d bytes, %d payload bytes",
						f.Offset, f.Length, len(f.Bytes), len(f.Payload))
				}
				if f.CRC != f.Bytes[len(f.Bytes)-1] || f.FrameID != f.Bytes[2] {
					t.Errorf("frame at %d: bad view % x", f.Offset, f.Bytes)
				}
			}
			if len(offsets) != len(tt.offsets) {
				t.Fatalf("frames at %v, want %v", offsets, tt.offsets)
			}
			for i := range offsets {
				if offsets[i] != tt.offsets[i] {
					t.Errorf("frames at %v, want %v", offsets, tt.offsets)
				}
			}
			if s.Skipped() != tt.skipped {
				t.Errorf("skipped %d, want %d", s.Skipped(), tt.skipped)
			}
			if tt.kind == 0 {
				if s.Err() != nil {
					t.Fatalf("unexpected error %v", s.Err())
				}
				if s.Offset() != len(tt.data) {
					t.Errorf("stopped at %d, want %d", s.Offset(), len(tt.data))
				}
				return
			}
			var decodeErr *DecodeError
			if !errors.As(s.Err(), &decodeErr) {
				t.Fatalf("error = %v, want *DecodeError", s.Err())
			}
			if decodeErr.Kind != tt.kind || decodeErr.Offset != tt.errAt {
				t.Errorf("error = %+v, want %s at %d", decodeErr, tt.kind, tt.errAt)
			}
			if s.Offset() != tt.errAt {
				t.Errorf("stopped at %d, want %d", s.Offset(), tt.errAt)
			}
			if s.Next() {
				t.Error("Next after a fatal error must return false")
			}
		})
	}
}

func TestDecodeErrorIs(t *testing.T) {
	s := NewScanner([]byte{0xea, 0x02, 0x07}, layers.RadioAddress)
	for s.Next() {
	}
	if !errors.Is(s.Err(), ErrFrameLength) || errors.Is(s.Err(), ErrBufferOverrun) {
		t.Errorf("error %v must match ErrFrameLength only", s.Err())
	}

	s = NewScanner([]byte{0xea, 0x05, 0x07}, layers.RadioAddress)
	for s.Next() {
	}
	if !errors.Is(s.Err(), ErrBufferOverrun) {
		t.Errorf("error %v must match ErrBufferOverrun", s.Err())
	}
	var decodeErr *DecodeError
	if errors.As(s.Err(), &decodeErr) && (decodeErr.Length != 5 || decodeErr.Available != 3) {
		t.Errorf("error = %+v", decodeErr)
	}
}

func TestScannerDoesNotModifyBuffer(t *testing.T) {
	data := concat([]byte{0x00, 0xff}, frame(layers.RadioAddress, layers.FrameTypeFlightMode, []byte("ANGL\x00")...))
	orig := append([]byte(nil), data...)
	s := NewScanner(data, layers.RadioAddress)
	for s.Next() {
	}
	if !bytes.Equal(data, orig) {
		t.Error("scanner modified the buffer")
	}
}
