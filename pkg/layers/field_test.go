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
	"testing"
)

func TestDecodeField(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		offset  int
		width   int
		value   int64
		present bool
	}{
		{"positive 2 bytes", []byte{0x00, 0x0a}, 0, 2, 10, true},
		{"negative 2 bytes", []byte{0xff, 0xf6}, 0, 2, -10, true},
		{"negative 1 byte", []byte{0x80}, 0, 1, -128, true},
		{"positive 3 bytes", []byte{0x00, 0x01, 0xf4}, 0, 3, 500, true},
		{"max 4 bytes", []byte{0x7f, 0xff, 0xff, 0xff}, 0, 4, 2147483647, true},
		{"min 4 bytes", []byte{0x80, 0x00, 0x00, 0x00}, 0, 4, -2147483648, true},
		{"minus two", []byte{0xff, 0xff, 0xff, 0xfe}, 0, 4, -2, true},
		{"at offset", []byte{0x01, 0x02, 0x00, 0x7f}, 2, 2, 127, true},
		{"sentinel 1 byte", []byte{0xff}, 0, 1, -1, false},
		{"sentinel 2 bytes", []byte{0xff, 0xff}, 0, 2, -1, false},
		{"sentinel 3 bytes", []byte{0xff, 0xff, 0xff}, 0, 3, -1, false},
		{"sentinel 4 bytes", []byte{0xff, 0xff, 0xff, 0xff}, 0, 4, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, present := DecodeField(tt.data, tt.offset, tt.width)
			if present != tt.present {
				t.Fatalf("present = %v, want %v", present, tt.present)
			}
			if value != tt.value {
				t.Errorf("value = %d, want %d", value, tt.value)
			}
		})
	}
}

func TestDecodeUnsigned(t *testing.T) {
	value, present := DecodeUnsigned([]byte{0x80, 0x05}, 0, 2)
	if !present || value != 0x8005 {
		t.Errorf("got %d %v, want %d true", value, present, 0x8005)
	}
	if _, present := DecodeUnsigned([]byte{0xff, 0xff}, 0, 2); present {
		t.Error("all 0xFF must be absent")
	}
}

func TestEncodeField(t *testing.T) {
	for width := 1; width <= MaxFieldWidth; width++ {
		for _, value := range []int64{0, 1, -10, 100, -100} {
			dst := make([]byte, width)
			EncodeField(dst, 0, width, value)
			got, present := DecodeField(dst, 0, width)
			if !present || got != value {
				t.Errorf("width %d: encoded %d, decoded %d %v", width, value, got, present)
			}
		}
	}
	dst := []byte{1, 2, 3}
	EncodeAbsent(dst, 1, 2)
	if dst[0] != 1 || dst[1] != 0xff || dst[2] != 0xff {
		t.Errorf("EncodeAbsent = % x", dst)
	}
}

func TestDecodeFieldAtOutOfBounds(t *testing.T) {
	data := []byte{0x00, 0x01}
	tests := []struct {
		name          string
		offset, width int
	}{
		{"past end", 1, 2},
		{"beyond data", 4, 1},
		{"zero width", 0, 0},
		{"too wide", 0, 5},
		{"negative offset", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f := decodeFieldAt(data, tt.offset, tt.width, false); f.Present {
				t.Errorf("field at %d width %d must be absent", tt.offset, tt.width)
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	if crc := Checksum([]byte("123456789")); crc != 0xbc {
		t.Errorf("check value = 0x%02x, want 0xbc", crc)
	}
	payload := []byte("ACRO\x00")
	if crc := frameChecksum(FrameTypeFlightMode, payload); crc != 0x80 {
		t.Errorf("flight mode frame CRC = 0x%02x, want 0x80", crc)
	}
	if crc := Checksum(append([]byte{byte(FrameTypeFlightMode)}, payload...)); crc != 0x80 {
		t.Errorf("joint CRC = 0x%02x, want 0x80", crc)
	}
}
