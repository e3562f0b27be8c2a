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

// MaxFieldWidth is the widest numeric field in CRSF telemetry payloads
const MaxFieldWidth = 4

// Field is a raw telemetry field value before frame specific scaling.
// Present is false when the sender filled the field with the all-0xFF
// "no data" sentinel or the field lies beyond the received payload.
type Field struct {
	Raw     int64
	Present bool
}

// DecodeField reads a width bytes big-endian two's-complement integer at offset.
// present is false iff every byte equals 0xFF. The caller guarantees
// that offset+width does not exceed len(data) and width is in 1..4.
func DecodeField(data []byte, offset, width int) (value int64, present bool) {
	if data[offset]&0x80 != 0 {
		value = -1
	}
	for _, b := range data[offset : offset+width] {
		value = value<<8 + int64(b)
		if b != 0xff {
			present = true
		}
	}
	return value, present
}

// DecodeUnsigned reads a width bytes big-endian unsigned integer at offset.
// The sentinel rule is the same as for DecodeField.
func DecodeUnsigned(data []byte, offset, width int) (value int64, present bool) {
	for _, b := range data[offset : offset+width] {
		value = value<<8 | int64(b)
		if b != 0xff {
			present = true
		}
	}
	return value, present
}

// EncodeField writes the low width bytes of value big-endian at offset
func EncodeField(dst []byte, offset, width int, value int64) {
	for i := width - 1; i >= 0; i-- {
		dst[offset+i] = byte(value)
		value >>= 8
	}
}

// EncodeAbsent fills the field with the "no data" sentinel
func EncodeAbsent(dst []byte, offset, width int) {
	for i := 0; i < width; i++ {
		dst[offset+i] = 0xff
	}
}

// decodeFieldAt is DecodeField with the bounds check done by the frame
// decoders: a field which does not fit into data is reported absent.
func decodeFieldAt(data []byte, offset, width int, unsigned bool) Field {
	if offset < 0 || width < 1 || width > MaxFieldWidth || offset+width > len(data) {
		return Field{}
	}
	var f Field
	if unsigned {
		f.Raw, f.Present = DecodeUnsigned(data, offset, width)
	} else {
		f.Raw, f.Present = DecodeField(data, offset, width)
	}
	return f
}
