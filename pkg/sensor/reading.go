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

package sensor

import (
	"fmt"
	"math"
	"strconv"
)

// GPSPrecision is the number of decimal digits of a scaled GPS coordinate.
// Latitude and longitude readings are in millionths of a degree.
const GPSPrecision = 6

type Kind uint8

const (
	KindInteger Kind = iota
	KindText
)

// Reading is a single decoded sensor value
type Reading struct {
	Index Index
	Kind  Kind
	Value int64  // scaled value, valid for KindInteger
	Text  string // valid for KindText
}

// Int returns an integer reading
func Int(index Index, value int64) Reading {
	return Reading{Index: index, Kind: KindInteger, Value: value}
}

// Text returns a text reading
func Text(index Index, text string) Reading {
	return Reading{Index: index, Kind: KindText, Text: text}
}

func (r Reading) Descriptor() Descriptor {
	return Lookup(r.Index)
}

// Float returns the reading value with the descriptor precision applied
func (r Reading) Float() float64 {
	if r.Kind == KindText {
		return 0
	}
	return float64(r.Value) / math.Pow10(int(precision(r.Descriptor())))
}

func precision(d Descriptor) uint8 {
	if d.Unit == UnitGPSLatitude || d.Unit == UnitGPSLongitude {
		return GPSPrecision
	}
	return d.Precision
}

// FormatValue renders the value with its precision and unit, e.g. 12.3V
func FormatValue(r Reading) string {
	d := r.Descriptor()
	if r.Kind == KindText {
		return r.Text
	}
	return formatFixed(r.Value, precision(d)) + d.Unit.String()
}

// Format renders the reading as "<name> <value>"
func Format(r Reading) string {
	return fmt.Sprintf("%s %s", r.Descriptor().Name, FormatValue(r))
}

// formatFixed places a decimal point prec digits from the right using integer
// arithmetic only, so 123 with precision 1 is always "12.3"
func formatFixed(value int64, prec uint8) string {
	if prec == 0 {
		return strconv.FormatInt(value, 10)
	}
	sign := ""
	abs := uint64(value)
	if value < 0 {
		sign = "-"
		abs = uint64(-value)
	}
	digits := strconv.FormatUint(abs, 10)
	for len(digits) <= int(prec) {
		digits = "0" + digits
	}
	point := len(digits) - int(prec)
	return sign + digits[:point] + "." + digits[point:]
}
