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
	"time"

	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

// Sample is a reading stamped with the time its chunk was received and
// the sequence number of the frame it was decoded from
type Sample struct {
	Time    time.Time
	Frame   uint64
	Reading sensor.Reading
}

// Sink consumes decoded samples
type Sink interface {
	Handle(s Sample) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(s Sample) error

func (f SinkFunc) Handle(s Sample) error {
	return f(s)
}

// Record is the serialized form of a sample used by the YAML output and the API
type Record struct {
	Time    time.Time `json:"time"`
	Frame   uint64    `json:"frame"`
	Sensor  string    `json:"sensor"`
	Name    string    `json:"name"`
	Value   float64   `json:"value"`
	Text    string    `json:"text,omitempty"`
	Unit    string    `json:"unit,omitempty"`
	Display string    `json:"display"`
}

func (s Sample) Record() Record {
	d := s.Reading.Descriptor()
	return Record{
		Time:    s.Time,
		Frame:   s.Frame,
		Sensor:  s.Reading.Index.String(),
		Name:    d.Name,
		Value:   s.Reading.Float(),
		Text:    s.Reading.Text,
		Unit:    d.Unit.String(),
		Display: sensor.FormatValue(s.Reading),
	}
}
