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
	"bytes"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

// MaxFlightModeLen is the capacity of the flight mode text
const MaxFlightModeLen = 16

// FlightModeLayer carries the NUL terminated flight mode name
type FlightModeLayer struct {
	layers.BaseLayer
	Mode string
}

var FlightModeLayerType = gopacket.RegisterLayerType(FlightModeLayerNum,
	gopacket.LayerTypeMetadata{Name: "FlightMode", Decoder: gopacket.DecodeFunc(DecodeFlightModeLayer)})

func (fm *FlightModeLayer) LayerType() gopacket.LayerType {
	return FlightModeLayerType
}

func (fm *FlightModeLayer) CanDecode() gopacket.LayerClass {
	return FlightModeLayerType
}

func (fm *FlightModeLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

// DecodeFromBytes takes at most MaxFlightModeLen bytes and cuts them at
// the first NUL. The text is copied so it outlives the frame buffer.
func (fm *FlightModeLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	text := data
	if len(text) > MaxFlightModeLen {
		text = text[:MaxFlightModeLen]
	}
	if i := bytes.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	fm.BaseLayer = layers.BaseLayer{Contents: data}
	fm.Mode = string(text)
	return nil
}

// SerializeTo writes the mode truncated to MaxFlightModeLen-1 bytes and a NUL
func (fm *FlightModeLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	mode := fm.Mode
	if len(mode) > MaxFlightModeLen-1 {
		mode = mode[:MaxFlightModeLen-1]
	}
	buf, err := b.PrependBytes(len(mode) + 1)
	if err != nil {
		return err
	}
	copy(buf, mode)
	buf[len(mode)] = 0
	return nil
}

// Readings returns the single flight mode text reading
func (fm *FlightModeLayer) Readings() []sensor.Reading {
	return []sensor.Reading{sensor.Text(sensor.FlightMode, fm.Mode)}
}

func DecodeFlightModeLayer(data []byte, p gopacket.PacketBuilder) error {
	fm := &FlightModeLayer{}
	err := fm.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(fm)
	return nil
}
