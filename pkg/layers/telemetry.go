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

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

// Layer numbers of the telemetry payload layers
const (
	LinkLayerNum = CrossfireLayerNum + 1 + iota
	LinkRXLayerNum
	LinkTXLayerNum
	GPSLayerNum
	BatteryLayerNum
	AttitudeLayerNum
	FlightModeLayerNum
	VarioLayerNum
	BaroAltitudeLayerNum
)

// SensorLayer is a decoded payload which yields sensor readings
type SensorLayer interface {
	gopacket.Layer
	Readings() []sensor.Reading
}

// TxPowerTable maps the LINK frame uplink power index to milliwatts
var TxPowerTable = [...]int64{0, 10, 25, 100, 500, 1000, 2000, 250, 50}

// GPSAltitudeOffset is the protocol zero point, 1000 m below sea level
const GPSAltitudeOffset = 1000

type scaleFunc func(raw int64) int64

func direct(raw int64) int64 { return raw }

func divideBy10(raw int64) int64 { return raw / 10 }

func multiplyBy10(raw int64) int64 { return raw * 10 }

func gpsAltitude(raw int64) int64 { return raw - GPSAltitudeOffset }

func txPower(raw int64) int64 {
	if raw < 0 || raw >= int64(len(TxPowerTable)) {
		return 0
	}
	return TxPowerTable[raw]
}

// baroAltitude returns centimeters. With the top bit set the value is
// in meters, otherwise in decimeters offset by 10000.
func baroAltitude(raw int64) int64 {
	if raw&0x8000 != 0 {
		return (raw & 0x7fff) * 100
	}
	return (raw - 10000) * 10
}

// fieldLayout places one sensor value in a frame payload
type fieldLayout struct {
	Offset   int
	Width    int
	Unsigned bool
	Index    sensor.Index
	Scale    scaleFunc
}

func field(offset, width int, index sensor.Index, scale scaleFunc) fieldLayout {
	return fieldLayout{Offset: offset, Width: width, Index: index, Scale: scale}
}

func unsignedField(offset, width int, index sensor.Index, scale scaleFunc) fieldLayout {
	return fieldLayout{Offset: offset, Width: width, Unsigned: true, Index: index, Scale: scale}
}

// telemetryFrame describes the payload of one numeric frame type.
// It is the gopacket decoder of its own layer type.
type telemetryFrame struct {
	Type      FrameType
	Name      string
	LayerType gopacket.LayerType
	Fields    []fieldLayout
	size      int
}

func newTelemetryFrame(num int, t FrameType, name string, fields ...fieldLayout) *telemetryFrame {
	f := &telemetryFrame{Type: t, Name: name, Fields: fields}
	for _, fl := range fields {
		if end := fl.Offset + fl.Width; end > f.size {
			f.size = end
		}
	}
	f.LayerType = gopacket.RegisterLayerType(num, gopacket.LayerTypeMetadata{Name: name, Decoder: f})
	return f
}

// Decode decodes the frame payload into a TelemetryLayer
func (f *telemetryFrame) Decode(data []byte, p gopacket.PacketBuilder) error {
	t := &TelemetryLayer{frame: f}
	err := t.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(t)
	return nil
}

var (
	linkFrame = newTelemetryFrame(LinkLayerNum, FrameTypeLink, "Link",
		field(0, 1, sensor.RxRSSI1, direct),
		field(1, 1, sensor.RxRSSI2, direct),
		field(2, 1, sensor.RxQuality, direct),
		field(3, 1, sensor.RxSNR, direct),
		field(4, 1, sensor.RxAntenna, direct),
		field(5, 1, sensor.RFMode, direct),
		field(6, 1, sensor.TxPower, txPower),
		field(7, 1, sensor.TxRSSI, direct),
		field(8, 1, sensor.TxQuality, direct),
		field(9, 1, sensor.TxSNR, direct),
	)
	linkRXFrame = newTelemetryFrame(LinkRXLayerNum, FrameTypeLinkRX, "LinkRX",
		field(1, 1, sensor.RxRSSIPercent, direct),
		field(4, 1, sensor.RxRFPower, direct),
	)
	linkTXFrame = newTelemetryFrame(LinkTXLayerNum, FrameTypeLinkTX, "LinkTX",
		field(1, 1, sensor.TxRSSIPercent, direct),
		field(4, 1, sensor.TxRFPower, direct),
		field(5, 1, sensor.TxFPS, multiplyBy10),
	)
	gpsFrame = newTelemetryFrame(GPSLayerNum, FrameTypeGPS, "GPS",
		field(0, 4, sensor.GPSLatitude, divideBy10),
		field(4, 4, sensor.GPSLongitude, divideBy10),
		field(8, 2, sensor.GPSGroundSpeed, direct),
		field(10, 2, sensor.GPSHeading, direct),
		field(12, 2, sensor.GPSAltitude, gpsAltitude),
		field(14, 1, sensor.GPSSatellites, direct),
	)
	batteryFrame = newTelemetryFrame(BatteryLayerNum, FrameTypeBattery, "Battery",
		field(0, 2, sensor.BattVoltage, direct),
		field(2, 2, sensor.BattCurrent, direct),
		field(4, 3, sensor.BattCapacity, direct),
		field(7, 1, sensor.BattRemaining, direct),
	)
	attitudeFrame = newTelemetryFrame(AttitudeLayerNum, FrameTypeAttitude, "Attitude",
		field(0, 2, sensor.AttitudePitch, divideBy10),
		field(2, 2, sensor.AttitudeRoll, divideBy10),
		field(4, 2, sensor.AttitudeYaw, divideBy10),
	)
	varioFrame = newTelemetryFrame(VarioLayerNum, FrameTypeVario, "Vario",
		field(0, 2, sensor.VerticalSpeed, direct),
	)
	baroAltitudeFrame = newTelemetryFrame(BaroAltitudeLayerNum, FrameTypeBaroAltitude, "BaroAltitude",
		unsignedField(0, 2, sensor.BaroAltitude, baroAltitude),
	)

	telemetryFrames = []*telemetryFrame{
		linkFrame, linkRXFrame, linkTXFrame, gpsFrame, batteryFrame,
		attitudeFrame, varioFrame, baroAltitudeFrame,
	}
)

var (
	LayerTypeLink         = linkFrame.LayerType
	LayerTypeLinkRX       = linkRXFrame.LayerType
	LayerTypeLinkTX       = linkTXFrame.LayerType
	LayerTypeGPS          = gpsFrame.LayerType
	LayerTypeBattery      = batteryFrame.LayerType
	LayerTypeAttitude     = attitudeFrame.LayerType
	LayerTypeVario        = varioFrame.LayerType
	LayerTypeBaroAltitude = baroAltitudeFrame.LayerType
)

func telemetryFrameFor(t FrameType) *telemetryFrame {
	for _, f := range telemetryFrames {
		if f.Type == t {
			return f
		}
	}
	return nil
}

// TelemetryLayer is the payload of a numeric telemetry frame.
// Fields follow the layout of the frame type, one entry per sensor.
type TelemetryLayer struct {
	layers.BaseLayer
	Type      FrameType
	Fields    []Field
	Truncated bool // payload is shorter than the layout, missing fields are absent
	frame     *telemetryFrame
}

// NewTelemetryLayer returns an empty layer of a numeric frame type with all fields absent
func NewTelemetryLayer(t FrameType) (*TelemetryLayer, error) {
	f := telemetryFrameFor(t)
	if f == nil {
		return nil, fmt.Errorf("frame type %s has no numeric telemetry layout", t)
	}
	return &TelemetryLayer{Type: t, Fields: make([]Field, len(f.Fields)), frame: f}, nil
}

// LayerType returns the type of the layer in the layer catalog
func (t *TelemetryLayer) LayerType() gopacket.LayerType {
	return t.frame.LayerType
}

func (t *TelemetryLayer) CanDecode() gopacket.LayerClass {
	return t.frame.LayerType
}

func (t *TelemetryLayer) NextLayerType() gopacket.LayerType {
	return gopacket.LayerTypeZero
}

func (t *TelemetryLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	t.BaseLayer = layers.BaseLayer{Contents: data}
	t.Type = t.frame.Type
	t.Fields = make([]Field, len(t.frame.Fields))
	t.Truncated = len(data) < t.frame.size
	for i, fl := range t.frame.Fields {
		t.Fields[i] = decodeFieldAt(data, fl.Offset, fl.Width, fl.Unsigned)
	}
	if t.Truncated {
		df.SetTruncated()
	}
	return nil
}

// Field returns the raw field carrying the sensor
func (t *TelemetryLayer) Field(index sensor.Index) (Field, bool) {
	for i, fl := range t.frame.Fields {
		if fl.Index == index {
			return t.Fields[i], true
		}
	}
	return Field{}, false
}

// SetRaw stores a raw, unscaled field value
func (t *TelemetryLayer) SetRaw(index sensor.Index, raw int64) error {
	for i, fl := range t.frame.Fields {
		if fl.Index == index {
			t.Fields[i] = Field{Raw: raw, Present: true}
			return nil
		}
	}
	return fmt.Errorf("sensor %s is not carried by %s frames", index, t.Type)
}

// Readings applies the frame scaling to every present field
func (t *TelemetryLayer) Readings() []sensor.Reading {
	readings := make([]sensor.Reading, 0, len(t.Fields))
	for i, fl := range t.frame.Fields {
		if !t.Fields[i].Present {
			continue
		}
		readings = append(readings, sensor.Int(fl.Index, fl.Scale(t.Fields[i].Raw)))
	}
	return readings
}

// SerializeTo writes the payload in the frame layout. Bytes not covered by
// any sensor field are zero and absent fields carry the 0xFF sentinel.
func (t *TelemetryLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	bytes, err := b.PrependBytes(t.frame.size)
	if err != nil {
		return err
	}
	for i := range bytes {
		bytes[i] = 0
	}
	for i, fl := range t.frame.Fields {
		if i < len(t.Fields) && t.Fields[i].Present {
			EncodeField(bytes, fl.Offset, fl.Width, t.Fields[i].Raw)
		} else {
			EncodeAbsent(bytes, fl.Offset, fl.Width)
		}
	}
	return nil
}
