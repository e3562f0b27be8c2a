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
)

// Device addresses
const (
	BroadcastAddress        = 0x00
	FlightControllerAddress = 0xc8
	RadioAddress            = 0xea
	ModuleAddress           = 0xee
)

const (
	// CrossfireLayerNum identifies the layer
	CrossfireLayerNum = 1980
	// MinFrameLen is the smallest valid value of the length byte: type, one payload byte, CRC
	MinFrameLen = 3
	// HeaderLen is address, length and type bytes
	HeaderLen = 3
	// MaxPayloadLen is bounded by the length byte which also counts type and CRC
	MaxPayloadLen = 255 - 2
)

type FrameType uint8

const (
	FrameTypeGPS          FrameType = 0x02
	FrameTypeVario        FrameType = 0x07
	FrameTypeBattery      FrameType = 0x08
	FrameTypeBaroAltitude FrameType = 0x09
	FrameTypeLink         FrameType = 0x14
	FrameTypeChannels     FrameType = 0x16
	FrameTypeLinkRX       FrameType = 0x1c
	FrameTypeLinkTX       FrameType = 0x1d
	FrameTypeAttitude     FrameType = 0x1e
	FrameTypeFlightMode   FrameType = 0x21
	FrameTypePingDevices  FrameType = 0x28
	FrameTypeDeviceInfo   FrameType = 0x29
	FrameTypeCommand      FrameType = 0x32
	FrameTypeRadio        FrameType = 0x3a
)

func init() {
	initUnknownFrameTypes()
	initActualFrameTypes()
}

// FrameTypeMetadata maps each frame type to the layer decoding its payload
var FrameTypeMetadata [256]layers.EnumMetadata

func initUnknownFrameTypes() {
	for i := 0; i < 256; i++ {
		FrameTypeMetadata[i] = layers.EnumMetadata{
			DecodeWith: gopacket.DecodePayload,
			Name:       fmt.Sprintf("Unknown(0x%02x)", i),
			LayerType:  gopacket.LayerTypePayload,
		}
	}
	// known to the protocol but carry no telemetry sensors
	FrameTypeMetadata[FrameTypeChannels].Name = "Channels"
	FrameTypeMetadata[FrameTypePingDevices].Name = "PingDevices"
	FrameTypeMetadata[FrameTypeDeviceInfo].Name = "DeviceInfo"
	FrameTypeMetadata[FrameTypeCommand].Name = "Command"
	FrameTypeMetadata[FrameTypeRadio].Name = "Radio"
}

func initActualFrameTypes() {
	for _, t := range telemetryFrames {
		FrameTypeMetadata[t.Type] = layers.EnumMetadata{DecodeWith: t, Name: t.Name, LayerType: t.LayerType}
	}
	FrameTypeMetadata[FrameTypeFlightMode] = layers.EnumMetadata{
		DecodeWith: gopacket.DecodeFunc(DecodeFlightModeLayer), Name: "FlightMode", LayerType: FlightModeLayerType}
}

// LayerType returns FrameTypeMetadata.LayerType
func (t FrameType) LayerType() gopacket.LayerType {
	return FrameTypeMetadata[t].LayerType
}

// Decode calls FrameTypeMetadata.DecodeWith's decoder
func (t FrameType) Decode(data []byte, p gopacket.PacketBuilder) error {
	return FrameTypeMetadata[t].DecodeWith.Decode(data, p)
}

// String returns FrameTypeMetadata.Name
func (t FrameType) String() string {
	return FrameTypeMetadata[t].Name
}

// Known reports whether frames of this type produce sensor readings
func (t FrameType) Known() bool {
	return t.LayerType() != gopacket.LayerTypePayload
}

// CrossfireLayer is the frame envelope: address, length, type, payload and CRC
type CrossfireLayer struct {
	layers.BaseLayer
	Address uint8
	Length  uint8 // counts type, payload and CRC
	Type    FrameType
	CRC     uint8
}

var LayerTypeCrossfire = gopacket.RegisterLayerType(CrossfireLayerNum,
	gopacket.LayerTypeMetadata{Name: "Crossfire", Decoder: gopacket.DecodeFunc(decodeCrossfireLayer)})

// LayerType returns the type of the Crossfire layer in the layer catalog
func (c *CrossfireLayer) LayerType() gopacket.LayerType {
	return LayerTypeCrossfire
}

// CanDecode returns the set of layer types this DecodingLayer can decode
func (c *CrossfireLayer) CanDecode() gopacket.LayerClass {
	return LayerTypeCrossfire
}

// NextLayerType returns the layer decoding the frame payload
func (c *CrossfireLayer) NextLayerType() gopacket.LayerType {
	return c.Type.LayerType()
}

// DecodeFromBytes decodes exactly one frame. data must span the frame
// extent [address, CRC] as found by the frame scanner.
func (c *CrossfireLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	if len(data) < HeaderLen-1 {
		df.SetTruncated()
		return &ErrFrameTooShort{Length: len(data), What: "no length byte"}
	}
	length := int(data[1])
	if length < MinFrameLen {
		return &ErrFrameTooShort{Length: len(data), What: fmt.Sprintf("length byte %d is less than %d", length, MinFrameLen)}
	}
	if len(data) < length+2 {
		df.SetTruncated()
		return &ErrFrameTooShort{Length: len(data), What: fmt.Sprintf("length byte requires %d bytes", length+2)}
	}

	c.Address = data[0]
	c.Length = data[1]
	c.Type = FrameType(data[2])
	c.CRC = data[length+1]
	c.BaseLayer = layers.BaseLayer{
		Contents: data[:HeaderLen],
		Payload:  data[HeaderLen : length+1],
	}

	if crc := frameChecksum(c.Type, c.Payload); crc != c.CRC {
		return &ErrCRCMismatch{Type: c.Type, Expected: crc, Actual: c.CRC}
	}
	return nil
}

// SerializeTo wraps the already serialized payload with the frame header and CRC
func (c *CrossfireLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	payload := b.Bytes()
	if len(payload) > MaxPayloadLen {
		return &ErrPayloadTooLong{Length: len(payload)}
	}
	if opts.FixLengths {
		c.Length = uint8(len(payload) + 2)
	}
	if opts.ComputeChecksums {
		c.CRC = frameChecksum(c.Type, payload)
	}

	headerBytes, err := b.PrependBytes(HeaderLen)
	if err != nil {
		return err
	}
	headerBytes[0] = c.Address
	headerBytes[1] = c.Length
	headerBytes[2] = byte(c.Type)

	tailBytes, err := b.AppendBytes(1)
	if err != nil {
		return err
	}
	tailBytes[0] = c.CRC
	return nil
}

// EncodeFrame serializes a whole frame with length and CRC filled in
func EncodeFrame(address uint8, frameType FrameType, payload gopacket.SerializableLayer) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	crossfire := &CrossfireLayer{Address: address, Type: frameType}
	if err := gopacket.SerializeLayers(buf, opts, crossfire, payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeCrossfireLayer(data []byte, p gopacket.PacketBuilder) error {
	c := &CrossfireLayer{}
	err := c.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(c)
	return p.NextDecoder(c.NextLayerType())
}
