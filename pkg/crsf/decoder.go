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

// Package crsf turns a buffer of CRSF bytes into sensor readings.
package crsf

import (
	"errors"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-crsf/pkg/layers"
	"jinr.ru/greenlab/go-crsf/pkg/log"
	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

// Stats counts what a decoder has seen so far
type Stats struct {
	Bytes         int `json:"bytes"`
	SkippedBytes  int `json:"skippedBytes"`
	Frames        int `json:"frames"`
	Readings      int `json:"readings"`
	UnknownFrames int `json:"unknownFrames"`
	CRCErrors     int `json:"crcErrors"`
}

// Add accumulates counters of another decoder
func (s *Stats) Add(o Stats) {
	s.Bytes += o.Bytes
	s.SkippedBytes += o.SkippedBytes
	s.Frames += o.Frames
	s.Readings += o.Readings
	s.UnknownFrames += o.UnknownFrames
	s.CRCErrors += o.CRCErrors
}

type Option func(*Decoder)

// WithAddress sets the destination address of the frames to decode
func WithAddress(address uint8) Option {
	return func(d *Decoder) {
		d.address = address
	}
}

// WithFrameErrorHandler replaces the default handler which logs skipped frames as warnings
func WithFrameErrorHandler(handler func(*FrameError)) Option {
	return func(d *Decoder) {
		d.onFrameError = handler
	}
}

// WithFirstFrame sets the sequence number given to the first decoded frame.
// Decoders running over consecutive chunks of one stream use it to keep
// frame numbers unique.
func WithFirstFrame(seq uint64) Option {
	return func(d *Decoder) {
		d.seq = seq - 1
	}
}

func logFrameError(err *FrameError) {
	log.Warning("%s", err)
}

// Decoder yields the readings of every frame found in a buffer, one at a time.
// The buffer is never modified.
type Decoder struct {
	scanner      *Scanner
	address      uint8
	onFrameError func(*FrameError)

	pending      []sensor.Reading
	pendingFrame uint64
	reading      sensor.Reading
	frame        uint64
	seq          uint64
	stats        Stats
}

func NewDecoder(data []byte, opts ...Option) *Decoder {
	d := &Decoder{
		address:      layers.RadioAddress,
		onFrameError: logFrameError,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.onFrameError == nil {
		d.onFrameError = func(*FrameError) {}
	}
	d.scanner = NewScanner(data, d.address)
	d.stats.Bytes = len(data)
	return d
}

// Next moves to the next reading. It returns false at the end of the buffer
// or when a fatal error stopped decoding, see Err.
func (d *Decoder) Next() bool {
	for len(d.pending) == 0 {
		if !d.scanner.Next() {
			d.stats.SkippedBytes = d.scanner.Skipped()
			if d.stats.SkippedBytes > 0 {
				log.Debug("Skipped %d bytes not addressed to 0x%02x", d.stats.SkippedBytes, d.address)
			}
			return false
		}
		d.decodeFrame(d.scanner.Frame())
	}
	d.reading = d.pending[0]
	d.pending = d.pending[1:]
	d.frame = d.pendingFrame
	d.stats.Readings++
	return true
}

func (d *Decoder) decodeFrame(frame RawFrame) {
	d.seq++
	d.stats.Frames++
	packet := gopacket.NewPacket(frame.Bytes, layers.LayerTypeCrossfire, gopacket.NoCopy)
	if el := packet.ErrorLayer(); el != nil {
		var crcErr *layers.ErrCRCMismatch
		if errors.As(el.Error(), &crcErr) {
			d.stats.CRCErrors++
		}
		d.onFrameError(&FrameError{Offset: frame.Offset, FrameID: frame.FrameID, Err: el.Error()})
		return
	}
	known := false
	for _, layer := range packet.Layers() {
		if sl, ok := layer.(layers.SensorLayer); ok {
			d.pending = append(d.pending, sl.Readings()...)
			known = true
		}
	}
	if !known {
		d.stats.UnknownFrames++
		log.Debug("Skipping %s frame at offset %d", layers.FrameType(frame.FrameID), frame.Offset)
	}
	d.pendingFrame = d.seq
}

// Reading returns the reading found by the last successful Next
func (d *Decoder) Reading() sensor.Reading {
	return d.reading
}

// Frame returns the sequence number of the frame which produced the current
// reading. Frames are numbered from 1 in buffer order, skipped frames included.
func (d *Decoder) Frame() uint64 {
	return d.frame
}

// Err returns the *DecodeError which stopped decoding or nil
func (d *Decoder) Err() error {
	return d.scanner.Err()
}

// Consumed returns the buffer offset decoding has reached.
// After a fatal error it is the offset of the offending frame.
func (d *Decoder) Consumed() int {
	return d.scanner.Offset()
}

// LastFrame returns the sequence number of the last frame found in the buffer
func (d *Decoder) LastFrame() uint64 {
	return d.seq
}

func (d *Decoder) Stats() Stats {
	stats := d.stats
	stats.SkippedBytes = d.scanner.Skipped()
	return stats
}

// Decode collects all readings of the buffer
func Decode(data []byte, opts ...Option) ([]sensor.Reading, error) {
	var readings []sensor.Reading
	d := NewDecoder(data, opts...)
	for d.Next() {
		readings = append(readings, d.Reading())
	}
	return readings, d.Err()
}
