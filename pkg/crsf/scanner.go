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
	"jinr.ru/greenlab/go-crsf/pkg/layers"
)

// RawFrame is one frame extent inside the scanned buffer.
// Payload and Bytes borrow the buffer.
type RawFrame struct {
	Offset  int
	Address uint8
	Length  uint8 // frame id, payload and CRC
	FrameID uint8
	Payload []byte
	CRC     uint8
	Bytes   []byte // the whole frame from address to CRC
}

type scanState uint8

const (
	stateSeeking scanState = iota
	stateValidating
	stateReady
	stateAdvancing
	stateDone
)

// Scanner walks a buffer and yields the frames addressed to one device.
// Bytes before a frame start are skipped one at a time. A frame whose length
// byte is below the minimum or which runs past the end of the buffer stops
// the scan with a *DecodeError.
type Scanner struct {
	data    []byte
	address uint8
	idx     int
	state   scanState
	frame   RawFrame
	err     error
	skipped int
}

func NewScanner(data []byte, address uint8) *Scanner {
	return &Scanner{data: data, address: address}
}

// Next advances to the next frame, it returns false when the buffer is
// exhausted or a fatal error occurred
func (s *Scanner) Next() bool {
	for {
		switch s.state {
		case stateDone:
			return false
		case stateAdvancing:
			s.idx += int(s.frame.Length) + 2
			s.state = stateSeeking
		case stateSeeking:
			if s.idx >= len(s.data) {
				s.state = stateDone
				continue
			}
			if s.data[s.idx] != s.address {
				s.idx++
				s.skipped++
				continue
			}
			s.state = stateValidating
		case stateValidating:
			available := len(s.data) - s.idx
			if available < 2 {
				s.fail(&DecodeError{Kind: KindBufferOverrun, Offset: s.idx, Available: available})
				continue
			}
			length := int(s.data[s.idx+1])
			if length < layers.MinFrameLen {
				s.fail(&DecodeError{Kind: KindFrameLength, Offset: s.idx, Length: length, Available: available})
				continue
			}
			if s.idx+length+2 > len(s.data) {
				s.fail(&DecodeError{Kind: KindBufferOverrun, Offset: s.idx, Length: length, Available: available})
				continue
			}
			s.state = stateReady
		case stateReady:
			end := s.idx + int(s.data[s.idx+1]) + 2
			s.frame = RawFrame{
				Offset:  s.idx,
				Address: s.data[s.idx],
				Length:  s.data[s.idx+1],
				FrameID: s.data[s.idx+2],
				Payload: s.data[s.idx+layers.HeaderLen : end-1],
				CRC:     s.data[end-1],
				Bytes:   s.data[s.idx:end],
			}
			s.state = stateAdvancing
			return true
		}
	}
}

func (s *Scanner) fail(err error) {
	s.err = err
	s.state = stateDone
}

// Frame returns the frame found by the last successful Next
func (s *Scanner) Frame() RawFrame {
	return s.frame
}

// Err returns the error which stopped the scan, nil at the end of the buffer
func (s *Scanner) Err() error {
	return s.err
}

// Skipped returns the number of bytes skipped while seeking a frame start
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Offset returns the position where scanning stopped or will resume
func (s *Scanner) Offset() int {
	if s.state == stateAdvancing {
		return s.idx + int(s.frame.Length) + 2
	}
	return s.idx
}
