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

// Package stream runs the decoder over a continuous byte source.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/crsf"
	"jinr.ru/greenlab/go-crsf/pkg/log"
)

// MaxCarry is the longest CRSF frame. A truncated frame at the end of a
// chunk is completed from the next chunk when it is not longer than this.
const MaxCarry = 64

// Stats are the decoder counters of all chunks plus the receiver's own
type Stats struct {
	crsf.Stats
	Chunks       int `json:"chunks"`
	FatalErrors  int `json:"fatalErrors"`
	DroppedBytes int `json:"droppedBytes"`
}

type Receiver struct {
	source     io.Reader
	cfg        *config.Config
	sinks      []Sink
	chCaptured chan []byte
	carry      []byte
	nextFrame  uint64
	now        func() time.Time

	mu    sync.Mutex
	stats Stats
}

func NewReceiver(source io.Reader, cfg *config.Config, sinks ...Sink) *Receiver {
	return &Receiver{
		source:     source,
		cfg:        cfg,
		sinks:      sinks,
		chCaptured: make(chan []byte),
		nextFrame:  1,
		now:        time.Now,
	}
}

// Run reads the source until it is exhausted or ctx is cancelled.
// The end of the source is not an error.
func (r *Receiver) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 1)

	// receive data from the source and put them to the handler channel
	go func() {
		for {
			buffer := make([]byte, r.cfg.SerialConfig.BufferSize)
			length, err := r.source.Read(buffer)
			if length > 0 {
				select {
				case r.chCaptured <- buffer[:length]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errChan <- err
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errChan:
			r.dropCarry()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("error while reading: %w", err)
		case chunk := <-r.chCaptured:
			if err := r.handle(chunk); err != nil {
				return err
			}
		}
	}
}

func (r *Receiver) handle(chunk []byte) error {
	data := chunk
	carried := len(r.carry)
	if carried > 0 {
		data = append(r.carry, chunk...)
		r.carry = nil
	}

	now := r.now()
	d := crsf.NewDecoder(data,
		crsf.WithAddress(r.cfg.ReceiverAddress),
		crsf.WithFirstFrame(r.nextFrame))
	for d.Next() {
		sample := Sample{Time: now, Frame: d.Frame(), Reading: d.Reading()}
		for _, sink := range r.sinks {
			if err := sink.Handle(sample); err != nil {
				return fmt.Errorf("error while handling sample: %w", err)
			}
		}
	}
	r.nextFrame = d.LastFrame() + 1

	r.mu.Lock()
	defer r.mu.Unlock()
	stats := d.Stats()
	stats.Bytes -= carried
	r.stats.Add(stats)
	r.stats.Chunks++

	var decodeErr *crsf.DecodeError
	if !errors.As(d.Err(), &decodeErr) {
		return nil
	}
	tail := data[decodeErr.Offset:]
	if errors.Is(decodeErr, crsf.ErrBufferOverrun) && len(tail) <= MaxCarry {
		log.Debug("Carrying %d bytes of a truncated frame over to the next chunk", len(tail))
		r.carry = append([]byte(nil), tail...)
		return nil
	}
	log.Warning("Dropping %d bytes: %s", len(tail), decodeErr)
	r.stats.FatalErrors++
	r.stats.DroppedBytes += len(tail)
	return nil
}

func (r *Receiver) dropCarry() {
	if len(r.carry) == 0 {
		return
	}
	log.Debug("Source ended inside a frame, dropping %d bytes", len(r.carry))
	r.mu.Lock()
	r.stats.DroppedBytes += len(r.carry)
	r.mu.Unlock()
	r.carry = nil
}

// Stats returns the counters so far. It is safe to call while Run is active.
func (r *Receiver) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}
