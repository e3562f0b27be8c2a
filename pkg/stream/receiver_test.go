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
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/layers"
	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

func frame(frameType layers.FrameType, payload ...byte) []byte {
	data := []byte{layers.RadioAddress, byte(len(payload) + 2), byte(frameType)}
	data = append(data, payload...)
	return append(data, layers.Checksum(append([]byte{byte(frameType)}, payload...)))
}

// chunkReader returns one chunk per Read and then err
type chunkReader struct {
	chunks [][]byte
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, r.err
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

type collector struct {
	samples []Sample
}

func (c *collector) Handle(s Sample) error {
	c.samples = append(c.samples, s)
	return nil
}

func TestReceiverCarriesTruncatedFrame(t *testing.T) {
	first := frame(layers.FrameTypeVario, 0x00, 0x64)
	second := frame(layers.FrameTypeFlightMode, []byte("ACRO\x00")...)
	third := frame(layers.FrameTypeVario, 0x00, 0x32)
	chunk1 := append(append([]byte{0x00}, first...), second[:3]...)
	chunk2 := append(append([]byte(nil), second[3:]...), third...)

	c := &collector{}
	r := NewReceiver(&chunkReader{chunks: [][]byte{chunk1, chunk2}, err: io.EOF}, config.NewDefaultConfig(), c)
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []struct {
		frame   uint64
		reading sensor.Reading
	}{
		{1, sensor.Int(sensor.VerticalSpeed, 100)},
		{2, sensor.Text(sensor.FlightMode, "ACRO")},
		{3, sensor.Int(sensor.VerticalSpeed, 50)},
	}
	if len(c.samples) != len(want) {
		t.Fatalf("got %d samples %v", len(c.samples), c.samples)
	}
	for i, w := range want {
		if c.samples[i].Frame != w.frame || c.samples[i].Reading != w.reading {
			t.Errorf("sample %d = %+v, want frame %d %+v", i, c.samples[i], w.frame, w.reading)
		}
	}

	stats := r.Stats()
	if stats.Bytes != len(chunk1)+len(chunk2) {
		t.Errorf("bytes = %d, want %d", stats.Bytes, len(chunk1)+len(chunk2))
	}
	if stats.Frames != 3 || stats.Readings != 3 || stats.SkippedBytes != 1 || stats.Chunks != 2 || stats.FatalErrors != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestReceiverDropsAfterFrameLengthError(t *testing.T) {
	chunk1 := append(frame(layers.FrameTypeVario, 0x00, 0x01), 0xea, 0x01, 0x00, 0x00)
	chunk2 := frame(layers.FrameTypeVario, 0x00, 0x02)
	c := &collector{}
	r := NewReceiver(&chunkReader{chunks: [][]byte{chunk1, chunk2}, err: io.EOF}, config.NewDefaultConfig(), c)
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(c.samples) != 2 || c.samples[0].Reading.Value != 1 || c.samples[1].Reading.Value != 2 {
		t.Errorf("samples = %v", c.samples)
	}
	stats := r.Stats()
	if stats.FatalErrors != 1 || stats.DroppedBytes != 4 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestReceiverDropsTailAtEnd(t *testing.T) {
	full := frame(layers.FrameTypeVario, 0x00, 0x01)
	r := NewReceiver(&chunkReader{chunks: [][]byte{append(full, full[:4]...)}, err: io.EOF}, config.NewDefaultConfig())
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if stats := r.Stats(); stats.DroppedBytes != 4 || stats.Readings != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestReceiverReadError(t *testing.T) {
	readErr := errors.New("port unplugged")
	r := NewReceiver(&chunkReader{err: readErr}, config.NewDefaultConfig())
	if err := r.Run(context.Background()); !errors.Is(err, readErr) {
		t.Errorf("error = %v, want %v", err, readErr)
	}
}

func TestReceiverSinkError(t *testing.T) {
	sinkErr := errors.New("closed")
	chunks := [][]byte{frame(layers.FrameTypeVario, 0x00, 0x01)}
	r := NewReceiver(&chunkReader{chunks: chunks, err: io.EOF}, config.NewDefaultConfig(),
		SinkFunc(func(Sample) error { return sinkErr }))
	if err := r.Run(context.Background()); !errors.Is(err, sinkErr) {
		t.Errorf("error = %v, want %v", err, sinkErr)
	}
}

func TestReceiverCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := &collector{}
	r := NewReceiver(pr, config.NewDefaultConfig(), c)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()
	if _, err := pw.Write(frame(layers.FrameTypeVario, 0x00, 0x01)); err != nil {
		t.Fatal(err)
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPrinter(t *testing.T) {
	sample := Sample{
		Time:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Frame:   7,
		Reading: sensor.Int(sensor.BattVoltage, 123),
	}

	var text bytes.Buffer
	if err := NewPrinter(&text, FormatText).Handle(sample); err != nil {
		t.Fatal(err)
	}
	if text.String() != "RxBt 12.3V\n" {
		t.Errorf("text output = %q", text.String())
	}

	var doc bytes.Buffer
	if err := NewPrinter(&doc, FormatYAML).Handle(sample); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"---\n", "sensor: battery-voltage", "frame: 7", "display: 12.3V", "value: 12.3"} {
		if !strings.Contains(doc.String(), want) {
			t.Errorf("yaml output %q does not contain %q", doc.String(), want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("yaml"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(yaml) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml must be rejected")
	}
}
