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

// Package export writes decoded GPS positions as a GPX track.
package export

import (
	"io"
	"os"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"jinr.ru/greenlab/go-crsf/pkg/log"
	"jinr.ru/greenlab/go-crsf/pkg/sensor"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

const (
	GPXVersion = "1.1"
	Creator    = "go-crsf"
)

// position collects the GPS readings of one frame
type position struct {
	frame      uint64
	time       time.Time
	lat, lon   float64
	alt        float64
	satellites int
	hasLat     bool
	hasLon     bool
	hasAlt     bool
	hasSats    bool
}

// Track turns the GPS readings of each frame into one track point.
// Frames without both coordinates are left out.
type Track struct {
	name    string
	points  []gpx.GPXPoint
	pending position
}

func NewTrack(name string) *Track {
	return &Track{name: name}
}

func (t *Track) Handle(s stream.Sample) error {
	r := s.Reading
	switch r.Index {
	case sensor.GPSLatitude, sensor.GPSLongitude, sensor.GPSAltitude, sensor.GPSSatellites:
	default:
		return nil
	}
	if s.Frame != t.pending.frame {
		t.flush()
		t.pending = position{frame: s.Frame, time: s.Time}
	}
	switch r.Index {
	case sensor.GPSLatitude:
		t.pending.lat, t.pending.hasLat = r.Float(), true
	case sensor.GPSLongitude:
		t.pending.lon, t.pending.hasLon = r.Float(), true
	case sensor.GPSAltitude:
		t.pending.alt, t.pending.hasAlt = r.Float(), true
	case sensor.GPSSatellites:
		t.pending.satellites, t.pending.hasSats = int(r.Value), true
	}
	return nil
}

func (t *Track) flush() {
	if point, ok := t.pending.point(); ok {
		t.points = append(t.points, point)
	}
	t.pending = position{}
}

func (p position) point() (gpx.GPXPoint, bool) {
	if !p.hasLat || !p.hasLon {
		return gpx.GPXPoint{}, false
	}
	point := gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  p.lat,
			Longitude: p.lon,
		},
		Timestamp: p.time,
	}
	if p.hasAlt {
		point.Elevation.SetValue(p.alt)
	}
	if p.hasSats {
		point.Satellites.SetValue(p.satellites)
	}
	return point, true
}

// Points returns the track points so far, the current frame included
func (t *Track) Points() []gpx.GPXPoint {
	points := make([]gpx.GPXPoint, len(t.points), len(t.points)+1)
	copy(points, t.points)
	if point, ok := t.pending.point(); ok {
		points = append(points, point)
	}
	return points
}

// GPX returns the track as a GPX document
func (t *Track) GPX() *gpx.GPX {
	return &gpx.GPX{
		Version: GPXVersion,
		Creator: Creator,
		Tracks: []gpx.GPXTrack{
			{
				Name:     t.name,
				Segments: []gpx.GPXTrackSegment{{Points: t.Points()}},
			},
		},
	}
}

// WriteTo writes the GPX document
func (t *Track) WriteTo(w io.Writer) (int64, error) {
	data, err := t.GPX().ToXml(gpx.ToXmlParams{Version: GPXVersion, Indent: true})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile writes the GPX document to a new file
func (t *Track) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		log.Error("Error while creating file: %s", filename)
		return err
	}
	defer file.Close()
	if _, err := t.WriteTo(file); err != nil {
		return err
	}
	log.Info("Written %d track points to %s", len(t.Points()), filename)
	return file.Sync()
}

// Length returns the 2D track length in meters
func (t *Track) Length() float64 {
	return t.GPX().Length2D()
}
