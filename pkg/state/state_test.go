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

package state

import (
	"path/filepath"
	"testing"
	"time"

	"jinr.ru/greenlab/go-crsf/pkg/crsf"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

func TestSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "stats.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	later := &Session{
		Port:  "/dev/ttyUSB1",
		Start: start.Add(time.Hour),
		End:   start.Add(2 * time.Hour),
		Stats: stream.Stats{Stats: crsf.Stats{Frames: 10, CRCErrors: 2}, FatalErrors: 1},
	}
	earlier := &Session{
		ID:    "first",
		Port:  "/dev/ttyUSB0",
		Start: start,
		End:   start.Add(time.Minute),
		Stats: stream.Stats{Stats: crsf.Stats{Bytes: 4096, Readings: 300}},
	}
	for _, session := range []*Session{later, earlier} {
		if err := s.PutSession(session); err != nil {
			t.Fatal(err)
		}
	}
	if later.ID == "" {
		t.Error("PutSession must assign an ID")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	sessions, err := s.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions", len(sessions))
	}
	first, second := sessions[0], sessions[1]
	if first.ID != "first" || first.Stats.Readings != 300 || first.Duration() != time.Minute {
		t.Errorf("first session = %+v", first)
	}
	if !first.Start.Equal(start) {
		t.Errorf("start = %s, want %s", first.Start, start)
	}
	if second.Port != "/dev/ttyUSB1" || second.Stats.CRCErrors != 2 || second.Stats.FatalErrors != 1 {
		t.Errorf("second session = %+v", second)
	}
}

func TestEmptyState(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	sessions, err := s.Sessions()
	if err != nil || len(sessions) != 0 {
		t.Errorf("sessions = %v, %v", sessions, err)
	}
}
