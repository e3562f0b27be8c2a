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

package command

import (
	"errors"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/crsf"
	"jinr.ru/greenlab/go-crsf/pkg/sensor"
	"jinr.ru/greenlab/go-crsf/pkg/srv"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

func newClient(t *testing.T) (*ApiClient, *srv.Snapshot) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	snapshot := srv.NewSnapshot()
	stats := func() stream.Stats {
		return stream.Stats{Stats: crsf.Stats{Bytes: 1024, Readings: 12}, FatalErrors: 1}
	}
	server := httptest.NewServer(srv.NewApiServer(cfg, snapshot, stats).Handler())
	t.Cleanup(server.Close)

	addr := server.Listener.Addr().(*net.TCPAddr)
	cfg.ApiConfig.Address = addr.IP.String()
	cfg.ApiConfig.Port = addr.Port
	return NewApiClient(cfg), snapshot
}

func TestClientReadings(t *testing.T) {
	client, snapshot := newClient(t)
	snapshot.Handle(stream.Sample{Time: time.Now(), Frame: 9, Reading: sensor.Int(sensor.GPSSatellites, 11)})

	records, err := client.Readings()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Sensor != "gps-satellites" || records[0].Value != 11 {
		t.Errorf("records = %+v", records)
	}

	record, err := client.Reading("gps-satellites")
	if err != nil {
		t.Fatal(err)
	}
	if record.Frame != 9 || record.Display != "11" {
		t.Errorf("record = %+v", record)
	}
}

func TestClientNotFound(t *testing.T) {
	client, _ := newClient(t)
	_, err := client.Reading("gps-altitude")
	var statusErr ErrApiStatus
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want ErrApiStatus", err)
	}
	if statusErr.Path != "/readings/gps-altitude" {
		t.Errorf("path = %s", statusErr.Path)
	}
}

func TestClientStatsAndSensors(t *testing.T) {
	client, _ := newClient(t)
	stats, err := client.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Bytes != 1024 || stats.Readings != 12 || stats.FatalErrors != 1 {
		t.Errorf("stats = %+v", stats)
	}
	sensors, err := client.Sensors()
	if err != nil {
		t.Fatal(err)
	}
	if len(sensors) != len(sensor.Indexes()) {
		t.Errorf("got %d sensors", len(sensors))
	}
}
