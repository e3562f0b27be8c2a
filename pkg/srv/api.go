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

// Package srv serves the latest decoded readings over HTTP.
package srv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/log"
	"jinr.ru/greenlab/go-crsf/pkg/sensor"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

const ShutdownTimeout = 5 * time.Second

// StatsFunc returns the counters of the running receiver
type StatsFunc func() stream.Stats

// SensorDescription is the API form of a sensor descriptor
type SensorDescription struct {
	Sensor    string `json:"sensor"`
	Name      string `json:"name"`
	FrameID   uint8  `json:"frameId"`
	SubIndex  uint8  `json:"subIndex"`
	Unit      string `json:"unit,omitempty"`
	Precision uint8  `json:"precision"`
}

func describe(index sensor.Index) SensorDescription {
	d := sensor.Lookup(index)
	return SensorDescription{
		Sensor:    index.String(),
		Name:      d.Name,
		FrameID:   d.FrameID,
		SubIndex:  d.SubIndex,
		Unit:      d.Unit.String(),
		Precision: d.Precision,
	}
}

type ApiServer struct {
	*config.ApiConfig
	*mux.Router
	snapshot *Snapshot
	stats    StatsFunc
}

func NewApiServer(cfg *config.Config, snapshot *Snapshot, stats StatsFunc) *ApiServer {
	s := &ApiServer{
		ApiConfig: cfg.ApiConfig,
		snapshot:  snapshot,
		stats:     stats,
	}
	s.configureRouter()
	return s
}

// Handler returns the router wrapped with access logging and panic recovery
func (s *ApiServer) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.Backend()),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(handlers.CombinedLoggingHandler(log.Writer(), s.Router))
}

// Run serves the API until ctx is cancelled
func (s *ApiServer) Run(ctx context.Context) error {
	log.Info("Starting API server: %s", s.Endpoint())
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    s.Endpoint(),
	}
	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/readings", s.handleReadings()).Methods("GET")
	subRouter.HandleFunc("/readings/{sensor}", s.handleReading()).Methods("GET")
	subRouter.HandleFunc("/sensors", s.handleSensors()).Methods("GET")
	subRouter.HandleFunc("/stats", s.handleStats()).Methods("GET")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

func (s *ApiServer) handleReadings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling readings request")
		samples := s.snapshot.All()
		records := make([]stream.Record, 0, len(samples))
		for _, sample := range samples {
			records = append(records, sample.Record())
		}
		writeJSON(w, records)
	}
}

func (s *ApiServer) handleReading() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		index, ok := sensor.ParseIndex(vars["sensor"])
		if !ok {
			http.Error(w, fmt.Sprintf("Sensor %s not found", vars["sensor"]), http.StatusNotFound)
			return
		}
		sample, ok := s.snapshot.Get(index)
		if !ok {
			http.Error(w, fmt.Sprintf("No readings of %s yet", vars["sensor"]), http.StatusNotFound)
			return
		}
		writeJSON(w, sample.Record())
	}
}

func (s *ApiServer) handleSensors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		indexes := sensor.Indexes()
		sensors := make([]SensorDescription, 0, len(indexes))
		for _, index := range indexes {
			sensors = append(sensors, describe(index))
		}
		writeJSON(w, sensors)
	}
}

func (s *ApiServer) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stats stream.Stats
		if s.stats != nil {
			stats = s.stats()
		}
		writeJSON(w, stats)
	}
}
