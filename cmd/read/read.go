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


package read

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-crsf/cmd/decode"
	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/export"
	"jinr.ru/greenlab/go-crsf/pkg/log"
	"jinr.ru/greenlab/go-crsf/pkg/serial"
	"jinr.ru/greenlab/go-crsf/pkg/srv"
	"jinr.ru/greenlab/go-crsf/pkg/state"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

const (
	PortOptionName    = "port"
	BaudOptionName    = "baud"
	AddressOptionName = "address"
	FormatOptionName  = "format"
	ServeOptionName   = "serve"
	GPXOptionName     = "gpx"
	QuietOptionName   = "quiet"
	ListOptionName    = "list"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	var port, address, format, gpxFile string
	var baud int
	var serve, quiet, list bool
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read telemetry from a serial port",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				ports, err := serial.Ports()
				if err != nil {
					return err
				}
				for _, p := range ports {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}
			if port != "" {
				cfg.SerialConfig.Port = port
			}
			if baud != 0 {
				cfg.SerialConfig.BaudRate = baud
			}
			if address != "" {
				addr, err := decode.ParseAddress(address)
				if err != nil {
					return err
				}
				cfg.ReceiverAddress = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			outFormat, err := stream.ParseFormat(format)
			if err != nil {
				return err
			}

			p, err := serial.Open(cfg.SerialConfig)
			if err != nil {
				return err
			}
			defer p.Close()

			var sinks []stream.Sink
			if !quiet {
				sinks = append(sinks, stream.NewPrinter(cmd.OutOrStdout(), outFormat))
			}
			var track *export.Track
			if gpxFile != "" {
				track = export.NewTrack(cfg.SerialConfig.Port)
				sinks = append(sinks, track)
			}
			snapshot := srv.NewSnapshot()
			if serve {
				sinks = append(sinks, snapshot)
			}
			receiver := stream.NewReceiver(p, cfg, sinks...)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			serverErr := make(chan error, 1)
			if serve {
				server := srv.NewApiServer(cfg, snapshot, receiver.Stats)
				go func() {
					err := server.Run(ctx)
					if err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("API server stopped: %s", err)
					}
					serverErr <- err
				}()
			}

			session := &state.Session{Port: cfg.SerialConfig.Port, Start: time.Now()}
			log.Info("Reading %s at %d baud", cfg.SerialConfig.Port, cfg.SerialConfig.BaudRate)
			runErr := receiver.Run(ctx)
			session.End = time.Now()
			session.Stats = receiver.Stats()

			cancel()
			if serve {
				<-serverErr
			}
			if err := saveSession(cfg.StatsDB, session); err != nil {
				log.Error("Session not saved: %s", err)
			}
			if track != nil {
				if err := track.WriteFile(gpxFile); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.ErrOrStderr(), session.Stats.Summary())
			return runErr
		},
	}
	cmd.Flags().StringVar(&port, PortOptionName, "", "Serial port. E.g. /dev/ttyUSB0")
	cmd.Flags().IntVar(&baud, BaudOptionName, 0, fmt.Sprintf("Baud rate. Default %d", config.DefaultBaudRate))
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Receiver address. E.g. 0xea")
	cmd.Flags().StringVar(&format, FormatOptionName, string(stream.FormatText), "Output format: text or yaml")
	cmd.Flags().BoolVar(&serve, ServeOptionName, false, "Serve the latest readings over HTTP")
	cmd.Flags().StringVar(&gpxFile, GPXOptionName, "", "Write GPS positions to a GPX file")
	cmd.Flags().BoolVar(&quiet, QuietOptionName, false, "Do not print readings")
	cmd.Flags().BoolVar(&list, ListOptionName, false, "List serial ports and exit")
	return cmd
}

func saveSession(path string, session *state.Session) error {
	st, err := state.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.PutSession(session); err != nil {
		return err
	}
	log.Info("Session %s saved to %s", session.ID, path)
	return nil
}
