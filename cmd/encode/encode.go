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


package encode

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/gopacket"
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-crsf/cmd/decode"
	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/layers"
	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

const (
	AddressOptionName = "address"
	RawOptionName     = "raw"
)

const encodeExample = `
Build a battery frame, values are raw and unscaled
# go-crsf encode battery-voltage=123 battery-current=10

Round trip through the decoder
# go-crsf encode flight-mode=ACRO gps-satellites=9 | go-crsf decode --hex -
`

type frame struct {
	frameType layers.FrameType
	payload   gopacket.SerializableLayer
}

// buildFrames groups SENSOR=VALUE assignments into one frame per frame type
// in order of first appearance. Fields not assigned are sent absent.
func buildFrames(assignments []string) ([]frame, error) {
	var frames []frame
	byType := map[layers.FrameType]int{}
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("expected SENSOR=VALUE, got %q", a)
		}
		index, ok := sensor.ParseIndex(key)
		if !ok {
			return nil, fmt.Errorf("unknown sensor %q", key)
		}
		frameType := layers.FrameType(sensor.Lookup(index).FrameID)
		if index == sensor.FlightMode {
			frames = append(frames, frame{frameType, &layers.FlightModeLayer{Mode: value}})
			continue
		}
		raw, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value of %s: %w", key, err)
		}
		i, ok := byType[frameType]
		if !ok {
			layer, err := layers.NewTelemetryLayer(frameType)
			if err != nil {
				return nil, err
			}
			i = len(frames)
			byType[frameType] = i
			frames = append(frames, frame{frameType, layer})
		}
		if err := frames[i].payload.(*layers.TelemetryLayer).SetRaw(index, raw); err != nil {
			return nil, err
		}
	}
	return frames, nil
}

func NewCommand(cfg *config.Config) *cobra.Command {
	var address string
	var raw bool
	cmd := &cobra.Command{
		Use:     "encode SENSOR=VALUE...",
		Short:   "Build telemetry frames, e.g. to feed decode",
		Example: encodeExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				addr, err := decode.ParseAddress(address)
				if err != nil {
					return err
				}
				cfg.ReceiverAddress = addr
			}
			frames, err := buildFrames(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range frames {
				data, err := layers.EncodeFrame(cfg.ReceiverAddress, f.frameType, f.payload)
				if err != nil {
					return err
				}
				if raw {
					_, err = out.Write(data)
				} else {
					_, err = fmt.Fprintln(out, hex.EncodeToString(data))
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Destination address. E.g. 0xea")
	cmd.Flags().BoolVar(&raw, RawOptionName, false, "Write binary frames instead of hex lines")
	return cmd
}
