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


package decode

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/export"
	"jinr.ru/greenlab/go-crsf/pkg/log"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

const (
	HexOptionName     = "hex"
	AddressOptionName = "address"
	FormatOptionName  = "format"
	GPXOptionName     = "gpx"
	StdinName         = "-"
)

const decodeExample = `
Decode a raw capture
# go-crsf decode capture.bin

Decode a hex dump from stdin
# echo "ea 0a 08 00 7b 00 0a 00 01 f4 50 97" | go-crsf decode --hex -
`

// ParseAddress accepts decimal, 0x hex or 0 octal notation
func ParseAddress(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid receiver address %q: %w", s, err)
	}
	return uint8(v), nil
}

// ParseHex decodes a hex dump ignoring all whitespace
func ParseHex(data []byte) ([]byte, error) {
	clean := strings.Join(strings.Fields(string(data)), "")
	return hex.DecodeString(clean)
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == StdinName {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func NewCommand(cfg *config.Config) *cobra.Command {
	var isHex bool
	var address, format, gpxFile string
	cmd := &cobra.Command{
		Use:     "decode FILE|-",
		Short:   "Decode a captured CRSF byte stream",
		Example: decodeExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				addr, err := ParseAddress(address)
				if err != nil {
					return err
				}
				cfg.ReceiverAddress = addr
			}
			outFormat, err := stream.ParseFormat(format)
			if err != nil {
				return err
			}
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			if isHex {
				if data, err = ParseHex(data); err != nil {
					return fmt.Errorf("error while parsing hex input: %w", err)
				}
			}
			log.Debug("Decoding %d bytes for address 0x%02x", len(data), cfg.ReceiverAddress)

			sinks := []stream.Sink{stream.NewPrinter(cmd.OutOrStdout(), outFormat)}
			var track *export.Track
			if gpxFile != "" {
				track = export.NewTrack(args[0])
				sinks = append(sinks, track)
			}
			receiver := stream.NewReceiver(bytes.NewReader(data), cfg, sinks...)
			if err := receiver.Run(cmd.Context()); err != nil {
				return err
			}
			if track != nil {
				if err := track.WriteFile(gpxFile); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.ErrOrStderr(), receiver.Stats().Summary())
			return nil
		},
	}
	cmd.Flags().BoolVar(&isHex, HexOptionName, false, "Input is a hex dump")
	cmd.Flags().StringVar(&address, AddressOptionName, "", "Receiver address. E.g. 0xea")
	cmd.Flags().StringVar(&format, FormatOptionName, string(stream.FormatText), "Output format: text or yaml")
	cmd.Flags().StringVar(&gpxFile, GPXOptionName, "", "Write GPS positions to a GPX file")
	return cmd
}
