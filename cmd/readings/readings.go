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


package readings

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-crsf/pkg/command"
	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/stream"
)

const (
	SensorOptionName = "sensor"
)

func printRecords(out io.Writer, records []stream.Record) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "SENSOR\tNAME\tVALUE\tFRAME\tUPDATED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", r.Sensor, r.Name, r.Display, r.Frame, humanize.Time(r.Time))
	}
	return w.Flush()
}

func NewCommand(cfg *config.Config) *cobra.Command {
	var sensorKey string
	cmd := &cobra.Command{
		Use:   "readings",
		Short: "Show the latest readings of a running read --serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			if sensorKey != "" {
				record, err := apiClient.Reading(sensorKey)
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), []stream.Record{*record})
			}
			records, err := apiClient.Readings()
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().StringVar(&sensorKey, SensorOptionName, "", "Show one sensor only. E.g. battery-voltage")
	return cmd
}
