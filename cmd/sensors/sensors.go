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


package sensors

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensors",
		Short: "List the sensors that can be decoded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "SENSOR\tNAME\tFRAME\tSUB\tUNIT\tPRECISION")
			for _, index := range sensor.Indexes() {
				d := sensor.Lookup(index)
				fmt.Fprintf(w, "%s\t%s\t0x%02x\t%d\t%s\t%d\n", index, d.Name, d.FrameID, d.SubIndex, d.Unit, d.Precision)
			}
			return w.Flush()
		},
	}
	return cmd
}
