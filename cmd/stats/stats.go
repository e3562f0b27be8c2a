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


package stats

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-crsf/pkg/command"
	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/state"
)

const (
	LiveOptionName = "live"
)

func printSessions(out io.Writer, sessions []*state.Session) error {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tPORT\tDURATION\tBYTES\tFRAMES\tREADINGS\tCRC ERRORS\tDROPPED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			humanize.Time(s.Start), s.Port, s.Duration().Round(time.Second),
			humanize.Bytes(uint64(s.Stats.Bytes)),
			humanize.Comma(int64(s.Stats.Frames)),
			humanize.Comma(int64(s.Stats.Readings)),
			humanize.Comma(int64(s.Stats.CRCErrors)),
			humanize.Bytes(uint64(s.Stats.DroppedBytes)))
	}
	return w.Flush()
}

func NewCommand(cfg *config.Config) *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the counters of stored read sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if live {
				stats, err := command.NewApiClient(cfg).Stats()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), stats.Summary())
				return err
			}
			st, err := state.Open(cfg.StatsDB)
			if err != nil {
				return err
			}
			defer st.Close()
			sessions, err := st.Sessions()
			if err != nil {
				return err
			}
			return printSessions(cmd.OutOrStdout(), sessions)
		},
	}
	cmd.Flags().BoolVar(&live, LiveOptionName, false, "Ask a running read --serve instead of the session database")
	return cmd
}
