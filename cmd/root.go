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

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-crsf/cmd/completion"
	"jinr.ru/greenlab/go-crsf/cmd/config"
	"jinr.ru/greenlab/go-crsf/cmd/decode"
	"jinr.ru/greenlab/go-crsf/cmd/encode"
	"jinr.ru/greenlab/go-crsf/cmd/read"
	"jinr.ru/greenlab/go-crsf/cmd/readings"
	"jinr.ru/greenlab/go-crsf/cmd/sensors"
	"jinr.ru/greenlab/go-crsf/cmd/stats"
	pkgconfig "jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
	ConfigOptionName   = "config"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel, configPath string
	cfg := pkgconfig.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:          "go-crsf",
		Short:        "Tool to decode CRSF telemetry",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg.SetPath(configPath)
			}
			if err := cfg.LoadConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(config.NewCommand(cfg))
	cmd.AddCommand(decode.NewCommand(cfg))
	cmd.AddCommand(encode.NewCommand(cfg))
	cmd.AddCommand(read.NewCommand(cfg))
	cmd.AddCommand(readings.NewCommand(cfg))
	cmd.AddCommand(stats.NewCommand(cfg))
	cmd.AddCommand(sensors.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	cmd.PersistentFlags().StringVar(&configPath, ConfigOptionName, "", fmt.Sprintf("Config file. Default %s", pkgconfig.DefaultConfigPath()))
	return cmd
}
