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

package stream

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-crsf/pkg/sensor"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat checks the output format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(name); f {
	case FormatText, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q, must be one of: %s, %s", name, FormatText, FormatYAML)
}

// Printer writes every sample as a "<name> <value>" line or a YAML document
type Printer struct {
	out    io.Writer
	format Format
}

func NewPrinter(out io.Writer, format Format) *Printer {
	return &Printer{out: out, format: format}
}

func (p *Printer) Handle(s Sample) error {
	if p.format == FormatYAML {
		data, err := yaml.Marshal(s.Record())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.out, "---\n%s", data)
		return err
	}
	_, err := fmt.Fprintln(p.out, sensor.Format(s.Reading))
	return err
}
