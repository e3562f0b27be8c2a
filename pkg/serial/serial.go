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

package serial

import (
	"fmt"

	goserial "go.bug.st/serial"

	"jinr.ru/greenlab/go-crsf/pkg/config"
	"jinr.ru/greenlab/go-crsf/pkg/log"
)

// Mode returns 8N1 framing at the configured baud rate
func Mode(cfg *config.SerialConfig) *goserial.Mode {
	return &goserial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   goserial.NoParity,
		StopBits: goserial.OneStopBit,
	}
}

// Open opens the receiver port. Reads return no bytes and no error
// when nothing arrived within the configured read timeout.
func Open(cfg *config.SerialConfig) (goserial.Port, error) {
	port, err := goserial.Open(cfg.Port, Mode(cfg))
	if err != nil {
		return nil, fmt.Errorf("error while opening serial port %s: %w", cfg.Port, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout()); err != nil {
		port.Close()
		return nil, fmt.Errorf("error while setting read timeout on %s: %w", cfg.Port, err)
	}
	log.Info("Opened %s at %d baud", cfg.Port, cfg.BaudRate)
	return port, nil
}

// Ports lists the serial ports present in the system
func Ports() ([]string, error) {
	ports, err := goserial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("error while listing serial ports: %w", err)
	}
	return ports, nil
}
