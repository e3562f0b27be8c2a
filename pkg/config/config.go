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

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sigs.k8s.io/yaml"
)

type SerialConfig struct {
	Port          string `json:"port,omitempty"`
	BaudRate      int    `json:"baudRate,omitempty"`
	ReadTimeoutMs int    `json:"readTimeoutMs,omitempty"`
	BufferSize    int    `json:"bufferSize,omitempty"`
}

// ReadTimeout returns the serial read timeout
func (s *SerialConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutMs) * time.Millisecond
}

type ApiConfig struct {
	Address string `json:"address,omitempty"`
	Port    int    `json:"port,omitempty"`
}

// Endpoint returns host:port of the API server
func (a *ApiConfig) Endpoint() string {
	return net.JoinHostPort(a.Address, strconv.Itoa(a.Port))
}

type Config struct {
	LogLevel        string `json:"logLevel,omitempty"`
	ReceiverAddress uint8  `json:"receiverAddress,omitempty"`
	*SerialConfig   `json:"serial,omitempty"`
	*ApiConfig      `json:"api,omitempty"`
	StatsDB         string `json:"statsDB,omitempty"`
	filepath        string
}

// Path returns the file the config is loaded from and persisted to
func (c *Config) Path() string {
	return c.filepath
}

// SetPath changes the config file location
func (c *Config) SetPath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// LoadConfig reads the config file over the current values.
// Values missing in the file keep their defaults.
func (c *Config) LoadConfig() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error while parsing config file %s: %w", c.filepath, err)
	}
	c.applyDefaults()
	return c.Validate()
}

// Validate checks the values which can not be used as they are
func (c *Config) Validate() error {
	if c.SerialConfig.BufferSize < MinBufferSize {
		return ErrInvalidValue{Field: "serial.bufferSize", Value: strconv.Itoa(c.SerialConfig.BufferSize)}
	}
	if c.SerialConfig.BaudRate <= 0 {
		return ErrInvalidValue{Field: "serial.baudRate", Value: strconv.Itoa(c.SerialConfig.BaudRate)}
	}
	if c.ApiConfig.Port <= 0 || c.ApiConfig.Port > 65535 {
		return ErrInvalidValue{Field: "api.port", Value: strconv.Itoa(c.ApiConfig.Port)}
	}
	return nil
}

func (c *Config) applyDefaults() {
	d := NewDefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.ReceiverAddress == 0 {
		c.ReceiverAddress = d.ReceiverAddress
	}
	if c.SerialConfig == nil {
		c.SerialConfig = d.SerialConfig
	}
	if c.ApiConfig == nil {
		c.ApiConfig = d.ApiConfig
	}
	if c.StatsDB == "" {
		c.StatsDB = d.StatsDB
	}
}

func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ConfigDir, ConfigFile)
}

func DefaultStatsDBPath() string {
	return filepath.Join(homeDir(), ConfigDir, StatsDBFile)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return home
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		ReceiverAddress: DefaultReceiverAddress,
		SerialConfig: &SerialConfig{
			Port:          DefaultSerialPort,
			BaudRate:      DefaultBaudRate,
			ReadTimeoutMs: DefaultReadTimeoutMs,
			BufferSize:    DefaultBufferSize,
		},
		ApiConfig: &ApiConfig{
			Address: DefaultApiAddress,
			Port:    DefaultApiPort,
		},
		StatsDB:  DefaultStatsDBPath(),
		filepath: DefaultConfigPath(),
	}
}

// Load returns the default config overridden by the file at path.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		cfg.filepath = path
	}
	err := cfg.LoadConfig()
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
