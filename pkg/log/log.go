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

package log

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type LogLevel int

const (
	LogPrefix     = "[go-crsf] "
	ErrorPrefix   = "[error] "
	WarningPrefix = "[warn] "
	InfoPrefix    = "[info] "
	DebugPrefix   = "[debug] "
	HelpLevels    = "Must be one of: error, warning, info, debug."
)

const (
	ErrorLevel LogLevel = iota
	WarningLevel
	InfoLevel
	DebugLevel
)

var logrusLevels = map[LogLevel]logrus.Level{
	ErrorLevel:   logrus.ErrorLevel,
	WarningLevel: logrus.WarnLevel,
	InfoLevel:    logrus.InfoLevel,
	DebugLevel:   logrus.DebugLevel,
}

type Logger struct {
	level LogLevel
	*logrus.Logger
}

var logger = newLogger(os.Stderr)

func newLogger(out io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableQuote:           true,
		DisableLevelTruncation: true,
	})
	return &Logger{level: InfoLevel, Logger: l}
}

// ParseLevel converts a level name into LogLevel
func ParseLevel(strLevel string) (LogLevel, error) {
	levelMapping := map[string]LogLevel{
		"error":   ErrorLevel,
		"warning": WarningLevel,
		"info":    InfoLevel,
		"debug":   DebugLevel,
	}
	level, ok := levelMapping[strLevel]
	if !ok {
		return InfoLevel, errors.New("Wrong log level. " + HelpLevels)
	}
	return level, nil
}

func SetLevel(strLevel string) error {
	level, err := ParseLevel(strLevel)
	if err != nil {
		return err
	}
	logger.level = level
	logger.Logger.SetLevel(logrusLevels[level])
	return nil
}

// Level returns the current log level
func Level() LogLevel {
	return logger.level
}

func Init(out io.Writer, strLevel string) error {
	logger.SetOutput(out)
	return SetLevel(strLevel)
}

// Writer returns a writer which logs every line at info level.
// It is used for HTTP access logs.
func Writer() io.Writer {
	return logger.WriterLevel(logrus.InfoLevel)
}

func Error(format string, v ...interface{}) {
	if logger.level >= ErrorLevel {
		logger.Logger.Error(fmt.Sprintf(LogPrefix+ErrorPrefix+format, v...))
	}
}

func Warning(format string, v ...interface{}) {
	if logger.level >= WarningLevel {
		logger.Logger.Warn(fmt.Sprintf(LogPrefix+WarningPrefix+format, v...))
	}
}

func Info(format string, v ...interface{}) {
	if logger.level >= InfoLevel {
		logger.Logger.Info(fmt.Sprintf(LogPrefix+InfoPrefix+format, v...))
	}
}

func Debug(format string, v ...interface{}) {
	if logger.level >= DebugLevel {
		logger.Logger.Debug(fmt.Sprintf(LogPrefix+DebugPrefix+format, v...))
	}
}

// Backend returns the logrus logger, e.g. for libraries which log through Println
func Backend() *logrus.Logger {
	return logger.Logger
}
