/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides JSON structured logging using zerolog
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// zeroLogger implements Logger without global state so it can be injected.
type zeroLogger struct {
	logger zerolog.Logger
}

// New builds a Logger writing to the destination named by config.Output.
// A nil config falls back to DefaultConfig.
func New(config *Config) (Logger, error) {
	return newZeroLogger(config, os.Stdout, os.Stderr)
}

// NewWithWriter builds a Logger that writes to w regardless of config.Output.
func NewWithWriter(config *Config, w io.Writer) (Logger, error) {
	return newZeroLogger(config, w, w)
}

// NewComponentLogger builds a Logger tagged with a component field.
func NewComponentLogger(component string, config *Config) (Logger, error) {
	l, err := newZeroLogger(config, os.Stdout, os.Stderr)
	if err != nil {
		return nil, err
	}

	return &zeroLogger{logger: l.logger.With().Str("component", component).Logger()}, nil
}

func newZeroLogger(config *Config, stdout, stderr io.Writer) (*zeroLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	output := stderr
	if config.Output == "stdout" {
		output = stdout
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &zeroLogger{logger: zlog}, nil
}

func (l *zeroLogger) Trace() *zerolog.Event {
	return l.logger.Trace()
}

func (l *zeroLogger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

func (l *zeroLogger) Info() *zerolog.Event {
	return l.logger.Info()
}

func (l *zeroLogger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

func (l *zeroLogger) Error() *zerolog.Event {
	return l.logger.Error()
}

func (l *zeroLogger) Fatal() *zerolog.Event {
	return l.logger.Fatal()
}

func (l *zeroLogger) Panic() *zerolog.Event {
	return l.logger.Panic()
}

func (l *zeroLogger) With() zerolog.Context {
	return l.logger.With()
}

func (l *zeroLogger) WithComponent(component string) zerolog.Logger {
	return l.logger.With().Str("component", component).Logger()
}

func (l *zeroLogger) WithFields(fields map[string]interface{}) zerolog.Logger {
	ctx := l.logger.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}

	return ctx.Logger()
}

func (l *zeroLogger) SetLevel(level zerolog.Level) {
	l.logger = l.logger.Level(level)
}

func (l *zeroLogger) SetDebug(debug bool) {
	if debug {
		l.SetLevel(zerolog.DebugLevel)
	} else {
		l.SetLevel(zerolog.InfoLevel)
	}
}
