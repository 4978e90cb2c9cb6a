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

package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the structured logger passed to every fwlog component.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	Fatal() *zerolog.Event
	Panic() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	WithFields(fields map[string]interface{}) zerolog.Logger
	SetLevel(level zerolog.Level)
	SetDebug(debug bool)
}

// Nop returns a Logger that discards everything. Components use it when no logger is injected.
func Nop() Logger {
	return &nopLogger{nop: zerolog.New(io.Discard).Level(zerolog.Disabled)}
}

// NewTestLogger creates a no-op logger for tests.
func NewTestLogger() Logger {
	return Nop()
}

type nopLogger struct {
	nop zerolog.Logger
}

func (t *nopLogger) Trace() *zerolog.Event { return t.nop.Trace() }
func (t *nopLogger) Debug() *zerolog.Event { return t.nop.Debug() }
func (t *nopLogger) Info() *zerolog.Event  { return t.nop.Info() }
func (t *nopLogger) Warn() *zerolog.Event  { return t.nop.Warn() }
func (t *nopLogger) Error() *zerolog.Event { return t.nop.Error() }
func (t *nopLogger) Fatal() *zerolog.Event { return t.nop.Fatal() }
func (t *nopLogger) Panic() *zerolog.Event { return t.nop.Panic() }
func (t *nopLogger) With() zerolog.Context { return t.nop.With() }
func (t *nopLogger) WithComponent(component string) zerolog.Logger {
	return t.nop.With().Str("component", component).Logger()
}
func (t *nopLogger) WithFields(fields map[string]interface{}) zerolog.Logger {
	return t.nop.With().Fields(fields).Logger()
}
func (t *nopLogger) SetLevel(level zerolog.Level) { t.nop = t.nop.Level(level) }
func (*nopLogger) SetDebug(_ bool)                { /* no-op */ }
