/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package logging builds the command-line logger and routes advisory
// warnings to it.
package logging

import (
	golog "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/vcard"
)

// New returns a logger writing to w at the given level ("debug", "info",
// "warn" or "error") in "console" or "json" encoding.
func New(level, format string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, vcerrors.Newf(vcerrors.Usage, "Invalid log level: %q", level)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, vcerrors.Newf(vcerrors.Usage, "Invalid log format: %q", format)
	}

	return zap.New(zapcore.NewCore(enc, w, lvl)), nil
}

// SetLibraryLevel sets the level of the parser and driver subsystem
// loggers.
func SetLibraryLevel(level string) error {
	lvl, err := golog.LevelFromString(level)
	if err != nil {
		return vcerrors.Newf(vcerrors.Usage, "Invalid log level: %q", level)
	}
	golog.SetAllLoggers(lvl)
	return nil
}

// WarningSink logs advisory warnings at Warn level.
type WarningSink struct {
	log *zap.Logger
}

// NewWarningSink returns a sink writing to log.
func NewWarningSink(log *zap.Logger) *WarningSink {
	return &WarningSink{log: log}
}

// Emit logs one warning with its location as structured fields.
func (s *WarningSink) Emit(w vcard.Warning) {
	fields := []zap.Field{zap.String("code", string(w.Code))}
	if w.File != "" {
		fields = append(fields, zap.String("file", w.File))
	}
	if w.FileLine > 0 {
		fields = append(fields, zap.Int("line", w.FileLine))
	}
	if w.Card > 0 {
		fields = append(fields, zap.Int("card", w.Card))
	}
	if w.Property != "" {
		fields = append(fields, zap.String("property", w.Property))
	}
	s.log.Warn(w.Message, fields...)
}
