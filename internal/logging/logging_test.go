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

package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/vcardlint/internal/logging"
	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/vcard"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("info", "json", zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown", zap.String("file", "a.vcf"))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "a.vcf", entry["file"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("warn", "console", zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("careful")
	assert.Contains(t, buf.String(), "careful")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Errors(t *testing.T) {
	var buf bytes.Buffer
	_, err := logging.New("loud", "json", zapcore.AddSync(&buf))
	assert.True(t, vcerrors.IsKind(err, vcerrors.Usage))

	_, err = logging.New("info", "xml", zapcore.AddSync(&buf))
	assert.True(t, vcerrors.IsKind(err, vcerrors.Usage))
}

func TestSetLibraryLevel(t *testing.T) {
	assert.NoError(t, logging.SetLibraryLevel("debug"))
	assert.NoError(t, logging.SetLibraryLevel("warn"))
	assert.True(t, vcerrors.IsKind(logging.SetLibraryLevel("loud"), vcerrors.Usage))
}

func TestWarningSink(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := logging.NewWarningSink(zap.New(core))

	sink.Emit(vcard.Warning{
		Code:     vcard.WarnDefaultType,
		Message:  "Default TYPE value: voice",
		Property: "TEL",
		Line:     4,
		File:     "a.vcf",
		FileLine: 9,
		Card:     2,
	})
	sink.Emit(vcard.Warning{Code: vcard.WarnLongLine, Message: "Long line in vCard at line 1"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Default TYPE value: voice", entries[0].Message)
	assert.Equal(t, map[string]any{
		"code":     "default-type",
		"file":     "a.vcf",
		"line":     int64(9),
		"card":     int64(2),
		"property": "TEL",
	}, entries[0].ContextMap())
	assert.Equal(t, map[string]any{"code": "long-line"}, entries[1].ContextMap())
}
