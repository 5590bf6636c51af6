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

// Package validate drives record validation over whole files.
//
// A file is split into records on END:VCARD lines. Records are parsed in
// order and the first failing record stops the file. Errors are annotated
// with the file name, the file-relative line and the record ordinal on top
// of whatever the record parser attached.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	logging "github.com/ipfs/go-log/v2"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/syntax"
	"dirpx.dev/vcardlint/vccore/model/vcard"
)

var log = logging.Logger("validate")

// endRegexp matches the physical line that closes a record, with or without
// a group label.
var endRegexp = regexp.MustCompile(`(?i)^(?:[A-Za-z0-9-]+\.)?END:VCARD\r\n$`)

// Report is the outcome of validating one file.
type Report struct {
	// Source is the file name as given, "-" for standard input.
	Source string `json:"source" yaml:"source"`

	// Records counts the records that validated.
	Records int `json:"records" yaml:"records"`

	// Cards holds the validated records in file order.
	Cards []*vcard.Card `json:"-" yaml:"-"`

	// Warnings holds advisory warnings from every record that was parsed,
	// the failing one included.
	Warnings []vcard.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Err is the first fatal error, or nil.
	Err error `json:"-" yaml:"-"`

	// Leftover counts trailing lines after the last END:VCARD. It is only
	// set when Err is nil.
	Leftover int `json:"leftover,omitempty" yaml:"leftover,omitempty"`
}

// OK reports whether the whole file validated.
func (r *Report) OK() bool {
	return r.Err == nil && r.Leftover == 0
}

// Failure returns the error describing why the file did not validate, or
// nil. Trailing lines are reported as an item-count error.
func (r *Report) Failure() error {
	if r.Err != nil {
		return r.Err
	}
	if r.Leftover > 0 {
		return vcerrors.New(vcerrors.ItemCount, r.String()).
			With(vcerrors.KeyFile, r.Source)
	}
	return nil
}

// String returns "" for a valid file, the rendered error for a failed one,
// or a note on how many trailing lines were left unprocessed.
func (r *Report) String() string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case r.Leftover > 0:
		return fmt.Sprintf("Could not process entire %s - %d lines remain", r.Source, r.Leftover)
	default:
		return ""
	}
}

// Text validates the full contents of a file. name is used for diagnostics
// only.
func Text(name, text string) *Report {
	r := &Report{Source: name}
	if text == "" {
		r.Err = vcerrors.New(vcerrors.ItemCount, "Empty vCard").
			With(vcerrors.KeyCardLine, 1).
			With(vcerrors.KeyFile, name).
			With(vcerrors.KeyFileLine, 1)
		return r
	}

	lines := syntax.SplitLines(text)
	start := 0
	var chunk strings.Builder
	for i, line := range lines {
		chunk.WriteString(line)
		if !endRegexp.MatchString(line) {
			continue
		}

		ordinal := r.Records + 1
		card, warnings, err := vcard.Parse(chunk.String())
		for _, w := range warnings {
			w.File = name
			w.Card = ordinal
			if w.Line > 0 {
				w.FileLine = start + w.Line
			}
			r.Warnings = append(r.Warnings, w)
		}
		if err != nil {
			fileLine := i + 1
			if v, ok := vcerrors.ContextOf(err).Get(vcerrors.KeyCardLine); ok {
				if n, ok := v.(int); ok {
					fileLine = start + n
				}
			}
			vcerrors.Annotate(err, vcerrors.KeyFile, name)
			vcerrors.Annotate(err, vcerrors.KeyFileLine, fileLine)
			vcerrors.Annotate(err, vcerrors.KeyCard, ordinal)
			r.Err = err
			log.Debugw("record failed", "file", name, "card", ordinal, "line", fileLine)
			return r
		}

		r.Cards = append(r.Cards, card)
		r.Records++
		chunk.Reset()
		start = i + 1
	}

	if chunk.Len() > 0 {
		r.Leftover = len(lines) - start
	}
	log.Debugw("file validated", "file", name, "records", r.Records, "leftover", r.Leftover, "warnings", len(r.Warnings))
	return r
}
