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

package vcard

import (
	"fmt"
	"strings"
)

// WarningCode identifies the kind of an advisory Warning.
type WarningCode string

const (
	// WarnLongLine marks a physical line longer than 75 characters.
	WarnLongLine WarningCode = "long-line"

	// WarnShortFold marks a continuation following a line that was folded
	// before reaching the maximum length.
	WarnShortFold WarningCode = "short-fold"

	// WarnEmptyFold marks a continuation line holding nothing but the
	// folding space.
	WarnEmptyFold WarningCode = "empty-fold"

	// WarnDefaultType marks a TYPE parameter spelling out the RFC default.
	WarnDefaultType WarningCode = "default-type"

	// WarnUnknownEmailType marks an EMAIL TYPE outside the registered set.
	WarnUnknownEmailType WarningCode = "unknown-email-type"

	// WarnMultipleNames marks an N component that looks like several names.
	WarnMultipleNames WarningCode = "multiple-names"
)

// Warning is a non-fatal conformance remark. Warnings never affect whether
// a record is valid.
//
// Location fields are filled in as far as they are known: Line by the record
// parser, File, FileLine and Card by the file-level driver.
type Warning struct {
	Code     WarningCode `json:"code" yaml:"code"`
	Message  string      `json:"message" yaml:"message"`
	Property string      `json:"property,omitempty" yaml:"property,omitempty"`
	Line     int         `json:"line,omitempty" yaml:"line,omitempty"`
	File     string      `json:"file,omitempty" yaml:"file,omitempty"`
	FileLine int         `json:"file_line,omitempty" yaml:"file_line,omitempty"`
	Card     int         `json:"card,omitempty" yaml:"card,omitempty"`
}

// String renders the warning as "code: message" followed by whatever
// location is known.
func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(string(w.Code))
	b.WriteString(": ")
	b.WriteString(w.Message)

	var loc []string
	if w.File != "" {
		loc = append(loc, w.File)
	}
	if w.FileLine > 0 {
		loc = append(loc, fmt.Sprintf("line %d", w.FileLine))
	} else if w.Line > 0 {
		loc = append(loc, fmt.Sprintf("vCard line %d", w.Line))
	}
	if w.Property != "" {
		loc = append(loc, w.Property)
	}
	if len(loc) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(loc, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Warnings collects advisory warnings during a parse. The zero value is
// ready to use. A nil *Warnings discards everything added to it.
type Warnings struct {
	list []Warning
}

// Add records a warning.
func (w *Warnings) Add(code WarningCode, format string, args ...any) {
	if w == nil {
		return
	}
	w.list = append(w.list, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// addAt records a warning tied to a record-relative line.
func (w *Warnings) addAt(line int, code WarningCode, format string, args ...any) {
	if w == nil {
		return
	}
	w.list = append(w.list, Warning{Code: code, Message: fmt.Sprintf(format, args...), Line: line})
}

// List returns the collected warnings in the order they were added.
func (w *Warnings) List() []Warning {
	if w == nil {
		return nil
	}
	return w.list
}

// locate fills in Line and Property on every warning added since mark.
func (w *Warnings) locate(mark, line int, property string) {
	if w == nil {
		return
	}
	for i := mark; i < len(w.list); i++ {
		if w.list[i].Line == 0 {
			w.list[i].Line = line
		}
		if w.list[i].Property == "" {
			w.list[i].Property = property
		}
	}
}

// mark returns the current length, for use with locate.
func (w *Warnings) mark() int {
	if w == nil {
		return 0
	}
	return len(w.list)
}
