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

// Package errors provides the error taxonomy shared by every vcardlint
// package.
//
// All fatal conditions raised while reading, unfolding, decomposing or
// validating vCard text are reported as a single *Error value. An *Error
// carries three things:
//
//   - a Kind, classifying the failure (line format, naming, item count,
//     value, or usage),
//   - a human-readable Message with a stable wording,
//   - and an ordered Context of diagnostic key/value pairs (file name,
//     file-relative line, record-relative line, offending property line).
//
// Context is enriched as the error unwinds outward. Lower layers create the
// error with whatever they know (usually nothing more than the offending
// string), and each boundary above adds its own location data with Annotate
// instead of wrapping or re-creating the error:
//
//	prop, err := decompose(line)
//	if err != nil {
//	    return nil, errors.Annotate(err, errors.KeyCardLine, line.Number)
//	}
//
// The package deliberately shadows the standard library name. Import it
// with an alias:
//
//	import vcerrors "dirpx.dev/vcardlint/vccore/errors"
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Stable context keys. Reports and tests rely on these spellings.
const (
	KeyFile          = "File"
	KeyFileLine      = "File line"
	KeyCard          = "vCard"
	KeyCardLine      = "vCard line"
	KeyPropertyLine  = "Property line"
	KeyProperty      = "Property"
	KeyString        = "String"
	KeyParsedVersion = "Parsed version"
)

// Field is a single diagnostic key/value pair attached to an *Error.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// Context is an ordered list of diagnostic fields.
//
// Order is insertion order, which keeps rendered errors deterministic and
// reads naturally (innermost facts first, outermost location last). Setting
// a key that already exists replaces its value in place.
type Context []Field

// Set stores value under key, replacing an existing entry in place.
func (c *Context) Set(key string, value any) {
	for i := range *c {
		if (*c)[i].Key == key {
			(*c)[i].Value = value
			return
		}
	}
	*c = append(*c, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (c Context) Get(key string) (any, bool) {
	for _, f := range c {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (c Context) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Error is the structured error returned by all vcardlint packages.
//
// Kind classifies the failure, Message describes it, and Context carries
// the diagnostic location data gathered while the error propagated. Error
// values are created by the layer that detects the problem and then mutated
// in place by Annotate at each boundary. They are not safe for concurrent
// mutation, which is never needed: an error belongs to exactly one
// validation call.
type Error struct {
	// Kind classifies the failure.
	Kind Kind `json:"kind" yaml:"kind"`

	// Message is a short, stable description of the violated rule,
	// optionally followed by ": <offending text>".
	Message string `json:"message" yaml:"message"`

	// Context holds the diagnostic fields added while the error unwound.
	Context Context `json:"context,omitempty" yaml:"context,omitempty"`
}

// New returns an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf returns an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// With sets a context field and returns the receiver for chaining.
func (e *Error) With(key string, value any) *Error {
	e.Context.Set(key, value)
	return e
}

// Error implements the error interface.
//
// The format is the message followed by one "Key: value" line per context
// field, in insertion order:
//
//	Invalid value: 2.1 (expected "3.0")
//	Property: VERSION
//	Property line: VERSION:2.1
//	vCard line: 2
//	File: contacts.vcf
//	File line: 2
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, f := range e.Context {
		b.WriteByte('\n')
		b.WriteString(f.Key)
		b.WriteString(": ")
		fmt.Fprint(&b, f.Value)
	}
	return b.String()
}

// Annotate attaches a context field to the *Error found in err's chain and
// returns err unchanged. Errors that are not *Error pass through untouched,
// so Annotate is safe to call on any error returned from a lower layer.
func Annotate(err error, key string, value any) error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) {
		e.Context.Set(key, value)
	}
	return err
}

// AnnotateDefault behaves like Annotate but keeps an existing value for key.
// It is used by outer layers that only know a coarser location than the one
// an inner layer may already have recorded.
func AnnotateDefault(err error, key string, value any) error {
	if err == nil {
		return nil
	}
	var e *Error
	if stderrors.As(err, &e) && !e.Context.Has(key) {
		e.Context.Set(key, value)
	}
	return err
}

// KindOf returns the Kind of the *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err's chain holds an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// ContextOf returns the Context of the *Error in err's chain.
func ContextOf(err error) Context {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Context
	}
	return nil
}
