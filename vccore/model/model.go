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

// Package model defines the contracts that every vcardlint domain type MUST
// implement: vCard properties, records, and anything else that is parsed
// from untrusted text and later serialized or logged.
//
// Every domain type SHOULD implement the Model interface or its constituent
// parts (Validatable, Serializable, Loggable, Identifiable, ZeroCheckable).
// The contracts prioritize data integrity and privacy. Validation ensures that
// an invalid vCard structure cannot be serialized. Loggable protects contact
// data (names, addresses, phone numbers) from accidental exposure in logs,
// since every vCard is personally identifiable information by construction.
//
// Unless explicitly documented otherwise, implementations are immutable after
// construction and therefore safe for concurrent reads.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all fundamental contracts required
// for vcardlint domain types. Any type implementing Model gains support for
// validation, JSON and YAML round trips, redacted logging, type
// identification and zero-value detection, and can be used with the generic
// helpers of this package (ValidateAll, SafeString, ToJSON, ToYAML, FromJSON,
// FromYAML).
//
//	var _ model.Model = (*vcard.Property)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST be deterministic and free of side effects: no I/O, no
// logging, no mutation of the receiver. It returns nil if and only if the
// instance satisfies every invariant. Failures SHOULD be *errors.Error values
// from vccore/errors so callers can classify them by Kind.
//
// Callers SHOULD invoke Validate immediately after unmarshaling and before
// serializing, which is exactly what ToJSON, ToYAML, FromJSON and FromYAML do.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants.
	Validate() error
}

// Serializable defines the contract for types with JSON and YAML round-trip
// support. Unmarshal implementations MUST reject input that would produce an
// invalid instance, so a successfully decoded value is always valid.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that may appear in log output.
type Loggable interface {
	// Redacted returns a representation safe for production logs. It MUST
	// NOT include property values or parameter values; names, counts and
	// structural facts are fine.
	Redacted() string

	// String returns the full representation, which MAY include contact
	// data. Use only for explicit user-facing output such as --verbose.
	String() string
}

// Identifiable defines the contract for types that report a stable type
// name, used in error wrapping and structured logs.
type Identifiable interface {
	// TypeName returns the canonical name of the type, such as "Property".
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// hold no data at all.
type ZeroCheckable interface {
	// IsZero reports whether the instance is the zero value.
	IsZero() bool
}
