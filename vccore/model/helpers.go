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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns all validation errors
// encountered, rather than stopping at the first one. Each failure is wrapped
// with the model's zero-based position and its TypeName, and the failures are
// combined with an rxmerr.Collector. Empty slices are valid.
//
// The wrapped errors keep their chain, so errors.As still finds the
// underlying *errors.Error of the first failure:
//
//	if err := ValidateAll(card.Properties()); err != nil {
//	    kind, _ := vcerrors.KindOf(err)
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// SafeString returns Redacted() unless unsafe is true, in which case it
// returns String(). Production logging MUST pass false.
func SafeString[T Model](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and marshals it to JSON. Invalid models are never
// marshaled.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and marshals it to YAML. Invalid models are never
// marshaled.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON unmarshals data into m and validates the result. On error the
// state of *m is undefined.
func FromJSON[T Model](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", (*m).TypeName(), err)
	}
	return nil
}

// FromYAML unmarshals data into m and validates the result. On error the
// state of *m is undefined.
func FromYAML[T Model](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", (*m).TypeName(), err)
	}
	return nil
}
