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

package errors

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind classifies an *Error.
//
// Every kind is fatal to the record or file being processed; none is
// retried. Advisory conditions are not errors at all and travel on the
// separate warning channel of the vcard package.
type Kind int

const (
	// Usage reports an invalid invocation (bad arguments or configuration).
	// It is raised by the command-line layer and never originates mid-parse.
	Usage Kind = iota + 1

	// LineFormat reports a structural violation of line termination,
	// folding, or grouping rules.
	LineFormat

	// Naming reports an unknown or malformed property name, parameter name,
	// group label or X-name.
	Naming

	// ItemCount reports a wrong number of values, sub-values or parameters,
	// a missing required parameter, or a missing mandatory property.
	ItemCount

	// Value reports content that fails its grammar or semantic check
	// (date, URI, float, enumerated type, character class and so on).
	Value
)

// Canonical textual forms of Kind, used in reports and serialized output.
const (
	UsageStr      = "usage"
	LineFormatStr = "line-format"
	NamingStr     = "naming"
	ItemCountStr  = "item-count"
	ValueStr      = "value"
)

// String returns the canonical kebab-case name of the kind, or "unknown".
func (k Kind) String() string {
	switch k {
	case Usage:
		return UsageStr
	case LineFormat:
		return LineFormatStr
	case Naming:
		return NamingStr
	case ItemCount:
		return ItemCountStr
	case Value:
		return ValueStr
	default:
		return "unknown"
	}
}

// ParseKind converts a textual kind into a Kind. It accepts the canonical
// kebab-case names as well as snake_case and CamelCase variants, ignoring
// case.
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(s))
	switch norm {
	case "usage":
		return Usage, nil
	case "lineformat":
		return LineFormat, nil
	case "naming":
		return Naming, nil
	case "itemcount":
		return ItemCount, nil
	case "value":
		return Value, nil
	default:
		return 0, Newf(Usage, "Unknown error kind: %s", s)
	}
}

// Valid reports whether k is one of the defined constants.
func (k Kind) Valid() bool {
	return k >= Usage && k <= Value
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, Newf(Value, "Cannot marshal invalid error kind: %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Kinds are encoded as strings.
func (k Kind) MarshalJSON() ([]byte, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return Newf(Value, "Cannot unmarshal error kind: %v", err)
	}
	return k.UnmarshalText([]byte(s))
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return Newf(Value, "Cannot unmarshal error kind: %v", err)
	}
	return k.UnmarshalText([]byte(s))
}
