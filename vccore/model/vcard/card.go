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

// Package vcard parses and validates vCard 3.0 records (RFC 2426).
//
// A record goes through four stages, each exported so callers can test or
// reuse them in isolation:
//
//  1. Unfold joins folded physical lines into logical lines.
//  2. ExtractGroup checks and strips the record's optional group label.
//  3. ParseProperty decomposes each logical line into name, parameters and
//     values, checking every token against the RFC character classes.
//  4. The rule registered for the property name checks cardinality and
//     value grammar. Names without a rule pass through unchecked.
//
// Parse runs all four and then checks that the mandatory properties are
// present. Fatal problems are returned as *errors.Error values from
// vccore/errors; advisory problems are returned separately as Warnings and
// never affect validity.
package vcard

import (
	"encoding/json"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model"
	"dirpx.dev/vcardlint/vccore/model/syntax"
	"gopkg.in/yaml.v3"
)

var log = logging.Logger("vcard")

// Card is one parsed and validated vCard record.
type Card struct {
	group      string
	properties []*Property
	text       string
}

var _ model.Model = (*Card)(nil)

// Parse parses and validates the text of a single record, BEGIN through
// END. Errors carry the record-relative line under "vCard line" when one
// applies.
func Parse(text string) (*Card, []Warning, error) {
	var w Warnings
	c, err := parse(text, &w)
	if err != nil {
		return nil, w.List(), err
	}
	log.Debugw("parsed vCard", "card", c.Redacted(), "warnings", len(w.List()))
	return c, w.List(), nil
}

func parse(text string, w *Warnings) (*Card, error) {
	if text == "" {
		return nil, vcerrors.New(vcerrors.ItemCount, "Empty vCard").With(vcerrors.KeyCardLine, 1)
	}

	lines, err := Unfold(syntax.SplitLines(text), w)
	if err != nil {
		return nil, err
	}
	group, lines, err := ExtractGroup(lines)
	if err != nil {
		return nil, err
	}

	c := &Card{group: group, text: text}
	for _, line := range lines {
		if line.Text == syntax.LineTerminator {
			continue
		}
		mark := w.mark()
		p, err := ParseProperty(line.Text, w)
		if err != nil {
			return nil, vcerrors.Annotate(err, vcerrors.KeyCardLine, line.Number)
		}
		w.locate(mark, line.Number, p.Name())
		c.properties = append(c.properties, p)
	}

	if err := c.checkMandatory(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Card) checkMandatory() error {
	for _, name := range MandatoryNames {
		if len(c.Get(name)) == 0 {
			return vcerrors.Newf(vcerrors.ItemCount, "Missing mandatory property: %s", name).
				With(vcerrors.KeyProperty, name)
		}
	}
	return nil
}

// Group returns the group label shared by every line, or "".
func (c *Card) Group() string { return c.group }

// Text returns the original record text.
func (c *Card) Text() string { return c.text }

// Properties returns the properties in source order, duplicates included.
func (c *Card) Properties() []*Property {
	return append([]*Property(nil), c.properties...)
}

// Get returns every property with the given name, in source order.
func (c *Card) Get(name string) []*Property {
	name = strings.ToUpper(name)
	var out []*Property
	for _, p := range c.properties {
		if p.name == name {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks every property and the mandatory set. All property
// failures are reported, not only the first.
func (c *Card) Validate() error {
	if c.text == "" {
		return vcerrors.New(vcerrors.ItemCount, "Empty vCard")
	}
	if err := model.ValidateAll(c.properties); err != nil {
		return err
	}
	return c.checkMandatory()
}

// TypeName implements model.Identifiable.
func (c *Card) TypeName() string { return "Card" }

// IsZero implements model.ZeroCheckable.
func (c *Card) IsZero() bool {
	return c == nil || (c.group == "" && len(c.properties) == 0 && c.text == "")
}

// String returns the original record text.
func (c *Card) String() string { return c.text }

// Redacted lists the property names without any values.
func (c *Card) Redacted() string {
	names := make([]string, len(c.properties))
	for i, p := range c.properties {
		names[i] = p.name
	}
	return fmt.Sprintf("Card{Group:%q, Properties:%d, Names:[%s]}", c.group, len(c.properties), strings.Join(names, " "))
}

type cardDoc struct {
	Group      string      `json:"group,omitempty" yaml:"group,omitempty"`
	Properties []*Property `json:"properties" yaml:"properties"`
	Text       string      `json:"text" yaml:"text"`
}

func (c *Card) doc() cardDoc {
	return cardDoc{Group: c.group, Properties: c.properties, Text: c.text}
}

// fromText replaces c with the result of parsing text. The structured
// fields of a serialized card are derived data; the text is authoritative.
func (c *Card) fromText(text string) error {
	parsed, _, err := Parse(text)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c *Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.doc())
}

// UnmarshalJSON implements json.Unmarshaler by re-parsing the "text" field.
func (c *Card) UnmarshalJSON(data []byte) error {
	var d struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return vcerrors.Newf(vcerrors.Value, "Cannot unmarshal vCard: %v", err)
	}
	return c.fromText(d.Text)
}

// MarshalYAML implements yaml.Marshaler.
func (c *Card) MarshalYAML() (any, error) {
	return c.doc(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler by re-parsing the "text" field.
func (c *Card) UnmarshalYAML(node *yaml.Node) error {
	var d struct {
		Text string `yaml:"text"`
	}
	if err := node.Decode(&d); err != nil {
		return vcerrors.Newf(vcerrors.Value, "Cannot unmarshal vCard: %v", err)
	}
	return c.fromText(d.Text)
}
