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
	"encoding/json"
	"fmt"
	"strings"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model"
	"dirpx.dev/vcardlint/vccore/model/syntax"
	"gopkg.in/yaml.v3"
)

// Property is one validated content line of a vCard.
//
// Name is upper-cased. Values holds the semicolon-separated components in
// order, each a list of comma-separated sub-values, with escapes left as
// they appear in the source. Params holds the merged parameter sets.
//
// A Property is immutable once constructed; accessors return copies.
type Property struct {
	name   string
	params Params
	values [][]string
}

var _ model.Model = (*Property)(nil)

// ParseProperty decomposes one group-stripped logical line into a Property
// and validates it against the rule registered for its name. The line may
// still carry its CRLF terminator.
//
// The first unescaped colon separates name and parameters from the value;
// further colons belong to the value. Errors carry the offending line under
// the "Property line" context key.
func ParseProperty(line string, w *Warnings) (*Property, error) {
	p, err := decompose(line, w)
	if err != nil {
		return nil, vcerrors.Annotate(err, vcerrors.KeyPropertyLine, strings.TrimSuffix(line, syntax.LineTerminator))
	}
	return p, nil
}

func decompose(line string, w *Warnings) (*Property, error) {
	body := strings.TrimSuffix(line, syntax.LineTerminator)

	head, valueText, ok := syntax.SplitFirstUnescaped(body, ":")
	if !ok {
		return nil, vcerrors.Newf(vcerrors.ItemCount, "Missing value string: %s", body)
	}

	nameAndParams := syntax.SplitUnescaped(head, ";")
	name := strings.ToUpper(nameAndParams[0])
	if !IsKnownName(name) && !syntax.IsXName(name) {
		return nil, vcerrors.Newf(vcerrors.Naming, "Invalid property name: %s", nameAndParams[0])
	}

	values, err := parseValues(valueText)
	if err != nil {
		return nil, err
	}

	params := Params{}
	for _, spec := range nameAndParams[1:] {
		if err := parseParam(params, spec); err != nil {
			return nil, err
		}
	}

	p := &Property{name: name, params: params, values: values}
	if err := dispatch(p, w); err != nil {
		return nil, err
	}
	return p, nil
}

func parseValues(text string) ([][]string, error) {
	components := syntax.SplitUnescaped(text, ";")
	values := make([][]string, 0, len(components))
	for _, c := range components {
		subs := syntax.SplitUnescaped(c, ",")
		for _, s := range subs {
			if err := checkSubValue(s); err != nil {
				return nil, err
			}
		}
		values = append(values, subs)
	}
	return values, nil
}

func checkSubValue(s string) error {
	if !syntax.All(s, syntax.IsValueChar) {
		return vcerrors.Newf(vcerrors.Value, "Invalid sub-value: %s", s)
	}
	return nil
}

func parseParam(params Params, spec string) error {
	name, valueText, ok := syntax.SplitFirstUnescaped(spec, "=")
	if !ok {
		return vcerrors.Newf(vcerrors.ItemCount, "Missing parameter value: %s", spec)
	}
	values := syntax.SplitUnescaped(valueText, ",")
	for _, v := range values {
		if err := checkParamValue(v); err != nil {
			return err
		}
	}
	if !syntax.IsID(name) {
		return vcerrors.Newf(vcerrors.Naming, "Invalid parameter name: %s", name)
	}
	params.Merge(name, values...)
	return nil
}

// checkParamValue accepts a non-empty run of safe characters or a
// quoted-string.
func checkParamValue(v string) error {
	if (v != "" && syntax.IsPText(v)) || syntax.IsQuoted(v) {
		return nil
	}
	return vcerrors.Newf(vcerrors.Value, "Invalid value: %s", v)
}

// NewProperty builds a Property from already structured parts and applies
// the same checks as ParseProperty: the name, every parameter name and
// value, every sub-value, and the rule registered for the name.
func NewProperty(name string, params Params, values [][]string, w *Warnings) (*Property, error) {
	p := &Property{
		name:   strings.ToUpper(name),
		params: Params{},
		values: cloneValues(values),
	}
	for _, n := range params.Names() {
		p.params.Merge(n, params[n]...)
	}
	if err := p.check(w); err != nil {
		return nil, vcerrors.Annotate(err, vcerrors.KeyPropertyLine, p.String())
	}
	return p, nil
}

func (p *Property) check(w *Warnings) error {
	if p.name == "" {
		return vcerrors.New(vcerrors.Naming, "Invalid property name: (empty)")
	}
	if !IsKnownName(p.name) && !syntax.IsXName(p.name) {
		return vcerrors.Newf(vcerrors.Naming, "Invalid property name: %s", p.name)
	}
	if len(p.values) == 0 {
		return vcerrors.Newf(vcerrors.ItemCount, "Missing value string: %s", p.name)
	}
	for _, component := range p.values {
		if len(component) == 0 {
			return vcerrors.Newf(vcerrors.ItemCount, "Invalid sub-value count: 0 (expected at least 1)")
		}
		for _, s := range component {
			if err := checkSubValue(s); err != nil {
				return err
			}
		}
	}
	for _, n := range p.params.Names() {
		if !syntax.IsID(n) {
			return vcerrors.Newf(vcerrors.Naming, "Invalid parameter name: %s", n)
		}
		if len(p.params[n]) == 0 {
			return vcerrors.Newf(vcerrors.ItemCount, "Missing parameter value: %s", n)
		}
		for _, v := range p.params[n] {
			if err := checkParamValue(v); err != nil {
				return err
			}
		}
	}
	return dispatch(p, w)
}

// Name returns the upper-cased property name.
func (p *Property) Name() string { return p.name }

// Params returns a copy of the parameters.
func (p *Property) Params() Params { return p.params.Clone() }

// Values returns a copy of the value components.
func (p *Property) Values() [][]string { return cloneValues(p.values) }

// Value returns the first sub-value of the first component, which is the
// whole value for single-valued properties such as FN or VERSION.
func (p *Property) Value() string {
	if len(p.values) == 0 || len(p.values[0]) == 0 {
		return ""
	}
	return p.values[0][0]
}

// Validate re-checks the property. Warnings are discarded.
func (p *Property) Validate() error {
	return p.check(nil)
}

// TypeName implements model.Identifiable.
func (p *Property) TypeName() string { return "Property" }

// IsZero implements model.ZeroCheckable.
func (p *Property) IsZero() bool {
	return p == nil || (p.name == "" && len(p.params) == 0 && len(p.values) == 0)
}

// String returns the property as a content line without terminator, such
// as "TEL;TYPE=cell:+1-555-0100". It includes contact data.
func (p *Property) String() string {
	var b strings.Builder
	b.WriteString(p.name)
	if len(p.params) > 0 {
		b.WriteByte(';')
		b.WriteString(p.params.String())
	}
	b.WriteByte(':')
	for i, component := range p.values {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strings.Join(component, ","))
	}
	return b.String()
}

// Redacted returns the property's shape without any values, such as
// "Property{Name:TEL, Params:[TYPE], Values:1x1}".
func (p *Property) Redacted() string {
	shape := make([]string, len(p.values))
	for i, c := range p.values {
		shape[i] = fmt.Sprint(len(c))
	}
	return fmt.Sprintf("Property{Name:%s, Params:%v, Values:%dx[%s]}",
		p.name, p.params.Names(), len(p.values), strings.Join(shape, ","))
}

type propertyDoc struct {
	Name   string     `json:"name" yaml:"name"`
	Params Params     `json:"params,omitempty" yaml:"params,omitempty"`
	Values [][]string `json:"values" yaml:"values"`
}

func (p *Property) doc() propertyDoc {
	return propertyDoc{Name: p.name, Params: p.params.Clone(), Values: cloneValues(p.values)}
}

func (p *Property) fromDoc(d propertyDoc) error {
	parsed, err := NewProperty(d.Name, d.Params, d.Values, nil)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.doc())
}

// UnmarshalJSON implements json.Unmarshaler. The decoded property is fully
// validated.
func (p *Property) UnmarshalJSON(data []byte) error {
	var d propertyDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return vcerrors.Newf(vcerrors.Value, "Cannot unmarshal property: %v", err)
	}
	return p.fromDoc(d)
}

// MarshalYAML implements yaml.Marshaler.
func (p *Property) MarshalYAML() (any, error) {
	return p.doc(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The decoded property is fully
// validated.
func (p *Property) UnmarshalYAML(node *yaml.Node) error {
	var d propertyDoc
	if err := node.Decode(&d); err != nil {
		return vcerrors.Newf(vcerrors.Value, "Cannot unmarshal property: %v", err)
	}
	return p.fromDoc(d)
}

func cloneValues(values [][]string) [][]string {
	if values == nil {
		return nil
	}
	out := make([][]string, len(values))
	for i, c := range values {
		out[i] = append([]string(nil), c...)
	}
	return out
}
