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
	"sort"
	"strings"
)

// Params maps an upper-case parameter name to its set of values.
//
// Each value list is kept sorted and free of duplicates, so two parameter
// lists that differ only in order or repetition compare equal:
//
//	TYPE=work;TYPE=work,voice  ==  TYPE=voice,work
//
// Values keep their original case; comparisons against enumerated
// vocabularies are case-insensitive (see Is and HasOnly).
type Params map[string][]string

// Merge adds values to the set stored under the upper-cased name, creating
// it if needed. Repeated occurrences of one parameter on a property line are
// merged this way.
func (p Params) Merge(name string, values ...string) {
	key := strings.ToUpper(name)
	set := p[key]
	for _, v := range values {
		i := sort.SearchStrings(set, v)
		if i < len(set) && set[i] == v {
			continue
		}
		set = append(set, "")
		copy(set[i+1:], set[i:])
		set[i] = v
	}
	p[key] = set
}

// Names returns the parameter names in sorted order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the parameter is present. name is case-insensitive.
func (p Params) Has(name string) bool {
	_, ok := p[strings.ToUpper(name)]
	return ok
}

// Values returns the value set of the parameter, or nil.
func (p Params) Values(name string) []string {
	return p[strings.ToUpper(name)]
}

// Is reports whether the parameter's value set equals want, ignoring case.
func (p Params) Is(name string, want ...string) bool {
	return sameFold(p.Values(name), want)
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// String renders the parameters as they appear on a property line, without
// the leading semicolon: "TYPE=cell,work;X-A=b".
func (p Params) String() string {
	parts := make([]string, 0, len(p))
	for _, name := range p.Names() {
		parts = append(parts, name+"="+strings.Join(p[name], ","))
	}
	return strings.Join(parts, ";")
}

// sameFold reports whether two value lists hold the same set of values when
// compared case-insensitively.
func sameFold(got, want []string) bool {
	a := foldSet(got)
	b := foldSet(want)
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}

func foldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
