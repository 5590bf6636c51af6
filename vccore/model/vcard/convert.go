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
	"strings"

	govcard "github.com/emersion/go-vcard"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/syntax"
)

// ToVCard converts a validated record into a go-vcard Card, the structure
// CardDAV servers and clients in the go-vcard ecosystem work with.
//
// BEGIN and END are dropped since go-vcard's encoder writes them itself.
// Sub-values are unescaped and joined with commas, and components are
// joined with semicolons. go-vcard splits structured values such as N and
// ADR on every semicolon, so it cannot carry an escaped semicolon inside
// one component; such a record yields a Value error naming the property.
func (c *Card) ToVCard() (govcard.Card, error) {
	out := make(govcard.Card)
	for _, p := range c.properties {
		if p.name == "BEGIN" || p.name == "END" {
			continue
		}
		structured := len(p.values) > 1
		components := make([]string, len(p.values))
		for i, component := range p.values {
			subs := make([]string, len(component))
			for j, s := range component {
				// Components hold no unescaped semicolons.
				if structured && strings.Contains(s, ";") {
					return nil, vcerrors.Newf(vcerrors.Value, "Cannot convert escaped semicolon in structured value: %s", s).
						With(vcerrors.KeyProperty, p.name)
				}
				subs[j] = unescapeText(s)
			}
			components[i] = strings.Join(subs, ",")
		}

		f := &govcard.Field{
			Value: strings.Join(components, ";"),
			Group: c.group,
		}
		if len(p.params) > 0 {
			f.Params = make(govcard.Params, len(p.params))
			for _, name := range p.params.Names() {
				f.Params[name] = append([]string(nil), p.params[name]...)
			}
		}
		out.Add(p.name, f)
	}
	return out, nil
}

// unescapeText resolves the text-value escapes. A backslash before any
// other character, possible in properties without a text rule, is kept.
func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch r := rune(s[i]); {
		case r == 'n' || r == 'N':
			b.WriteByte('\n')
		case syntax.IsEscapable(r):
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
