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

	"github.com/blang/semver/v4"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/syntax"
)

// MandatoryNames lists the properties every vCard 3.0 record must contain.
var MandatoryNames = []string{"BEGIN", "END", "FN", "N", "VERSION"}

// knownNames is the set of property names defined by RFC 2425 and RFC 2426.
var knownNames = map[string]struct{}{
	"BEGIN": {}, "END": {}, "FN": {}, "N": {}, "VERSION": {},
	"NAME": {}, "PROFILE": {}, "SOURCE": {},
	"ADR": {}, "AGENT": {}, "BDAY": {}, "CATEGORIES": {}, "CLASS": {},
	"EMAIL": {}, "GEO": {}, "KEY": {}, "LABEL": {}, "LOGO": {},
	"MAILER": {}, "NICKNAME": {}, "NOTE": {}, "ORG": {}, "PHOTO": {},
	"PRODID": {}, "REV": {}, "ROLE": {}, "SORT-STRING": {}, "SOUND": {},
	"TEL": {}, "TITLE": {}, "TZ": {}, "UID": {}, "URL": {},
}

// IsKnownName reports whether name (case-insensitive) is a property defined
// by the RFC. Extension names are not known names.
func IsKnownName(name string) bool {
	_, ok := knownNames[strings.ToUpper(name)]
	return ok
}

// Parameter vocabularies.
var (
	AddressTypes = []string{"dom", "intl", "postal", "parcel", "home", "work", "pref"}
	PhoneTypes   = []string{"home", "msg", "work", "pref", "voice", "fax", "cell", "video", "pager", "bbs", "modem", "car", "isdn", "pcs"}
	EmailTypes   = []string{"internet", "x400", "pref", "dom", "intl", "postal", "parcel", "home", "work"}

	defaultAddressTypes = []string{"intl", "postal", "parcel", "work"}
	defaultPhoneTypes   = []string{"voice"}
	defaultEmailTypes   = []string{"internet"}
)

// Rule validates a decomposed property and may add warnings.
type Rule func(p *Property, w *Warnings) error

// rules maps an upper-case property name to its validation rule. Names
// without an entry, such as NOTE, ORG or extension names, are accepted
// without structural checks by acceptAny.
var rules = map[string]Rule{
	"ADR":      adrRule,
	"AGENT":    agentRule,
	"BDAY":     singleNoParams(syntax.ValidateDate),
	"BEGIN":    beginEndRule,
	"EMAIL":    emailRule,
	"END":      beginEndRule,
	"FN":       singleText,
	"GEO":      geoRule,
	"LABEL":    labelRule,
	"LOGO":     photoRule,
	"MAILER":   singleText,
	"N":        nRule,
	"NAME":     singleNoParams(syntax.ValidateText),
	"NICKNAME": nicknameRule,
	"PHOTO":    photoRule,
	"PROFILE":  profileRule,
	"ROLE":     singleText,
	"SOURCE":   sourceRule,
	"TEL":      telRule,
	"TITLE":    singleText,
	"TZ":       singleNoParams(syntax.ValidateTimeZone),
	"URL":      singleNoParams(syntax.ValidateURI),
	"VERSION":  versionRule,
}

// acceptAny is the rule for names that have no dedicated rule.
func acceptAny(*Property, *Warnings) error { return nil }

// LookupRule returns the rule for name and whether a dedicated one exists.
// When none does, the returned rule accepts every property.
func LookupRule(name string) (Rule, bool) {
	if r, ok := rules[strings.ToUpper(name)]; ok {
		return r, true
	}
	return acceptAny, false
}

// dispatch runs the property's rule and tags failures with its name.
func dispatch(p *Property, w *Warnings) error {
	rule, _ := LookupRule(p.name)
	if err := rule(p, w); err != nil {
		return vcerrors.Annotate(err, vcerrors.KeyProperty, p.name)
	}
	return nil
}

func expectNoParams(p *Property) error {
	if len(p.params) > 0 {
		return vcerrors.Newf(vcerrors.ItemCount, "Parameters not allowed: %s", strings.Join(p.params.Names(), ", "))
	}
	return nil
}

func expectParams(p *Property) error {
	if len(p.params) == 0 {
		return vcerrors.New(vcerrors.ItemCount, "Missing parameter")
	}
	return nil
}

func expectValueCount(p *Property, n int) error {
	if len(p.values) != n {
		return vcerrors.Newf(vcerrors.ItemCount, "Invalid value count: %d (expected %d)", len(p.values), n)
	}
	return nil
}

func expectSubValueCount(component []string, n int) error {
	if len(component) != n {
		return vcerrors.Newf(vcerrors.ItemCount, "Invalid sub-value count: %d (expected %d)", len(component), n)
	}
	return nil
}

// expectSingle checks for exactly one component with exactly one sub-value.
func expectSingle(p *Property) error {
	if err := expectValueCount(p, 1); err != nil {
		return err
	}
	return expectSubValueCount(p.values[0], 1)
}

func expectParamValues(p *Property, name string, want ...string) error {
	if !p.params.Is(name, want...) {
		return vcerrors.Newf(vcerrors.Value, "Invalid parameter value: %s=%s", name, strings.Join(p.params.Values(name), ","))
	}
	return nil
}

func expectNoConflict(p *Property, name, other string) error {
	if p.params.Has(other) {
		return vcerrors.Newf(vcerrors.Value, "Conflicting parameters: %s and %s", name, other)
	}
	return nil
}

func invalidParamName(name string) error {
	return vcerrors.Newf(vcerrors.Naming, "Invalid parameter name: %s", name)
}

// checkTextParam applies the text-param production: VALUE=ptext,
// LANGUAGE=<one language tag>, or an X-name with one parameter value.
func checkTextParam(p *Property, name string) error {
	values := p.params.Values(name)
	switch name {
	case "VALUE":
		return expectParamValues(p, name, "ptext")
	case "LANGUAGE":
		if len(values) != 1 {
			return vcerrors.Newf(vcerrors.Value, "Invalid parameter value: %s=%s", name, strings.Join(values, ","))
		}
		return syntax.ValidateLanguageTag(values[0])
	default:
		if err := syntax.ValidateXName(name); err != nil {
			return err
		}
		if len(values) != 1 {
			return vcerrors.Newf(vcerrors.Value, "Invalid parameter value: %s=%s", name, strings.Join(values, ","))
		}
		return syntax.ValidateParamValue(values[0])
	}
}

func checkTextParams(p *Property) error {
	for _, name := range p.params.Names() {
		if err := checkTextParam(p, name); err != nil {
			return err
		}
	}
	return nil
}

// checkTypes rejects TYPE values outside vocab, case-insensitively.
func checkTypes(p *Property, vocab []string) error {
	for _, v := range p.params.Values("TYPE") {
		if !containsFold(vocab, v) {
			return vcerrors.Newf(vcerrors.Value, "Invalid parameter value: TYPE=%s", v)
		}
	}
	return nil
}

func warnDefaultType(p *Property, w *Warnings, defaults []string) {
	if p.params.Is("TYPE", defaults...) {
		w.Add(WarnDefaultType, "Default TYPE value: %s", strings.Join(defaults, ","))
	}
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// singleText is the rule for FN, TITLE, ROLE and MAILER.
func singleText(p *Property, _ *Warnings) error {
	if err := checkTextParams(p); err != nil {
		return err
	}
	if err := expectSingle(p); err != nil {
		return err
	}
	return syntax.ValidateText(p.values[0][0])
}

// singleNoParams builds a rule for parameterless single-valued properties
// whose value must satisfy check.
func singleNoParams(check func(string) error) Rule {
	return func(p *Property, _ *Warnings) error {
		if err := expectNoParams(p); err != nil {
			return err
		}
		if err := expectSingle(p); err != nil {
			return err
		}
		return check(p.values[0][0])
	}
}

func expectVCardWord(value string) error {
	if !strings.EqualFold(value, "VCARD") {
		return vcerrors.Newf(vcerrors.Value, "Invalid value: %s (expected \"VCARD\")", value)
	}
	return nil
}

func beginEndRule(p *Property, w *Warnings) error {
	return singleNoParams(expectVCardWord)(p, w)
}

func profileRule(p *Property, w *Warnings) error {
	return singleNoParams(func(v string) error {
		if err := expectVCardWord(v); err != nil {
			return err
		}
		return syntax.ValidateText(v)
	})(p, w)
}

func versionRule(p *Property, _ *Warnings) error {
	if err := expectNoParams(p); err != nil {
		return err
	}
	if err := expectSingle(p); err != nil {
		return err
	}
	v := p.values[0][0]
	if v == "3.0" {
		return nil
	}
	err := vcerrors.Newf(vcerrors.Value, "Invalid value: %s (expected \"3.0\")", v)
	if parsed, perr := semver.ParseTolerant(v); perr == nil {
		err.With(vcerrors.KeyParsedVersion, parsed.String())
	}
	return err
}

func nRule(p *Property, w *Warnings) error {
	if err := checkTextParams(p); err != nil {
		return err
	}
	if err := expectValueCount(p, 5); err != nil {
		return err
	}
	var all strings.Builder
	for _, component := range p.values {
		for _, s := range component {
			all.WriteString(s)
		}
	}
	for _, component := range p.values {
		for _, name := range component {
			if err := syntax.ValidateText(name); err != nil {
				return err
			}
			if strings.Contains(name, " ") && all.String() != name {
				w.Add(WarnMultipleNames, "Possible multiple names in one value: %s", name)
			}
		}
	}
	return nil
}

func nicknameRule(p *Property, _ *Warnings) error {
	if err := checkTextParams(p); err != nil {
		return err
	}
	return expectValueCount(p, 1)
}

// checkAddressParams is shared by ADR and LABEL.
func checkAddressParams(p *Property, w *Warnings) error {
	for _, name := range p.params.Names() {
		if name != "TYPE" {
			if err := checkTextParam(p, name); err != nil {
				return err
			}
			continue
		}
		if err := checkTypes(p, AddressTypes); err != nil {
			return err
		}
		warnDefaultType(p, w, defaultAddressTypes)
	}
	return nil
}

func adrRule(p *Property, w *Warnings) error {
	if err := expectValueCount(p, 7); err != nil {
		return err
	}
	return checkAddressParams(p, w)
}

func labelRule(p *Property, w *Warnings) error {
	if err := checkAddressParams(p, w); err != nil {
		return err
	}
	if err := expectSingle(p); err != nil {
		return err
	}
	return syntax.ValidateText(p.values[0][0])
}

func telRule(p *Property, w *Warnings) error {
	for _, name := range p.params.Names() {
		if name != "TYPE" {
			return invalidParamName(name)
		}
		if err := checkTypes(p, PhoneTypes); err != nil {
			return err
		}
		warnDefaultType(p, w, defaultPhoneTypes)
	}
	return expectSingle(p)
}

func emailRule(p *Property, w *Warnings) error {
	for _, name := range p.params.Names() {
		if name != "TYPE" {
			return invalidParamName(name)
		}
		for _, v := range p.params.Values(name) {
			if !containsFold(EmailTypes, v) {
				w.Add(WarnUnknownEmailType, "Unknown e-mail type: %s", v)
			}
		}
		warnDefaultType(p, w, defaultEmailTypes)
	}
	if err := expectSingle(p); err != nil {
		return err
	}
	return syntax.ValidateText(p.values[0][0])
}

func agentRule(p *Property, _ *Warnings) error {
	if len(p.params) == 0 {
		// Inline vCard, carried as escaped text.
		if err := expectSingle(p); err != nil {
			return err
		}
		return syntax.ValidateText(p.values[0][0])
	}
	for _, name := range p.params.Names() {
		if name != "VALUE" {
			return invalidParamName(name)
		}
		if err := expectParamValues(p, name, "uri"); err != nil {
			return err
		}
	}
	if err := expectSingle(p); err != nil {
		return err
	}
	return syntax.ValidateURI(p.values[0][0])
}

func sourceRule(p *Property, _ *Warnings) error {
	for _, name := range p.params.Names() {
		switch name {
		case "VALUE":
			if err := expectParamValues(p, name, "uri"); err != nil {
				return err
			}
			if err := expectNoConflict(p, name, "CONTEXT"); err != nil {
				return err
			}
		case "CONTEXT":
			if err := expectParamValues(p, name, "word"); err != nil {
				return err
			}
			if err := expectNoConflict(p, name, "VALUE"); err != nil {
				return err
			}
		default:
			return invalidParamName(name)
		}
	}
	if err := expectSingle(p); err != nil {
		return err
	}
	return syntax.ValidateURI(p.values[0][0])
}

func geoRule(p *Property, _ *Warnings) error {
	if err := expectNoParams(p); err != nil {
		return err
	}
	if err := expectValueCount(p, 2); err != nil {
		return err
	}
	for _, component := range p.values {
		if err := expectSubValueCount(component, 1); err != nil {
			return err
		}
		if err := syntax.ValidateFloat(component[0]); err != nil {
			return err
		}
	}
	return nil
}

// photoRule covers PHOTO and LOGO: either inline binary (ENCODING=b with an
// optional TYPE) or a reference (VALUE=uri).
func photoRule(p *Property, _ *Warnings) error {
	if err := expectParams(p); err != nil {
		return err
	}
	if err := expectSingle(p); err != nil {
		return err
	}
	for _, name := range p.params.Names() {
		switch name {
		case "ENCODING":
			if err := expectParamValues(p, name, "b"); err != nil {
				return err
			}
			if err := expectNoConflict(p, name, "VALUE"); err != nil {
				return err
			}
		case "TYPE":
			if !p.params.Has("ENCODING") {
				return vcerrors.New(vcerrors.ItemCount, "Missing parameter: ENCODING")
			}
		case "VALUE":
			if err := expectParamValues(p, name, "uri"); err != nil {
				return err
			}
			if err := syntax.ValidateURI(p.values[0][0]); err != nil {
				return err
			}
		default:
			return invalidParamName(name)
		}
	}
	return nil
}
