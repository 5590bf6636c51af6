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

package syntax

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
)

const (
	// safeClass is the body of a bracket expression matching SAFE-CHAR.
	safeClass = ` \t!#$%&'()*+\-./<=>?@\[\]^_` + "`" + `{|}~0-9A-Za-z\x{80}-\x{FF}`

	// idClass is the body of a bracket expression matching identifier
	// characters.
	idClass = `A-Za-z0-9\-`

	// textPattern matches a text-value: safe characters, colon and double
	// quote, or a backslash followed by one of the escapable characters.
	textPattern = `^(?:[` + safeClass + `:"]|\\[\\;,nN])*$`

	// ptextPattern matches presentation text, a possibly empty run of
	// safe characters.
	ptextPattern = `^[` + safeClass + `]*$`

	// quotedPattern matches a quoted-string: one or more quote-safe
	// characters between double quotes.
	quotedPattern = `^"[` + safeClass + `,:;]+"$`

	// idPattern matches a non-empty identifier.
	idPattern = `^[` + idClass + `]+$`

	// xNamePattern matches an extension name. The "X-" prefix is case
	// sensitive; callers upper-case names before matching.
	xNamePattern = `^X-[` + idClass + `]+$`

	// groupPattern matches a leading group label and its dot. The label may be
	// empty so that a bare leading dot can be reported distinctly.
	groupPattern = `^([` + idClass + `]*)\.`

	// datePattern matches a compact or dashed ISO 8601 calendar date.
	datePattern = `^([0-9]{4})(-?)([0-9]{2})(-?)([0-9]{2})$`

	// timeZonePattern matches "Z" or a signed UTC offset with an optional
	// colon.
	timeZonePattern = `^(?:Z|[+-]([0-9]{2}):?([0-9]{2}))$`

	// languagePattern matches an RFC 1766 language tag after lower-casing.
	languagePattern = `^[a-z]{1,8}(?:-[a-z]{1,8})*$`

	// floatPattern matches a decimal number with an optional sign and an
	// optional fractional part.
	floatPattern = `^[+-]?[0-9]+(?:\.[0-9]+)?$`
)

// Compiled grammars. Each is anchored at both ends and safe for concurrent
// use.
var (
	TextRegexp     = regexp.MustCompile(textPattern)
	PTextRegexp    = regexp.MustCompile(ptextPattern)
	QuotedRegexp   = regexp.MustCompile(quotedPattern)
	IDRegexp       = regexp.MustCompile(idPattern)
	XNameRegexp    = regexp.MustCompile(xNamePattern)
	GroupRegexp    = regexp.MustCompile(groupPattern)
	DateRegexp     = regexp.MustCompile(datePattern)
	TimeZoneRegexp = regexp.MustCompile(timeZonePattern)
	LanguageRegexp = regexp.MustCompile(languagePattern)
	FloatRegexp    = regexp.MustCompile(floatPattern)
)

// IsID reports whether s is a non-empty run of identifier characters.
func IsID(s string) bool {
	return IDRegexp.MatchString(s)
}

// IsXName reports whether s is an extension name such as "X-ABC".
func IsXName(s string) bool {
	return XNameRegexp.MatchString(s)
}

// IsText reports whether s is a valid text-value.
func IsText(s string) bool {
	return TextRegexp.MatchString(s)
}

// IsPText reports whether s is valid presentation text.
func IsPText(s string) bool {
	return PTextRegexp.MatchString(s)
}

// IsQuoted reports whether s is a valid quoted-string.
func IsQuoted(s string) bool {
	return QuotedRegexp.MatchString(s)
}

// IsParamValue reports whether s is presentation text or a quoted-string.
func IsParamValue(s string) bool {
	return IsPText(s) || IsQuoted(s)
}

// ValidateText returns a Value error unless s is a valid text-value.
func ValidateText(s string) error {
	if !IsText(s) {
		return vcerrors.New(vcerrors.Value, "Invalid text value").With(vcerrors.KeyString, s)
	}
	return nil
}

// ValidateParamValue returns a Value error unless s is presentation text or
// a quoted-string.
func ValidateParamValue(s string) error {
	if !IsParamValue(s) {
		return vcerrors.New(vcerrors.Value, "Invalid parameter value").With(vcerrors.KeyString, s)
	}
	return nil
}

// ValidateXName returns a Naming error unless s is an extension name.
func ValidateXName(s string) error {
	if !IsXName(s) {
		return vcerrors.New(vcerrors.Naming, "Invalid X-name").With(vcerrors.KeyString, s)
	}
	return nil
}

// ValidateLanguageTag returns a Value error unless s is an RFC 1766
// language tag. Matching is case-insensitive.
func ValidateLanguageTag(s string) error {
	lower := strings.ToLower(s)
	if !LanguageRegexp.MatchString(lower) {
		return vcerrors.New(vcerrors.Value, "Invalid language").With(vcerrors.KeyString, lower)
	}
	return nil
}

// ValidateDate returns a Value error unless s is a calendar date in the
// form YYYYMMDD or YYYY-MM-DD that actually exists. Mixing the two forms,
// as in "2000-0101", is rejected.
func ValidateDate(s string) error {
	invalid := func() error {
		return vcerrors.New(vcerrors.Value, "Invalid date").With(vcerrors.KeyString, s)
	}
	m := DateRegexp.FindStringSubmatch(s)
	if m == nil || m[2] != m[4] {
		return invalid()
	}
	if _, err := time.Parse("20060102", m[1]+m[3]+m[5]); err != nil {
		return invalid()
	}
	return nil
}

// ValidateTimeZone returns a Value error unless s is "Z" or a UTC offset
// such as "+01:00" or "-0530" with hours below 24 and minutes below 60.
func ValidateTimeZone(s string) error {
	invalid := func() error {
		return vcerrors.New(vcerrors.Value, "Invalid time zone").With(vcerrors.KeyString, s)
	}
	m := TimeZoneRegexp.FindStringSubmatch(s)
	if m == nil {
		return invalid()
	}
	if s == "Z" {
		return nil
	}
	if m[1] > "23" || m[2] > "59" {
		return invalid()
	}
	return nil
}

// ValidateFloat returns a Value error unless s is a decimal number.
func ValidateFloat(s string) error {
	if !FloatRegexp.MatchString(s) {
		return vcerrors.Newf(vcerrors.Value, "Invalid sub-value, expected float value: %s", s)
	}
	return nil
}

// ValidateURI returns a Value error unless s parses as a URI with a scheme
// and a non-empty authority, path or opaque part.
func ValidateURI(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Path == "" && u.Opaque == "") {
		return vcerrors.New(vcerrors.Value, "Invalid URI").With(vcerrors.KeyString, s)
	}
	return nil
}
