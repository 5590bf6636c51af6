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

// Package syntax implements the lexical layer of RFC 2426 (vCard 3.0): the
// character classes of the grammar, the escape-aware splitter every other
// split is built on, the physical line splitter, and the value grammars
// (text, ptext, quoted string, identifier, X-name, date, time zone, language
// tag, float and URI).
//
// Everything in this package is stateless. Compiled regular expressions are
// package-level values and are safe for concurrent use.
//
// Character classes are defined over runes, not bytes. The Latin-1 high range
// U+0080 through U+00FF is treated as safe, exactly as the RFC's NON-ASCII
// production; code points above U+00FF are not.
package syntax

import "strings"

const (
	// LineTerminator is the canonical vCard line terminator.
	LineTerminator = "\r\n"

	// MaxLineLength is the maximum recommended line length in characters,
	// excluding the terminator (RFC 2426 section 2.6).
	MaxLineLength = 75

	// MaxRawLineLength is MaxLineLength plus the terminator.
	MaxRawLineLength = MaxLineLength + len(LineTerminator)
)

const (
	// safePunctuation lists the ASCII punctuation allowed in SAFE-CHAR.
	// Double quote, comma, colon, semicolon and backslash are excluded.
	safePunctuation = "!#$%&'()*+-./<=>?@[]^_`{|}~"

	// quoteSafeExtra lists the characters QSAFE-CHAR adds to SAFE-CHAR.
	quoteSafeExtra = ",:;"

	// valueExtra lists the characters VALUE-CHAR adds to QSAFE-CHAR.
	valueExtra = "\\\""

	// Escapable lists the characters that may follow a backslash in a text
	// value.
	Escapable = `\;,nN`
)

// IsSafe reports whether r is a SAFE-CHAR: space, tab, safe punctuation,
// ASCII letters and digits, or a Latin-1 high character.
func IsSafe(r rune) bool {
	switch {
	case r == ' ' || r == '\t':
		return true
	case r >= '0' && r <= '9', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 0x80 && r <= 0xFF:
		return true
	}
	return strings.ContainsRune(safePunctuation, r)
}

// IsQuoteSafe reports whether r is a QSAFE-CHAR, the class allowed inside a
// double-quoted parameter value.
func IsQuoteSafe(r rune) bool {
	return IsSafe(r) || strings.ContainsRune(quoteSafeExtra, r)
}

// IsValueChar reports whether r may appear in a raw property sub-value.
func IsValueChar(r rune) bool {
	return IsQuoteSafe(r) || strings.ContainsRune(valueExtra, r)
}

// IsIDChar reports whether r may appear in a group label, property name or
// parameter name: ASCII letters, digits and hyphen.
func IsIDChar(r rune) bool {
	return r == '-' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// IsEscapable reports whether r may follow a backslash in a text value.
func IsEscapable(r rune) bool {
	return strings.ContainsRune(Escapable, r)
}

// All reports whether every rune of s satisfies class. The empty string
// satisfies every class.
func All(s string, class func(rune) bool) bool {
	for _, r := range s {
		if !class(r) {
			return false
		}
	}
	return true
}
