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

import "strings"

// FindUnescaped returns the byte index of the first occurrence of delim in
// text that is not escaped, and false when there is none. An occurrence is
// escaped when it is immediately preceded by an odd number of backslashes.
//
//	FindUnescaped("BEGIN:VCARD\n", ":")   // 5, true
//	FindUnescaped(`foo\,bar,baz`, ",")    // 8, true
//	FindUnescaped("foo,bar,baz", ";")     // -1, false
func FindUnescaped(text, delim string) (int, bool) {
	if delim == "" {
		return -1, false
	}
	offset := 0
	for {
		i := strings.Index(text[offset:], delim)
		if i < 0 {
			return -1, false
		}
		pos := offset + i
		if !escapedAt(text, pos) {
			return pos, true
		}
		offset = pos + len(delim)
	}
}

// escapedAt reports whether the byte at pos is preceded by an odd run of
// backslashes.
func escapedAt(text string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// SplitUnescaped splits text around every unescaped occurrence of delim.
// Escapes are left intact in the returned parts. The result always has one
// more element than there are unescaped delimiters, so a text without any
// yields a single element holding the whole text.
func SplitUnescaped(text, delim string) []string {
	var parts []string
	for {
		i, ok := FindUnescaped(text, delim)
		if !ok {
			return append(parts, text)
		}
		parts = append(parts, text[:i])
		text = text[i+len(delim):]
	}
}

// SplitFirstUnescaped splits text around the first unescaped delim. When
// there is none, ok is false and head holds the whole text.
func SplitFirstUnescaped(text, delim string) (head, tail string, ok bool) {
	i, ok := FindUnescaped(text, delim)
	if !ok {
		return text, "", false
	}
	return text[:i], text[i+len(delim):], true
}
