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

import "unicode/utf8"

// SplitLines splits text into physical lines, keeping each line's terminator.
//
// Every Unicode line boundary ends a line: LF, CR, CR LF, VT, FF, the ASCII
// file/group/record separators (U+001C to U+001E), NEL (U+0085), LINE
// SEPARATOR and PARAGRAPH SEPARATOR. CR LF counts as a single boundary.
// Splitting on all of them means a stray CR or LF inside a record shows up as
// a line that lacks the canonical terminator instead of being silently
// absorbed. A final line without a terminator is returned as-is.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		switch r {
		case '\n', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
		default:
			continue
		}
		end := i + utf8.RuneLen(r)
		lines = append(lines, text[start:end])
		start = end
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
