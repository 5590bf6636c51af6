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
	"unicode/utf8"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/syntax"
)

// Line is one logical (unfolded) property line. Number is the 1-based
// record-relative physical line where the logical line starts.
type Line struct {
	Text   string
	Number int
}

// Unfold joins folded physical lines into logical lines (RFC 2426 section
// 2.6). Every physical line must end with CRLF. A line starting with a space
// or a tab continues the previous one: the previous terminator and the
// leading whitespace character are dropped. The returned lines keep their
// terminator.
//
// Advisory problems (long lines, folds before the maximum length, empty
// continuations) are added to w.
func Unfold(raw []string, w *Warnings) ([]Line, error) {
	var out []Line
	for i, line := range raw {
		number := i + 1
		if !strings.HasSuffix(line, syntax.LineTerminator) {
			return nil, vcerrors.New(vcerrors.LineFormat, "Invalid line ending; should be CRLF").
				With(vcerrors.KeyCardLine, number)
		}
		if utf8.RuneCountInString(line) > syntax.MaxRawLineLength {
			w.addAt(number, WarnLongLine, "Long line in vCard at line %d", number)
		}
		if !isContinuation(line) {
			out = append(out, Line{Text: line, Number: number})
			continue
		}
		if i == 0 {
			return nil, vcerrors.New(vcerrors.LineFormat, "Continuation line at start of vCard").
				With(vcerrors.KeyCardLine, number)
		}
		if utf8.RuneCountInString(raw[i-1]) < syntax.MaxRawLineLength {
			w.addAt(number-1, WarnShortFold, "Short folded line at line %d", number-1)
		} else if line == " "+syntax.LineTerminator || line == "\t"+syntax.LineTerminator {
			w.addAt(number, WarnEmptyFold, "Empty folded line at line %d", number)
		}
		last := &out[len(out)-1]
		last.Text = strings.TrimSuffix(last.Text, syntax.LineTerminator) + line[1:]
	}
	return out, nil
}

func isContinuation(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
