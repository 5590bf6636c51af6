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
	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/syntax"
)

// ExtractGroup finds the record's group label and strips it from every
// line.
//
// The first line decides: if it starts with "label." every line must carry
// the identical label, and if it does not, no line may carry one. The
// returned lines are copies with "label." removed; the input is untouched.
func ExtractGroup(lines []Line) (string, []Line, error) {
	if len(lines) == 0 {
		return "", lines, nil
	}

	first := syntax.GroupRegexp.FindStringSubmatch(lines[0].Text)
	if first == nil {
		for _, l := range lines[1:] {
			if m := syntax.GroupRegexp.FindStringSubmatch(l.Text); m != nil {
				return "", nil, vcerrors.Newf(vcerrors.Naming, "Group mismatch: %s != (none)", m[1]).
					With(vcerrors.KeyCardLine, l.Number)
			}
		}
		return "", lines, nil
	}

	group := first[1]
	if group == "" {
		return "", nil, vcerrors.New(vcerrors.LineFormat, "Dot at start of line without group name").
			With(vcerrors.KeyCardLine, lines[0].Number)
	}

	out := make([]Line, len(lines))
	for i, l := range lines {
		m := syntax.GroupRegexp.FindStringSubmatch(l.Text)
		if m == nil {
			return "", nil, vcerrors.New(vcerrors.LineFormat, "Missing group in line").
				With(vcerrors.KeyCardLine, l.Number)
		}
		if m[1] != group {
			return "", nil, vcerrors.Newf(vcerrors.Naming, "Group mismatch: %s != %s", m[1], group).
				With(vcerrors.KeyCardLine, l.Number)
		}
		out[i] = Line{Text: l.Text[len(m[0]):], Number: l.Number}
	}
	return group, out, nil
}
