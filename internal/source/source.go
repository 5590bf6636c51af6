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

// Package source reads validator input from files or standard input and
// decodes it to UTF-8.
package source

import (
	"context"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
)

// Stdin is the file name that selects standard input.
const Stdin = "-"

// Reader loads whole inputs into memory. It is safe for concurrent use as
// long as standard input is named at most once.
type Reader struct {
	charset string
	enc     encoding.Encoding
	stdin   io.Reader
}

// New returns a Reader decoding from the IANA charset name. An empty name
// or any spelling of UTF-8 leaves input bytes untouched. stdin may be nil
// when standard input is never requested.
func New(charset string, stdin io.Reader) (*Reader, error) {
	r := &Reader{charset: charset, stdin: stdin}
	if isUTF8(charset) {
		return r, nil
	}
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(charset))
	if err != nil || enc == nil {
		return nil, vcerrors.Newf(vcerrors.Usage, "Unsupported charset: %s", charset)
	}
	r.enc = enc
	return r, nil
}

func isUTF8(charset string) bool {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8", "csutf8":
		return true
	}
	return false
}

// Charset returns the charset name the Reader was built with.
func (r *Reader) Charset() string { return r.charset }

// Load reads the named file, or standard input for Stdin, and returns its
// decoded contents. Read failures are Usage errors carrying the file name.
func (r *Reader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var in io.Reader
	if name == Stdin {
		if r.stdin == nil {
			return "", vcerrors.New(vcerrors.Usage, "Standard input is not available").
				With(vcerrors.KeyFile, name)
		}
		in = r.stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return "", vcerrors.Newf(vcerrors.Usage, "Cannot open file: %v", err).
				With(vcerrors.KeyFile, name)
		}
		defer f.Close()
		in = f
	}

	if r.enc != nil {
		in = transform.NewReader(in, r.enc.NewDecoder())
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", vcerrors.Newf(vcerrors.Usage, "Cannot read file: %v", err).
			With(vcerrors.KeyFile, name)
	}
	return string(data), nil
}
