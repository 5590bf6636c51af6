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

// Package qr renders validated records as QR code images.
package qr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model/vcard"
)

// DefaultSize is the image edge in pixels used when size is 0.
const DefaultSize = 256

// MaxSize bounds the image edge in pixels.
const MaxSize = 4096

// PNG encodes text as a QR code PNG with medium error correction.
func PNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, vcerrors.New(vcerrors.ItemCount, "Empty vCard")
	}
	if size == 0 {
		size = DefaultSize
	}
	if size < 0 || size > MaxSize {
		return nil, vcerrors.Newf(vcerrors.Usage, "Invalid QR size: %d (must be 0 to %d)", size, MaxSize)
	}

	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, vcerrors.Newf(vcerrors.Value, "Cannot encode QR code: %v", err)
	}
	return code.PNG(size)
}

// FileName returns the image name for the n-th (1-based) record of source.
func FileName(source string, n int) string {
	base := filepath.Base(source)
	if source == "-" {
		base = "stdin"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s-%d.png", base, n)
}

// WriteCards writes one PNG per card into dir, creating it if needed, and
// returns the paths written. The first failure stops the run.
func WriteCards(dir, source string, cards []*vcard.Card, size int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, vcerrors.Newf(vcerrors.Usage, "Cannot create QR directory: %v", err).
			With(vcerrors.KeyFile, dir)
	}

	var paths []string
	for i, c := range cards {
		data, err := PNG(c.Text(), size)
		if err != nil {
			return paths, vcerrors.Annotate(vcerrors.Annotate(err, vcerrors.KeyFile, source), vcerrors.KeyCard, i+1)
		}
		path := filepath.Join(dir, FileName(source, i+1))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, vcerrors.Newf(vcerrors.Usage, "Cannot write QR code: %v", err).
				With(vcerrors.KeyFile, path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
