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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dirpx.dev/vcardlint/internal/config"
	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/model"
	"dirpx.dev/vcardlint/vccore/model/vcard"
	"dirpx.dev/vcardlint/vccore/validate"
)

// fileResult is the machine-readable form of one report.
type fileResult struct {
	Source   string          `json:"source" yaml:"source"`
	OK       bool            `json:"ok" yaml:"ok"`
	Records  int             `json:"records" yaml:"records"`
	Leftover int             `json:"leftover,omitempty" yaml:"leftover,omitempty"`
	Message  string          `json:"message,omitempty" yaml:"message,omitempty"`
	Error    *vcerrors.Error `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings []vcard.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Cards    []*vcard.Card   `json:"cards,omitempty" yaml:"cards,omitempty"`
}

func newFileResult(r *validate.Report, verbose bool) fileResult {
	res := fileResult{
		Source:   r.Source,
		OK:       r.OK(),
		Records:  r.Records,
		Leftover: r.Leftover,
		Warnings: r.Warnings,
	}
	if fail := r.Failure(); fail != nil {
		res.Message = r.String()
		var e *vcerrors.Error
		if errors.As(fail, &e) {
			res.Error = e
		}
	}
	if verbose {
		res.Cards = r.Cards
	}
	return res
}

func writeReports(w io.Writer, cfg *config.Config, reports []*validate.Report) error {
	switch cfg.Format {
	case config.FormatJSON, config.FormatYAML:
		results := make([]fileResult, len(reports))
		for i, r := range reports {
			results[i] = newFileResult(r, cfg.Verbose)
		}
		if cfg.Format == config.FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(results)
	default:
		return writeText(w, reports, cfg.Verbose)
	}
}

// writeText prints, per file, the validated records when verbose and then
// the report when it is not empty.
func writeText(w io.Writer, reports []*validate.Report, verbose bool) error {
	for _, r := range reports {
		if verbose {
			for _, c := range r.Cards {
				data, err := model.ToYAML(c)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(w, "%s\n%s\n", c.String(), data); err != nil {
					return err
				}
			}
		}
		if s := r.String(); s != "" {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
	}
	return nil
}
