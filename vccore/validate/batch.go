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

package validate

import (
	"context"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	vcerrors "dirpx.dev/vcardlint/vccore/errors"
)

// Loader returns the decoded text of a named input.
type Loader func(ctx context.Context, name string) (string, error)

// Files validates each named input independently, running at most jobs
// validations at a time (jobs < 1 means one). Reports are returned in input
// order. The error combines every file's Failure with multierr; it is nil
// only when every file validated.
//
// A load error fails that file alone and keeps any file name the loader
// already recorded. Cancelling ctx stops files that have not started yet;
// their reports carry the context error.
func Files(ctx context.Context, names []string, jobs int, load Loader) ([]*Report, error) {
	if jobs < 1 {
		jobs = 1
	}
	reports := make([]*Report, len(names))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				reports[i] = &Report{Source: name, Err: err}
				return nil
			}
			text, err := load(ctx, name)
			if err != nil {
				reports[i] = &Report{Source: name, Err: vcerrors.AnnotateDefault(err, vcerrors.KeyFile, name)}
				return nil
			}
			reports[i] = Text(name, text)
			return nil
		})
	}
	// Workers record failures in their report and always return nil.
	_ = g.Wait()

	var errs error
	for _, r := range reports {
		errs = multierr.Append(errs, r.Failure())
	}
	return reports, errs
}
