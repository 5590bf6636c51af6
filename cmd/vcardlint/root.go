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
	"context"
	"errors"
	"fmt"
	"io"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/vcardlint/internal/config"
	vclog "dirpx.dev/vcardlint/internal/logging"
	"dirpx.dev/vcardlint/internal/qr"
	"dirpx.dev/vcardlint/internal/source"
	vcerrors "dirpx.dev/vcardlint/vccore/errors"
	"dirpx.dev/vcardlint/vccore/validate"
)

var log = logging.Logger("vcardlint")

// Exit statuses.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// errFailed reports that at least one file did not validate. The reports
// themselves have already been written.
var errFailed = errors.New("validation failed")

type options struct {
	configPath string
	verbose    bool
	format     string
	jobs       int
	qrDir      string
	qrSize     int
	charset    string
	logLevel   string
	logFormat  string
	noWarnings bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdin, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFailed):
		return exitFailed
	default:
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, cmd.UseLine())
		return exitUsage
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "vcardlint [flags] path...",
		Short: "Validate vCard 3.0 files",
		Long: `vcardlint checks vCard 3.0 files (RFC 2426) for line folding, grouping,
property syntax, parameter and value rules, and the mandatory properties.

Each path is validated independently and "-" reads standard input. Problems
are printed for every file that does not validate. The first problem in a
file stops that file.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}
			return lint(cmd.Context(), cfg, args, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file path (default "+config.DefaultPath+" when present)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print every validated record and its parsed structure")
	f.StringVarP(&opts.format, "format", "f", config.FormatText, "output format: text, json or yaml")
	f.IntVarP(&opts.jobs, "jobs", "j", 1, "number of files validated in parallel")
	f.StringVar(&opts.qrDir, "qr-dir", "", "write a QR code PNG of every validated record to this directory")
	f.IntVar(&opts.qrSize, "qr-size", 0, "QR code edge in pixels (0 selects 256)")
	f.StringVar(&opts.charset, "charset", "utf-8", "IANA charset of the input files")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "console", "log format: console or json")
	f.BoolVar(&opts.noWarnings, "no-warnings", false, "do not log advisory warnings")

	return cmd
}

// resolve loads the config file and applies explicitly set flags on top.
// Standard input can be drained only once, so "-" may appear at most once
// in paths.
func (o *options) resolve(cmd *cobra.Command, paths []string) (*config.Config, error) {
	stdin := 0
	for _, p := range paths {
		if p == source.Stdin {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, vcerrors.Newf(vcerrors.Usage, "Standard input named %d times", stdin).
			With(vcerrors.KeyFile, source.Stdin)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	if f.Changed("format") {
		cfg.Format = o.format
	}
	if f.Changed("jobs") {
		cfg.Jobs = o.jobs
	}
	if f.Changed("qr-dir") {
		cfg.QRDir = o.qrDir
	}
	if f.Changed("qr-size") {
		cfg.QRSize = o.qrSize
	}
	if f.Changed("charset") {
		cfg.Charset = o.charset
	}
	if f.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if f.Changed("no-warnings") {
		cfg.Warnings = !o.noWarnings
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func lint(ctx context.Context, cfg *config.Config, paths []string, stdin io.Reader, stdout, stderr io.Writer) error {
	logger, err := vclog.New(cfg.LogLevel, cfg.LogFormat, zapcore.AddSync(stderr))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if err := vclog.SetLibraryLevel(cfg.LogLevel); err != nil {
		return err
	}

	reader, err := source.New(cfg.Charset, stdin)
	if err != nil {
		return err
	}

	log.Debugw("validating", "files", len(paths), "jobs", cfg.Jobs, "charset", reader.Charset())
	reports, failures := validate.Files(ctx, paths, cfg.Jobs, reader.Load)

	if cfg.Warnings {
		sink := vclog.NewWarningSink(logger)
		for _, r := range reports {
			for _, w := range r.Warnings {
				sink.Emit(w)
			}
		}
	}

	if cfg.QRDir != "" {
		for _, r := range reports {
			if len(r.Cards) == 0 {
				continue
			}
			written, err := qr.WriteCards(cfg.QRDir, r.Source, r.Cards, cfg.QRSize)
			if err != nil {
				failures = multierr.Append(failures, err)
				logger.Error("cannot write QR code", zap.String("file", r.Source), zap.Error(err))
				continue
			}
			logger.Info("wrote QR codes", zap.String("file", r.Source), zap.Strings("paths", written))
		}
	}

	for _, r := range reports {
		logger.Info("validated", zap.String("file", r.Source), zap.Int("records", r.Records), zap.Bool("ok", r.OK()))
	}

	if err := writeReports(stdout, cfg, reports); err != nil {
		return err
	}
	if failures != nil {
		log.Debugw("validation failed", "failures", len(multierr.Errors(failures)))
		return errFailed
	}
	return nil
}
