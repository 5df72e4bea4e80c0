////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/pflag"

	"gitlab.com/elixxir/readcheck"
	"gitlab.com/elixxir/readcheck/handle"
	"gitlab.com/elixxir/readcheck/portable"
)

const (
	backendPosix = "posix"
	backendBilly = "billy"

	// usageStatus is returned when the command line or config is unusable.
	usageStatus = 1
)

var logLevels = map[string]jww.Threshold{
	"trace":    jww.LevelTrace,
	"debug":    jww.LevelDebug,
	"info":     jww.LevelInfo,
	"warn":     jww.LevelWarn,
	"error":    jww.LevelError,
	"critical": jww.LevelCritical,
	"fatal":    jww.LevelFatal,
}

// options are the flags shared by every command.
type options struct {
	configPath string
	root       string
	backend    string
	logLevel   string

	stdin          io.Reader
	stdout, stderr io.Writer

	// status is the exit status chosen by the command that ran.
	status int
}

// execute runs the command line and returns the process exit status.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &options{stdin: stdin, stdout: stdout, stderr: stderr}

	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return usageStatus
	}
	return opts.status
}

// newRootCmd creates the readcheck command, which runs the fixture.
func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readcheck",
		Short: "Verify the open and read path of a backing object",
		Long: `Open a backing object, read a fixed number of bytes from it and echo
the buffer.

Prints "...passed (fd = N)" when the object opens and "...failed (N)" when it
does not, in which case the exit status is the configured fail status:
-1002 by default, which a POSIX shell reports as 22. A read returning fewer
bytes than requested prints "...failed (r = N)" and the run still exits 0.

Examples:
  # Read write.out in the working directory
  readcheck

  # Use another directory through the go-billy backend
  readcheck --backend billy --root /tmp/fixture`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLog(opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFixture(opts)
		},
	}

	bindFlags(cmd.PersistentFlags(), opts)
	cmd.AddCommand(newSeedCmd(opts))

	return cmd
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.configPath, "config", "",
		"TOML file overriding the fixture parameters")
	flags.StringVar(&opts.root, "root", "",
		"directory the backing object is resolved in (default: working directory)")
	flags.StringVar(&opts.backend, "backend", backendPosix,
		"backing storage: "+backendPosix+" or "+backendBilly)
	flags.StringVar(&opts.logLevel, "log-level", "error",
		"log threshold: trace, debug, info, warn, error, critical or fatal")
}

// initLog sends jww output to stderr so that stdout only carries the
// fixture's console output. The stdout handle of the notepad is kept at
// LevelFatal, which nothing in readcheck logs at.
func initLog(opts *options) error {
	level, ok := logLevels[strings.ToLower(opts.logLevel)]
	if !ok {
		return errors.Errorf("unknown log level %q", opts.logLevel)
	}

	jww.SetStdoutThreshold(jww.LevelFatal)
	jww.SetLogOutput(opts.stderr)
	jww.SetLogThreshold(level)
	return nil
}

// config loads the fixture parameters.
func (opts *options) config() (readcheck.Config, error) {
	if opts.configPath == "" {
		return readcheck.DefaultConfig(), nil
	}
	return readcheck.LoadConfig(opts.configPath)
}

// storage opens the selected backend.
func (opts *options) storage() (portable.Storage, error) {
	switch opts.backend {
	case backendPosix:
		return portable.UsePosix(opts.root), nil
	case backendBilly:
		root := opts.root
		if root == "" {
			root = "."
		}
		return portable.UseDirectory(root), nil
	default:
		return nil, errors.Errorf("unknown backend %q", opts.backend)
	}
}

func runFixture(opts *options) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	storage, err := opts.storage()
	if err != nil {
		return err
	}

	report, err := readcheck.Run(cfg, handle.NewTable(storage, opts.stdin),
		opts.stdout)
	if err != nil {
		return err
	}

	jww.INFO.Printf("Output digest %X", report.Digest)
	opts.status = report.Status
	return nil
}
