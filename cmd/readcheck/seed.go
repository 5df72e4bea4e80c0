////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package main

import (
	"path"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"

	"gitlab.com/elixxir/readcheck/portable"
)

// defaultSeed is ten distinct printable bytes, so a correct read echoes them
// unchanged.
const defaultSeed = "ABCDEFGHIJ"

// newSeedCmd creates the seed subcommand, which writes the backing object the
// fixture reads.
func newSeedCmd(opts *options) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the backing object",
		Long: `Create or truncate the configured backing object and fill it with the
given content.

Examples:
  # Write ABCDEFGHIJ to write.out
  readcheck seed

  # Prepare a short object to exercise the short read report
  readcheck seed --content abc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			storage, err := opts.storage()
			if err != nil {
				return err
			}
			return seed(storage, cfg.Name, []byte(content))
		},
	}

	cmd.Flags().StringVar(&content, "content", defaultSeed,
		"bytes to store in the backing object")

	return cmd
}

// seed replaces the named object's contents with data, creating any parent
// directories of name first.
func seed(storage portable.Storage, name string, data []byte) error {
	if dir := path.Dir(name); dir != "." && dir != "/" {
		if err := storage.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	f, err := storage.Create(name)
	if err != nil {
		return err
	}

	n, err := f.Write(data)
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "Failed to seed %s", name)
	}
	if n != len(data) {
		f.Close()
		return errors.Errorf("Short seed write %s: got %d, expected %d",
			name, n, len(data))
	}

	jww.INFO.Printf("Seeded %s with %d bytes", name, n)
	return errors.WithStack(f.Close())
}
