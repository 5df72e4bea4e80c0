////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package portable

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
)

// billyFS is a Storage over any go-billy filesystem.
type billyFS struct {
	fs billy.Filesystem
}

// UseBilly returns a Storage backed by the given go-billy filesystem.
func UseBilly(fs billy.Filesystem) Storage {
	return &billyFS{fs: fs}
}

// UseMemory returns a Storage backed by an empty in-memory filesystem.
func UseMemory() Storage {
	return UseBilly(memfs.New())
}

// UseDirectory returns a Storage backed by the host filesystem, with every
// name resolved inside dir.
func UseDirectory(dir string) Storage {
	return UseBilly(osfs.New(dir, osfs.WithBoundOS()))
}

// Open opens the named file for reading. Directories are refused.
func (b *billyFS) Open(name string) (File, error) {
	info, err := b.fs.Stat(name)
	if err == nil && info.IsDir() {
		return nil, errors.Errorf(errNotDirectory, name)
	}

	f, err := b.fs.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "billy: open %q", name)
	}
	return f, nil
}

// Create creates or truncates the named file.
func (b *billyFS) Create(name string) (File, error) {
	f, err := b.fs.Create(name)
	if err != nil {
		return nil, errors.Wrapf(err, "billy: create %q", name)
	}
	return f, nil
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (b *billyFS) MkdirAll(path string, perm FileMode) error {
	if err := b.fs.MkdirAll(path, os.FileMode(perm)); err != nil {
		return errors.Wrapf(err, "billy: mkdirall %q", path)
	}
	return nil
}
