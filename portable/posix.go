////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package portable

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// posix is a Storage rooted at a directory of the host filesystem.
type posix struct {
	root string
}

// UsePosix returns a Storage that resolves names against root using the os
// package. An empty root means the current working directory.
func UsePosix(root string) Storage {
	return &posix{root: root}
}

func (p *posix) path(name string) string {
	if p.root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.root, name)
}

// Open opens the named file for reading. os.Open accepts directories, so
// the opened file is checked before it is handed out.
func (p *posix) Open(name string) (File, error) {
	f, err := os.Open(p.path(name))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.WithStack(err)
	}
	if info.IsDir() {
		f.Close()
		return nil, errors.Errorf(errNotDirectory, name)
	}

	return f, nil
}

// Create creates or truncates the named file with mode 0666 (before umask).
func (p *posix) Create(name string) (File, error) {
	f, err := os.Create(p.path(name))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (p *posix) MkdirAll(path string, perm FileMode) error {
	return errors.WithStack(os.MkdirAll(p.path(path), os.FileMode(perm)))
}
