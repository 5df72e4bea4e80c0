////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package portable contains the backing storage that handles are opened
// against. A Storage may be the host filesystem, a go-billy filesystem or any
// key-value store that implements GenericKeyValue.
//
// Note to those implementing Storage: a missing object must be reported with
// an error for which IsNotExist returns true.
package portable

// Storage is the set of filesystem operations the read-path fixture needs
// from a backing store. Create, MkdirAll and the write side of File exist so
// that backing objects can be seeded; the handle table only opens and reads.
type Storage interface {
	// Open opens the named object for reading. Directories are refused.
	Open(name string) (File, error)

	// Create creates or truncates the named object.
	Create(name string) (File, error)

	// MkdirAll creates a directory named path along with any necessary
	// parents.
	MkdirAll(path string, perm FileMode) error
}

// File represents an open backing object. It contains a subset of the
// methods on os.File.
type File interface {
	// Close closes the File, rendering it unusable for I/O.
	Close() error

	// Name returns the name of the file as presented to Open.
	Name() string

	// Read reads up to len(b) bytes from the File and stores them in b.
	// It returns the number of bytes read and any error encountered.
	// At end of file, Read returns 0, io.EOF.
	Read(b []byte) (n int, err error)

	// Write writes len(b) bytes from b to the File.
	// Write returns a non-nil error when n != len(b).
	Write(b []byte) (n int, err error)
}

// A FileMode represents a file's mode and permission bits, with the same
// definition as os.FileMode.
type FileMode uint32
