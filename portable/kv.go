////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package portable

import (
	"bytes"
	"path"

	"github.com/pkg/errors"
)

// GenericKeyValue is a simple key-value storage interface that can back a
// Storage. Every value is the full contents of one backing object.
type GenericKeyValue interface {
	// Get retrieves the value for the given key.
	// Returns an error if the key does not exist.
	Get(key string) ([]byte, error)

	// Set stores the value for the given key.
	Set(key string, value []byte) error

	// Delete removes the key and its value.
	Delete(key string) error

	// Keys returns all keys in the store.
	Keys() ([]string, error)
}

// kv is a Storage implementation that wraps a GenericKeyValue.
type kv struct {
	storage GenericKeyValue
	dirs    map[string]struct{}
}

// UseKeyValue returns a Storage that uses the provided GenericKeyValue as its
// backing store.
func UseKeyValue(storage GenericKeyValue) Storage {
	return &kv{storage: storage, dirs: make(map[string]struct{})}
}

// Open opens the named object for reading. The contents are captured when
// the object is opened.
func (k *kv) Open(name string) (File, error) {
	if _, isDir := k.dirs[name]; isDir {
		return nil, errors.Errorf(errNotDirectory, name)
	}

	value, err := k.storage.Get(name)
	if err != nil {
		return nil, notExist(name, err)
	}

	return openKV(name, value, k.storage, false), nil
}

// Create creates or truncates the named object.
func (k *kv) Create(name string) (File, error) {
	if err := k.storage.Set(name, []byte{}); err != nil {
		return nil, errors.Wrapf(err, "Failed to create %s", name)
	}

	return openKV(name, nil, k.storage, true), nil
}

// MkdirAll records path and its parents as directories. Key-value stores
// have no hierarchy, so nothing is written to the store.
func (k *kv) MkdirAll(dir string, _ FileMode) error {
	for dir != "." && dir != "/" && dir != "" {
		k.dirs[dir] = struct{}{}
		dir = path.Dir(dir)
	}
	return nil
}

// kvFile is a File over a snapshot of one value in a GenericKeyValue store.
type kvFile struct {
	keyName  string
	reader   *bytes.Reader
	storage  GenericKeyValue
	writable bool
}

func openKV(keyName string, value []byte, storage GenericKeyValue,
	writable bool) *kvFile {
	return &kvFile{
		keyName:  keyName,
		reader:   bytes.NewReader(value),
		storage:  storage,
		writable: writable,
	}
}

// Close releases the snapshot.
func (f *kvFile) Close() error {
	f.reader.Reset(nil)
	return nil
}

// Name returns the key the file was opened with.
func (f *kvFile) Name() string {
	return f.keyName
}

// Read reads up to len(b) bytes. At end of file, Read returns 0, io.EOF.
func (f *kvFile) Read(b []byte) (n int, err error) {
	return f.reader.Read(b)
}

// Write appends b to the stored value and refreshes the snapshot, keeping
// the read offset.
func (f *kvFile) Write(b []byte) (n int, err error) {
	if !f.writable {
		return 0, errors.Errorf(errReadOnly, f.keyName)
	}

	value, err := f.storage.Get(f.keyName)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	value = append(value, b...)

	if err = f.storage.Set(f.keyName, value); err != nil {
		return 0, errors.WithStack(err)
	}

	offset := f.reader.Size() - int64(f.reader.Len())
	f.reader.Reset(value)
	_, _ = f.reader.Seek(offset, 0)

	return len(b), nil
}
