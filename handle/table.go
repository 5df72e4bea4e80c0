////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package handle implements the per-process descriptor table that the
// read-path fixture calls into. Its two operations behave like system calls:
// they never return an error value or panic, and report failure with the
// Invalid sentinel. The cause of a failure is logged at DEBUG.
package handle

import (
	"io"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/readcheck/portable"
)

const (
	// Invalid is the sentinel returned by Open and Read on failure.
	Invalid = -1

	// MaxHandles is the number of slots in a Table, including the two
	// console slots.
	MaxHandles = 16

	// ConsoleIn and ConsoleOut are bound when the Table is created.
	ConsoleIn  = 0
	ConsoleOut = 1

	// PageSize is the largest amount of data moved by one transfer step of
	// Read.
	PageSize = 1024

	// MaxNameLen is the longest name Open accepts, in bytes.
	MaxNameLen = 256
)

const (
	errTableFull    = "Open %q: no free handle in a table of %d"
	errBadName      = "Open: name of %d bytes must be 1 to %d bytes"
	errOpen         = "Open %q"
	errBadHandle    = "Read: handle %d should be within [0, %d]"
	errClosedHandle = "Read: handle %d is not open"
	errBadCount     = "Read: requested %d bytes, count can't be negative"
	errRead         = "Read: handle %d failed after %d bytes"
	errShortCopy    = "Read: handle %d copied %d of %d bytes, buffer holds %d"
)

// Table maps small integer handles to open backing objects. A Table belongs
// to a single caller and is not safe for concurrent use.
type Table struct {
	storage portable.Storage
	slots   [MaxHandles]io.Reader
	stage   []byte
}

// NewTable returns a Table that opens names against storage. Handle
// ConsoleIn reads from console, which may be nil for a console with no input;
// handle ConsoleOut is write only.
func NewTable(storage portable.Storage, console io.Reader) *Table {
	t := &Table{
		storage: storage,
		stage:   make([]byte, PageSize),
	}
	t.slots[ConsoleIn] = &consoleIn{r: console}
	t.slots[ConsoleOut] = consoleOut{}
	return t
}

// Open acquires the lowest free handle for the named backing object. It
// returns the non-negative handle on success and Invalid if the name is
// malformed, the table is full or the object cannot be opened.
func (t *Table) Open(name string) int {
	if len(name) == 0 || len(name) > MaxNameLen {
		jww.DEBUG.Printf("%+v", errors.Errorf(errBadName, len(name),
			MaxNameLen))
		return Invalid
	}

	fd := t.free()
	if fd == Invalid {
		jww.DEBUG.Printf("%+v", errors.Errorf(errTableFull, name,
			MaxHandles))
		return Invalid
	}

	f, err := t.storage.Open(name)
	if err != nil {
		jww.DEBUG.Printf("%+v", errors.WithMessagef(err, errOpen, name))
		return Invalid
	}

	t.slots[fd] = f
	jww.TRACE.Printf("Open %q: handle %d", name, fd)
	return fd
}

// Read transfers up to count bytes from the object behind fd into buf and
// returns the number of bytes placed. A count below the requested one is a
// short read, not a failure: it happens at end of file, or when buf is
// smaller than count. Read returns Invalid if fd does not name an open
// handle, count is negative or the object fails to read.
func (t *Table) Read(fd int, buf []byte, count int) int {
	if fd < 0 || fd >= MaxHandles {
		jww.DEBUG.Printf("%+v", errors.Errorf(errBadHandle, fd,
			MaxHandles-1))
		return Invalid
	}
	r := t.slots[fd]
	if r == nil {
		jww.DEBUG.Printf("%+v", errors.Errorf(errClosedHandle, fd))
		return Invalid
	}
	if count < 0 {
		jww.DEBUG.Printf("%+v", errors.Errorf(errBadCount, count))
		return Invalid
	}

	transferred := 0
	for count > 0 {
		try := count
		if try > PageSize {
			try = PageSize
		}

		n, err := fill(r, t.stage[:try])
		if err != nil {
			jww.DEBUG.Printf("%+v", errors.WithMessagef(err, errRead, fd,
				transferred))
			return Invalid
		}

		copied := copy(buf[transferred:], t.stage[:n])
		if copied != n {
			jww.DEBUG.Printf("%+v", errors.Errorf(errShortCopy, fd, copied,
				n, len(buf)))
			return transferred + copied
		}

		count -= n
		transferred += n

		// End of file
		if n < try {
			break
		}
	}

	jww.TRACE.Printf("Read handle %d: %d bytes", fd, transferred)
	return transferred
}

// free returns the lowest empty slot, or Invalid if there is none.
func (t *Table) free() int {
	for fd := range t.slots {
		if t.slots[fd] == nil {
			return fd
		}
	}
	return Invalid
}

// fill reads into p until it is full or the object is exhausted. End of file
// is not an error. The console returns whatever one read yields.
func fill(r io.Reader, p []byte) (int, error) {
	if c, ok := r.(*consoleIn); ok {
		n, err := c.Read(p)
		if err == io.EOF {
			err = nil
		}
		return n, err
	}

	n, err := io.ReadFull(r, p)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return n, err
}
