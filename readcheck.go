////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package readcheck verifies the file-read path of a descriptor table: it
// opens a named backing object, issues one bounded read and echoes a fixed
// span of the buffer.
//
// A failed open is fatal and ends the run with Config.FailStatus before any
// read is issued. A read that returns anything but the requested count is
// reported on the console and the run carries on; its status stays 0.
//
// The destination buffer is zeroed before the read and the inspected span is
// always Config.InspectLen bytes long, so positions past a short read echo as
// NUL bytes.
package readcheck

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"golang.org/x/crypto/blake2b"
)

const (
	msgOpenPassed = "...passed (fd = %d)\n"
	msgOpenFailed = "...failed (%d)\n"
	msgReadFailed = "...failed (r = %d)\n"

	errConfig = "Refusing to run"
	errOutput = "Failed to write console output"
)

// Syscalls are the two descriptor operations the fixture exercises.
// *handle.Table implements it.
type Syscalls interface {
	// Open returns a non-negative handle for name, or a negative sentinel.
	Open(name string) int

	// Read places at most count bytes into buf and returns how many, or a
	// negative sentinel.
	Read(fd int, buf []byte, count int) int
}

// State is a step of a fixture run.
type State uint8

const (
	Start State = iota
	Opening
	Reading
	Pass
	Fail
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Opening:
		return "opening"
	case Reading:
		return "reading"
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Report is the outcome of one run.
type Report struct {
	// Handle is the value returned by Open.
	Handle int

	// Count is the value returned by Read. It is 0 when no read was issued.
	Count int

	// Read reports whether a read was issued.
	Read bool

	// Inspected holds the echoed buffer span.
	Inspected []byte

	// State is Pass when the handle was acquired, whether or not the read
	// came up short, and Fail otherwise.
	State State

	// Steps lists every state the run went through, in order, starting at
	// Start.
	Steps []State

	// ShortRead is set when Count differs from the requested length.
	ShortRead bool

	// Status is the process exit status.
	Status int

	// Output is everything written to the console.
	Output []byte

	// Digest is the BLAKE2b-256 sum of Output. Runs against an unchanged
	// backing object have equal digests.
	Digest [blake2b.Size256]byte
}

// Run executes the fixture with cfg against sys and writes the console output
// to out. The returned error is only set when cfg is invalid or out cannot be
// written; failures of the read path are carried in the Report.
func Run(cfg Config, sys Syscalls, out io.Writer) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessage(err, errConfig)
	}

	var console bytes.Buffer
	r := &Report{State: Start, Steps: []State{Start}}

	r.enter(Opening)
	jww.INFO.Printf("Opening %q", cfg.Name)
	fd := sys.Open(cfg.Name)
	r.Handle = fd

	if fd < 0 {
		fmt.Fprintf(&console, msgOpenFailed, fd)
		jww.ERROR.Printf("Could not acquire a handle for %q: %d",
			cfg.Name, fd)
		r.enter(Fail)
		r.Status = cfg.FailStatus
		return r, r.flush(&console, out)
	}
	fmt.Fprintf(&console, msgOpenPassed, fd)

	r.enter(Reading)
	buf := make([]byte, cfg.BufferSize)
	jww.INFO.Printf("Reading %d bytes from handle %d", cfg.RequestLen, fd)
	r.Count = sys.Read(fd, buf, cfg.RequestLen)
	r.Read = true

	if r.Count != cfg.RequestLen {
		fmt.Fprintf(&console, msgReadFailed, r.Count)
		jww.WARN.Printf("Read from handle %d returned %d, expected %d",
			fd, r.Count, cfg.RequestLen)
		r.ShortRead = true
	}

	r.Inspected = append([]byte{}, buf[:cfg.InspectLen]...)
	console.Write(r.Inspected)

	r.enter(Pass)
	r.Status = 0
	return r, r.flush(&console, out)
}

// enter moves the run to next.
func (r *Report) enter(next State) {
	jww.TRACE.Printf("State %s -> %s", r.State, next)
	r.State = next
	r.Steps = append(r.Steps, next)
}

// flush records the console output in the report and copies it to out.
func (r *Report) flush(console *bytes.Buffer, out io.Writer) error {
	r.Output = console.Bytes()
	r.Digest = blake2b.Sum256(r.Output)
	jww.DEBUG.Printf("Run finished in state %s, status %d, digest %X",
		r.State, r.Status, r.Digest)

	if _, err := out.Write(r.Output); err != nil {
		return errors.Wrap(err, errOutput)
	}
	return nil
}
