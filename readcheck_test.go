////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package readcheck

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"gitlab.com/elixxir/readcheck/handle"
	"gitlab.com/elixxir/readcheck/portable"
)

// newSyscalls returns a handle table over an in-memory filesystem holding
// the given objects.
func newSyscalls(t *testing.T, objects map[string]string) *handle.Table {
	fs := memfs.New()
	for name, contents := range objects {
		err := util.WriteFile(fs, name, []byte(contents), 0600)
		if err != nil {
			t.Fatalf("Failed to seed %s: %v", name, err)
		}
	}
	return handle.NewTable(portable.UseBilly(fs), nil)
}

// recorder wraps Syscalls and counts calls.
type recorder struct {
	Syscalls
	opens, reads int
}

func (r *recorder) Open(name string) int {
	r.opens++
	return r.Syscalls.Open(name)
}

func (r *recorder) Read(fd int, buf []byte, count int) int {
	r.reads++
	return r.Syscalls.Read(fd, buf, count)
}

// Tests the happy path: the output is the pass line followed by the first
// ten bytes.
func TestRun_Pass(t *testing.T) {
	sys := newSyscalls(t, map[string]string{
		DefaultName: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"})
	var out bytes.Buffer

	r, err := Run(DefaultConfig(), sys, &out)
	if err != nil {
		t.Fatalf("Run failed: %+v", err)
	}

	expected := "...passed (fd = 2)\nABCDEFGHIJ"
	if out.String() != expected {
		t.Errorf("Output %q, expected %q", out.String(), expected)
	}
	if r.Status != 0 || r.State != Pass || r.ShortRead {
		t.Errorf("Unexpected report: %+v", r)
	}
	if !reflect.DeepEqual(r.Steps, []State{Start, Opening, Reading, Pass}) {
		t.Errorf("Unexpected steps %v", r.Steps)
	}
	if r.Handle < 0 || r.Count != DefaultRequestLen {
		t.Errorf("Handle %d, count %d", r.Handle, r.Count)
	}
	if !bytes.Equal(r.Output, out.Bytes()) {
		t.Errorf("Report output %q differs from console %q", r.Output,
			out.String())
	}
}

// Tests that a missing object ends the run with the fail status and that no
// read is issued.
func TestRun_OpenFailure(t *testing.T) {
	sys := &recorder{Syscalls: newSyscalls(t, nil)}
	var out bytes.Buffer

	r, err := Run(DefaultConfig(), sys, &out)
	if err != nil {
		t.Fatalf("Run failed: %+v", err)
	}

	if out.String() != "...failed (-1)\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
	if r.Status != DefaultFailStatus || r.State != Fail {
		t.Errorf("Expected status %d in state %s, got %d in %s",
			DefaultFailStatus, Fail, r.Status, r.State)
	}
	if !reflect.DeepEqual(r.Steps, []State{Start, Opening, Fail}) {
		t.Errorf("Unexpected steps %v", r.Steps)
	}
	if sys.opens != 1 || sys.reads != 0 || r.Read {
		t.Errorf("Expected 1 open and no reads, got %d and %d",
			sys.opens, sys.reads)
	}
	if r.Inspected != nil {
		t.Errorf("Inspected a buffer after a failed open: %q", r.Inspected)
	}
}

// Tests that a short object is a soft failure: the mismatch is reported,
// the span is still echoed with NULs past the count, and the status is 0.
func TestRun_ShortRead(t *testing.T) {
	sys := newSyscalls(t, map[string]string{DefaultName: "abc"})
	var out bytes.Buffer

	r, err := Run(DefaultConfig(), sys, &out)
	if err != nil {
		t.Fatalf("Run failed: %+v", err)
	}

	expected := "...passed (fd = 2)\n...failed (r = 3)\nabc" +
		strings.Repeat("\x00", 7)
	if out.String() != expected {
		t.Errorf("Output %q, expected %q", out.String(), expected)
	}
	if r.Status != 0 || r.State != Pass || !r.ShortRead || r.Count != 3 {
		t.Errorf("Unexpected report: %+v", r)
	}
}

// failedRead opens every name and fails every read.
type failedRead struct{}

func (failedRead) Open(string) int           { return 5 }
func (failedRead) Read(int, []byte, int) int { return -1 }

// Tests that a negative read count is also a soft failure.
func TestRun_ReadFailure(t *testing.T) {
	var out bytes.Buffer

	r, err := Run(DefaultConfig(), failedRead{}, &out)
	if err != nil {
		t.Fatalf("Run failed: %+v", err)
	}

	expected := "...passed (fd = 5)\n...failed (r = -1)\n" +
		strings.Repeat("\x00", 10)
	if out.String() != expected {
		t.Errorf("Output %q, expected %q", out.String(), expected)
	}
	if r.Status != 0 {
		t.Errorf("A failed read must not change the status, got %d",
			r.Status)
	}
}

// Tests that two runs against the same unmodified object agree.
func TestRun_Idempotent(t *testing.T) {
	objects := map[string]string{DefaultName: "0123456789abcdef"}
	var out1, out2 bytes.Buffer

	r1, err := Run(DefaultConfig(), newSyscalls(t, objects), &out1)
	if err != nil {
		t.Fatalf("First run failed: %+v", err)
	}
	r2, err := Run(DefaultConfig(), newSyscalls(t, objects), &out2)
	if err != nil {
		t.Fatalf("Second run failed: %+v", err)
	}

	if out1.String() != out2.String() || r1.Digest != r2.Digest {
		t.Errorf("Runs differ: %q (%X) != %q (%X)", out1.String(),
			r1.Digest, out2.String(), r2.Digest)
	}
}

// Tests overriding the fixed parameters.
func TestRun_Config(t *testing.T) {
	sys := newSyscalls(t, map[string]string{"other.bin": "xyz"})
	cfg := DefaultConfig()
	cfg.Name = "other.bin"
	cfg.RequestLen = 3
	cfg.BufferSize = 3
	cfg.InspectLen = 2
	var out bytes.Buffer

	r, err := Run(cfg, sys, &out)
	if err != nil {
		t.Fatalf("Run failed: %+v", err)
	}
	if out.String() != "...passed (fd = 2)\nxy" {
		t.Errorf("Unexpected output %q", out.String())
	}
	if r.ShortRead {
		t.Errorf("Full read of 3 bytes reported as short")
	}
}

// Tests that the configured fail status is used.
func TestRun_FailStatus(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailStatus = 3

	r, err := Run(cfg, newSyscalls(t, nil), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Run failed: %+v", err)
	}
	if r.Status != 3 {
		t.Errorf("Expected status 3, got %d", r.Status)
	}
}

// Tests that an invalid config is refused before any syscall.
func TestRun_InvalidConfig(t *testing.T) {
	sys := &recorder{Syscalls: newSyscalls(t, nil)}
	cfg := DefaultConfig()
	cfg.BufferSize = 4

	if _, err := Run(cfg, sys, &bytes.Buffer{}); err == nil {
		t.Errorf("Run accepted a buffer smaller than the request")
	}
	if sys.opens != 0 {
		t.Errorf("Run issued %d opens with an invalid config", sys.opens)
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

// Tests that console write failures are returned alongside the report.
func TestRun_OutputError(t *testing.T) {
	sys := newSyscalls(t, map[string]string{DefaultName: "ABCDEFGHIJ"})

	r, err := Run(DefaultConfig(), sys, brokenWriter{})
	if err == nil {
		t.Errorf("Expected an output error")
	}
	if r == nil || r.Status != 0 {
		t.Errorf("Report should survive an output error: %+v", r)
	}
}

func TestState_String(t *testing.T) {
	if Pass.String() != "pass" || State(42).String() != "State(42)" {
		t.Errorf("Unexpected state names %s, %s", Pass, State(42))
	}
}
