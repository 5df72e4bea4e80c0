////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package handle

import (
	"io"

	"github.com/pkg/errors"
)

const errWriteOnly = "console output is write only"

// consoleIn is the reader bound to ConsoleIn.
type consoleIn struct {
	r io.Reader
}

func (c *consoleIn) Read(p []byte) (int, error) {
	if c.r == nil {
		return 0, io.EOF
	}
	return c.r.Read(p)
}

// consoleOut is bound to ConsoleOut. Writing through handles is not
// supported, so the slot only exists to be refused by Read.
type consoleOut struct{}

func (consoleOut) Read([]byte) (int, error) {
	return 0, errors.New(errWriteOnly)
}
