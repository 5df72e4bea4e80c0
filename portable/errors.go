////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package portable

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	objectNotFoundErr = "object not found"
	objectNotExistErr = "does not exist"
	errNotDirectory   = "Not a readable object, %s is a directory"
	errReadOnly       = "Object %s is opened read only"
)

// IsNotExist determines if the error is known to report that a backing
// object does not exist. Key-value stores are free to use their own error
// values, so their messages are matched as well.
func IsNotExist(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		return true
	}

	msg := errors.Cause(err).Error()
	return strings.Contains(msg, objectNotFoundErr) ||
		strings.Contains(msg, objectNotExistErr)
}

// notExist normalises a backend lookup failure into an os.ErrNotExist based
// error when it describes a missing object.
func notExist(name string, err error) error {
	if IsNotExist(err) {
		return errors.WithStack(&os.PathError{
			Op: "open", Path: name, Err: os.ErrNotExist})
	}
	return errors.Wrapf(err, "Failed to open %s", name)
}
