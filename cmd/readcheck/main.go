////////////////////////////////////////////////////////////////////////////////
// Copyright © 2026 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Command readcheck runs the read-path fixture: it opens write.out, reads 10
// bytes and echoes them. It exits with -1002 (22 as seen by a POSIX shell)
// if the file cannot be opened and 0 otherwise.
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
