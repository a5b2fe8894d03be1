// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError requests a non-zero exit status without an extra error
// line. Commands return it after they have already reported the
// problem, e.g. when some input events could not be parsed.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit status. main checks for this method to
// tell a handled failure from an error it should print.
func (e *ExitError) ExitCode() int {
	return e.Code
}
