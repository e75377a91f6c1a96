// Package fatal implements the process-abort path for synchronization
// states that the locking protocol guarantees can never happen: log a
// diagnostic and terminate, rather than attempt to unwind through code
// that no longer holds the invariants it assumes.
//
// Go's sync primitives cannot themselves return an error the way a
// failing system call can, so nothing here is reachable in a build free
// of the bug it guards against; it exists purely as the documented,
// named failure path for "this counter should never go negative".
package fatal

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Abort logs msg (formatted with args, fmt.Sprintf-style) with a stack
// trace attached and terminates the process. It never returns.
func Abort(msg string, args ...any) {
	err := errors.Errorf(msg, args...)
	fmt.Fprintf(os.Stderr, "foldertree: fatal: %+v\n", err)
	os.Exit(2)
}
