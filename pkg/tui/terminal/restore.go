// ABOUTME: RestoreOnPanic recovers from panics, restores the terminal, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the goroutine that owns the raw-mode session.

package terminal

import (
	"fmt"
	"runtime/debug"

	"github.com/mauromedda/kilo-go/pkg/tui/vt100"
)

// RestoreOnPanic should be deferred right after EnterRawMode. On panic it
// shows the cursor, restores the original terminal mode, prints the panic
// value and stack trace, then exits with code 1.
func RestoreOnPanic(s *Session) {
	r := recover()
	if r == nil {
		return
	}

	// Best-effort: show cursor and exit raw mode.
	_, _ = s.t.Write([]byte(vt100.ShowCursor))
	_ = s.Leave()

	fmt.Fprintf(stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	exit(1)
}
