// ABOUTME: Raw-mode Session: snapshots termios, applies the uncooked attribute set, restores the exact snapshot.
// ABOUTME: One active session per device; Release aborts the process if restoration fails.

package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	pilog "github.com/mauromedda/kilo-go/internal/log"
)

// readTimeoutDeciseconds is VTIME: how long a read waits for the first byte.
const readTimeoutDeciseconds = 1

// active maps a device key to its live *Session.
var active sync.Map

// deviceKeyer is implemented by terminals that can name the underlying
// device, so distinct handles on one tty share a registry entry.
type deviceKeyer interface {
	deviceKey() (any, bool)
}

// sessionKey returns the registry key for t: its device identity when
// known, otherwise the handle itself.
func sessionKey(t Terminal) any {
	if dk, ok := t.(deviceKeyer); ok {
		if k, ok := dk.deviceKey(); ok {
			return k
		}
	}
	return t
}

// Overridable in tests; a failed restore must not return to the caller.
var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// Session holds a terminal in raw mode. The zero value is not usable;
// obtain one from EnterRawMode.
type Session struct {
	t    Terminal
	key  any
	orig unix.Termios
	done bool
}

// MakeRaw derives the raw attribute set from orig: no break-to-interrupt,
// no CR-to-NL, no parity check, no high-bit strip, no XON/XOFF, no output
// post-processing, 8-bit chars, no echo, no canonical mode, no extended
// input processing, no signal characters, and reads that return after
// 100ms with whatever arrived.
func MakeRaw(orig unix.Termios) unix.Termios {
	raw := orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = readTimeoutDeciseconds
	return raw
}

// EnterRawMode snapshots t's attributes and switches it to raw mode.
// It fails with ErrSessionActive if t's device already has a live
// session, even through another handle, and with a *DeviceError if the
// attributes cannot be read or applied.
func EnterRawMode(t Terminal) (*Session, error) {
	s := &Session{t: t, key: sessionKey(t)}
	if _, loaded := active.LoadOrStore(s.key, s); loaded {
		return nil, ErrSessionActive
	}

	orig, err := t.GetAttr()
	if err != nil {
		active.Delete(s.key)
		return nil, deviceErr("tcgetattr", err)
	}
	s.orig = *orig

	raw := MakeRaw(s.orig)
	if err := t.SetAttr(&raw); err != nil {
		active.Delete(s.key)
		return nil, deviceErr("tcsetattr", err)
	}

	pilog.Debug("terminal: entered raw mode")
	return s, nil
}

// Terminal returns the device this session controls.
func (s *Session) Terminal() Terminal {
	return s.t
}

// Leave writes back the snapshot taken by EnterRawMode. Only the first
// successful call has an effect.
func (s *Session) Leave() error {
	if s.done {
		return nil
	}
	orig := s.orig
	if err := s.t.SetAttr(&orig); err != nil {
		return deviceErr("tcsetattr", err)
	}
	s.done = true
	active.CompareAndDelete(s.key, s)
	pilog.Debug("terminal: left raw mode")
	return nil
}

// Release is the deferred form of Leave. A terminal left in raw mode
// breaks the user's shell, so a failed restore terminates the process.
func (s *Session) Release() {
	if err := s.Leave(); err != nil {
		fmt.Fprintf(stderr, "\r\nfatal: cannot restore terminal mode: %v\r\n", err)
		exit(1)
	}
}

// WithRawMode runs fn with t in raw mode. The original attributes are
// restored on every exit path, including a panic inside fn.
func WithRawMode(t Terminal, fn func(*Session) error) error {
	s, err := EnterRawMode(t)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer s.Release()

	return fn(s)
}
