// ABOUTME: Defines the Terminal device interface: line-discipline attributes, window size, and raw byte I/O.
// ABOUTME: Implementations target a real tty (ProcessTerminal) or a simulated one (VirtualTerminal).

// Package terminal owns the controlling terminal: raw-mode sessions,
// non-blocking byte I/O, and screen geometry resolution.
//
// The device is always passed around as a Terminal handle; VirtualTerminal
// stands in for it in tests.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal

import "golang.org/x/sys/unix"

// Terminal abstracts the terminal device: attribute get/set, a direct
// window-size query, and byte-level read/write.
//
// Read follows raw-mode semantics: (0, nil) means the read timeout
// elapsed with no data.
type Terminal interface {
	GetAttr() (*unix.Termios, error)
	SetAttr(attr *unix.Termios) error
	WindowSize() (rows, cols int, err error)
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
}
