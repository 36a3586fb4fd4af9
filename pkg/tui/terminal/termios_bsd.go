// ABOUTME: BSD and macOS ioctl request codes for reading and writing termios.
// ABOUTME: TIOCSETAF drains output and flushes pending input, matching tcsetattr(TCSAFLUSH).

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TIOCGETA
	ioctlSetTermios = unix.TIOCSETAF
)
