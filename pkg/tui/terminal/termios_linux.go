// ABOUTME: Linux ioctl request codes for reading and writing termios.
// ABOUTME: TCSETSF drains output and flushes pending input, matching tcsetattr(TCSAFLUSH).

//go:build linux

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETSF
)
