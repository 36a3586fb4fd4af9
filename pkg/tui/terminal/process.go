// ABOUTME: ProcessTerminal implements Terminal over real tty file descriptors using golang.org/x/sys/unix.
// ABOUTME: Termios via ioctl, window size via TIOCGWINSZ, reads via read(2) honoring VMIN/VTIME timeouts.

package terminal

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ProcessTerminal is a real terminal backed by an input and an output file,
// normally os.Stdin and os.Stdout.
type ProcessTerminal struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
}

// NewProcessTerminal returns a ProcessTerminal bound to stdin and stdout.
func NewProcessTerminal() *ProcessTerminal {
	return OpenTerminal(os.Stdin, os.Stdout)
}

// OpenTerminal returns a ProcessTerminal reading from in and writing to out.
// Attributes are read and written on in; the window size is queried on out.
func OpenTerminal(in, out *os.File) *ProcessTerminal {
	return &ProcessTerminal{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

// IsTerminal reports whether the input side is a terminal.
func (t *ProcessTerminal) IsTerminal() bool {
	return term.IsTerminal(t.inFd)
}

// ttyKey identifies a terminal device independent of the file handle.
type ttyKey struct {
	dev, ino, rdev uint64
}

// deviceKey names the device behind the input fd. Character devices are
// keyed by rdev so /dev/tty and /dev/pts/N on one terminal collide.
func (t *ProcessTerminal) deviceKey() (any, bool) {
	var st unix.Stat_t
	if err := unix.Fstat(t.inFd, &st); err != nil {
		return nil, false
	}
	if uint32(st.Mode)&unix.S_IFMT == unix.S_IFCHR {
		return ttyKey{rdev: uint64(st.Rdev)}, true
	}
	return ttyKey{dev: uint64(st.Dev), ino: uint64(st.Ino)}, true
}

// GetAttr reads the current line-discipline settings of the input fd.
func (t *ProcessTerminal) GetAttr() (*unix.Termios, error) {
	attr, err := unix.IoctlGetTermios(t.inFd, ioctlGetTermios)
	if err != nil {
		return nil, &DeviceError{Op: "tcgetattr", Err: err}
	}
	return attr, nil
}

// SetAttr applies attr to the input fd after draining output and
// discarding unread input.
func (t *ProcessTerminal) SetAttr(attr *unix.Termios) error {
	if err := unix.IoctlSetTermios(t.inFd, ioctlSetTermios, attr); err != nil {
		return &DeviceError{Op: "tcsetattr", Err: err}
	}
	return nil
}

// WindowSize queries the kernel for the output terminal's dimensions.
func (t *ProcessTerminal) WindowSize() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, &DeviceError{Op: "ioctl TIOCGWINSZ", Err: err}
	}
	return int(ws.Row), int(ws.Col), nil
}

// Read performs a single read(2). With VMIN=0 and VTIME>0 the kernel
// returns zero bytes once the timeout elapses; that, EINTR and EAGAIN are
// all reported as (0, nil).
func (t *ProcessTerminal) Read(p []byte) (int, error) {
	n, err := unix.Read(t.inFd, p)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		return 0, &DeviceError{Op: "read", Err: err}
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// Write sends p to the output file.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := t.out.Write(p)
	if err != nil {
		return n, &DeviceError{Op: "write", Err: err}
	}
	return n, nil
}
