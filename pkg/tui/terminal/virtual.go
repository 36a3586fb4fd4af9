// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Simulated termios store, scripted input chunks with timeouts, per-call write capture, injectable failures.

package terminal

import (
	"bytes"
	"sync"

	"golang.org/x/sys/unix"
)

// VirtualTerminal is a fake Terminal for unit tests. Input is scripted as
// a queue of chunks; an empty chunk, or an exhausted queue, reads as a
// timeout. Every Write call is recorded separately.
type VirtualTerminal struct {
	mu sync.Mutex

	attr     unix.Termios
	setCount int
	rows     int
	cols     int

	input   [][]byte
	pending []byte

	out      bytes.Buffer
	writes   [][]byte
	maxWrite int

	respond func(written []byte) []byte

	getErr   error
	setErr   error
	sizeErr  error
	readErr  error
	writeErr error
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions
// and cooked-mode attributes.
func NewVirtualTerminal(rows, cols int) *VirtualTerminal {
	return &VirtualTerminal{
		attr: CookedAttr(),
		rows: rows,
		cols: cols,
	}
}

// CookedAttr returns a typical line-buffered, echoing attribute set.
func CookedAttr() unix.Termios {
	var attr unix.Termios
	attr.Iflag = unix.BRKINT | unix.ICRNL | unix.IXON
	attr.Oflag = unix.OPOST
	attr.Cflag = unix.CS7 | unix.CREAD
	attr.Lflag = unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	attr.Cc[unix.VMIN] = 1
	attr.Cc[unix.VTIME] = 0
	return attr
}

// GetAttr returns a copy of the stored attributes.
func (v *VirtualTerminal) GetAttr() (*unix.Termios, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.getErr != nil {
		return nil, &DeviceError{Op: "tcgetattr", Err: v.getErr}
	}
	attr := v.attr
	return &attr, nil
}

// SetAttr replaces the stored attributes.
func (v *VirtualTerminal) SetAttr(attr *unix.Termios) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.setErr != nil {
		return &DeviceError{Op: "tcsetattr", Err: v.setErr}
	}
	v.attr = *attr
	v.setCount++
	return nil
}

// WindowSize returns the configured dimensions.
func (v *VirtualTerminal) WindowSize() (rows, cols int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sizeErr != nil {
		return 0, 0, &DeviceError{Op: "ioctl TIOCGWINSZ", Err: v.sizeErr}
	}
	return v.rows, v.cols, nil
}

// Read delivers scripted input. It never blocks.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.readErr != nil {
		return 0, &DeviceError{Op: "read", Err: v.readErr}
	}
	if len(v.pending) == 0 {
		if len(v.input) == 0 {
			return 0, nil
		}
		v.pending = v.input[0]
		v.input = v.input[1:]
		if len(v.pending) == 0 {
			return 0, nil
		}
	}
	n := copy(p, v.pending)
	v.pending = v.pending[n:]
	return n, nil
}

// Write records p, honoring the short-write limit set by SetMaxWrite.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.writeErr != nil {
		return 0, &DeviceError{Op: "write", Err: v.writeErr}
	}
	n := len(p)
	if v.maxWrite > 0 && n > v.maxWrite {
		n = v.maxWrite
	}
	v.out.Write(p[:n])
	v.writes = append(v.writes, bytes.Clone(p[:n]))

	if v.respond != nil {
		if reply := v.respond(p[:n]); len(reply) > 0 {
			v.input = append(v.input, reply)
		}
	}
	return n, nil
}

// --- Test helpers (not part of Terminal interface) ---

// QueueInput appends one chunk of input; its bytes arrive without delay.
func (v *VirtualTerminal) QueueInput(data string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.input = append(v.input, []byte(data))
}

// QueueTimeout appends a read that times out with no data.
func (v *VirtualTerminal) QueueTimeout() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.input = append(v.input, []byte{})
}

// Respond installs fn to inspect each write; a non-empty return value is
// queued as input, as a terminal answering a query would.
func (v *VirtualTerminal) Respond(fn func(written []byte) []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.respond = fn
}

// Attr returns the stored attributes.
func (v *VirtualTerminal) Attr() unix.Termios {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.attr
}

// SetCount returns how many times SetAttr succeeded.
func (v *VirtualTerminal) SetCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.setCount
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.out.String()
}

// Writes returns the payload of each Write call, in order.
func (v *VirtualTerminal) Writes() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]string, len(v.writes))
	for i, w := range v.writes {
		out[i] = string(w)
	}
	return out
}

// Reset clears the captured output.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.out.Reset()
	v.writes = nil
}

// SetSize updates the dimensions reported by WindowSize.
func (v *VirtualTerminal) SetSize(rows, cols int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rows = rows
	v.cols = cols
}

// SetMaxWrite caps the bytes accepted per Write call; 0 means no cap.
func (v *VirtualTerminal) SetMaxWrite(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.maxWrite = n
}

// FailGetAttr makes GetAttr fail with err; nil clears the failure.
func (v *VirtualTerminal) FailGetAttr(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.getErr = err
}

// FailSetAttr makes SetAttr fail with err; nil clears the failure.
func (v *VirtualTerminal) FailSetAttr(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.setErr = err
}

// FailWindowSize makes WindowSize fail with err; nil clears the failure.
func (v *VirtualTerminal) FailWindowSize(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.sizeErr = err
}

// FailRead makes Read fail with err; nil clears the failure.
func (v *VirtualTerminal) FailRead(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.readErr = err
}

// FailWrite makes Write fail with err; nil clears the failure.
func (v *VirtualTerminal) FailWrite(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeErr = err
}
