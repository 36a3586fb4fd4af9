// ABOUTME: Stream is the byte source/sink over a Terminal: one-byte polling reads and complete writes.
// ABOUTME: A read timeout yields ok=false, never an error; partial writes are retried until done.

package terminal

import "io"

// Stream provides the synchronous byte primitives the decoder, the
// geometry probe and the compositor are built on. It adds no buffering of
// its own.
type Stream struct {
	t   Terminal
	one [1]byte
}

// NewStream returns a Stream over t.
func NewStream(t Terminal) *Stream {
	return &Stream{t: t}
}

// PollByte returns the next input byte. ok is false when the read timeout
// elapsed with no data.
func (s *Stream) PollByte() (b byte, ok bool, err error) {
	n, err := s.t.Read(s.one[:])
	if err != nil {
		return 0, false, deviceErr("read", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return s.one[0], true, nil
}

// WriteAll writes all of p, retrying short writes.
func (s *Stream) WriteAll(p []byte) error {
	for len(p) > 0 {
		n, err := s.t.Write(p)
		if err != nil {
			return deviceErr("write", err)
		}
		if n <= 0 {
			return &DeviceError{Op: "write", Err: io.ErrShortWrite}
		}
		p = p[n:]
	}
	return nil
}
