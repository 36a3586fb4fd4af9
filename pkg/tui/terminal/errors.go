// ABOUTME: Error taxonomy for terminal operations: DeviceError for failing OS calls, ProtocolError for bad probe replies.
// ABOUTME: A read timeout is deliberately not represented here; it is the normal idle signal.

package terminal

import (
	"errors"
	"fmt"
)

// ErrSessionActive is returned when raw mode is entered on a device that
// already has an active session.
var ErrSessionActive = errors.New("raw-mode session already active")

// DeviceError reports a failing OS call on the terminal device.
type DeviceError struct {
	Op  string // e.g. "tcgetattr", "read", "write"
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// ProtocolError reports a malformed or truncated cursor position report.
type ProtocolError struct {
	Reply  []byte
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("bad cursor position report %q: %s", e.Reply, e.Reason)
}

func deviceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DeviceError
	if errors.As(err, &de) {
		return err
	}
	return &DeviceError{Op: op, Err: err}
}
