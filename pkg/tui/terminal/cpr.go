// ABOUTME: Parser for the cursor position report ESC [ rows ; cols R.
// ABOUTME: Any deviation from the grammar is a ProtocolError; both fields must be positive 16-bit decimals.

package terminal

import (
	"bytes"
	"strconv"
)

const (
	// ESC [ d ; d R
	minReportLen = 6
	// ESC [ ddddd ; ddddd R
	maxReportLen = 14
)

// ParseCursorReport parses a complete cursor position report.
func ParseCursorReport(reply []byte) (Geometry, error) {
	bad := func(reason string) (Geometry, error) {
		return Geometry{}, &ProtocolError{Reply: bytes.Clone(reply), Reason: reason}
	}

	switch {
	case len(reply) < minReportLen:
		return bad("too short")
	case len(reply) > maxReportLen:
		return bad("too long")
	case reply[0] != 0x1b || reply[1] != '[':
		return bad("missing ESC [ prefix")
	case reply[len(reply)-1] != 'R':
		return bad("missing R terminator")
	}

	body := reply[2 : len(reply)-1]
	mid := bytes.IndexByte(body, ';')
	if mid < 0 {
		return bad("missing ; separator")
	}

	rows, err := strconv.ParseUint(string(body[:mid]), 10, 16)
	if err != nil {
		return bad("rows field is not a number")
	}
	cols, err := strconv.ParseUint(string(body[mid+1:]), 10, 16)
	if err != nil {
		return bad("cols field is not a number")
	}
	if rows == 0 || cols == 0 {
		return bad("zero dimension")
	}
	return Geometry{Rows: int(rows), Cols: int(cols)}, nil
}
