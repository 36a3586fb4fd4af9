// ABOUTME: Geometry resolution: direct TIOCGWINSZ query with a cursor-position probe fallback.
// ABOUTME: The probe pushes the cursor to the bottom-right corner and asks the terminal where it ended up.

package terminal

import (
	pilog "github.com/mauromedda/kilo-go/internal/log"
	"github.com/mauromedda/kilo-go/pkg/tui/vt100"
)

const (
	// probeDistance overshoots any real screen; the terminal clips the move.
	probeDistance = 999

	// replyPatience is how many idle reads to wait for the first reply byte.
	replyPatience = 10
)

// Geometry is the usable screen size in character cells.
type Geometry struct {
	Rows int
	Cols int
}

// ResolveGeometry asks the OS for the window size and falls back to
// Probe when the query fails or reports a zero dimension.
func ResolveGeometry(t Terminal, s *Stream) (Geometry, error) {
	rows, cols, err := t.WindowSize()
	if err == nil && rows > 0 && cols > 0 {
		return Geometry{Rows: rows, Cols: cols}, nil
	}
	if err != nil {
		pilog.Debug("terminal: window size query failed (%v), probing cursor position", err)
	} else {
		pilog.Debug("terminal: window size query returned %dx%d, probing cursor position", rows, cols)
	}
	return Probe(s)
}

// Probe determines the geometry in-band: it moves the cursor as far right
// and down as the terminal allows, requests a cursor position report and
// parses the reply from the input stream. Input that arrives before the
// reply is consumed by the probe.
func Probe(s *Stream) (Geometry, error) {
	req := make([]byte, 0, 24)
	req = vt100.AppendCursorForward(req, probeDistance)
	req = vt100.AppendCursorDown(req, probeDistance)
	req = append(req, vt100.ReportCursorPosition...)
	if err := s.WriteAll(req); err != nil {
		return Geometry{}, err
	}

	reply, err := readCursorReport(s)
	if err != nil {
		return Geometry{}, err
	}
	return ParseCursorReport(reply)
}

// readCursorReport collects bytes up to and including 'R', reading at most
// maxReportLen bytes. Once the reply has started, a timeout truncates it.
func readCursorReport(s *Stream) ([]byte, error) {
	reply := make([]byte, 0, maxReportLen)
	idle := 0
	for len(reply) < maxReportLen {
		b, ok, err := s.PollByte()
		if err != nil {
			return nil, err
		}
		if !ok {
			if len(reply) == 0 && idle < replyPatience {
				idle++
				continue
			}
			return nil, &ProtocolError{Reply: reply, Reason: "truncated reply"}
		}
		reply = append(reply, b)
		if b == 'R' {
			return reply, nil
		}
	}
	return nil, &ProtocolError{Reply: reply, Reason: "reply too long"}
}
