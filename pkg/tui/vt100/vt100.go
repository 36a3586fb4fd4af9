// ABOUTME: VT100/xterm control sequences used by the screen compositor and the geometry probe
// ABOUTME: Constant sequences plus allocation-free appenders for parameterized cursor moves

package vt100

import "strconv"

// CSI is the control sequence introducer.
const CSI = "\x1b["

// Fixed control sequences.
const (
	EraseDisplay = CSI + "2J"
	EraseLine    = CSI + "K"
	CursorHome   = CSI + "H"
	HideCursor   = CSI + "?25l"
	ShowCursor   = CSI + "?25h"

	// ReportCursorPosition asks the terminal to reply with ESC [ rows ; cols R.
	ReportCursorPosition = CSI + "6n"
)

// AppendCursorPosition appends ESC [ row ; col H. Row and column are 1-based.
func AppendCursorPosition(dst []byte, row, col int) []byte {
	dst = append(dst, CSI...)
	dst = strconv.AppendInt(dst, int64(row), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(col), 10)
	return append(dst, 'H')
}

// AppendCursorForward appends ESC [ n C.
func AppendCursorForward(dst []byte, n int) []byte {
	dst = append(dst, CSI...)
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, 'C')
}

// AppendCursorDown appends ESC [ n B.
func AppendCursorDown(dst []byte, n int) []byte {
	dst = append(dst, CSI...)
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, 'B')
}

// CursorPosition returns ESC [ row ; col H as a string.
func CursorPosition(row, col int) string {
	var buf [16]byte
	return string(AppendCursorPosition(buf[:0], row, col))
}
