// ABOUTME: Screen compositor: accumulates one full frame of control sequences and text in memory
// ABOUTME: End flushes the frame with a single WriteAll so the terminal never shows a partial frame

package tui

import (
	"bytes"
	"errors"
	"fmt"

	pilog "github.com/mauromedda/kilo-go/internal/log"
	"github.com/mauromedda/kilo-go/pkg/tui/internal/pool"
	"github.com/mauromedda/kilo-go/pkg/tui/vt100"
)

// ErrNoFrame is returned by End when no frame was begun.
var ErrNoFrame = errors.New("tui: end without begin")

// Sink receives complete frames. terminal.Stream satisfies it.
type Sink interface {
	WriteAll(p []byte) error
}

// Compositor builds frames between Begin and End. Drawing calls made
// outside a frame are ignored, so nothing reaches the sink unbracketed.
// A Compositor is not safe for concurrent use.
type Compositor struct {
	sink Sink
	buf  *bytes.Buffer // nil outside a frame
}

// NewCompositor returns a Compositor writing frames to sink.
func NewCompositor(sink Sink) *Compositor {
	return &Compositor{sink: sink}
}

// Begin starts a new, empty frame. An unfinished frame is discarded.
func (c *Compositor) Begin() {
	if c.buf != nil {
		pilog.Debug("tui: discarding unfinished frame (%d bytes)", c.buf.Len())
		c.buf.Reset()
		return
	}
	c.buf = pool.GetFrameBuffer()
}

// InFrame reports whether a frame is open.
func (c *Compositor) InFrame() bool {
	return c.buf != nil
}

// HideCursor appends the hide-cursor mode sequence.
func (c *Compositor) HideCursor() { c.AppendString(vt100.HideCursor) }

// ShowCursor appends the show-cursor mode sequence.
func (c *Compositor) ShowCursor() { c.AppendString(vt100.ShowCursor) }

// MoveCursorHome moves the cursor to row 1, column 1.
func (c *Compositor) MoveCursorHome() { c.AppendString(vt100.CursorHome) }

// EraseLine clears from the cursor to the end of the line.
func (c *Compositor) EraseLine() { c.AppendString(vt100.EraseLine) }

// EraseDisplay clears the whole screen.
func (c *Compositor) EraseDisplay() { c.AppendString(vt100.EraseDisplay) }

// MoveCursorTo moves the cursor to the 1-based row and col. Values below
// 1 are clamped to 1; (1,1) is emitted as the short home sequence.
func (c *Compositor) MoveCursorTo(row, col int) {
	if c.buf == nil {
		return
	}
	row, col = max(row, 1), max(col, 1)
	if row == 1 && col == 1 {
		c.buf.WriteString(vt100.CursorHome)
		return
	}
	c.buf.Write(vt100.AppendCursorPosition(c.buf.AvailableBuffer(), row, col))
}

// AppendText appends raw content bytes.
func (c *Compositor) AppendText(p []byte) {
	if c.buf == nil {
		return
	}
	c.buf.Write(p)
}

// AppendString appends raw content.
func (c *Compositor) AppendString(s string) {
	if c.buf == nil {
		return
	}
	c.buf.WriteString(s)
}

// End writes the accumulated frame to the sink in one call and closes the
// frame. The buffer is released even when the write fails.
func (c *Compositor) End() error {
	if c.buf == nil {
		return ErrNoFrame
	}
	buf := c.buf
	c.buf = nil
	defer pool.PutFrameBuffer(buf)

	if err := c.sink.WriteAll(buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Frame renders one complete frame: the cursor is hidden before draw
// runs and shown again after it.
func (c *Compositor) Frame(draw func(*Compositor)) error {
	c.Begin()
	c.HideCursor()
	if draw != nil {
		draw(c)
	}
	c.ShowCursor()
	return c.End()
}
