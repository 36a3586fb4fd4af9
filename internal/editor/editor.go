// ABOUTME: Minimal full-screen viewer built on the raw terminal layer: draw rows, move the cursor, quit on Ctrl-Q
// ABOUTME: Owns the raw-mode session for its whole run so every exit path restores the terminal

package editor

import (
	"context"
	"errors"
	"strings"

	pilog "github.com/mauromedda/kilo-go/internal/log"
	"github.com/mauromedda/kilo-go/pkg/tui"
	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
	"github.com/mauromedda/kilo-go/pkg/tui/width"
)

// ctrlQ is the quit key.
const ctrlQ = 'q' & 0x1f

// Options configure an Editor.
type Options struct {
	// TabStop is the tab width in columns.
	TabStop int
	// Welcome is the banner for an empty buffer; %s becomes Version.
	Welcome string
	Version string
	// ForceProbe skips the window-size query and always uses the
	// cursor-position probe.
	ForceProbe bool
	// Resize, when set, signals that the geometry must be re-resolved.
	Resize <-chan struct{}
}

// Editor is the viewer state. It is driven from a single goroutine.
type Editor struct {
	term   terminal.Terminal
	stream *terminal.Stream
	keys   *key.Decoder
	screen *tui.Compositor
	opts   Options

	rows []string
	geo  terminal.Geometry

	// Cursor position on screen, 0-based.
	cy, cx int
}

// New returns an Editor on t with an empty buffer.
func New(t terminal.Terminal, opts Options) *Editor {
	if opts.TabStop < 1 {
		opts.TabStop = width.DefaultTabStop
	}
	stream := terminal.NewStream(t)
	return &Editor{
		term:   t,
		stream: stream,
		keys:   key.NewDecoder(stream),
		screen: tui.NewCompositor(stream),
		opts:   opts,
	}
}

// Run puts the terminal in raw mode, resolves the screen size and
// processes keys until Ctrl-Q or until ctx is done. The screen is cleared
// on the way out in both cases.
func (e *Editor) Run(ctx context.Context) error {
	return terminal.WithRawMode(e.term, func(s *terminal.Session) error {
		defer terminal.RestoreOnPanic(s)

		if err := e.resolve(); err != nil {
			return err
		}
		return e.loop(ctx)
	})
}

func (e *Editor) loop(ctx context.Context) error {
	if err := e.refresh(); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return errors.Join(err, e.clear())
		}
		if e.resized() {
			if err := e.resolve(); err != nil {
				return err
			}
			if err := e.refresh(); err != nil {
				return err
			}
		}

		k, ok, err := e.keys.Poll()
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if e.process(k) {
			return e.clear()
		}
		if err := e.refresh(); err != nil {
			return err
		}
	}
}

// resized drains a pending resize notification.
func (e *Editor) resized() bool {
	select {
	case <-e.opts.Resize:
		return true
	default:
		return false
	}
}

// resolve updates the geometry and keeps the cursor on screen.
func (e *Editor) resolve() error {
	var (
		geo terminal.Geometry
		err error
	)
	if e.opts.ForceProbe {
		geo, err = terminal.Probe(e.stream)
	} else {
		geo, err = terminal.ResolveGeometry(e.term, e.stream)
	}
	if err != nil {
		return err
	}
	pilog.Debug("editor: screen is %dx%d", geo.Rows, geo.Cols)
	e.geo = geo
	e.cy = min(e.cy, geo.Rows-1)
	e.cx = min(e.cx, geo.Cols-1)
	return nil
}

// process applies one key and reports whether the editor should quit.
func (e *Editor) process(k key.Key) bool {
	switch k.Type {
	case key.KeyUp, key.KeyDown, key.KeyLeft, key.KeyRight:
		e.moveCursor(k.Type)
	case key.KeyPageUp:
		e.cy = 0
	case key.KeyPageDown:
		e.cy = e.geo.Rows - 1
	case key.KeyHome:
		e.cx = 0
	case key.KeyEnd:
		e.cx = e.geo.Cols - 1
	case key.KeyChar:
		return k.Byte == ctrlQ
	}
	return false
}

func (e *Editor) moveCursor(t key.KeyType) {
	switch t {
	case key.KeyLeft:
		if e.cx > 0 {
			e.cx--
		}
	case key.KeyRight:
		if e.cx < e.geo.Cols-1 {
			e.cx++
		}
	case key.KeyUp:
		if e.cy > 0 {
			e.cy--
		}
	case key.KeyDown:
		if e.cy < e.geo.Rows-1 {
			e.cy++
		}
	}
}

// refresh redraws the whole screen as one frame.
func (e *Editor) refresh() error {
	return e.screen.Frame(func(c *tui.Compositor) {
		c.MoveCursorHome()
		e.drawRows(c)
		c.MoveCursorTo(e.cy+1, e.cx+1)
	})
}

func (e *Editor) drawRows(c *tui.Compositor) {
	for y := range e.geo.Rows {
		switch {
		case y < len(e.rows):
			c.AppendString(width.Truncate(e.rows[y], e.geo.Cols))
		case len(e.rows) == 0 && y == e.geo.Rows/3:
			e.drawWelcome(c)
		default:
			c.AppendString("~")
		}
		c.EraseLine()
		if y < e.geo.Rows-1 {
			c.AppendString("\r\n")
		}
	}
}

// drawWelcome centers the banner, keeping the ~ marker in column 1.
func (e *Editor) drawWelcome(c *tui.Compositor) {
	welcome := width.Truncate(e.welcome(), e.geo.Cols)
	padding := (e.geo.Cols - width.VisibleWidth(welcome)) / 2
	if padding > 0 {
		c.AppendString("~")
		padding--
	}
	c.AppendString(strings.Repeat(" ", padding))
	c.AppendString(welcome)
}

func (e *Editor) welcome() string {
	return strings.ReplaceAll(e.opts.Welcome, "%s", e.opts.Version)
}

// clear wipes the screen and homes the cursor before exit.
func (e *Editor) clear() error {
	e.screen.Begin()
	e.screen.EraseDisplay()
	e.screen.MoveCursorHome()
	return e.screen.End()
}
