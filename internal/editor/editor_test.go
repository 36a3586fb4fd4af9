// ABOUTME: Tests for the viewer: row loading, cursor movement, frame layout, and the full run loop
// ABOUTME: Drives the editor through a VirtualTerminal with scripted keys and inspects each frame write

package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

const (
	hide = "\x1b[?25l"
	show = "\x1b[?25h"
	home = "\x1b[H"
	el   = "\x1b[K"
)

func testOptions() Options {
	return Options{TabStop: 4, Welcome: "Kilo editor -- version %s", Version: "1.0"}
}

func runCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestReadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "lf", input: "one\ntwo\n", want: []string{"one", "two"}},
		{name: "crlf", input: "one\r\ntwo\r\n", want: []string{"one", "two"}},
		{name: "no trailing newline", input: "one\ntwo", want: []string{"one", "two"}},
		{name: "blank lines kept", input: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "tabs expanded", input: "\tx\nab\tc\n", want: []string{"    x", "ab  c"}},
		{name: "controls masked", input: "a\x1b[2Jb\x07\n", want: []string{"a?[2Jb?"}},
		{name: "c1 masked", input: "x\u009by\n", want: []string{"x?y"}},
		{name: "nfd to nfc", input: "cafe\u0301\n", want: []string{"caf\u00e9"}},
		{name: "invalid utf8", input: "a\xffb\n", want: []string{"a\uFFFDb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ReadRows(strings.NewReader(tt.input), 4)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ReadRows(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("first\nsecond\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(terminal.NewVirtualTerminal(24, 80), testOptions())
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(e.rows, []string{"first", "second"}) {
		t.Errorf("rows = %q", e.rows)
	}

	err := e.Open(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) = %v, want ErrNotExist", err)
	}
}

func TestProcess_CursorMovement(t *testing.T) {
	t.Parallel()

	up := key.Key{Type: key.KeyUp}
	down := key.Key{Type: key.KeyDown}
	left := key.Key{Type: key.KeyLeft}
	right := key.Key{Type: key.KeyRight}

	tests := []struct {
		name   string
		keys   []key.Key
		wantCY int
		wantCX int
	}{
		{name: "no keys", wantCY: 0, wantCX: 0},
		{name: "down right", keys: []key.Key{down, right, right}, wantCY: 1, wantCX: 2},
		{name: "clamped at origin", keys: []key.Key{up, left, up}, wantCY: 0, wantCX: 0},
		{name: "clamped at bottom", keys: slices.Repeat([]key.Key{down}, 20), wantCY: 9, wantCX: 0},
		{name: "clamped at right", keys: slices.Repeat([]key.Key{right}, 50), wantCY: 0, wantCX: 19},
		{name: "page down", keys: []key.Key{{Type: key.KeyPageDown}}, wantCY: 9},
		{name: "page up", keys: []key.Key{down, down, {Type: key.KeyPageUp}}, wantCY: 0},
		{name: "end", keys: []key.Key{{Type: key.KeyEnd}}, wantCX: 19},
		{name: "home", keys: []key.Key{right, right, {Type: key.KeyHome}}, wantCX: 0},
		{name: "chars ignored", keys: []key.Key{key.Char('j'), {Type: key.KeyEscape}, {Type: key.KeyDelete}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := New(terminal.NewVirtualTerminal(10, 20), testOptions())
			e.geo = terminal.Geometry{Rows: 10, Cols: 20}

			for _, k := range tt.keys {
				if e.process(k) {
					t.Fatalf("process(%v) requested quit", k)
				}
			}
			if e.cy != tt.wantCY || e.cx != tt.wantCX {
				t.Errorf("cursor = (%d,%d), want (%d,%d)", e.cy, e.cx, tt.wantCY, tt.wantCX)
			}
		})
	}
}

func TestProcess_CtrlQQuits(t *testing.T) {
	t.Parallel()
	e := New(terminal.NewVirtualTerminal(10, 20), testOptions())
	if !e.process(key.Char(0x11)) {
		t.Error("Ctrl-Q did not request quit")
	}
	if e.process(key.Char('q')) {
		t.Error("plain q requested quit")
	}
}

func TestRefresh_WelcomeScreen(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(6, 30)
	e := New(vt, testOptions())
	e.geo = terminal.Geometry{Rows: 6, Cols: 30}

	if err := e.refresh(); err != nil {
		t.Fatal(err)
	}

	want := hide + home +
		"~" + el + "\r\n" +
		"~" + el + "\r\n" +
		"~ Kilo editor -- version 1.0" + el + "\r\n" +
		"~" + el + "\r\n" +
		"~" + el + "\r\n" +
		"~" + el +
		home + show
	writes := vt.Writes()
	if len(writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(writes))
	}
	if writes[0] != want {
		t.Errorf("frame =\n%q\nwant\n%q", writes[0], want)
	}
}

func TestRefresh_NarrowWelcomeTruncated(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(3, 10)
	e := New(vt, testOptions())
	e.geo = terminal.Geometry{Rows: 3, Cols: 10}

	if err := e.refresh(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(vt.Output(), "~"+el+"\r\nKilo edito"+el+"\r\n") {
		t.Errorf("frame = %q", vt.Output())
	}
}

func TestRefresh_FileRows(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(4, 8)
	e := New(vt, testOptions())
	e.geo = terminal.Geometry{Rows: 4, Cols: 8}
	e.rows = []string{"short", "this line is long", "\u4f60\u597d\u4f60\u597d\u4f60\u597d"}
	e.cy, e.cx = 2, 3

	if err := e.refresh(); err != nil {
		t.Fatal(err)
	}

	want := hide + home +
		"short" + el + "\r\n" +
		"this lin" + el + "\r\n" +
		"\u4f60\u597d\u4f60\u597d" + el + "\r\n" +
		"~" + el +
		"\x1b[3;4H" + show
	if got := vt.Output(); got != want {
		t.Errorf("frame =\n%q\nwant\n%q", got, want)
	}
}

func TestRun_MovesAndQuits(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(6, 30)
	before := vt.Attr()
	vt.QueueInput("\x1b[B")
	vt.QueueTimeout()
	vt.QueueInput("\x1b[C")
	vt.QueueInput("\x1b[2~")
	vt.QueueInput("\x11")

	e := New(vt, testOptions())
	if err := e.Run(runCtx(t)); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	writes := vt.Writes()
	if len(writes) != 4 {
		t.Fatalf("got %d writes, want 4: %q", len(writes), writes)
	}
	for i, w := range writes[:3] {
		if !strings.HasPrefix(w, hide) || !strings.HasSuffix(w, show) {
			t.Errorf("frame %d not bracketed by hide/show: %q", i, w)
		}
	}
	if !strings.HasSuffix(writes[0], home+show) {
		t.Errorf("first frame cursor: %q", writes[0])
	}
	if !strings.HasSuffix(writes[1], "\x1b[2;1H"+show) {
		t.Errorf("after Down: %q", writes[1])
	}
	if !strings.HasSuffix(writes[2], "\x1b[2;2H"+show) {
		t.Errorf("after Right: %q", writes[2])
	}
	if writes[3] != "\x1b[2J"+home {
		t.Errorf("exit frame = %q, want clear and home", writes[3])
	}
	if vt.Attr() != before {
		t.Errorf("terminal attributes not restored: %+v", vt.Attr())
	}
}

func TestRun_ForceProbe(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(24, 80)
	vt.Respond(func(written []byte) []byte {
		if strings.HasSuffix(string(written), "\x1b[6n") {
			return []byte("\x1b[5;40R\x11")
		}
		return nil
	})

	opts := testOptions()
	opts.ForceProbe = true
	e := New(vt, opts)
	if err := e.Run(runCtx(t)); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if e.geo != (terminal.Geometry{Rows: 5, Cols: 40}) {
		t.Errorf("geometry = %+v, want 5x40", e.geo)
	}
	writes := vt.Writes()
	if writes[0] != "\x1b[999C\x1b[999B\x1b[6n" {
		t.Errorf("first write = %q, want probe", writes[0])
	}
	if n := strings.Count(writes[1], "\r\n"); n != 4 {
		t.Errorf("frame has %d line breaks, want 4", n)
	}
}

func TestRun_Resize(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(10, 40)
	vt.QueueInput(strings.Repeat("\x1b[B", 8) + strings.Repeat("\x1b[C", 30))
	vt.QueueTimeout()

	resize := make(chan struct{}, 1)
	opts := testOptions()
	opts.Resize = resize
	e := New(vt, opts)

	ctx, cancel := context.WithCancel(runCtx(t))
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	// Wait for the cursor moves to be drawn, then shrink the screen.
	waitFor(t, func() bool { return strings.Contains(vt.Output(), "\x1b[9;31H") })
	vt.SetSize(4, 20)
	resize <- struct{}{}
	waitFor(t, func() bool { return strings.Contains(vt.Output(), "\x1b[4;20H") })
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	if !strings.HasSuffix(vt.Output(), "\x1b[2J"+home) {
		t.Errorf("screen not cleared on cancel")
	}
	if vt.Attr() != terminal.CookedAttr() {
		t.Error("terminal attributes not restored")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRun_EnterFailure(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(24, 80)
	vt.FailGetAttr(errors.New("not a tty"))

	err := New(vt, testOptions()).Run(runCtx(t))
	var derr *terminal.DeviceError
	if !errors.As(err, &derr) {
		t.Fatalf("Run() = %v, want DeviceError", err)
	}
	if len(vt.Writes()) != 0 {
		t.Errorf("wrote %q before raw mode", vt.Writes())
	}
}

func TestRun_ProbeFailureRestoresTerminal(t *testing.T) {
	t.Parallel()
	vt := terminal.NewVirtualTerminal(0, 0)
	vt.Respond(func(written []byte) []byte {
		if strings.HasSuffix(string(written), "\x1b[6n") {
			return []byte("\x1b[80R")
		}
		return nil
	})

	err := New(vt, testOptions()).Run(runCtx(t))
	var perr *terminal.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("Run() = %v, want ProtocolError", err)
	}
	if vt.Attr() != terminal.CookedAttr() {
		t.Error("terminal attributes not restored after probe failure")
	}
}
