// ABOUTME: PTY harness for end-to-end tests: builds the kilo-go binary once and drives it through creack/pty
// ABOUTME: Collects screen output in the background so tests can wait for strings and for process exit

//go:build linux || darwin

package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// binary builds cmd/kilo-go into a temp dir shared by all tests.
func binary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "kilo-go-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "kilo-go")
		_, file, _, _ := runtime.Caller(0)
		root := filepath.Dir(filepath.Dir(file))
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/kilo-go")
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, out: string(out)}
		}
	})
	if buildErr != nil {
		t.Fatalf("building kilo-go: %v", buildErr)
	}
	return binPath
}

type buildError struct {
	err error
	out string
}

func (e *buildError) Error() string { return e.err.Error() + "\n" + e.out }

// session is one running kilo-go process on a pty.
type session struct {
	cmd  *exec.Cmd
	ptmx *os.File

	mu  sync.Mutex
	out bytes.Buffer

	done    chan struct{}
	waitErr error
}

// startKilo runs kilo-go with args on a rows x cols pty.
func startKilo(t *testing.T, rows, cols uint16, args ...string) *session {
	t.Helper()
	cmd := exec.Command(binary(t), args...)
	cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+t.TempDir(), "TERM=xterm")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}

	s := &session{cmd: cmd, ptmx: ptmx, done: make(chan struct{})}
	go s.collect()
	go func() {
		s.waitErr = cmd.Wait()
		close(s.done)
	}()
	return s
}

func (s *session) collect() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.out.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

func (s *session) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !strings.Contains(s.output(), want) {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %q; screen output:\n%q", want, s.output())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func (s *session) send(t *testing.T, keys string) {
	t.Helper()
	if _, err := s.ptmx.Write([]byte(keys)); err != nil {
		t.Fatalf("writing to pty: %v", err)
	}
}

func (s *session) sendCtrl(t *testing.T, c byte) {
	t.Helper()
	s.send(t, string([]byte{c & 0x1f}))
}

func (s *session) resize(t *testing.T, rows, cols uint16) {
	t.Helper()
	if err := pty.Setsize(s.ptmx, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		t.Fatalf("resizing pty: %v", err)
	}
}

func (s *session) waitExit(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-s.done:
		if s.waitErr != nil {
			t.Fatalf("kilo-go exited with error: %v; output:\n%q", s.waitErr, s.output())
		}
	case <-time.After(timeout):
		t.Fatalf("kilo-go did not exit within %v", timeout)
	}
}

func (s *session) close() {
	select {
	case <-s.done:
	default:
		_ = s.cmd.Process.Kill()
		<-s.done
	}
	_ = s.ptmx.Close()
}
