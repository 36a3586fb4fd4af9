// ABOUTME: Loads a file into display rows: NFC-normalized, control characters masked, tabs expanded
// ABOUTME: Rows are prepared once at load time so each frame only clips them to the screen width

package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/kilo-go/pkg/tui/width"
)

// ReadRows reads r line by line and returns the display rows. Both LF and
// CRLF line endings are accepted; a trailing newline does not add a row.
func ReadRows(r io.Reader, tabStop int) ([]string, error) {
	br := bufio.NewReader(r)
	var rows []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			rows = append(rows, displayRow(line, tabStop))
		}
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// displayRow turns one raw line into what the screen shows.
func displayRow(line string, tabStop int) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	line = strings.ToValidUTF8(line, "\uFFFD")
	line = norm.NFC.String(line)
	line = strings.Map(maskControl, line)
	return width.ExpandTabs(line, tabStop)
}

// maskControl replaces C0, DEL and C1 controls, except tab, so file
// content can never inject terminal sequences.
func maskControl(r rune) rune {
	switch {
	case r == '\t':
		return r
	case r < 0x20, r == 0x7f, r >= 0x80 && r < 0xa0:
		return '?'
	}
	return r
}

// Open loads the file at path into the editor.
func (e *Editor) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f, e.opts.TabStop)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	e.rows = rows
	return nil
}
