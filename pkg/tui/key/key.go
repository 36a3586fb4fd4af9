// ABOUTME: Defines the Key input event: a raw character byte or one of the named navigation keys.
// ABOUTME: Keys carry no editor semantics; Ctrl+Q is just KeyChar with byte 0x11.

package key

import "fmt"

// Key is one decoded input event.
type Key struct {
	Type KeyType
	Byte byte // For KeyChar
}

// KeyType enumerates the kinds of key events the decoder produces.
type KeyType int

const (
	KeyChar     KeyType = iota // Literal or control byte
	KeyEscape                  // Bare Escape
	KeyUp                      // Arrow up
	KeyDown                    // Arrow down
	KeyLeft                    // Arrow left
	KeyRight                   // Arrow right
	KeyPageUp                  // Page Up
	KeyPageDown                // Page Down
	KeyHome                    // Home
	KeyEnd                     // End
	KeyDelete                  // Delete
)

// Char returns the KeyChar event for b.
func Char(b byte) Key {
	return Key{Type: KeyChar, Byte: b}
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyEscape:   "Escape",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyHome:     "Home",
	KeyEnd:      "End",
	KeyDelete:   "Delete",
}

// String returns a human-readable representation of the Key for debug display.
func (k Key) String() string {
	if k.Type == KeyChar {
		return formatChar(k.Byte)
	}
	if name, ok := keyTypeNames[k.Type]; ok {
		return name
	}
	return "Unknown"
}

// formatChar renders control bytes in caret notation.
func formatChar(b byte) string {
	switch {
	case b == 0x7f:
		return "DEL"
	case b < 0x20:
		return fmt.Sprintf("Ctrl+%c", b|0x40)
	case b < 0x7f:
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
