// ABOUTME: Decoder turns a timeout-driven byte stream into Key events, one per call.
// ABOUTME: A read timeout inside an escape sequence resolves to the shortest valid interpretation.

package key

import (
	"context"

	pilog "github.com/mauromedda/kilo-go/internal/log"
)

const (
	esc = 0x1b

	// maxDigits bounds ESC [ n ~ so a runaway digit stream cannot stall input.
	maxDigits = 4
)

// ByteSource yields one byte per call; ok is false when the read timed out.
type ByteSource interface {
	PollByte() (b byte, ok bool, err error)
}

// Decoder decodes escape sequences on demand. It keeps no state between
// calls and never buffers more than the sequence it is reading.
type Decoder struct {
	src ByteSource
}

// NewDecoder returns a Decoder reading from src.
func NewDecoder(src ByteSource) *Decoder {
	return &Decoder{src: src}
}

// Next blocks until a key is decoded or ctx is done. Each idle read
// returns within the device timeout, so cancellation is observed promptly.
func (d *Decoder) Next(ctx context.Context) (Key, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Key{}, err
		}
		k, ok, err := d.Poll()
		if err != nil {
			return Key{}, err
		}
		if ok {
			return k, nil
		}
	}
}

// Poll makes one decode attempt. ok is false when no byte arrived within
// the read timeout, or when a malformed sequence was read and discarded.
func (d *Decoder) Poll() (Key, bool, error) {
	b, ok, err := d.src.PollByte()
	if err != nil || !ok {
		return Key{}, false, err
	}
	if b != esc {
		return Char(b), true, nil
	}
	return d.escape()
}

// escape decodes what follows an ESC byte.
func (d *Decoder) escape() (Key, bool, error) {
	b, ok, err := d.src.PollByte()
	if err != nil {
		return Key{}, false, err
	}
	if !ok {
		return Key{Type: KeyEscape}, true, nil
	}

	switch b {
	case '[':
		return d.csi()
	case 'O':
		return d.final(ss3Final)
	}
	return Key{Type: KeyEscape}, true, nil
}

// csi decodes what follows ESC [.
func (d *Decoder) csi() (Key, bool, error) {
	b, ok, err := d.src.PollByte()
	if err != nil {
		return Key{}, false, err
	}
	if !ok {
		return Key{Type: KeyEscape}, true, nil
	}
	if b >= '0' && b <= '9' {
		return d.tilde(int(b - '0'))
	}
	if t, ok := csiFinal[b]; ok {
		return Key{Type: t}, true, nil
	}
	return Key{Type: KeyEscape}, true, nil
}

// final decodes a single-byte final after a prefix.
func (d *Decoder) final(table map[byte]KeyType) (Key, bool, error) {
	b, ok, err := d.src.PollByte()
	if err != nil {
		return Key{}, false, err
	}
	if ok {
		if t, found := table[b]; found {
			return Key{Type: t}, true, nil
		}
	}
	return Key{Type: KeyEscape}, true, nil
}

// tilde accumulates ESC [ n ~ after the first digit. Anything other than
// a mapped code closed by '~' is dropped.
func (d *Decoder) tilde(n int) (Key, bool, error) {
	digits := 1
	for {
		b, ok, err := d.src.PollByte()
		if err != nil {
			return Key{}, false, err
		}
		switch {
		case !ok:
			pilog.Debug("key: dropped truncated sequence ESC [ %d", n)
			return Key{}, false, nil
		case b == '~':
			if t, found := tildeCodes[n]; found {
				return Key{Type: t}, true, nil
			}
			pilog.Debug("key: dropped unmapped sequence ESC [ %d ~", n)
			return Key{}, false, nil
		case b >= '0' && b <= '9' && digits < maxDigits:
			n = n*10 + int(b-'0')
			digits++
		default:
			pilog.Debug("key: dropped malformed sequence ESC [ %d %q", n, b)
			return Key{}, false, nil
		}
	}
}
