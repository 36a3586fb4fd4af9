// ABOUTME: sync.Pool wrapper for the byte buffers that hold one rendered frame
// ABOUTME: Oversized buffers are dropped on release so one huge frame does not pin memory

package pool

import (
	"bytes"
	"sync"
)

// frameCap is the initial capacity of a fresh frame buffer; an 80x24
// screen with per-row erase sequences fits comfortably.
const frameCap = 4 << 10

// maxRetained is the largest buffer returned to the pool.
const maxRetained = 256 << 10

var frameBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, frameCap))
	},
}

// GetFrameBuffer returns an empty buffer from the pool.
func GetFrameBuffer() *bytes.Buffer {
	buf := frameBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutFrameBuffer returns buf to the pool. Buffers that grew past
// maxRetained are left for the garbage collector.
func PutFrameBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxRetained {
		return
	}
	buf.Reset()
	frameBufferPool.Put(buf)
}
