// Package feedback provides the bounded "keys typed so far" buffer shown
// to the user while a key sequence is still pending or ambiguous.
package feedback

// DefaultSize is the default buffer capacity in bytes, escapes included.
const DefaultSize = 12

// Buffer holds a short, human-viewable transcript of pending keys.
// Control symbols render as two-character "^X" escapes. The buffer is
// rebuilt on every pending-state change, never accumulated indefinitely.
type Buffer struct {
	buf  []byte
	size int
}

// New creates a buffer with the given byte capacity. A capacity below
// DefaultSize falls back to DefaultSize.
func New(size int) *Buffer {
	if size < DefaultSize {
		size = DefaultSize
	}
	return &Buffer{
		buf:  make([]byte, 0, size),
		size: size,
	}
}

// Set copies symbols into the buffer, replacing the current content
// unless appendTo is set. Copying stops once the capacity minus headroom
// for one two-character escape is reached; truncation is silent.
func (b *Buffer) Set(symbols []byte, appendTo bool) {
	// Keep room for a trailing ^X escape.
	max := b.size - 2

	if !appendTo {
		b.buf = b.buf[:0]
	}
	for _, sym := range symbols {
		if len(b.buf) >= max {
			break
		}
		if sym < 0x20 {
			b.buf = append(b.buf, '^', sym^0x40)
		} else {
			b.buf = append(b.buf, sym)
		}
	}
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.buf = b.buf[:0]
}

// Len returns the current content length in bytes.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// String returns the current escaped transcript.
func (b *Buffer) String() string {
	return string(b.buf)
}
