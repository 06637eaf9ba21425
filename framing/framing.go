// Package framing converts the worker's raw output-stream chunks into
// discrete protocol lines.
//
// The worker writes one JSON object per line, but the operating system
// delivers bytes in arbitrary chunks: a single read may carry half a
// line or several lines. LineBuffer accumulates chunks and yields each
// complete line exactly once, independent of how the bytes were split.
package framing

import (
	"bytes"
	"strings"
)

// LineBuffer accumulates byte chunks and extracts newline-terminated
// lines. The zero value is ready to use. Not safe for concurrent use;
// callers feed it from a single reader.
type LineBuffer struct {
	buf []byte
}

// Feed appends chunk to the internal buffer and returns every complete
// line it now holds, in order. Lines are trimmed of surrounding
// whitespace; lines that are empty after trimming are suppressed.
//
// A trailing unterminated fragment stays buffered until a future chunk
// supplies its terminator or Reset discards it. Feed never blocks and
// may return zero lines.
func (b *LineBuffer) Feed(chunk []byte) []string {
	b.buf = append(b.buf, chunk...)

	var lines []string
	start := 0
	for {
		i := bytes.IndexByte(b.buf[start:], '\n')
		if i < 0 {
			break
		}
		line := strings.TrimSpace(string(b.buf[start : start+i]))
		if line != "" {
			lines = append(lines, line)
		}
		start += i + 1
	}
	if start > 0 {
		// Shift the unterminated remainder to the front rather than
		// rescanning it on the next Feed.
		b.buf = append(b.buf[:0], b.buf[start:]...)
	}
	return lines
}

// Pending reports how many bytes are buffered awaiting a terminator.
func (b *LineBuffer) Pending() int {
	return len(b.buf)
}

// Reset discards any buffered bytes. A trailing unterminated fragment is
// dropped, not flushed: an unterminated final write from the worker
// indicates an abnormal exit, and its partial line is not a message.
func (b *LineBuffer) Reset() {
	b.buf = b.buf[:0]
}
