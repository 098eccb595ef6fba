package serialize

import (
	"bufio"
	"io"
)

// OffsetWriter wraps a sequential io.Writer, tracking the current
// absolute write offset. The classic xref table records absolute byte
// offsets of each object's header; since nothing is ever rewritten once
// emitted, a running counter is all that's needed - no Seek required.
type OffsetWriter struct {
	w      *bufio.Writer
	Offset int64
}

// NewOffsetWriter wraps dst for sequential, offset-tracked writes.
func NewOffsetWriter(dst io.Writer) *OffsetWriter {
	return &OffsetWriter{w: bufio.NewWriter(dst)}
}

// WriteString writes s and advances Offset.
func (o *OffsetWriter) WriteString(s string) (int, error) {
	n, err := o.w.WriteString(s)
	o.Offset += int64(n)
	return n, err
}

// Write writes b and advances Offset.
func (o *OffsetWriter) Write(b []byte) (int, error) {
	n, err := o.w.Write(b)
	o.Offset += int64(n)
	return n, err
}

// Flush flushes the underlying buffered writer.
func (o *OffsetWriter) Flush() error {
	return o.w.Flush()
}
