// Package buffer implements methods for writing and reading integers and field elements
// to and from io.Writer and io.Reader that also expose their internal buffers.
package buffer

import (
	"bufio"
	"io"
)

// Writer is an interface for writers that expose their internal buffers.
// This interface is notably implemented by the bufio.Writer type
// (see https://pkg.go.dev/bufio#Writer).
type Writer interface {
	io.Writer
	Flush() (err error)
	AvailableBuffer() []byte
	Available() int
}

// Reader is an interface for readers that expose their internal buffers.
// This interface is notably implemented by the bufio.Reader type
// (see https://pkg.go.dev/bufio#Reader).
type Reader interface {
	io.Reader
	Size() int
	Peek(n int) ([]byte, error)
	Discard(n int) (discarded int, err error)
}

// NewWriter wraps w into a Writer, reusing w if it already is one.
func NewWriter(w io.Writer) Writer {
	if bw, ok := w.(Writer); ok {
		return bw
	}
	return bufio.NewWriter(w)
}

// NewReader wraps r into a Reader, reusing r if it already is one.
func NewReader(r io.Reader) Reader {
	if br, ok := r.(Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
