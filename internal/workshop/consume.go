package workshop

import (
	"bytes"
	"io"
)

// Exercise 5: consumed values.
//
// Reading an io.Reader advances it permanently. Code that needs the data
// twice must either keep the bytes or construct a new reader per use;
// handing the same reader to two consumers gives the second one nothing.

// Drain reads the reader to exhaustion and returns its contents.
func Drain(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

// Replay holds bytes and hands out a fresh reader per call, so the data can
// be consumed any number of times.
type Replay struct {
	data []byte
}

// NewReplay captures the reader's remaining contents for repeated use.
func NewReplay(r io.Reader) (*Replay, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Replay{data: data}, nil
}

// Reader returns a new reader positioned at the start of the data.
func (r *Replay) Reader() io.Reader {
	return bytes.NewReader(r.data)
}

// Len returns the number of captured bytes.
func (r *Replay) Len() int {
	return len(r.data)
}
