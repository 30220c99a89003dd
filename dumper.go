package serd

import (
	"io"

	"github.com/pkg/errors"
)

// Dumper accumulates writer output and flushes it in fixed-size
// blocks. It wraps an io.Writer, satisfying the output-stream contract
// that a Writer's configured block size expects.
type Dumper struct {
	w         io.Writer
	blockSize int
	buf       []byte
}

// NewDumper wraps w, buffering writes into blocks of blockSize bytes.
// A blockSize of 1 bypasses buffering entirely, writing each byte
// straight through.
func NewDumper(w io.Writer, blockSize int) *Dumper {
	if blockSize < 1 {
		blockSize = 4096
	}
	d := &Dumper{w: w, blockSize: blockSize}
	if blockSize > 1 {
		d.buf = make([]byte, 0, blockSize)
	}
	return d
}

// Write appends p, flushing whenever the buffer fills. Partial writes
// by the underlying io.Writer are treated as failures.
func (d *Dumper) Write(p []byte) (int, error) {
	if d.blockSize == 1 {
		for i, b := range p {
			n, err := d.w.Write([]byte{b})
			if err != nil {
				return i + n, errors.Wrap(err, "dumper: write failed")
			}
			if n != 1 {
				return i, errors.Wrap(io.ErrShortWrite, "dumper: partial write")
			}
		}
		return len(p), nil
	}

	written := 0
	for len(p) > 0 {
		room := cap(d.buf) - len(d.buf)
		take := room
		if take > len(p) {
			take = len(p)
		}
		d.buf = append(d.buf, p[:take]...)
		p = p[take:]
		written += take
		if len(d.buf) == cap(d.buf) {
			if err := d.flushBlock(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// WriteString is the string-typed equivalent of Write; it converts s
// to a []byte (a copy) and passes it to Write.
func (d *Dumper) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

// WriteByte writes a single byte.
func (d *Dumper) WriteByte(b byte) error {
	_, err := d.Write([]byte{b})
	return err
}

func (d *Dumper) flushBlock() error {
	n, err := d.w.Write(d.buf)
	if err != nil {
		return errors.Wrap(err, "dumper: block flush failed")
	}
	if n != len(d.buf) {
		return errors.Wrap(io.ErrShortWrite, "dumper: partial block flush")
	}
	d.buf = d.buf[:0]
	return nil
}

// Flush writes any partial block still buffered.
func (d *Dumper) Flush() error {
	if d.blockSize == 1 || len(d.buf) == 0 {
		return nil
	}
	return d.flushBlock()
}
