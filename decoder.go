package codec

import (
	"encoding/binary"
	"reflect"

	"github.com/pkg/errors"
)

// Decoder wraps a borrowed, read-only byte view with a forward-only cursor.
// It never copies the source up front; the caller must keep the viewed
// memory alive and unmodified for the decoder's entire lifetime.
//
// The first failed read latches: the decoder enters a terminal failed state
// and every later operation returns the same error. Callers must discard a
// failed decoder and restart from scratch, not retry it.
type Decoder struct {
	src       []byte
	off       int
	err       error
	order     binary.ByteOrder
	factories map[reflect.Type]func() any
}

// NewDecoder creates a Decoder over data without copying it.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{src: data, order: Order}
}

// FromEncoder creates a Decoder over an encoder's current buffer. The
// encoder must not be written to, reset or moved from while the decoder
// is in use.
func FromEncoder(e *Encoder) *Decoder {
	return NewDecoder(e.Bytes())
}

// WithByteOrder sets the byte order used by the raw-copy path and returns
// the configured decoder for chaining.
func (d *Decoder) WithByteOrder(order binary.ByteOrder) *Decoder {
	d.order = order
	return d
}

// ReadData consumes one frame of exactly n payload bytes and returns the
// payload as a sub-slice of the source, without copying. The marker byte
// must equal n mod 256 and at least n further bytes must remain.
func (d *Decoder) ReadData(n int) ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if n < 0 || d.off+markerSize+n > len(d.src) {
		return nil, d.fail(errors.Wrapf(ErrBounds, "frame of %d bytes at offset %d with %d remaining", n, d.off, len(d.src)-d.off))
	}
	if d.src[d.off] != byte(n) {
		return nil, d.fail(errors.Wrapf(ErrFraming, "marker 0x%02x at offset %d, want 0x%02x", d.src[d.off], d.off, byte(n)))
	}
	d.off += markerSize
	p := d.src[d.off : d.off+n : d.off+n]
	d.off += n
	return p, nil
}

// ReadInto copies one frame of len(dst) payload bytes into caller memory.
func (d *Decoder) ReadInto(dst []byte) error {
	p, err := d.ReadData(len(dst))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// Offset returns the current cursor position.
func (d *Decoder) Offset() int { return d.off }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.src) - d.off }

// Err returns the latched error, if any.
func (d *Decoder) Err() error { return d.err }

// ReadRemaining consumes everything left as a single trailing frame and
// returns its payload. An already-exhausted decoder yields an empty result.
func (d *Decoder) ReadRemaining() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.Remaining() == 0 {
		return nil, nil
	}
	return d.ReadData(d.Remaining() - markerSize)
}

// fail latches the first error. Once latched the decoder is unusable.
func (d *Decoder) fail(err error) error {
	if d.err == nil {
		d.err = err
	}
	return d.err
}
