package codec

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Encoder accumulates a growable buffer of length-marked frames. The buffer
// only grows during normal operation; nothing is rewritten in place. An
// Encoder is not safe for concurrent use.
type Encoder struct {
	buf         []byte
	breakOffset *int
	order       binary.ByteOrder
}

// NewEncoder creates an empty Encoder using the package default byte order.
func NewEncoder() *Encoder {
	return &Encoder{order: Order}
}

// WithByteOrder sets the byte order used by the raw-copy path and returns
// the configured encoder for chaining.
func (e *Encoder) WithByteOrder(order binary.ByteOrder) *Encoder {
	e.order = order
	return e
}

// SetBreakOffset configures a byte position; any write whose completion
// would cross it fails with ErrBreakOffset. Used to simulate truncated or
// partial writes in tests.
func (e *Encoder) SetBreakOffset(offset int) {
	e.breakOffset = &offset
}

// Write emits one frame: a marker byte holding len(p) mod 256, then the raw
// payload. If completing the frame would cross the break offset, Write fails
// before appending anything, leaving the buffer untouched.
func (e *Encoder) Write(p []byte) error {
	if e.breakOffset != nil && len(e.buf) <= *e.breakOffset &&
		len(e.buf)+len(p)+markerSize > *e.breakOffset {
		return errors.Wrapf(ErrBreakOffset, "frame of %d bytes at offset %d crosses %d", len(p), len(e.buf), *e.breakOffset)
	}
	e.buf = append(e.buf, byte(len(p)))
	e.buf = append(e.buf, p...)
	return nil
}

// WriteEncoder appends another encoder's entire buffer verbatim as a single
// frame, so independently built pieces can be composed into one buffer.
func (e *Encoder) WriteEncoder(sub *Encoder) error {
	return e.Write(sub.Bytes())
}

// Bytes returns a read-only view of the accumulated buffer. The caller must
// not modify it.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes accumulated so far.
func (e *Encoder) Len() int { return len(e.buf) }

// MoveBuffer transfers ownership of the buffer out of the encoder, leaving
// it empty. A one-time extraction, not repeatable.
func (e *Encoder) MoveBuffer() []byte {
	b := e.buf
	e.buf = nil
	return b
}

// Reset drops the accumulated buffer (keeping its capacity), clears the
// break offset and restores the default byte order.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.breakOffset = nil
	e.order = Order
}
