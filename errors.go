package codec

import "errors"

var (
	// ErrBounds indicates a read requested more bytes than remain in the
	// source buffer.
	ErrBounds = errors.New("codec: out of bounds read from byte buffer")

	// ErrFraming indicates a frame's marker byte does not match the length
	// being read, i.e. the read sequence has drifted from the write sequence.
	ErrFraming = errors.New("codec: marker byte mismatches written data")

	// ErrBreakOffset indicates a write would cross the configured break offset.
	ErrBreakOffset = errors.New("codec: break offset reached")

	// ErrConstruction indicates decoding needed a fresh value of a type that
	// has no self-decoding constructor, no usable zero value and no factory
	// registered on the decoder.
	ErrConstruction = errors.New("codec: object construction failed")

	// ErrUnsupportedType indicates a type satisfies none of the dispatch
	// tiers: no member capability, no registered codec functions, and no
	// fixed binary size for the raw-copy path. This marks a programming
	// error, not a data error.
	ErrUnsupportedType = errors.New("codec: type is not serializable")
)
