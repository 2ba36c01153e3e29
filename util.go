package codec

import "encoding/binary"

var (
	BE binary.ByteOrder = binary.BigEndian
	LE binary.ByteOrder = binary.LittleEndian
	// Order is the default byte order for the raw-copy path. The wire format
	// originated as a verbatim memory copy on little-endian machines, so
	// little-endian is the default; there is no cross-machine normalization.
	Order = LE
)

// markerSize is the length of the marker byte preceding every frame payload.
const markerSize = 1

func Ptr[T any](v T) *T { return &v } // ptr is a helper function to create a pointer to a value, making test setup cleaner.
