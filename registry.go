package codec

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// typeCodec holds the free-standing encode/decode function pair registered
// for a single type. The functions are stored as any and asserted back to
// func(*Encoder, T) error and func(*Decoder, *T) error at the generic call
// sites, where T is known.
type typeCodec struct {
	enc any
	dec any
}

// typeCodecs backs the free-function dispatch tier. It is process-wide and
// concurrent-safe: distinct goroutines may encode disjoint buffers at the
// same time.
var typeCodecs = xsync.NewMap[reflect.Type, typeCodec]()

// RegisterTypeCodec associates free-standing encode/decode functions with T.
// The pair is consulted by Write and Read after the member capability and
// before the raw-copy fallback. Registering again for the same type replaces
// the previous pair.
func RegisterTypeCodec[T any](enc func(*Encoder, T) error, dec func(*Decoder, *T) error) {
	typeCodecs.Store(reflect.TypeFor[T](), typeCodec{enc: enc, dec: dec})
}

func lookupTypeCodec[T any]() (typeCodec, bool) {
	return typeCodecs.Load(reflect.TypeFor[T]())
}

// RegisterFactory registers a zero-argument constructor for T on this
// decoder. ReadValue consults it only for types it cannot construct through
// a self-decoding constructor or a usable zero value. Registration is
// decoder-instance-local, not global.
func RegisterFactory[T any](d *Decoder, factory func() T) {
	if d.factories == nil {
		d.factories = make(map[reflect.Type]func() any)
	}
	d.factories[reflect.TypeFor[T]()] = func() any { return factory() }
}
