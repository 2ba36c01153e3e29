package codec

import (
	"encoding/binary"
	"reflect"

	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v4"
)

// rawSizeCache avoids the high performance cost of reflection in
// `binary.Size` on every call. A cached size of -1 marks types that are not
// raw-copyable. Using a concurrent map makes it safe across goroutines.
var rawSizeCache = xsync.NewMap[reflect.Type, int]()

// rawSize reports the fixed binary size of t, or -1 when the type contains
// variable-size or reference fields and is therefore not raw-copyable.
//
// Reference and variable-size kinds are rejected before consulting
// binary.Size: it would report a per-value size for slices and silently
// dereference pointers, neither of which is a fixed-size memory image (and
// a per-value size must never enter the per-type cache).
func rawSize(t reflect.Type, v any) int {
	if size, ok := rawSizeCache.Load(t); ok {
		return size
	}
	size := -1
	switch t.Kind() {
	case reflect.Slice, reflect.Pointer, reflect.String, reflect.Map,
		reflect.Interface, reflect.Chan, reflect.Func, reflect.UnsafePointer:
	default:
		size = binary.Size(v)
	}
	rawSizeCache.Store(t, size)
	return size
}

// writeRaw encodes v's memory representation verbatim as one frame. v must
// have a fixed binary size: no slices, maps, strings or pointers.
func writeRaw[T any](e *Encoder, v T) error {
	size := rawSize(reflect.TypeFor[T](), v)
	if size < 0 {
		return errors.Wrapf(ErrUnsupportedType, "%s has no fixed binary size", reflect.TypeFor[T]())
	}
	bb := scratchPool.Get()
	out, err := binary.Append(bb.B[:0], e.order, v)
	if err != nil {
		scratchPool.Put(bb)
		return errors.Wrapf(err, "codec: raw encode of %s", reflect.TypeFor[T]())
	}
	bb.B = out
	err = e.Write(out)
	scratchPool.Put(bb)
	return err
}

// readRaw decodes one frame into dst's memory representation.
func readRaw[T any](d *Decoder, dst *T) error {
	size := rawSize(reflect.TypeFor[T](), dst)
	if size < 0 {
		return errors.Wrapf(ErrUnsupportedType, "%s has no fixed binary size", reflect.TypeFor[T]())
	}
	p, err := d.ReadData(size)
	if err != nil {
		return err
	}
	if _, err := binary.Decode(p, d.order, dst); err != nil {
		return d.fail(errors.Wrapf(err, "codec: raw decode of %s", reflect.TypeFor[T]()))
	}
	return nil
}
