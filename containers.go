package codec

import (
	"iter"
	"slices"

	"github.com/ccoveille/go-safecast"
	orderedmap "github.com/elliotchance/orderedmap/v2"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// maxPrealloc caps the capacity reserved up front when reconstructing
// containers, so a corrupt count cannot force a huge allocation before the
// per-element reads fail naturally.
const maxPrealloc = 4096

// readCount reads an 8-byte element count frame.
func readCount(d *Decoder) (int, error) {
	var size uint64
	if err := readRaw(d, &size); err != nil {
		return 0, err
	}
	n, err := safecast.ToInt(size)
	if err != nil {
		return 0, d.fail(errors.Wrapf(ErrBounds, "container count %d overflows int", size))
	}
	return n, nil
}

// WriteOptional writes a presence flag, then the value when v is non-nil.
func WriteOptional[T any](e *Encoder, v *T) error {
	if err := Write(e, v != nil); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return Write(e, *v)
}

// ReadOptional reads a presence flag and, when set, the value. An absent
// optional decodes as nil.
func ReadOptional[T any](d *Decoder) (*T, error) {
	return ReadOptionalFunc[T](d, nil)
}

// ReadOptionalFunc is ReadOptional with an explicit construction closure for
// payload types whose zero value is not usable. A nil construct falls back
// to ReadValue's regular construction path.
func ReadOptionalFunc[T any](d *Decoder, construct func() T) (*T, error) {
	present, err := ReadValue[bool](d)
	if err != nil || !present {
		return nil, err
	}
	if construct == nil {
		v, err := ReadValue[T](d)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	v := construct()
	if err := Read(d, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteSlice writes an 8-byte element count, then each element in order,
// one frame per element.
func WriteSlice[T any](e *Encoder, s []T) error {
	if err := Write(e, uint64(len(s))); err != nil {
		return err
	}
	for i := range s {
		if err := Write(e, s[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSlice reconstructs a count-prefixed slice, appending elements in
// encoded order.
func ReadSlice[T any](d *Decoder) ([]T, error) {
	n, err := readCount(d)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(n, maxPrealloc))
	for range n {
		v, err := ReadValue[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteSeq writes a count-prefixed sequence from an iterator. It serves
// node-based containers with no random access; n must equal the number of
// elements items yields.
func WriteSeq[T any](e *Encoder, n int, items iter.Seq[T]) error {
	if err := Write(e, uint64(n)); err != nil {
		return err
	}
	written := 0
	for v := range items {
		if err := Write(e, v); err != nil {
			return err
		}
		written++
	}
	if written != n {
		return errors.Errorf("codec: sequence yielded %d elements, declared count was %d", written, n)
	}
	return nil
}

// ReadSeq reads a count-prefixed sequence, handing each element to collect
// in encoded order.
func ReadSeq[T any](d *Decoder, collect func(T) error) error {
	n, err := readCount(d)
	if err != nil {
		return err
	}
	for range n {
		v, err := ReadValue[T](d)
		if err != nil {
			return err
		}
		if err := collect(v); err != nil {
			return err
		}
	}
	return nil
}

// Char constrains the character unit types the string path accepts: bytes,
// UTF-16 units and runes.
type Char interface {
	~byte | ~uint16 | ~rune
}

// WriteChars writes a character sequence as a count-prefixed span of its
// units, one frame per unit.
func WriteChars[C Char](e *Encoder, s []C) error {
	return WriteSlice(e, s)
}

// ReadChars reconstructs a character sequence written by WriteChars.
func ReadChars[C Char](d *Decoder) ([]C, error) {
	return ReadSlice[C](d)
}

// WriteString writes s through the character path, one frame per byte.
func WriteString(e *Encoder, s string) error {
	return WriteChars(e, []byte(s))
}

// ReadString reconstructs a string written by WriteString.
func ReadString(d *Decoder) (string, error) {
	b, err := ReadChars[byte](d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteMap writes an 8-byte entry count, then each key followed by its
// value, in the map's iteration order. Go randomizes that order; use
// WriteMapSorted or the ordered-map adapters when byte-identical output
// matters.
func WriteMap[K comparable, V any](e *Encoder, m map[K]V) error {
	if err := Write(e, uint64(len(m))); err != nil {
		return err
	}
	for k, v := range m {
		if err := Write(e, k); err != nil {
			return err
		}
		if err := Write(e, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteMapSorted is WriteMap with keys written in ascending order, giving
// deterministic encodings for plain maps.
func WriteMapSorted[K constraints.Ordered, V any](e *Encoder, m map[K]V) error {
	if err := Write(e, uint64(len(m))); err != nil {
		return err
	}
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := Write(e, k); err != nil {
			return err
		}
		if err := Write(e, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// ReadMap reconstructs a count-prefixed map. Entries are inserted in encoded
// order; the final ordering semantics are the target map's own.
func ReadMap[K comparable, V any](d *Decoder) (map[K]V, error) {
	n, err := readCount(d)
	if err != nil {
		return nil, err
	}
	m := make(map[K]V, min(n, maxPrealloc))
	for range n {
		k, err := ReadValue[K](d)
		if err != nil {
			return nil, err
		}
		v, err := ReadValue[V](d)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

// WriteOrderedMap writes an insertion-ordered map. The encoding is
// deterministic for a given insertion history.
func WriteOrderedMap[K comparable, V any](e *Encoder, m *orderedmap.OrderedMap[K, V]) error {
	if err := Write(e, uint64(m.Len())); err != nil {
		return err
	}
	for el := m.Front(); el != nil; el = el.Next() {
		if err := Write(e, el.Key); err != nil {
			return err
		}
		if err := Write(e, el.Value); err != nil {
			return err
		}
	}
	return nil
}

// ReadOrderedMap reconstructs an ordered map, preserving encoded order as
// insertion order.
func ReadOrderedMap[K comparable, V any](d *Decoder) (*orderedmap.OrderedMap[K, V], error) {
	n, err := readCount(d)
	if err != nil {
		return nil, err
	}
	m := orderedmap.NewOrderedMap[K, V]()
	for range n {
		k, err := ReadValue[K](d)
		if err != nil {
			return nil, err
		}
		v, err := ReadValue[V](d)
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return m, nil
}

// WriteAtomic snapshots an atomically-accessed cell and writes its value as
// a plain frame. The single Load is the only atomicity provided; the caller
// must ensure the value is not concurrently mutated during the surrounding
// encode.
func WriteAtomic[T any](e *Encoder, cell interface{ Load() T }) error {
	return Write(e, cell.Load())
}

// ReadAtomic decodes a value and stores it into an atomic cell.
func ReadAtomic[T any](d *Decoder, cell interface{ Store(T) }) error {
	v, err := ReadValue[T](d)
	if err != nil {
		return err
	}
	cell.Store(v)
	return nil
}
