package codec

import (
	"reflect"

	"github.com/pkg/errors"
)

// Write encodes v, resolving the encoding strategy in a fixed priority
// order: the explicit bool and character-sequence overrides, the Serializable member
// capability, a registered free-standing codec function, then the raw-copy
// path for fixed-size types. A type satisfying none of these is a
// programming error, reported as ErrUnsupportedType.
//
// Booleans always encode as a single-byte frame (1 or 0). Strings always
// take the character-sequence path, never the raw-copy path, so "string as
// bytes" and "string as character sequence" cannot diverge.
func Write[T any](e *Encoder, v T) error {
	switch x := any(v).(type) {
	case bool:
		b := [1]byte{}
		if x {
			b[0] = 1
		}
		return e.Write(b[:])
	case string:
		return WriteString(e, x)
	case []byte:
		return WriteChars(e, x)
	case []rune:
		return WriteChars(e, x)
	case []uint16:
		return WriteChars(e, x)
	case *Encoder:
		return e.WriteEncoder(x)
	case Serializable:
		// A typed-nil pointer reaches here carrying the capability; calling
		// Serialize on it would panic. Nilable values go through
		// WriteOptional instead.
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return errors.Wrapf(ErrUnsupportedType, "cannot serialize nil %s", reflect.TypeFor[T]())
		}
		return x.Serialize(e)
	}
	if s, ok := any(&v).(Serializable); ok {
		return s.Serialize(e)
	}
	if tc, ok := lookupTypeCodec[T](); ok {
		return tc.enc.(func(*Encoder, T) error)(e, v)
	}
	return writeRaw(e, v)
}

// Read fills *dst from the decoder, mirroring Write's dispatch order: the
// bool and character-sequence overrides, the Deserializable member
// capability, a registered codec function, then the raw-copy path. A
// nonzero byte decodes as true.
func Read[T any](d *Decoder, dst *T) error {
	switch x := any(dst).(type) {
	case *bool:
		var b uint8
		if err := readRaw(d, &b); err != nil {
			return err
		}
		*x = b != 0
		return nil
	case *string:
		s, err := ReadString(d)
		if err != nil {
			return err
		}
		*x = s
		return nil
	case *[]byte:
		b, err := ReadChars[byte](d)
		if err != nil {
			return err
		}
		*x = b
		return nil
	case *[]rune:
		r, err := ReadChars[rune](d)
		if err != nil {
			return err
		}
		*x = r
		return nil
	case *[]uint16:
		u, err := ReadChars[uint16](d)
		if err != nil {
			return err
		}
		*x = u
		return nil
	case Deserializable:
		return x.Deserialize(d)
	}
	if x, ok := any(*dst).(Deserializable); ok {
		// T is itself a pointer (or interface) type whose element carries
		// the capability. Filling through a nil value cannot work; those go
		// through ReadValue and its factory registry instead.
		if rv := reflect.ValueOf(*dst); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return d.fail(errors.Wrapf(ErrConstruction, "cannot fill nil %s", reflect.TypeFor[T]()))
		}
		return x.Deserialize(d)
	}
	if tc, ok := lookupTypeCodec[T](); ok {
		return tc.dec.(func(*Decoder, *T) error)(d, dst)
	}
	return readRaw(d, dst)
}

// ReadValue constructs a fresh T and fills it from the decoder.
// Construction is resolved in a fixed priority order: a self-decoding
// constructor (DecoderConstructible), default construction for kinds whose
// zero value is usable, then the decoder's factory registry. A type
// reachable through none of these fails with ErrConstruction naming it.
func ReadValue[T any](d *Decoder) (T, error) {
	var v T
	if d.err != nil {
		return v, d.err
	}
	if ctor, ok := any(&v).(DecoderConstructible); ok {
		if _, both := any(&v).(Deserializable); both {
			return v, d.fail(errors.Wrapf(ErrConstruction,
				"%s combines a self-decoding constructor with Deserialize", reflect.TypeFor[T]()))
		}
		if err := ctor.ConstructFrom(d); err != nil {
			return v, d.fail(err)
		}
		// Remaining fields, if any, come through the registered codec
		// function. The raw-copy path never runs after a constructor: it
		// would re-consume the preamble the constructor already read.
		if tc, ok := lookupTypeCodec[T](); ok {
			if err := tc.dec.(func(*Decoder, *T) error)(d, &v); err != nil {
				return v, err
			}
		}
		return v, nil
	}
	if !zeroUsable(reflect.TypeFor[T]()) {
		factory, ok := d.factories[reflect.TypeFor[T]()]
		if !ok {
			return v, d.fail(errors.Wrapf(ErrConstruction, "missing factory for type %s", reflect.TypeFor[T]()))
		}
		v = factory().(T)
	}
	if err := Read(d, &v); err != nil {
		return v, err
	}
	return v, nil
}

// zeroUsable reports whether a type's zero value can be filled in place.
// Interface, pointer, chan and func values start out nil, so decoding into
// them needs a self-decoding constructor or a registered factory.
func zeroUsable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}
