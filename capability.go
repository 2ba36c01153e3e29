package codec

// Serializable is the member encoding capability: a type that knows how to
// write itself through an Encoder. It is the first strategy the typed Write
// dispatch tries.
type Serializable interface {
	Serialize(*Encoder) error
}

// Deserializable is the member decoding capability: a type that fills itself
// in from a Decoder, mirroring Serializable.
type Deserializable interface {
	Deserialize(*Decoder) error
}

// Codec aggregates both capabilities. A type implementing Codec round-trips
// through an Encoder/Decoder pair entirely on its own.
type Codec interface {
	Serializable
	Deserializable
}

// DecoderConstructible is the self-decoding constructor capability: the type
// consumes its fixed preamble from the decoder during construction, before
// any remaining fields are filled in. A type must not combine this with
// Deserializable — the shared fields would be consumed twice — and ReadValue
// rejects the combination.
type DecoderConstructible interface {
	ConstructFrom(*Decoder) error
}
