package codec

import "go.uber.org/zap"

// Diff compares two encoders' buffers byte by byte. It returns the offset of
// the first differing byte, or the shorter length when one buffer is a
// strict prefix of the other. ok is false only when both buffers are
// byte-identical.
func (e *Encoder) Diff(other *Encoder) (offset int, ok bool) {
	b1, b2 := e.Bytes(), other.Bytes()
	n := min(len(b1), len(b2))
	for i := range n {
		if b1[i] != b2[i] {
			return i, true
		}
	}
	if len(b1) != len(b2) {
		return n, true
	}
	return 0, false
}

// PrintDiff reports the first difference between the two buffers through the
// global sugared logger. Useful when verifying encoding determinism across
// independent runs; the library never configures the logger itself.
func (e *Encoder) PrintDiff(other *Encoder) {
	if offset, ok := e.Diff(other); ok {
		zap.S().Infof("buffers differ at offset %d", offset)
	}
}
