package codec

import (
	"encoding/binary"
	"testing"
)

type BenchmarkPayload struct {
	ID      uint32
	Val1    uint64
	Val2    uint64
	Val3    uint64
	IsAlive bool
	Padding [3]byte
}

func BenchmarkRawCopyWrite(b *testing.B) {
	payload := BenchmarkPayload{ID: 1, Val1: 100}
	e := NewEncoder()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Reset()
		_ = Write(e, payload)
	}
}

func BenchmarkRawCopyRead(b *testing.B) {
	e := NewEncoder()
	_ = Write(e, BenchmarkPayload{ID: 1, Val1: 100})
	data := e.Bytes()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out BenchmarkPayload
		d := NewDecoder(data)
		_ = Read(d, &out)
	}
}

func BenchmarkPooledEncoder(b *testing.B) {
	payload := BenchmarkPayload{ID: 1, Val1: 100}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := AcquireEncoder()
		_ = Write(e, payload)
		ReleaseEncoder(e)
	}
}

func BenchmarkSliceRoundTrip(b *testing.B) {
	regs := make([]uint64, 64)
	for i := range regs {
		regs[i] = uint64(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := AcquireEncoder()
		_ = WriteSlice(e, regs)
		d := NewDecoder(e.Bytes())
		_, _ = ReadSlice[uint64](d)
		ReleaseEncoder(e)
	}
}

// Baseline comparison using binary.Append directly, to see the overhead of
// the framing layer.
func BenchmarkStandardBinaryAppend(b *testing.B) {
	payload := BenchmarkPayload{ID: 1, Val1: 100}
	buf := make([]byte, 0, binary.Size(payload))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = binary.Append(buf[:0], Order, payload)
	}
}
