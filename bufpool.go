package codec

import (
	"sync"

	"github.com/valyala/bytebufferpool"
)

// scratchPool holds scratch buffers for the raw-copy encode path. Pooling
// keeps the per-write temporary off the heap for the common scalar sizes.
var scratchPool bytebufferpool.Pool

// encoderPool reuses Encoders across snapshot runs. Buffers keep their grown
// capacity between uses, so hot encode loops stop allocating after warmup.
var encoderPool = sync.Pool{
	New: func() any { return NewEncoder() },
}

// AcquireEncoder returns an empty pooled Encoder.
func AcquireEncoder() *Encoder {
	return encoderPool.Get().(*Encoder)
}

// ReleaseEncoder resets e and returns it to the pool. The caller must not
// touch e afterwards, nor any buffer still viewed through Bytes; use
// MoveBuffer before releasing to keep the encoded bytes.
func ReleaseEncoder(e *Encoder) {
	e.Reset()
	encoderPool.Put(e)
}
