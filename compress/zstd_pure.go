//go:build !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders across calls to Decompress. The
// klauspost/compress/zstd decoder is explicitly designed for this: it
// allocates on first use and stays allocation-free afterward, so reusing
// one across a batch of ViewState payloads avoids re-paying that warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: build zstd decoder: %v", err))
		}
		return decoder
	},
}

// zstdEncoderPool pools zstd encoders across calls to Compress, for the
// same reason as zstdDecoderPool.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("compress: build zstd encoder: %v", err))
		}
		return encoder
	},
}

// Compress wraps payload in a zstd envelope using a pooled encoder.
func (c ZstdCompressor) Compress(payload []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	// EncodeAll is stateless, so the pooled encoder is safe to reuse
	// immediately regardless of this call's outcome.
	envelope := encoder.EncodeAll(payload, nil)

	return envelope, nil
}

// Decompress unwraps a zstd envelope around a ViewState payload using a
// pooled decoder.
func (c ZstdCompressor) Decompress(envelope []byte) ([]byte, error) {
	if len(envelope) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// DecodeAll is stateless too: a failed decode here still leaves the
	// pooled decoder reusable for the next envelope.
	payload, err := decoder.DecodeAll(envelope, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}

	return payload, nil
}
