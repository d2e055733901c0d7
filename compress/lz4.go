package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// blockCompressorPool pools lz4.Compressor instances so unwrapping many
// ViewState payloads in a batch doesn't allocate a new compressor per call.
var blockCompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor handles an LZ4 block envelope occasionally seen wrapping a
// ViewState payload, per spec.md §6's --decompress flag.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress LZ4-block-compresses payload using a pooled lz4.Compressor.
func (c LZ4Compressor) Compress(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	envelope := make([]byte, lz4.CompressBlockBound(len(payload)))

	bc, _ := blockCompressorPool.Get().(*lz4.Compressor)
	defer blockCompressorPool.Put(bc)

	n, err := bc.CompressBlock(payload, envelope)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}

	return envelope[:n], nil
}

// Decompress unwraps an LZ4 block envelope around a ViewState payload.
//
// LZ4 block frames carry no decompressed-size header, so the target size is
// unknown up front. This grows the output buffer geometrically, starting at
// 4x the envelope size, and retries on ErrInvalidSourceShortBuffer until
// either the block fits or the buffer crosses maxPayloadSize — at which
// point the envelope is treated as unreasonable rather than risking
// unbounded memory growth on a crafted input.
func (c LZ4Compressor) Decompress(envelope []byte) ([]byte, error) {
	if len(envelope) == 0 {
		return nil, nil
	}

	bufSize := len(envelope) * 4
	const maxPayloadSize = 128 * 1024 * 1024

	for bufSize <= maxPayloadSize {
		payload := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(envelope, payload)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxPayloadSize {
				bufSize *= 2
				continue
			}

			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}

		return payload[:n], nil
	}

	return nil, fmt.Errorf("lz4 decompress: envelope exceeds %d byte limit: %w", maxPayloadSize, lz4.ErrInvalidSourceShortBuffer)
}
