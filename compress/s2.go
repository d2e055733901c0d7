package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor handles an S2 envelope (Snappy's faster, less common
// cousin) occasionally layered around a ViewState payload, per spec.md §6's
// --decompress flag.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress S2-compresses payload.
func (c S2Compressor) Compress(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, payload), nil
}

// Decompress unwraps an S2 envelope around a ViewState payload.
func (c S2Compressor) Decompress(envelope []byte) ([]byte, error) {
	if len(envelope) == 0 {
		return nil, nil
	}

	payload, err := s2.Decode(nil, envelope)
	if err != nil {
		return nil, fmt.Errorf("s2 decompress: %w", err)
	}

	return payload, nil
}
