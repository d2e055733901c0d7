package compress

// NoOpCompressor is the "none" decompression envelope: the ViewState payload
// was never compressed, so the bytes are handed through unchanged. This is
// the default for --decompress, since most ViewState fields carry a raw
// NRBF stream with no outer envelope at all.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns payload unchanged. The returned slice aliases payload;
// callers should not mutate it afterward if they still need the input.
func (c NoOpCompressor) Compress(payload []byte) ([]byte, error) {
	return payload, nil
}

// Decompress returns envelope unchanged, since there is no envelope to
// unwrap. The returned slice aliases envelope.
func (c NoOpCompressor) Decompress(envelope []byte) ([]byte, error) {
	return envelope, nil
}
