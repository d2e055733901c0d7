package compress

import "fmt"

// Algorithm identifies a decompression envelope the CLI can unwrap before
// handing bytes to the decoder, per spec.md §6's --decompress flag.
type Algorithm string

const (
	AlgorithmNone Algorithm = "none"
	AlgorithmZstd Algorithm = "zstd"
	AlgorithmS2   Algorithm = "s2"
	AlgorithmLZ4  Algorithm = "lz4"
	AlgorithmGzip Algorithm = "gzip"
)

// Compressor compresses data. The decoder CLI never compresses output
// itself; this half of the interface exists so Codec stays symmetric and
// each algorithm's round-trip is testable without a second type per codec.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses data previously produced by the matching
// Compressor, or by any standard implementation of the same algorithm
// (e.g. a .NET application's own GZipStream/DeflateStream envelope around a
// serialized ViewState payload).
//
// Error conditions:
//   - Returns error if input data is corrupted or invalid
//   - Returns error if data was compressed with a different algorithm
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Only Decompress is exercised by the CLI's
// --decompress flag; Compress exists for round-trip tests and interface
// symmetry with the rest of this package.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Algorithm]Codec{
	AlgorithmNone: NewNoOpCompressor(),
	AlgorithmZstd: NewZstdCompressor(),
	AlgorithmS2:   NewS2Compressor(),
	AlgorithmLZ4:  NewLZ4Compressor(),
	AlgorithmGzip: NewGzipCompressor(),
}

// GetCodec retrieves the built-in Codec for algorithm.
func GetCodec(algorithm Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algorithm]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported algorithm %q", algorithm)
}
