// Package compress provides the decompression envelopes the nrbfdump CLI
// can unwrap before handing bytes to the decoder: a ViewState payload is
// frequently gzip- or deflate-compressed by the ASP.NET page framework
// before it ever reaches the NRBF stream, and some callers additionally
// layer a general-purpose codec (zstd, S2, LZ4) of their own around the
// payload in transit or storage.
//
// # Architecture
//
// Three interfaces, one per direction plus their combination:
//
//	type Compressor interface   { Compress(data []byte) ([]byte, error) }
//	type Decompressor interface { Decompress(data []byte) ([]byte, error) }
//	type Codec interface        { Compressor; Decompressor }
//
// # Supported algorithms
//
//   - none: bytes pass through unchanged
//   - gzip: klauspost/compress/gzip, the common ASP.NET envelope
//   - zstd: klauspost/compress/zstd (pure Go) or valyala/gozstd (cgo build)
//   - s2:   klauspost/compress/s2, a fast LZ4-class format
//   - lz4:  pierrec/lz4/v4
//
// Only Decompress is reachable from the CLI's --decompress flag; Compress
// exists so each codec's round-trip is testable and so Codec stays
// symmetric.
package compress
