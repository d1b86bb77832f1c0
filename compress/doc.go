// Package compress provides the outer, general-purpose byte compressors
// applied to a block's string, blob, and header-map column pages.
//
// # Overview
//
// A block column goes through up to two compression stages:
//
//  1. Encoding: interning, delta transforms, varint packing — exploits
//     the structure of a specific column kind.
//  2. Outer compression: a general-purpose byte compressor further
//     reduces the already-encoded page.
//
// This package implements the second stage, with four algorithms:
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Algorithm selection
//
// | Column                       | Recommended | Reason                       |
// |------------------------------|-------------|-------------------------------|
// | uri/referer/ua string pages  | Zstd        | high redundancy, cold reads   |
// | header-map blobs             | Zstd        | repeated keys across rows     |
// | hot append tail re-encodes   | S2 or LZ4   | latency-sensitive             |
//
// # Thread safety
//
// All codec implementations are safe for concurrent use. Zstd pools its
// encoders and decoders and LZ4 pools its block compressors; S2 and None
// keep no state between calls.
package compress
