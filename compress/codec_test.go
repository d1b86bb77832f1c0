package compress

import (
	"bytes"
	"testing"

	"github.com/s3bk/clog/format"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, codec Codec, data []byte) {
	t.Helper()

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	// The codecs return nil for an empty input, so compare contents rather
	// than nil-ness.
	require.True(t, bytes.Equal(data, decompressed), "round trip changed a %d-byte payload", len(data))
}

func testPayload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 256)
	}

	return b
}

func TestCodecs_RoundTrip(t *testing.T) {
	codecs := map[string]Codec{
		"noop": NewNoOpCompressor(),
		"zstd": NewZstdCompressor(),
		"s2":   NewS2Compressor(),
		"lz4":  NewLZ4Compressor(),
	}

	sizes := []int{0, 1, 64, 4096, 65536}

	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			for _, size := range sizes {
				roundTrip(t, codec, testPayload(size))
			}
		})
	}
}

func TestZstdCompressor_ReducesRepetitiveData(t *testing.T) {
	codec := NewZstdCompressor()
	data := make([]byte, 16384)
	for i := range data {
		data[i] = 'a'
	}

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(data))
}

func TestNoOpCompressor_ReturnsInputUnchanged(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte("GET /index.html HTTP/1.1")

	compressed, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)
}

func TestCreateCodec(t *testing.T) {
	tests := []struct {
		ctype   format.CompressionType
		wantErr bool
	}{
		{format.CompressionNone, false},
		{format.CompressionZstd, false},
		{format.CompressionS2, false},
		{format.CompressionLZ4, false},
		{format.CompressionType(0xff), true},
	}

	for _, tt := range tests {
		t.Run(tt.ctype.String(), func(t *testing.T) {
			codec, err := CreateCodec(tt.ctype, "test")
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, codec)

				return
			}

			require.NoError(t, err)
			roundTrip(t, codec, testPayload(1024))
		})
	}
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.CompressionLZ4)
	require.NoError(t, err)
	roundTrip(t, codec, testPayload(2048))

	_, err = GetCodec(format.CompressionType(0xff))
	require.Error(t, err)
}

func TestGetCodecWithQuality(t *testing.T) {
	codec, err := GetCodecWithQuality(format.CompressionZstd, QualityAttachSnapshot)
	require.NoError(t, err)
	roundTrip(t, codec, testPayload(2048))

	codec, err = GetCodecWithQuality(format.CompressionZstd, QualitySeal)
	require.NoError(t, err)
	roundTrip(t, codec, testPayload(2048))

	// Non-zstd types ignore quality entirely.
	codec, err = GetCodecWithQuality(format.CompressionLZ4, QualitySeal)
	require.NoError(t, err)
	roundTrip(t, codec, testPayload(2048))

	_, err = GetCodecWithQuality(format.CompressionType(0xff), QualitySeal)
	require.Error(t, err)
}

func TestCompressionStats_RatioAndSavings(t *testing.T) {
	stats := CompressionStats{
		Algorithm:      format.CompressionZstd,
		OriginalSize:   1000,
		CompressedSize: 250,
	}

	require.InDelta(t, 0.25, stats.CompressionRatio(), 0.001)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 0.001)
}

func TestCompressionStats_ZeroOriginalSize(t *testing.T) {
	stats := CompressionStats{OriginalSize: 0, CompressedSize: 100}

	require.Equal(t, 0.0, stats.CompressionRatio())
	require.Equal(t, 100.0, stats.SpaceSavings())
}
