package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path  string
		codec Codec
		inner string
	}{
		{"model.txt", None, "model.txt"},
		{"model.txt.zst", Zstd, "model.txt"},
		{"model.pb.ZSTD", Zstd, "model.pb"},
		{"dir/model.lz4", LZ4, "dir/model"},
	}
	for _, tc := range tests {
		c, inner := ForPath(tc.path)
		assert.Equal(t, tc.codec, c, tc.path)
		assert.Equal(t, tc.inner, inner, tc.path)
	}
}

func TestCompressDecompress(t *testing.T) {
	data := bytes.Repeat([]byte(". 0.25 -1.5 0 0\nDr 0 -0.75 0 0\n"), 200)

	for _, c := range []Codec{None, Zstd, LZ4} {
		t.Run(c.String(), func(t *testing.T) {
			packed, err := Compress(data, c)
			require.NoError(t, err)
			assert.Equal(t, c, Detect(packed))
			if c != None {
				assert.Less(t, len(packed), len(data))
			}

			out, err := Decompress(packed)
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	bad := append(append([]byte(nil), zstdMagic...), 0xde, 0xad, 0xbe, 0xef)
	_, err := Decompress(bad)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestCodec_Extension(t *testing.T) {
	assert.Equal(t, ".zst", Zstd.Extension())
	assert.Equal(t, ".lz4", LZ4.Extension())
	assert.Empty(t, None.Extension())
}
