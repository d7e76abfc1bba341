// Package compress wraps whole files in zstd or lz4 frames.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec identifies a compression format.
type Codec uint8

const (
	// None stores data as is.
	None Codec = iota
	// Zstd uses zstd frames (better ratio).
	Zstd
	// LZ4 uses lz4 frames (faster).
	LZ4
)

func (c Codec) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// Extension returns the file suffix of c, including the dot.
func (c Codec) Extension() string {
	switch c {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	default:
		return ""
	}
}

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// ErrCorrupt is returned when compressed data cannot be decoded.
var ErrCorrupt = errors.New("compress: corrupt data")

// zstd encoders and decoders are expensive to build; reuse them.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// ForPath returns the codec named by the extension of path and the path
// with that extension removed.
func ForPath(path string) (Codec, string) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zst", ".zstd":
		return Zstd, strings.TrimSuffix(path, filepath.Ext(path))
	case ".lz4":
		return LZ4, strings.TrimSuffix(path, filepath.Ext(path))
	default:
		return None, path
	}
}

// Detect identifies the codec of data from its magic number.
func Detect(data []byte) Codec {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// Compress encodes data with c.
func Compress(data []byte, c Codec) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Zstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, fmt.Errorf("compress: zstd encoder: %w", err)
		}
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("compress: unknown codec %d", c)
	}
}

// Decompress decodes data according to its magic number. Data without a
// known magic number is returned unchanged.
func Decompress(data []byte) ([]byte, error) {
	switch Detect(data) {
	case Zstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("compress: zstd decoder: %w", err)
		}
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return out, nil
	case LZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return out, nil
	default:
		return data, nil
	}
}
