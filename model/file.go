package model

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/go-sbd/internal/compress"
)

// BinaryExt marks model files stored in the binary encoding.
const BinaryExt = ".pb"

// isBinaryPath reports whether path, with any compression suffix removed,
// names a binary model.
func isBinaryPath(path string) bool {
	_, inner := compress.ForPath(path)
	return strings.EqualFold(filepath.Ext(inner), BinaryExt)
}

// SaveFile writes m to path. A ".pb" extension selects the binary encoding,
// anything else the text format; a trailing ".zst" or ".lz4" compresses the
// result.
func (m *Model) SaveFile(path string) error {
	var data []byte
	if isBinaryPath(path) {
		b, err := m.MarshalBinary()
		if err != nil {
			return err
		}
		data = b
	} else {
		var buf bytes.Buffer
		if err := m.Save(&buf); err != nil {
			return err
		}
		data = buf.Bytes()
	}

	codec, _ := compress.ForPath(path)
	data, err := compress.Compress(data, codec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	return nil
}

// LoadFile reads a model saved by SaveFile. Compression is detected from
// the file contents, the encoding from the file name.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	data, err = compress.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if isBinaryPath(path) {
		return DecodeBinary(data)
	}
	return Load(bytes.NewReader(data))
}
