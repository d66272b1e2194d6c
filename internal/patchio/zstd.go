// Package patchio loads patch and merge-input files for cmd/wiggle,
// transparently decompressing zstd-compressed input, and formats a
// plain two-file diff report.
package patchio

import (
	"bytes"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the four-byte frame magic number at the start of every
// zstd stream, used to sniff compressed input regardless of extension.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ReadFile reads path and transparently decompresses it if its content
// starts with the zstd frame magic number. The file name, including any
// ".zst" extension, is not consulted.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patchio: read %s: %w", path, err)
	}
	if !looksZstd(data) {
		return data, nil
	}
	out, err := decompress(data)
	if err != nil {
		return nil, fmt.Errorf("patchio: decompress %s: %w", path, err)
	}
	return out, nil
}

func looksZstd(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// Compress zstd-encodes data, for callers that want to write a
// .patch.zst file (e.g. a future "wiggle save" subcommand).
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
