// Package savefile packs a JSON save snapshot into a zstd-compressed file
// body and back. Plain JSON bodies are accepted on the way in so hand-edited
// saves can still be imported.
package savefile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Ext is the file extension used for exported saves.
const Ext = ".frost.zst"

// maxDecoded caps a decompressed payload.
const maxDecoded = 1 << 20

var ErrTooLarge = errors.New("save payload too large")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func Compress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(payload); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress returns the JSON inside b. Input without the zstd frame magic is
// returned unchanged.
func Decompress(b []byte) ([]byte, error) {
	if !IsCompressed(b) {
		return b, nil
	}
	dec, err := zstd.NewReader(bytes.NewReader(b), zstd.WithDecoderMaxMemory(maxDecoded))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := io.ReadAll(io.LimitReader(dec, maxDecoded+1))
	if err != nil {
		return nil, fmt.Errorf("decompress save: %w", err)
	}
	if len(out) > maxDecoded {
		return nil, ErrTooLarge
	}
	return out, nil
}

func IsCompressed(b []byte) bool {
	return bytes.HasPrefix(b, zstdMagic)
}

// WriteFile compresses payload into path, creating parent directories.
func WriteFile(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)
	if _, err := bw.Write(payload); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decompress(b)
}
