package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

const (
	maxFileSize    = 100 * 1024 * 1024
	binaryProbeLen = 8192
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrBinaryFile      = errors.New("binary file")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads the file at path and returns its decoded text.
// Only UTF-8 is accepted; a leading byte order mark is dropped.
func ReadText(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: is a directory", path)
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("%s: %w (%d MB, max supported is %d MB)",
			path, ErrFileTooLarge, info.Size()/(1024*1024), maxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decode(path, data)
}

func decode(path string, data []byte) (string, error) {
	probe := data
	if len(probe) > binaryProbeLen {
		probe = probe[:binaryProbeLen]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return "", fmt.Errorf("%s: %w", path, ErrBinaryFile)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidEncoding)
	}
	return string(data), nil
}
