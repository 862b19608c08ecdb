package fml

import (
	"bytes"
	"errors"
	"io"
	"os"
	"unicode/utf8"
)

// sniffLen is how many leading bytes are inspected to classify a file.
const sniffLen = 1024

// isBinaryFile reports whether a file should be skipped as binary: a null
// byte in the first 1024 bytes, or bytes that are not valid UTF-8.
func isBinaryFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	buffer = buffer[:n]

	if bytes.IndexByte(buffer, 0) >= 0 {
		return true, nil
	}

	if utf8.Valid(buffer) {
		return false, nil
	}

	// A multi-byte rune cut at the sniff boundary is not evidence of
	// binary content; retry with up to three trailing bytes dropped.
	if n == sniffLen {
		for cut := 1; cut <= utf8.UTFMax-1 && cut < len(buffer); cut++ {
			if utf8.Valid(buffer[:len(buffer)-cut]) {
				return false, nil
			}
		}
	}
	return true, nil
}
