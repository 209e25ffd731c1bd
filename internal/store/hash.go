package store

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// Fingerprint hashes settings followed by the content of r.
// Changing either the input or the settings that shaped a run yields a new key.
func Fingerprint(r io.Reader, settings []byte) (string, error) {
	h := blake3.New(32, nil)
	if _, err := h.Write(settings); err != nil {
		return "", fmt.Errorf("hash settings: %w", err)
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// FingerprintFile is Fingerprint over the file at path
func FingerprintFile(path string, settings []byte) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Fingerprint(f, settings)
}
