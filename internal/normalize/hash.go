package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sort"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// BatchKey derives a content address for a set of input files from their
// individual hashes. Order-insensitive: the same file set always yields the
// same key regardless of upload order.
func BatchKey(fileHashes []string) string {
	sorted := make([]string, len(fileHashes))
	copy(sorted, fileHashes)
	sort.Strings(sorted)

	h := sha256.New()
	for _, fh := range sorted {
		h.Write([]byte(fh))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
