// Package fileutil holds small file measurements shared across packages.
package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// SHA256File streams path through sha256 and returns the lower-case hex digest.
func SHA256File(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, in); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// SizeKB returns the size of a regular file in whole kibibytes, rounded down.
// The second result is false when path is missing or not a regular file.
func SizeKB(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}
	return info.Size() / 1024, true
}
