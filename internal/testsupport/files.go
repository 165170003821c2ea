// Package testsupport holds fixtures shared by package tests: sized files,
// a stub upscaler binary, and a throwaway configuration.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with size bytes of a repeating pattern,
// creating parent directories. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	for remaining := size; remaining > 0; {
		n := min(remaining, int64(chunkSize))
		if _, err := f.Write(buf[:n]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= n
	}
}

// WriteFileKB writes a file of exactly kb kibibytes.
func WriteFileKB(t testing.TB, path string, kb int64) {
	t.Helper()
	WriteFile(t, path, kb*1024)
}
