package preflight

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"upscale/internal/faults"
	"upscale/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, true)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "read/write ok") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), false)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, false)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_Unreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if result := CheckDirectoryAccess("test", dir, false); result.Passed {
		t.Fatal("expected failure for unreadable dir")
	}
}

func TestCheckPlatform(t *testing.T) {
	if result := CheckPlatform("linux"); !result.Passed {
		t.Fatalf("expected linux to be supported: %s", result.Detail)
	}
	if result := CheckPlatform("plan9"); result.Passed {
		t.Fatal("expected plan9 to be unsupported")
	}
}

func TestRunAllAndErr(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := t.TempDir()

	results := RunAll(cfg, "linux", root)
	if len(results) != 2 {
		t.Fatalf("expected platform and input checks only, got %+v", results)
	}
	if err := Err(results); err != nil {
		t.Fatalf("expected all checks to pass: %v", err)
	}

	if err := os.MkdirAll(cfg.Paths.InstallDir, 0o755); err != nil {
		t.Fatal(err)
	}
	results = RunAll(cfg, "plan9", filepath.Join(root, "missing"))
	if len(results) != 3 {
		t.Fatalf("expected install dir check once it exists, got %+v", results)
	}
	err := Err(results)
	if !errors.Is(err, faults.ErrEnvironment) {
		t.Fatalf("expected environment error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Platform") || !strings.Contains(err.Error(), "Input directory") {
		t.Fatalf("unexpected error detail: %v", err)
	}
}
