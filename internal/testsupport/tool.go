package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// StubInvocationLog is the file, next to the stub binary, that receives one
// line per invocation: the working directory, a tab, then the arguments.
const StubInvocationLog = "invocations.log"

// WriteStubTool writes a shell script standing in for the upscaler at
// dir/name. It records each invocation, exits 1 when the input path contains
// "fail", and otherwise writes an output four times the input size plus 2 KiB.
func WriteStubTool(t testing.TB, dir, name string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("stub tool requires a POSIX shell")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir stub dir: %v", err)
	}
	logPath := filepath.Join(dir, StubInvocationLog)
	script := fmt.Sprintf(`#!/bin/sh
echo "$(pwd)	$*" >> %q
in=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -i) in="$2"; shift ;;
    -o) out="$2"; shift ;;
  esac
  shift
done
echo "stub noise on stdout"
echo "stub noise on stderr" >&2
case "$in" in
  *fail*) exit 1 ;;
esac
size=$(wc -c < "$in")
head -c $((size * 4 + 2048)) /dev/zero > "$out"
exit 0
`, logPath)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub tool: %v", err)
	}
	return path
}

// StubInvocations returns the recorded invocation lines for a stub in dir.
func StubInvocations(t testing.TB, dir string) []string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, StubInvocationLog))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read stub invocations: %v", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
