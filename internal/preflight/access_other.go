//go:build !unix

package preflight

import "os"

// checkAccess falls back to opening the directory; write permission is left
// for the first write to report.
func checkAccess(path string, _ bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
