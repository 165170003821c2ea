package preflight

import (
	"fmt"
	"os"
	"strings"

	"upscale/internal/config"
	"upscale/internal/faults"
	"upscale/internal/installer"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks for a run over root. The install directory is
// only checked when it already exists; the installer creates it otherwise.
func RunAll(cfg *config.Config, goos, root string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckPlatform(goos),
		CheckDirectoryAccess("Input directory", root, false),
	}

	if _, err := os.Stat(cfg.Paths.InstallDir); err == nil {
		results = append(results, CheckDirectoryAccess("Install directory", cfg.Paths.InstallDir, false))
	}

	return results
}

// CheckPlatform verifies that a tool release exists for goos.
func CheckPlatform(goos string) Result {
	const name = "Platform"
	archive, err := installer.ArchiveFor(goos)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: unsupported)", goos)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", goos, archive)}
}

// CheckDirectoryAccess verifies that path is a directory the current user can
// traverse and read, and write when writable is set.
func CheckDirectoryAccess(name, path string, writable bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path, writable); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	if writable {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// Err folds failed results into a single environment error.
func Err(results []Result) error {
	var failed []string
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r.Name+": "+r.Detail)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return faults.Wrap(faults.ErrEnvironment, "preflight", "", strings.Join(failed, "; "), nil)
}
