// Package deps checks that the external binaries the runner shells out to are
// present and executable before any work is dispatched.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"upscale/internal/faults"
)

// Requirement defines an external binary upscale relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// UpscalerRequirement describes the super-resolution tool at path.
func UpscalerRequirement(path string) Requirement {
	return Requirement{
		Name:        "Upscaler",
		Command:     path,
		Description: "Real-ESRGAN ncnn Vulkan binary",
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Commands containing a path are checked in place; bare names go through PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = describeMissing(cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Require fails with an environment error naming every unavailable
// non-optional requirement.
func Require(requirements ...Requirement) error {
	var missing []string
	for _, status := range CheckBinaries(requirements) {
		if status.Available || status.Optional {
			continue
		}
		missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
	}
	if len(missing) == 0 {
		return nil
	}
	return faults.Wrap(faults.ErrEnvironment, "deps", "check", strings.Join(missing, ", "), nil)
}

func describeMissing(cmd string) string {
	info, err := os.Stat(cmd)
	switch {
	case err != nil:
		return fmt.Sprintf("binary %q not found", cmd)
	case info.IsDir():
		return fmt.Sprintf("%q is a directory", cmd)
	default:
		return fmt.Sprintf("%q is not executable", cmd)
	}
}
