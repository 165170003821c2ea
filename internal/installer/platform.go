package installer

import (
	"fmt"

	"upscale/internal/faults"
)

const releaseTag = "20220424"

var platformArchives = map[string]string{
	"linux":   "ubuntu",
	"darwin":  "macos",
	"windows": "windows",
}

// ArchiveFor returns the release archive name for goos.
func ArchiveFor(goos string) (string, error) {
	suffix, ok := platformArchives[goos]
	if !ok {
		return "", faults.Wrap(faults.ErrEnvironment, "installer", "platform", fmt.Sprintf("no release for %q", goos), nil)
	}
	return fmt.Sprintf("realesrgan-ncnn-vulkan-%s-%s.zip", releaseTag, suffix), nil
}
