package installer

import (
	"fmt"
	"strings"

	"upscale/internal/faults"
	"upscale/internal/fileutil"
)

// Verify compares the sha256 of the file at path with table[name]. Names
// missing from the table pass unchecked.
func Verify(path, name string, table map[string]string) error {
	want, ok := table[name]
	if !ok {
		return nil
	}
	got, err := fileutil.SHA256File(path)
	if err != nil {
		return faults.Wrap(faults.ErrVerification, "installer", "checksum", name, err)
	}
	if !strings.EqualFold(got, strings.TrimSpace(want)) {
		return faults.Wrap(faults.ErrVerification, "installer", "checksum",
			fmt.Sprintf("%s: got %s, want %s", name, got, strings.ToLower(strings.TrimSpace(want))), nil)
	}
	return nil
}
