// Package discovery enumerates the input images a run will process.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"sort"
	"strings"

	"upscale/internal/faults"
)

// ErrNoInput reports that a scan root holds no file with an allowed extension.
// It stops the whole run.
var ErrNoInput = errors.New("no matching input files")

// Matcher reports whether a path carries one of the allowed extensions,
// ignoring case.
type Matcher map[string]struct{}

// NewMatcher builds a Matcher from extensions such as ".png" or "JPG".
func NewMatcher(extensions []string) Matcher {
	m := make(Matcher, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		m[ext] = struct{}{}
	}
	return m
}

// Match reports whether path has an allowed extension.
func (m Matcher) Match(path string) bool {
	_, ok := m[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Walk lazily yields every regular file under root whose extension matches.
// Traversal recurses into subdirectories in lexical order. A traversal error
// is yielded once and ends the sequence.
func Walk(root string, extensions []string) iter.Seq2[string, error] {
	matcher := NewMatcher(extensions)
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() || !matcher.Match(path) {
				return nil
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if !yield(abs, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", fmt.Errorf("walk %s: %w", root, err))
		}
	}
}

// Discover collects Walk into a sorted slice and fails with ErrNoInput when
// nothing matched.
func Discover(root string, extensions []string) ([]string, error) {
	var files []string
	for path, err := range Walk(root, extensions) {
		if err != nil {
			return nil, faults.Wrap(faults.ErrDiscovery, "discovery", "scan", "", err)
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		detail := fmt.Sprintf("%s (extensions %s)", root, strings.Join(extensions, ", "))
		return nil, faults.Wrap(faults.ErrDiscovery, "discovery", "scan", detail, ErrNoInput)
	}
	sort.Strings(files)
	return files, nil
}
