// Package faults defines the error taxonomy shared by the CLI and the runner.
//
// Fatal conditions are tagged with one of the sentinel markers so the CLI can
// classify them with errors.Is; per-item tool failures never surface here and
// are recorded as outcomes instead.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEnvironment   = errors.New("environment error")
	ErrConfiguration = errors.New("configuration error")
	ErrDiscovery     = errors.New("discovery error")
	ErrExternalTool  = errors.New("external tool error")
	ErrVerification  = errors.New("verification error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrEnvironment
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err carries one of the run-aborting markers.
func IsFatal(err error) bool {
	return errors.Is(err, ErrEnvironment) ||
		errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrDiscovery) ||
		errors.Is(err, ErrVerification)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
