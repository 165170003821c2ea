package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"upscale/internal/upscale"
)

// UnknownGroup is the key for basenames without a second segment.
const UnknownGroup = "unknown"

var lower = cases.Lower(language.Und)

// GroupKey returns the lower-cased second "_" segment of path's basename.
func GroupKey(path string) string {
	parts := strings.Split(filepath.Base(path), "_")
	if len(parts) < 2 || parts[1] == "" {
		return UnknownGroup
	}
	return lower.String(parts[1])
}

// Row is one aggregated group.
type Row struct {
	Key    string
	Count  int
	SizeKB int64
}

// SizeMB converts the summed size to mebibytes.
func (r Row) SizeMB() float64 {
	return float64(r.SizeKB) / 1024
}

// FormatSizeMB renders SizeMB with two decimals.
func (r Row) FormatSizeMB() string {
	return fmt.Sprintf("%.2f", r.SizeMB())
}

// Aggregate groups outcomes by GroupKey, keeping first-seen order.
func Aggregate(outcomes []upscale.Outcome) []Row {
	index := make(map[string]int)
	var rows []Row
	for _, outcome := range outcomes {
		key := GroupKey(outcome.Path)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, Row{Key: key})
		}
		rows[i].Count++
		rows[i].SizeKB += outcome.SizeKB
	}
	return rows
}
