package upscale

import (
	"path/filepath"
	"strings"
)

// OutputFormat is the only format the runner asks the tool to produce.
const OutputFormat = "webp"

// WorkItem is one discovered input image and the output it should produce.
type WorkItem struct {
	Source string
	Output string
}

// NewWorkItem derives the output path for source.
func NewWorkItem(source, model, factor string) WorkItem {
	return WorkItem{Source: source, Output: OutputPath(source, model, factor)}
}

// OutputPath strips the source extension once and appends
// ".<model>-<factor>.webp", so /a/b/img.PNG becomes
// /a/b/img.realesrgan-x4plus-4k.webp.
func OutputPath(source, model, factor string) string {
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	return stem + "." + model + "-" + factor + "." + OutputFormat
}
