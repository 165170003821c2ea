package upscale

import "upscale/internal/fileutil"

// Precheck reports whether item can be skipped because an earlier run left an
// output strictly larger (in whole KiB) than the source. This is a size
// heuristic, not a content check: a truncated or unrelated output that happens
// to be larger is trusted, and a valid output that is not larger is redone.
func Precheck(item WorkItem) (Outcome, bool) {
	srcKB, ok := fileutil.SizeKB(item.Source)
	if !ok {
		return Outcome{}, false
	}
	outKB, ok := fileutil.SizeKB(item.Output)
	if !ok || outKB <= srcKB {
		return Outcome{}, false
	}
	return Skipped(item.Output, outKB), true
}

// Complete classifies item after an invocation. A nil invokeErr means the tool
// exited zero; the output is re-measured for reporting.
func Complete(item WorkItem, invokeErr error) Outcome {
	if invokeErr != nil {
		return Failed(item.Source)
	}
	kb, _ := fileutil.SizeKB(item.Output)
	return Succeeded(item.Output, kb)
}
