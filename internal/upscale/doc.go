// Package upscale runs the external super-resolution tool over a batch of
// discovered images.
//
// A Runner turns each source path into a WorkItem, classifies it against any
// output left by a previous run, and invokes the tool for the rest. Work items
// may be dispatched concurrently, but every invocation happens while holding
// a ToolLock, a polled advisory file lock, so at most one tool process runs at
// a time across goroutines and cooperating processes. Each item ends as
// exactly one Outcome in the run's Log; tool failures are recorded there and
// never abort the batch.
package upscale
