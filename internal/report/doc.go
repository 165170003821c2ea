// Package report turns an outcome log into per-kind tables.
//
// Rows are grouped by the subject token encoded in each filename: the second
// underscore-delimited segment of the basename, lower-cased. Group order
// follows first appearance in the log, which itself depends on completion
// order, so callers must not rely on row order.
package report
