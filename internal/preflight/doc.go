// Package preflight provides readiness checks for the platform and the
// filesystem paths a run depends on.
//
// The CLI runs them before dispatching any work: a failed check aborts the
// run with an environment error instead of recording every item as failed.
package preflight
