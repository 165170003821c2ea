package upscale

import "sync"

// Kind tags an Outcome.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailed
	KindSkipped
)

// String returns the lower-case kind label.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailed:
		return "failed"
	case KindSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome is the terminal classification of one WorkItem.
//
// Path is the output path for success and skipped outcomes and the source
// path for failed ones. SizeKB is the output size in whole kibibytes and is
// always zero for failures, which carry no measurement.
type Outcome struct {
	Kind   Kind
	Path   string
	SizeKB int64
}

// Succeeded records a zero exit with the re-measured output size.
func Succeeded(output string, sizeKB int64) Outcome {
	return Outcome{Kind: KindSuccess, Path: output, SizeKB: sizeKB}
}

// Failed records a failed item by its source path.
func Failed(source string) Outcome {
	return Outcome{Kind: KindFailed, Path: source}
}

// Skipped records an item whose existing output already outgrew its source.
func Skipped(output string, sizeKB int64) Outcome {
	return Outcome{Kind: KindSkipped, Path: output, SizeKB: sizeKB}
}

// HasSize reports whether the outcome carries a measured size.
func (o Outcome) HasSize() bool {
	return o.Kind != KindFailed
}

// Counts summarizes a Log.
type Counts struct {
	Success int
	Failed  int
	Skipped int
}

// Total is the number of recorded outcomes across all kinds.
func (c Counts) Total() int {
	return c.Success + c.Failed + c.Skipped
}

// Log is the append-only record of a run. It is safe for concurrent Append
// calls; readers receive copies.
type Log struct {
	mu      sync.Mutex
	success []Outcome
	failed  []Outcome
	skipped []Outcome
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append records o in the sequence matching its kind.
func (l *Log) Append(o Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch o.Kind {
	case KindSuccess:
		l.success = append(l.success, o)
	case KindFailed:
		l.failed = append(l.failed, o)
	case KindSkipped:
		l.skipped = append(l.skipped, o)
	}
}

// Success, Failed and Skipped return copies of the per-kind sequences.
func (l *Log) Success() []Outcome { return l.snapshot(&l.success) }

func (l *Log) Failed() []Outcome { return l.snapshot(&l.failed) }

func (l *Log) Skipped() []Outcome { return l.snapshot(&l.skipped) }

// Sequence returns the outcomes recorded for kind.
func (l *Log) Sequence(kind Kind) []Outcome {
	switch kind {
	case KindSuccess:
		return l.Success()
	case KindFailed:
		return l.Failed()
	case KindSkipped:
		return l.Skipped()
	default:
		return nil
	}
}

// Counts returns the current size of each sequence.
func (l *Log) Counts() Counts {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Counts{Success: len(l.success), Failed: len(l.failed), Skipped: len(l.skipped)}
}

func (l *Log) snapshot(seq *[]Outcome) []Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Outcome, len(*seq))
	copy(out, *seq)
	return out
}
