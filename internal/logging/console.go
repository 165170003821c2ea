package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// runTagLen is how much of the run id the console shows.
const runTagLen = 8

// consoleHandler writes one line per record:
//
//	15:04:05 INFO  [1a2b3c4d] runner: upscaling file=/imgs/0001_cat_a.png
//
// The run id and component are lifted out of the attributes into the line
// prefix; everything else follows as key=value pairs.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Level
	runTag    string
	component string
	group     string
	attrs     []byte
}

func newConsoleHandler(w io.Writer, level slog.Level) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	buf := make([]byte, 0, 160)
	buf = ts.AppendFormat(buf, time.TimeOnly)
	buf = append(buf, ' ')
	buf = append(buf, levelName(r.Level)...)

	// Record attrs may carry component or run id too; they win over With.
	rec := *h
	var tail []byte
	r.Attrs(func(a slog.Attr) bool {
		tail = rec.appendAttr(tail, rec.group, a)
		return true
	})

	if rec.runTag != "" {
		buf = append(buf, " ["...)
		buf = append(buf, rec.runTag...)
		buf = append(buf, ']')
	}
	buf = append(buf, ' ')
	if rec.component != "" {
		buf = append(buf, rec.component...)
		buf = append(buf, ": "...)
	}
	buf = append(buf, strings.TrimSpace(r.Message)...)
	buf = append(buf, h.attrs...)
	buf = append(buf, tail...)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]byte(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = next.appendAttr(next.attrs, next.group, a)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.group + name + "."
	return &next
}

// appendAttr renders a as " key=value", flattening groups. Run id and
// component at the top level update h instead of being rendered.
func (h *consoleHandler) appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if prefix == "" {
		switch a.Key {
		case FieldRunID:
			h.runTag = shortRunID(a.Value.String())
			return buf
		case FieldComponent:
			h.component = a.Value.String()
			return buf
		}
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			buf = h.appendAttr(buf, prefix, member)
		}
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, prefix...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	var s string
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().UTC().AppendFormat(buf, time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = v.String()
		}
	default:
		s = v.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func shortRunID(id string) string {
	if len(id) > runTagLen {
		return id[:runTagLen]
	}
	return id
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}
