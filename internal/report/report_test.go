package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"upscale/internal/report"
	"upscale/internal/upscale"
)

func TestGroupKey(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/imgs/0001_portrait_seed42.png", "portrait"},
		{"0002_PORTRAIT_b.png", "portrait"},
		{"/x/0003_cat.realesrgan-x4plus-4k.webp", "cat.realesrgan-x4plus-4k.webp"},
		{"cat_forest.png", "forest.png"},
		{"/x/noseparator.png", report.UnknownGroup},
		{"/x/0004__empty.png", report.UnknownGroup},
	}
	for _, tt := range tests {
		if got := report.GroupKey(tt.path); got != tt.want {
			t.Errorf("GroupKey(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func rowsByKey(rows []report.Row) map[string]report.Row {
	out := make(map[string]report.Row, len(rows))
	for _, row := range rows {
		out[row.Key] = row
	}
	return out
}

func TestAggregateSumsSizes(t *testing.T) {
	rows := report.Aggregate([]upscale.Outcome{
		upscale.Succeeded("0001_portrait_a.png", 500),
		upscale.Succeeded("0002_portrait_b.png", 1500),
		upscale.Succeeded("0003_landscape_a.png", 2048),
	})
	byKey := rowsByKey(rows)
	if len(byKey) != 2 {
		t.Fatalf("expected 2 groups, got %v", rows)
	}
	portrait := byKey["portrait"]
	if portrait.Count != 2 || portrait.FormatSizeMB() != "1.95" {
		t.Fatalf("unexpected portrait row: %+v (%s MB)", portrait, portrait.FormatSizeMB())
	}
	if landscape := byKey["landscape"]; landscape.Count != 1 || landscape.FormatSizeMB() != "2.00" {
		t.Fatalf("unexpected landscape row: %+v", landscape)
	}
}

func TestRenderFailedTableHasNoSizeColumn(t *testing.T) {
	log := upscale.NewLog()
	log.Append(upscale.Failed("x_landscape_1.png"))
	log.Append(upscale.Failed("y_landscape_2.png"))

	var buf bytes.Buffer
	if err := report.Render(&buf, log, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, fragment := range []string{"Failed upscales", "TOPIC", "COUNT", "landscape", "2"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(fragment)) {
			t.Fatalf("expected %q in\n%s", fragment, out)
		}
	}
	if strings.Contains(strings.ToUpper(out), "SIZE MB") {
		t.Fatalf("failed table must not carry a size column:\n%s", out)
	}
	if strings.Contains(out, "Successful upscales") || strings.Contains(out, "Skipped upscales") {
		t.Fatalf("expected empty sequences to render nothing:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI codes without colour:\n%s", out)
	}
}

func TestRenderSuccessAndSkippedTables(t *testing.T) {
	log := upscale.NewLog()
	log.Append(upscale.Succeeded("0001_portrait_a.png", 500))
	log.Append(upscale.Succeeded("0002_portrait_b.png", 1500))
	log.Append(upscale.Skipped("0003_dog_a.png", 1024))

	var buf bytes.Buffer
	if err := report.Render(&buf, log, false); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, fragment := range []string{"Successful upscales", "Skipped upscales", "portrait", "1.95", "dog", "1.00", "╭"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in\n%s", fragment, out)
		}
	}
	if strings.Index(out, "Successful upscales") > strings.Index(out, "Skipped upscales") {
		t.Fatalf("expected success table before skipped table:\n%s", out)
	}
}

func TestRenderColorized(t *testing.T) {
	text.EnableColors()
	log := upscale.NewLog()
	log.Append(upscale.Failed("x_landscape_1.png"))

	var buf bytes.Buffer
	if err := report.Render(&buf, log, true); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[31") {
		t.Fatalf("expected red title escape in\n%q", buf.String())
	}
}

func TestRenderEmptyLog(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Render(&buf, upscale.NewLog(), true); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
