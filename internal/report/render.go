package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"upscale/internal/upscale"
)

type section struct {
	kind  upscale.Kind
	title string
	key   string
	color text.Colors
}

var sections = []section{
	{kind: upscale.KindSuccess, title: "Successful upscales", key: "Subject", color: text.Colors{text.FgGreen, text.Bold}},
	{kind: upscale.KindFailed, title: "Failed upscales", key: "Topic", color: text.Colors{text.FgRed, text.Bold}},
	{kind: upscale.KindSkipped, title: "Skipped upscales", key: "Subject", color: text.Colors{text.FgYellow, text.Bold}},
}

var (
	headerColor = text.Colors{text.FgCyan, text.Bold}
	rowColor    = text.Colors{text.FgHiWhite}
)

// Render writes one table per non-empty outcome sequence, in success, failed,
// skipped order. Empty sequences produce no output at all.
func Render(w io.Writer, log *upscale.Log, colorize bool) error {
	first := true
	for _, s := range sections {
		outcomes := log.Sequence(s.kind)
		if len(outcomes) == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if _, err := fmt.Fprintln(w, renderSection(s, Aggregate(outcomes), colorize)); err != nil {
			return err
		}
	}
	return nil
}

func renderSection(s section, rows []Row, colorize bool) string {
	withSize := s.kind != upscale.KindFailed

	tw := table.NewWriter()
	style := table.StyleRounded
	style.Title.Align = text.AlignLeft
	if colorize {
		style.Title.Colors = s.color
		style.Color.Header = headerColor
		style.Color.Row = rowColor
		style.Color.RowAlternate = rowColor
	}
	tw.SetStyle(style)
	tw.SetTitle(s.title)

	header := table.Row{s.key, "Count"}
	if withSize {
		header = append(header, "Size MB")
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := table.Row{row.Key, strconv.Itoa(row.Count)}
		if withSize {
			r = append(r, row.FormatSizeMB())
		}
		tw.AppendRow(r)
	}

	configs := []table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	}
	if withSize {
		configs = append(configs, table.ColumnConfig{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
