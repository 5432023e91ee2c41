package commands

import (
	"fmt"
	"strconv"

	"github.com/danielkitchener/CBZBinder/internal/manga"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

// column describes one table column: its title and how its cells are aligned.
type column struct {
	title string
	align text.Align
}

// renderTable draws rows under the given columns. Headers stay left aligned.
func renderTable(columns []column, rows []table.Row) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(lo.Map(columns, func(c column, _ int) any { return c.title }))
	tw.AppendRows(rows)
	tw.SetColumnConfigs(lo.Map(columns, func(c column, i int) table.ColumnConfig {
		return table.ColumnConfig{Number: i + 1, Align: c.align, AlignHeader: text.AlignLeft}
	}))

	return tw.Render()
}

// treeItem is one line of a rendered tree with its children.
type treeItem struct {
	label    string
	children []treeItem
}

func renderTree(items []treeItem) string {
	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedRounded)
	appendTree(lw, items)
	return lw.Render()
}

func appendTree(lw list.Writer, items []treeItem) {
	for _, item := range items {
		lw.AppendItem(item.label)
		if len(item.children) == 0 {
			continue
		}
		lw.Indent()
		appendTree(lw, item.children)
		lw.UnIndent()
	}
}

func formatChapter(number float64) string {
	return strconv.FormatFloat(number, 'f', -1, 64)
}

// formatRange renders a half-open volume range, e.g. "[8, 16)" or "[16, ∞)".
func formatRange(r manga.VolumeRange) string {
	end := "∞"
	if !r.Unbounded() {
		end = formatChapter(r.End)
	}
	return fmt.Sprintf("[%s, %s)", formatChapter(r.Start), end)
}
