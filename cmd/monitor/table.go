package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"media_monitor/internal/models"

	"github.com/mattn/go-runewidth"
)

const (
	titleWidth  = 56
	sourceWidth = 18
)

var tableHeader = []string{"#", "SCORE", "SENTIMENT", "PUBLISHED", "SOURCE", "TITLE"}

// renderTable печатает результат поиска таблицей. Ширина колонок считается
// по ширине отображения, чтобы китайские заголовки не ломали выравнивание.
// Ошибка записи возвращается из Flush.
func renderTable(out io.Writer, res *models.AggregateResult) error {
	w := bufio.NewWriter(out)
	rows := [][]string{tableHeader}
	for i, a := range res.Articles {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(a.RelevanceScore),
			string(a.Sentiment),
			a.PublishTime.Format("2006-01-02 15:04"),
			runewidth.Truncate(a.Source, sourceWidth, "…"),
			runewidth.Truncate(a.Title, titleWidth, "…"),
		})
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	fmt.Fprintf(w, "\nkeyword: %s  source: %s  total: %d  shown: %d  fallback: %t\n",
		res.Keyword, res.Source, res.Total, len(res.Articles), res.Fallback)
	if res.Note != "" {
		fmt.Fprintf(w, "note: %s\n", res.Note)
	}
	for _, p := range res.Providers {
		line := fmt.Sprintf("  %-10s %-8s %3d", p.Name, p.Status, p.Count)
		if p.Err != "" {
			line += "  " + p.Err
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}
