// Package report renders aggregate views as text tables and a horizontal
// bar chart. Rounding happens only here; the aggregates themselves are
// stored unrounded.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmelo/ticketstats/internal/aggregate"
)

const barWidth = 40

// WriteMeanByCategory writes the ranked mean-hours table followed by a
// horizontal bar chart scaled to the slowest category.
func WriteMeanByCategory(w io.Writer, rows []aggregate.GroupMean) {
	fmt.Fprintln(w, "Mean resolution time by category")
	fmt.Fprintln(w)

	keyWidth := columnWidth("Categoria", groupKeys(rows))
	fmt.Fprintf(w, "  %-*s  %10s  %8s\n", keyWidth, "Categoria", "Média", "Chamados")
	for _, r := range rows {
		fmt.Fprintf(w, "  %-*s  %8.2f h  %8d\n", keyWidth, r.Key, r.Mean, r.Count)
	}
	fmt.Fprintln(w)

	var max float64
	for _, r := range rows {
		if r.Mean > max {
			max = r.Mean
		}
	}
	if max <= 0 {
		return
	}
	for _, r := range rows {
		n := int(r.Mean / max * barWidth)
		fmt.Fprintf(w, "  %-*s  %s %.2f h\n", keyWidth, r.Key, strings.Repeat("#", n), r.Mean)
	}
}

// WriteMatrix writes the analyst × category mean-hours pivot.
func WriteMatrix(w io.Writer, m aggregate.Matrix) {
	fmt.Fprintln(w, "Mean resolution time by analyst and category")
	fmt.Fprintln(w)

	nameWidth := columnWidth("Analista", m.Analysts)
	fmt.Fprintf(w, "  %-*s", nameWidth, "Analista")
	for _, c := range m.Categories {
		fmt.Fprintf(w, "  %*s", cellWidth(c), c)
	}
	fmt.Fprintln(w)

	for i, a := range m.Analysts {
		fmt.Fprintf(w, "  %-*s", nameWidth, a)
		for j, c := range m.Categories {
			fmt.Fprintf(w, "  %*s", cellWidth(c), fmt.Sprintf("%.2f h", m.Cells[i][j]))
		}
		fmt.Fprintln(w)
	}
}

// WritePerformance writes one performance summary table under the given
// group label ("Analista" or "Categoria").
func WritePerformance(w io.Writer, label string, rows []aggregate.PerformanceRow) {
	fmt.Fprintf(w, "Performance by %s\n\n", strings.ToLower(label))

	keyWidth := columnWidth(label, performanceGroups(rows))
	fmt.Fprintf(w, "  %-*s  %8s  %10s  %9s\n", keyWidth, label, "Chamados", "Média", "SLA")
	for _, r := range rows {
		fmt.Fprintf(w, "  %-*s  %8d  %8.2f h  %8.1f%%\n", keyWidth, r.Group, r.Tickets, r.MeanHours, r.SLARate)
	}
}

func groupKeys(rows []aggregate.GroupMean) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Key
	}
	return keys
}

func performanceGroups(rows []aggregate.PerformanceRow) []string {
	keys := make([]string, len(rows))
	for i, r := range rows {
		keys[i] = r.Group
	}
	return keys
}

func columnWidth(header string, vals []string) int {
	w := len([]rune(header))
	for _, v := range vals {
		if n := len([]rune(v)); n > w {
			w = n
		}
	}
	return w
}

func cellWidth(category string) int {
	// Wide enough for "123.45 h" and the category header itself.
	if n := len([]rune(category)); n > 8 {
		return n
	}
	return 8
}
