// Package aggregate computes the grouped metrics served to the rendering
// layer: mean resolution hours per group, the analyst × category pivot, and
// per-group performance summaries with SLA compliance rates.
package aggregate

import (
	"sort"

	"github.com/dmelo/ticketstats/internal/model"
)

// GroupMean is one row of a mean-resolution-hours ranking.
type GroupMean struct {
	Key   string
	Count int
	Mean  float64
}

// MeanByCategory groups tickets by category and ranks categories by
// descending mean resolution hours. Only categories present in the input
// appear, so every mean is over a non-empty group. The result doubles as the
// bar-chart series.
func MeanByCategory(tickets []model.Ticket) []GroupMean {
	acc := make(map[string]*accumulator)
	for _, t := range tickets {
		get(acc, t.Category).add(t.ResolvedHours)
	}

	out := make([]GroupMean, 0, len(acc))
	for key, a := range acc {
		out = append(out, GroupMean{Key: key, Count: a.count, Mean: a.mean()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Matrix is the analyst × category mean-hours pivot. Cells[i][j] is the mean
// for Analysts[i] in Categories[j], zero when the pair never occurs. Both
// axes are sorted ascending.
type Matrix struct {
	Analysts   []string
	Categories []string
	Cells      [][]float64
}

// MeanMatrix computes the analyst × category pivot of mean resolution hours.
func MeanMatrix(tickets []model.Ticket) Matrix {
	type pair struct{ analyst, category string }

	acc := make(map[pair]*accumulator)
	analysts := make(map[string]bool)
	categories := make(map[string]bool)
	for _, t := range tickets {
		analysts[t.Analyst] = true
		categories[t.Category] = true
		p := pair{t.Analyst, t.Category}
		if acc[p] == nil {
			acc[p] = &accumulator{}
		}
		acc[p].add(t.ResolvedHours)
	}

	m := Matrix{
		Analysts:   sortedKeys(analysts),
		Categories: sortedKeys(categories),
	}
	m.Cells = make([][]float64, len(m.Analysts))
	for i, a := range m.Analysts {
		m.Cells[i] = make([]float64, len(m.Categories))
		for j, c := range m.Categories {
			if acc0 := acc[pair{a, c}]; acc0 != nil {
				m.Cells[i][j] = acc0.mean()
			}
		}
	}
	return m
}

// PerformanceRow summarizes one group of the performance view.
type PerformanceRow struct {
	Group     string
	Tickets   int
	MeanHours float64
	SLARate   float64 // percent of tickets whose status equals the met value, in [0,100]
}

// PerformanceByAnalyst summarizes ticket count, mean resolution hours, and
// SLA compliance per analyst. slaMet is the status value counted as
// compliant; tickets with no status dilute the rate toward zero.
func PerformanceByAnalyst(tickets []model.Ticket, slaMet string) []PerformanceRow {
	return performanceBy(tickets, func(t model.Ticket) string { return t.Analyst }, slaMet)
}

// PerformanceByCategory summarizes the same metrics per category.
func PerformanceByCategory(tickets []model.Ticket, slaMet string) []PerformanceRow {
	return performanceBy(tickets, func(t model.Ticket) string { return t.Category }, slaMet)
}

// performanceBy sorts by descending ticket count; ties order by group name
// ascending so the same input always renders in the same order.
func performanceBy(tickets []model.Ticket, key func(model.Ticket) string, slaMet string) []PerformanceRow {
	acc := make(map[string]*accumulator)
	met := make(map[string]int)
	for _, t := range tickets {
		k := key(t)
		get(acc, k).add(t.ResolvedHours)
		if t.SLAStatus == slaMet {
			met[k]++
		}
	}

	out := make([]PerformanceRow, 0, len(acc))
	for k, a := range acc {
		out = append(out, PerformanceRow{
			Group:     k,
			Tickets:   a.count,
			MeanHours: a.mean(),
			SLARate:   float64(met[k]) / float64(a.count) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tickets != out[j].Tickets {
			return out[i].Tickets > out[j].Tickets
		}
		return out[i].Group < out[j].Group
	})
	return out
}

type accumulator struct {
	sum   float64
	count int
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.count++
}

func (a *accumulator) mean() float64 {
	return a.sum / float64(a.count)
}

func get(acc map[string]*accumulator, key string) *accumulator {
	a, ok := acc[key]
	if !ok {
		a = &accumulator{}
		acc[key] = a
	}
	return a
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
