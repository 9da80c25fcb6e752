package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmelo/ticketstats/internal/model"
)

// File-scoped schema failures. Both exclude the whole file from the batch.
var (
	ErrNoDateColumn  = errors.New("no creation-date column found")
	ErrMissingColumn = errors.New("required column missing")
)

// RowStats counts the per-file outcome of row-level validation.
type RowStats struct {
	RowsRead    int64
	RowsKept    int64
	RowsDropped int64
}

// ResolveColumns maps canonical field names to column indexes in the table
// header, consulting each field's aliases in order. Columns whose values are
// empty on every row are ignored, matching how the exports pad unused columns.
func ResolveColumns(tbl *model.RawTable, schema *model.Schema) map[string]int {
	populated := populatedColumns(tbl)

	cols := make(map[string]int)
	for _, f := range schema.Fields {
		for _, alias := range f.Aliases {
			idx, ok := headerIndex(tbl.Header, alias)
			if ok && populated[idx] {
				cols[f.Canonical] = idx
				break
			}
		}
	}
	return cols
}

// NormalizeTable maps one raw table onto the canonical schema and returns the
// valid tickets it contains. Structural problems (no date column, a required
// column unresolved) reject the whole file via the returned error; individual
// bad rows are dropped and counted in RowStats. No failure mode panics or
// propagates beyond the error return.
func NormalizeTable(tbl *model.RawTable, schema *model.Schema) ([]model.Ticket, RowStats, error) {
	cols := ResolveColumns(tbl, schema)

	if _, ok := cols[model.FieldCreatedAt]; !ok {
		return nil, RowStats{}, fmt.Errorf("%s: %w (accepted headers: %s)",
			tbl.Name, ErrNoDateColumn, aliasList(schema, model.FieldCreatedAt))
	}
	for _, f := range schema.Fields {
		if !f.Required {
			continue
		}
		if _, ok := cols[f.Canonical]; !ok {
			return nil, RowStats{}, fmt.Errorf("%s: %w: %s (accepted headers: %s)",
				tbl.Name, ErrMissingColumn, f.Canonical, aliasList(schema, f.Canonical))
		}
	}

	var (
		tickets []model.Ticket
		stats   RowStats
	)
	for _, row := range tbl.Rows {
		stats.RowsRead++
		t, ok := buildTicket(row, cols)
		if !ok {
			stats.RowsDropped++
			continue
		}
		stats.RowsKept++
		tickets = append(tickets, t)
	}
	return tickets, stats, nil
}

// buildTicket coerces one raw row. A row survives only when the creation
// date, resolution hours, analyst, and category are all present and valid.
// SLA status is carried as-is; its absence is not a drop condition.
func buildTicket(row []string, cols map[string]int) (model.Ticket, bool) {
	get := func(field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	created := ParseDate(get(model.FieldCreatedAt))
	hours := ParseHours(get(model.FieldResolvedHours))
	analyst := CleanName(get(model.FieldAnalyst))
	category := CleanName(get(model.FieldCategory))
	if created == nil || hours == nil || analyst == "" || category == "" {
		return model.Ticket{}, false
	}

	return model.Ticket{
		ID:            get(model.FieldID),
		CreatedAt:     *created,
		ResolvedHours: *hours,
		Analyst:       analyst,
		Category:      category,
		SLAStatus:     get(model.FieldSLAStatus),
	}, true
}

func headerIndex(header []string, name string) (int, bool) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, true
		}
	}
	return 0, false
}

// populatedColumns reports which column indexes hold at least one non-empty
// value. A header-only table keeps all columns so schema checks still apply.
func populatedColumns(tbl *model.RawTable) []bool {
	populated := make([]bool, len(tbl.Header))
	if len(tbl.Rows) == 0 {
		for i := range populated {
			populated[i] = true
		}
		return populated
	}
	for _, row := range tbl.Rows {
		for i := range tbl.Header {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				populated[i] = true
			}
		}
	}
	return populated
}

func aliasList(schema *model.Schema, canonical string) string {
	f, ok := schema.FieldByCanonical(canonical)
	if !ok {
		return ""
	}
	return strings.Join(f.Aliases, ", ")
}
