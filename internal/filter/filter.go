// Package filter selects tickets from the canonical dataset by analyst,
// category, and creation-date range.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmelo/ticketstats/internal/model"
)

// ErrBadRange reports a malformed date range in the criteria. Terminal for
// the filter action: the engine refuses to run rather than silently
// returning an empty or unfiltered result.
var ErrBadRange = errors.New("invalid date range")

// Criteria is the conjunction of selection predicates applied to the
// dataset. Analysts and Categories are exact-match sets; From and To are
// inclusive dates. To is extended through its end of day, so tickets created
// any time on the end date are included.
type Criteria struct {
	Analysts   []string
	Categories []string
	From, To   time.Time
}

// Validate checks the date range. Both bounds must be set and From must not
// be after To.
func (c Criteria) Validate() error {
	if c.From.IsZero() || c.To.IsZero() {
		return fmt.Errorf("%w: both start and end dates are required", ErrBadRange)
	}
	if c.To.Before(c.From) {
		return fmt.Errorf("%w: start %s is after end %s",
			ErrBadRange, c.From.Format("2006-01-02"), c.To.Format("2006-01-02"))
	}
	return nil
}

// Apply returns the tickets satisfying every criterion. Pure: the dataset is
// never mutated and the result is a fresh slice. An empty result is valid
// output, not an error.
func Apply(ds *model.Dataset, c Criteria) ([]model.Ticket, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	analysts := toSet(c.Analysts)
	categories := toSet(c.Categories)
	end := c.To.AddDate(0, 0, 1) // half-open upper bound covering the full end date

	var out []model.Ticket
	for _, t := range ds.Tickets {
		if !analysts[t.Analyst] || !categories[t.Category] {
			continue
		}
		if t.CreatedAt.Before(c.From) || !t.CreatedAt.Before(end) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Domains holds the observed value domains of a dataset, used to seed the
// filter selection surface after normalization.
type Domains struct {
	Analysts   []string
	Categories []string
	MinDate    time.Time // truncated to midnight
	MaxDate    time.Time // truncated to midnight
}

// FullCriteria returns criteria selecting the entire domain: every observed
// analyst and category, and the full observed date range.
func (d Domains) FullCriteria() Criteria {
	return Criteria{
		Analysts:   d.Analysts,
		Categories: d.Categories,
		From:       d.MinDate,
		To:         d.MaxDate,
	}
}

// ObservedDomains scans the dataset for its distinct analysts and categories
// (sorted) and the span of creation dates.
func ObservedDomains(ds *model.Dataset) Domains {
	var (
		analysts   = make(map[string]bool)
		categories = make(map[string]bool)
		d          Domains
	)
	for _, t := range ds.Tickets {
		analysts[t.Analyst] = true
		categories[t.Category] = true

		day := truncateToDay(t.CreatedAt)
		if d.MinDate.IsZero() || day.Before(d.MinDate) {
			d.MinDate = day
		}
		if d.MaxDate.IsZero() || day.After(d.MaxDate) {
			d.MaxDate = day
		}
	}
	d.Analysts = sortedKeys(analysts)
	d.Categories = sortedKeys(categories)
	return d
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
