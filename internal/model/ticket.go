package model

import "time"

// Ticket is the canonical, validated representation of one support ticket.
// Immutable once produced by the normalizer.
type Ticket struct {
	ID            string
	CreatedAt     time.Time
	ResolvedHours float64
	Analyst       string
	Category      string
	SLAStatus     string // raw status value; empty when the export carried none
}

// Dataset is the merged canonical record set for one load, together with the
// diagnostics accumulated while producing it. Diagnostics are operator-facing
// and non-fatal; an empty Tickets slice is the terminal no-data condition and
// is reported as an error by the pipeline, never as a Dataset.
type Dataset struct {
	Tickets     []Ticket
	Diagnostics []string
}

// RawTable is one parsed export file before normalization. Column names are
// whatever the file header says; values are untyped strings.
type RawTable struct {
	Name   string
	Header []string
	Rows   [][]string
}
