package model

import "time"

// LoadSummary captures metrics from a single batch load.
type LoadSummary struct {
	BatchID       string
	BatchKey      string // content hash of the input file set; empty when unhashable
	FilesRead     int
	FilesRejected int
	RowsRead      int64
	RowsKept      int64
	RowsDropped   int64
	FromCache     bool
	DurationTotal time.Duration
}
