package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	EmptyDataset    = 3
	FilterError     = 4
)
