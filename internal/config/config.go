package config

const (
	DefaultTimeZone = "Asia/Kolkata"

	// Import pipeline
	InsertChunkSize = 500
	LookupChunkSize = 1000

	// Table views
	ValidationPageSize = 10
	LeadPageSize       = 5
	MISPageSize        = 10
	PageWindowSize     = 3

	// Rollup refresh schedule (lead counts/costs folded into MIS rows)
	DefaultRollupSchedule = "30 1 * * *"
)
