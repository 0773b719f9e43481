package domain

import "time"

// SyncStats holds statistics about one workflow's sync pass.
type SyncStats struct {
	Workflow string
	Fetched  int
	Pushed   int
	Skipped  int
	Duration time.Duration
}
