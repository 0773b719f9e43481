package domain

import "time"

// Entry is one unit of content produced by a source connector. UniqueID
// identifies the entry within its connector only, not globally. Entries are
// never mutated after creation.
type Entry struct {
	UniqueID    string
	Title       string
	Link        string
	CreatedAt   time.Time
	Description *string
	Tags        []string
	Photo       *string
	Coordinates *Coordinates
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}
