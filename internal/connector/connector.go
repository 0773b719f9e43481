package connector

//go:generate mockgen -source=connector.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"soposyncd/internal/domain"
)

// Connector is the capability contract shared by content sources and
// publishing targets. A connector acting only as one side returns a
// domain.ErrConnector-wrapped error from the unsupported operation.
type Connector interface {
	// Configure prepares the connector from its named option section.
	// Missing required options yield a domain.ErrConfiguration-wrapped
	// error.
	Configure(name string, options map[string]string) error

	// Entries returns entries with CreatedAt strictly after the given
	// bound, ordered oldest-first. The engine re-checks the bound against
	// its ledger, so returning extra entries is safe but wasteful.
	Entries(ctx context.Context, after time.Time) ([]domain.Entry, error)

	// Push publishes one entry to the target. It must tolerate being
	// called again with the same entry on operator retries.
	Push(ctx context.Context, entry domain.Entry) error
}
