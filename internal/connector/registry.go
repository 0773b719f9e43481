package connector

import (
	"fmt"

	"soposyncd/internal/domain"
)

// Factory builds an unconfigured connector instance.
type Factory func() Connector

// Registry maps configuration type identifiers to connector factories. It
// is built once at process start and passed explicitly to consumers.
type Registry map[string]Factory

// Create instantiates and configures a fresh connector for the given spec.
func (r Registry) Create(spec domain.ConnectorSpec) (Connector, error) {
	factory, ok := r[spec.Type]
	if !ok {
		return nil, fmt.Errorf("unknown connector type %q: %w", spec.Type, domain.ErrConfiguration)
	}

	c := factory()
	if err := c.Configure(spec.Name, spec.Options); err != nil {
		return nil, fmt.Errorf("configure connector %q: %w", spec.Name, err)
	}
	return c, nil
}
