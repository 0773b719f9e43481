// Package console provides a reference target connector that renders
// entries through a template and writes them to a stream. It is mainly
// useful for trying out workflows without touching a real network.
package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"soposyncd/internal/domain"
)

type Connector struct {
	name string
	tmpl *template.Template
	out  io.Writer
}

func New() *Connector {
	return &Connector{out: os.Stdout}
}

// NewWithWriter redirects output, for tests.
func NewWithWriter(w io.Writer) *Connector {
	return &Connector{out: w}
}

func (c *Connector) Configure(name string, options map[string]string) error {
	c.name = name

	text, ok := options["template"]
	if !ok {
		return fmt.Errorf("connector %q lacks a template: %w", name, domain.ErrConfiguration)
	}

	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return fmt.Errorf("connector %q template: %w: %v", name, domain.ErrConfiguration, err)
	}
	c.tmpl = tmpl

	return nil
}

func (c *Connector) Entries(ctx context.Context, after time.Time) ([]domain.Entry, error) {
	return nil, nil
}

func (c *Connector) Push(ctx context.Context, entry domain.Entry) error {
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, entry); err != nil {
		return fmt.Errorf("render entry %s: %w: %v", entry.UniqueID, domain.ErrConnector, err)
	}

	if _, err := fmt.Fprintln(c.out, buf.String()); err != nil {
		return fmt.Errorf("write entry %s: %w: %v", entry.UniqueID, domain.ErrConnector, err)
	}
	return nil
}
