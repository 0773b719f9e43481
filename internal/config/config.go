package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"soposyncd/internal/domain"
)

type Config struct {
	Database  DatabaseConfig   `yaml:"database"`
	Sync      SyncConfig       `yaml:"sync"`
	Workflows []WorkflowConfig `yaml:"workflows"`
	LogLevel  string           `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type SyncConfig struct {
	Interval   time.Duration `yaml:"interval"`
	MaxGapDays int           `yaml:"max_gap_days"`
}

type ConnectorConfig struct {
	Name    string            `yaml:"name"`
	Type    string            `yaml:"type"`
	Options map[string]string `yaml:"options"`
}

type WorkflowConfig struct {
	Name    string            `yaml:"name"`
	Source  ConnectorConfig   `yaml:"source"`
	Targets []ConnectorConfig `yaml:"targets"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w: %v", domain.ErrConfiguration, err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Sync.Interval == 0 {
		c.Sync.Interval = 5 * time.Minute
	}
	if c.Sync.MaxGapDays == 0 {
		c.Sync.MaxGapDays = 31
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	for i := range c.Workflows {
		// The source is keyed in the ledger under its connector name; a
		// stable default keeps the key independent of the implementation.
		if c.Workflows[i].Source.Name == "" {
			c.Workflows[i].Source.Name = "source"
		}
	}
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Workflows))
	for _, w := range c.Workflows {
		if w.Name == "" {
			return fmt.Errorf("workflow lacks a name: %w", domain.ErrConfiguration)
		}
		if seen[w.Name] {
			return fmt.Errorf("duplicate workflow %q: %w", w.Name, domain.ErrConfiguration)
		}
		seen[w.Name] = true

		if w.Source.Type == "" {
			return fmt.Errorf("workflow %q lacks a source: %w", w.Name, domain.ErrConfiguration)
		}
		if len(w.Targets) == 0 {
			return fmt.Errorf("workflow %q lacks targets: %w", w.Name, domain.ErrConfiguration)
		}
		for _, t := range w.Targets {
			if t.Name == "" || t.Type == "" {
				return fmt.Errorf("workflow %q has a target without name or type: %w",
					w.Name, domain.ErrConfiguration)
			}
		}
	}
	return nil
}

// Definitions converts the configured workflows into the immutable domain
// definitions consumed by the engine.
func (c *Config) Definitions() []domain.Workflow {
	workflows := make([]domain.Workflow, 0, len(c.Workflows))
	for _, w := range c.Workflows {
		wf := domain.Workflow{
			Name:   w.Name,
			Source: w.Source.spec(),
		}
		for _, t := range w.Targets {
			wf.Targets = append(wf.Targets, t.spec())
		}
		workflows = append(workflows, wf)
	}
	return workflows
}

func (cc ConnectorConfig) spec() domain.ConnectorSpec {
	return domain.ConnectorSpec{
		Name:    cc.Name,
		Type:    cc.Type,
		Options: cc.Options,
	}
}
