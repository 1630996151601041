// Package config provides configuration management for mailreport.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/greeddj/mailreport-go/internal/report"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// defaultSeparator is the master-user login separator used when the config
// does not specify one.
const defaultSeparator = "*"

// Config holds the entire configuration for the application.
type Config struct {
	Server    string    `json:"server"     yaml:"server"`     // IMAP server address (host:port)
	AdminUser string    `json:"admin_user" yaml:"admin_user"` // Master user for per-mailbox logins
	AdminPass string    `json:"admin_pass" yaml:"admin_pass"` // Master user password
	Separator string    `json:"separator"  yaml:"separator"`  // Master-user login separator
	Insecure  bool      `json:"insecure"   yaml:"insecure"`   // Disable TLS (plain TCP)
	Mailboxes []Mailbox `json:"mailboxes"  yaml:"mailboxes"`  // Tenant directory
}

// Mailbox is one tenant directory entry.
type Mailbox struct {
	Identity string `json:"identity" yaml:"identity"` // Principal name, used for the stats login
	Name     string `json:"name"     yaml:"name"`     // Display name
	Address  string `json:"address"  yaml:"address"`  // Primary SMTP address
	Type     string `json:"type"     yaml:"type"`     // Mailbox type tag
	Disabled bool   `json:"disabled" yaml:"disabled"` // Mailbox is disabled in the tenant
	Archive  bool   `json:"archive"  yaml:"archive"`  // Archive mailbox provisioned
	Database string `json:"database" yaml:"database"` // Backing database / location label
}

// Record converts a directory entry into the canonical report record.
func (m Mailbox) Record() report.MailboxRecord {
	return report.MailboxRecord{
		Identity:       m.Identity,
		DisplayName:    m.Name,
		EmailAddress:   m.Address,
		Type:           m.Type,
		Enabled:        !m.Disabled,
		ArchiveEnabled: m.Archive,
		Database:       m.Database,
	}
}

// New loads configuration from the file specified in CLI context.
// It automatically detects the format (JSON or YAML) based on file extension.
// Supported extensions: .json, .yaml, .yml
// It returns an error if the file cannot be read or contains invalid data.
func New(cCtx *cli.Context) (*Config, error) {
	configPath := cCtx.String("config")
	filePath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for config file %q: %w", configPath, err)
	}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %q does not exist", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %q: %w", filePath, err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid JSON in config file %q: %w", filePath, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in config file %q: %w", filePath, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format %q; supported: .json, .yaml, .yml", ext)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills optional fields that have a sensible fallback.
func (c *Config) applyDefaults() {
	if c.Separator == "" {
		c.Separator = defaultSeparator
	}

	for i := range c.Mailboxes {
		if c.Mailboxes[i].Address == "" {
			c.Mailboxes[i].Address = c.Mailboxes[i].Identity
		}
		if c.Mailboxes[i].Type == "" {
			c.Mailboxes[i].Type = report.TypeUser
		}
	}
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if c.Server == "" {
		return fmt.Errorf("server is required")
	}
	if c.AdminUser == "" {
		return fmt.Errorf("admin user is required")
	}
	if c.AdminPass == "" {
		return fmt.Errorf("admin password is required")
	}

	seen := make(map[string]bool, len(c.Mailboxes))
	for i, m := range c.Mailboxes {
		if m.Identity == "" {
			return fmt.Errorf("mailbox %d: identity is required", i+1)
		}
		if seen[m.Identity] {
			return fmt.Errorf("duplicate mailbox identity %q", m.Identity)
		}
		seen[m.Identity] = true
	}

	return nil
}

// Records returns the tenant directory as canonical report records, in
// config order.
func (c *Config) Records() []report.MailboxRecord {
	records := make([]report.MailboxRecord, 0, len(c.Mailboxes))
	for _, m := range c.Mailboxes {
		records = append(records, m.Record())
	}
	return records
}
