package attestation

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Defaults applied to an absent or partial config.
const (
	DefaultMailSubject = "COVID-19 - Déclaration de déplacement"
	DefaultMailBody    = "Attestation de déplacement dérogatoire"
	DefaultSMTPPort    = 587
)

// Config holds tool configuration: the delivery transport and default paths.
// Everything is optional; an empty config disables delivery and uses the
// embedded assets.
type Config struct {
	Email    EmailConfig    `yaml:"email"`
	Output   OutputConfig   `yaml:"output"`
	Template TemplateConfig `yaml:"template"`
}

// EmailConfig configures the SMTP delivery transport.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	Subject  string `yaml:"subject"`
	Body     string `yaml:"body"`
}

// Enabled reports whether a delivery transport is configured.
func (e EmailConfig) Enabled() bool {
	return e.Host != ""
}

// OutputConfig defines where certificates are written when no --output flag
// is given.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// TemplateConfig points at the official template and its layout document.
// Empty paths use the embedded assets.
type TemplateConfig struct {
	Path       string `yaml:"path"`
	LayoutPath string `yaml:"layoutPath"`
}

// DefaultConfig returns a config with delivery disabled and defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a YAML config file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Email.Port == 0 {
		c.Email.Port = DefaultSMTPPort
	}
	if c.Email.Subject == "" {
		c.Email.Subject = DefaultMailSubject
	}
	if c.Email.Body == "" {
		c.Email.Body = DefaultMailBody
	}
	if c.Email.From == "" {
		c.Email.From = c.Email.Username
	}
}
