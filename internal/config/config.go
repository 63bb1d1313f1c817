package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Defaults mirror JIRA Cloud expectations: bounded JQL and the v3 API.
const (
	defaultJQL        = "updated >= -90d ORDER BY updated DESC"
	defaultAPIVersion = "3"
	defaultTimeout    = 30
	defaultOutputDir  = "data"
)

// Config represents the application configuration
type Config struct {
	Jira    JiraConfig    `yaml:"jira"`
	Extract ExtractConfig `yaml:"extract"`
}

// JiraConfig represents JIRA API configuration
type JiraConfig struct {
	BaseURL    string `yaml:"base_url"`
	Email      string `yaml:"email"`
	APIToken   string `yaml:"api_token"`
	APIVersion string `yaml:"api_version"`
	FilterIDs  string `yaml:"filter_ids"`
	DefaultJQL string `yaml:"default_jql"`
	Timeout    int    `yaml:"timeout_seconds"`
}

// ExtractConfig represents extraction output configuration
type ExtractConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoadConfig loads configuration from a YAML file, applies environment
// overrides and defaults, and validates the result. A missing config file is
// not an error; the tool can run from environment variables alone.
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()
	config.Jira.BaseURL = NormalizeBaseURL(config.Jira.BaseURL)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) applyEnvOverrides() {
	overrideString(&c.Jira.BaseURL, "JIRA_URL")
	overrideString(&c.Jira.Email, "JIRA_EMAIL")
	overrideString(&c.Jira.APIToken, "JIRA_API_TOKEN")
	overrideString(&c.Jira.FilterIDs, "JIRA_FILTER_IDS")
	overrideString(&c.Jira.DefaultJQL, "JIRA_JQL_DEFAULT")
	overrideString(&c.Jira.APIVersion, "JIRA_API_VERSION")
	overrideString(&c.Extract.OutputDir, "EXTRACT_OUTPUT_DIR")
}

func overrideString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func (c *Config) applyDefaults() {
	if c.Jira.DefaultJQL == "" {
		c.Jira.DefaultJQL = defaultJQL
	}
	if c.Jira.APIVersion == "" {
		c.Jira.APIVersion = defaultAPIVersion
	}
	if c.Jira.Timeout == 0 {
		c.Jira.Timeout = defaultTimeout
	}
	if c.Extract.OutputDir == "" {
		c.Extract.OutputDir = defaultOutputDir
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Jira.BaseURL == "" {
		return fmt.Errorf("JIRA base URL is required (set jira.base_url or JIRA_URL)")
	}

	if c.Jira.Email == "" {
		return fmt.Errorf("JIRA email is required (set jira.email or JIRA_EMAIL)")
	}

	if c.Jira.APIToken == "" {
		return fmt.Errorf("JIRA API token is required (set jira.api_token or JIRA_API_TOKEN)")
	}

	return nil
}

// FilterIDList splits the comma-separated filter ID list, trimming
// whitespace and skipping empty entries.
func (c *JiraConfig) FilterIDList() []string {
	var ids []string
	for _, id := range strings.Split(c.FilterIDs, ",") {
		if id := strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
