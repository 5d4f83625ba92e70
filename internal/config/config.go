// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-application-assistant/internal/email"
	"github.com/jonathan/job-application-assistant/internal/matchengine"
)

// Config is the CLI configuration loadable from a JSON file. All fields
// are optional; missing values use defaults or must be provided via CLI
// flags. The engine section is handed to matchengine.New as-is, so the
// core never reads process-wide state itself.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"`  // path to resume text file
	Job    string `json:"job,omitempty"`     // path to job posting text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch the job posting from

	// Credentials
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`
	SearchAPIKey   string `json:"search_api_key,omitempty"`
	SearchEngineID string `json:"search_engine_id,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty"`

	// Collaborators
	SMTP email.Config `json:"smtp,omitempty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // headless browser for SPA job boards
	Verbose    bool `json:"verbose,omitempty"`

	// Engine tunables; zero values are filled from engine defaults.
	Engine matchengine.Config `json:"engine,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that flag parsing cannot.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	return nil
}

// EngineConfig returns the engine tunables with unset fields filled
// from the engine defaults. The result still goes through the engine's
// own validation.
func (c *Config) EngineConfig() matchengine.Config {
	merged := matchengine.DefaultConfig()

	if c.Engine.TopK != 0 {
		merged.TopK = c.Engine.TopK
	}
	if c.Engine.DuplicateThreshold != 0 {
		merged.DuplicateThreshold = c.Engine.DuplicateThreshold
	}
	if c.Engine.EmbeddingBlendWeight != 0 {
		merged.EmbeddingBlendWeight = c.Engine.EmbeddingBlendWeight
	}
	if c.Engine.SkillBonus != 0 {
		merged.SkillBonus = c.Engine.SkillBonus
	}
	if c.Engine.ExperienceWeight != 0 || c.Engine.SkillsWeight != 0 {
		merged.ExperienceWeight = c.Engine.ExperienceWeight
		merged.SkillsWeight = c.Engine.SkillsWeight
	}
	if c.Engine.HeadingMaxLen != 0 {
		merged.HeadingMaxLen = c.Engine.HeadingMaxLen
	}
	if c.Engine.MinFragmentWords != 0 {
		merged.MinFragmentWords = c.Engine.MinFragmentWords
	}
	return merged
}
