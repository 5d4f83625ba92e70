package main

import (
	"context"
	"fmt"

	"github.com/jonathan/job-application-assistant/internal/config"
	"github.com/jonathan/job-application-assistant/internal/fetch"
	"github.com/jonathan/job-application-assistant/internal/ingestion"
)

// loadConfig reads the optional config file. An empty path yields an
// empty config so flag values stand alone.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveResumeText reads the resume, preferring the flag over the
// config file value.
func resolveResumeText(flagPath string, cfg *config.Config) (string, error) {
	path := flagPath
	if path == "" {
		path = cfg.Resume
	}
	if path == "" {
		return "", fmt.Errorf("--resume must be provided (flag or config)")
	}
	text, err := ingestion.ReadTextFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	return text, nil
}

// resolveJobText loads the job posting from a text file or URL. Flags
// override config values; file and URL are mutually exclusive.
func resolveJobText(ctx context.Context, flagFile, flagURL string, useBrowser bool, cfg *config.Config) (string, error) {
	file, url := flagFile, flagURL
	if file == "" && url == "" {
		file, url = cfg.Job, cfg.JobURL
	}
	if file == "" && url == "" {
		return "", fmt.Errorf("either --job or --job-url must be provided")
	}
	if file != "" && url != "" {
		return "", fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	if file != "" {
		text, err := ingestion.ReadTextFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read job posting: %w", err)
		}
		return text, nil
	}

	opts := fetch.DefaultOptions()
	opts.UseBrowser = useBrowser || cfg.UseBrowser
	result, err := fetch.URL(ctx, url, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch job posting: %w", err)
	}
	return result.Text, nil
}
