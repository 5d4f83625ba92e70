package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/job-application-assistant/internal/matchengine"
	"github.com/jonathan/job-application-assistant/internal/schemas"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score resume bullets against a job posting",
	Long:  "Segment a resume, extract bullets, score each against the job posting, and emit a match summary with the top-ranked bullets as JSON.",
	RunE:  runMatch,
}

var (
	matchResumeFile string
	matchJobFile    string
	matchJobURL     string
	matchOutFile    string
	matchConfigFile string
	matchTopK       int
	matchUseBrowser bool
	matchVerbose    bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to resume text file")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job posting text file")
	matchCmd.Flags().StringVarP(&matchJobURL, "job-url", "u", "", "URL to fetch the job posting from")
	matchCmd.Flags().StringVarP(&matchOutFile, "out", "o", "", "Output file for the match summary JSON (default: stdout)")
	matchCmd.Flags().StringVarP(&matchConfigFile, "config", "c", "", "Path to JSON config file")
	matchCmd.Flags().IntVarP(&matchTopK, "top-k", "k", 0, "Number of bullets to select (default from config)")
	matchCmd.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Render the job URL in a headless browser first")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a per-bullet score breakdown to stderr")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(matchConfigFile)
	if err != nil {
		return err
	}

	resumeText, err := resolveResumeText(matchResumeFile, cfg)
	if err != nil {
		return err
	}
	jobText, err := resolveJobText(ctx, matchJobFile, matchJobURL, matchUseBrowser, cfg)
	if err != nil {
		return err
	}

	engineCfg := cfg.EngineConfig()
	if matchTopK > 0 {
		engineCfg.TopK = matchTopK
	}
	engine, err := matchengine.New(engineCfg)
	if err != nil {
		return fmt.Errorf("failed to build match engine: %w", err)
	}

	summary, err := engine.Match(ctx, resumeText, jobText, nil)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	output, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	// Validate against schema (if schema file exists); warn but don't fail
	if schemaPath := schemas.ResolveSchemaPath("schemas/match_summary.schema.json"); schemaPath != "" {
		if schemaContent, readErr := os.ReadFile(schemaPath); readErr == nil {
			if err := schemas.ValidateJSONString(string(schemaContent), string(output)); err != nil {
				var validationErr *schemas.ValidationError
				if errors.As(err, &validationErr) {
					return fmt.Errorf("generated JSON does not validate against schema: %w", err)
				}
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
			}
		}
	}

	if matchVerbose || cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stderr, "Extracted %d bullets, selected %d\n", summary.TotalBullets, len(summary.SelectedBullets))
		for _, sb := range summary.SelectedBullets {
			_, _ = fmt.Fprintf(os.Stderr, "  %d. [%.3f] %s\n", sb.Rank, sb.Score, sb.Bullet.Text)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Skill coverage: %.2f, overall score: %d\n", summary.SkillCoverage, summary.OverallScore)
	}

	if matchOutFile != "" {
		if err := os.WriteFile(matchOutFile, output, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Match summary written to %s (overall score: %d)\n", matchOutFile, summary.OverallScore)
		return nil
	}

	_, _ = fmt.Fprintln(os.Stdout, string(output))
	return nil
}
