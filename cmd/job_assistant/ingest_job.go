package main

import (
	"fmt"
	"os"

	"github.com/jonathan/job-application-assistant/internal/fetch"
	"github.com/jonathan/job-application-assistant/internal/ingestion"
	"github.com/spf13/cobra"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting from a text file or URL",
	Long:  "Fetch or read a job posting, strip markup and noise, and write the cleaned text for later matching.",
	RunE:  runIngestJob,
}

var (
	ingestTextFile   string
	ingestURL        string
	ingestOutFile    string
	ingestUseBrowser bool
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestTextFile, "text-file", "t", "", "Path to text file containing job posting")
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch job posting from")
	ingestJobCmd.Flags().StringVarP(&ingestOutFile, "out", "o", "", "Output file for cleaned text (required)")
	ingestJobCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Render the URL in a headless browser first")

	_ = ingestJobCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, args []string) error {
	// Validate mutually exclusive flags
	if ingestTextFile == "" && ingestURL == "" {
		return fmt.Errorf("either --text-file or --url must be provided")
	}
	if ingestTextFile != "" && ingestURL != "" {
		return fmt.Errorf("--text-file and --url are mutually exclusive; provide only one")
	}

	var cleaned string
	if ingestTextFile != "" {
		text, err := ingestion.ReadTextFile(ingestTextFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
		cleaned = text
	} else {
		opts := fetch.DefaultOptions()
		opts.UseBrowser = ingestUseBrowser
		result, err := fetch.URL(cmd.Context(), ingestURL, opts)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
		cleaned = result.Text
	}

	if err := os.WriteFile(ingestOutFile, []byte(cleaned+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully ingested job posting\n")
	_, _ = fmt.Fprintf(os.Stdout, "Cleaned text: %s\n", ingestOutFile)

	return nil
}
