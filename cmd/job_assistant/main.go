// Package main provides the entry point for the job application assistant CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_assistant",
	Short: "Resume-job matching and application assistant",
	Long:  "Job Application Assistant scores resume bullets against a job posting, drafts cover letters, researches companies, and tracks applications.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
