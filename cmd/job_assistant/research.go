package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Look up background information about a company",
	Long:  "Search the web for company background via Google Custom Search, scrape the top results, and print a combined summary for cover-letter prompts.",
	RunE:  runResearch,
}

var (
	researchCompanyName string
	researchConfigFile  string
	researchAsJSON      bool
)

func init() {
	researchCmd.Flags().StringVar(&researchCompanyName, "company", "", "Company name (required)")
	researchCmd.Flags().StringVarP(&researchConfigFile, "config", "c", "", "Path to JSON config file")
	researchCmd.Flags().BoolVar(&researchAsJSON, "json", false, "Emit sources and snippets as JSON")

	_ = researchCmd.MarkFlagRequired("company")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(researchConfigFile)
	if err != nil {
		return err
	}

	info, err := researchCompany(ctx, cfg, researchCompanyName)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	if researchAsJSON {
		output, merr := json.MarshalIndent(info, "", "  ")
		if merr != nil {
			return fmt.Errorf("failed to marshal research: %w", merr)
		}
		_, _ = fmt.Fprintln(os.Stdout, string(output))
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "Research for %s (%d sources):\n\n", info.Company, len(info.Sources))
	_, _ = fmt.Fprintln(os.Stdout, info.Combined)
	return nil
}
