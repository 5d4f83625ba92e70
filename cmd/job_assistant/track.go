package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/job-application-assistant/internal/tracking"
	"github.com/jonathan/job-application-assistant/internal/types"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track job applications in the database",
}

var trackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new application",
	Long:  "Record an application with its match summary snapshot so the fit score at apply time is preserved.",
	RunE:  runTrackAdd,
}

var trackStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Update an application's status",
	RunE:  runTrackStatus,
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked applications",
	RunE:  runTrackList,
}

var (
	trackConfigFile  string
	trackCompany     string
	trackRole        string
	trackJobURL      string
	trackSummaryFile string
	trackID          string
	trackStatus      string
	trackFilter      string
)

func init() {
	trackCmd.PersistentFlags().StringVarP(&trackConfigFile, "config", "c", "", "Path to JSON config file")

	trackAddCmd.Flags().StringVar(&trackCompany, "company", "", "Company name (required)")
	trackAddCmd.Flags().StringVar(&trackRole, "role", "", "Role title (required)")
	trackAddCmd.Flags().StringVar(&trackJobURL, "job-url", "", "Job posting URL")
	trackAddCmd.Flags().StringVar(&trackSummaryFile, "summary", "", "Path to a match summary JSON from the match command")
	_ = trackAddCmd.MarkFlagRequired("company")
	_ = trackAddCmd.MarkFlagRequired("role")

	trackStatusCmd.Flags().StringVar(&trackID, "id", "", "Application ID (required)")
	trackStatusCmd.Flags().StringVar(&trackStatus, "status", "", "New status: analyzed, applied, interview, offer, rejected (required)")
	_ = trackStatusCmd.MarkFlagRequired("id")
	_ = trackStatusCmd.MarkFlagRequired("status")

	trackListCmd.Flags().StringVar(&trackFilter, "status", "", "Only list applications with this status")

	trackCmd.AddCommand(trackAddCmd)
	trackCmd.AddCommand(trackStatusCmd)
	trackCmd.AddCommand(trackListCmd)
	rootCmd.AddCommand(trackCmd)
}

func openStore(cmd *cobra.Command) (*tracking.Store, error) {
	cfg, err := loadConfig(trackConfigFile)
	if err != nil {
		return nil, err
	}
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL missing (set database_url in config or DATABASE_URL)")
	}
	return tracking.Connect(cmd.Context(), databaseURL)
}

func runTrackAdd(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var summary *types.MatchSummary
	if trackSummaryFile != "" {
		data, rerr := os.ReadFile(trackSummaryFile)
		if rerr != nil {
			return fmt.Errorf("failed to read match summary: %w", rerr)
		}
		summary = &types.MatchSummary{}
		if uerr := json.Unmarshal(data, summary); uerr != nil {
			return fmt.Errorf("failed to parse match summary: %w", uerr)
		}
	}

	id, err := store.CreateApplication(cmd.Context(), trackCompany, trackRole, trackJobURL, summary)
	if err != nil {
		return fmt.Errorf("failed to record application: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Recorded application %s (%s at %s)\n", id, trackRole, trackCompany)
	return nil
}

func runTrackStatus(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(trackID)
	if err != nil {
		return fmt.Errorf("invalid application ID: %w", err)
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpdateStatus(cmd.Context(), id, trackStatus); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Application %s moved to %s\n", id, trackStatus)
	return nil
}

func runTrackList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	apps, err := store.ListApplications(cmd.Context(), trackFilter)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	if len(apps) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No applications found")
		return nil
	}

	for _, app := range apps {
		_, _ = fmt.Fprintf(os.Stdout, "%s  %-10s  %3d  %s / %s\n",
			app.ID, app.Status, app.MatchScore, app.Company, app.RoleTitle)
	}
	return nil
}
