package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-application-assistant/internal/config"
	"github.com/jonathan/job-application-assistant/internal/coverletter"
	"github.com/jonathan/job-application-assistant/internal/email"
	"github.com/jonathan/job-application-assistant/internal/matchengine"
	"github.com/jonathan/job-application-assistant/internal/research"
	"github.com/spf13/cobra"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter tailored to a job posting",
	Long:  "Run the resume-job match, optionally research the company, and draft a cover letter with Gemini grounded in the top-ranked resume bullets.",
	RunE:  runCoverLetter,
}

var (
	letterResumeFile  string
	letterJobFile     string
	letterJobURL      string
	letterCompany     string
	letterRole        string
	letterOutFile     string
	letterConfigFile  string
	letterDoResearch  bool
	letterEmailTo     string
	letterUseBrowser  bool
	letterModel       string
	letterAnalyzeOnly bool
)

func init() {
	coverLetterCmd.Flags().StringVarP(&letterResumeFile, "resume", "r", "", "Path to resume text file")
	coverLetterCmd.Flags().StringVarP(&letterJobFile, "job", "j", "", "Path to job posting text file")
	coverLetterCmd.Flags().StringVarP(&letterJobURL, "job-url", "u", "", "URL to fetch the job posting from")
	coverLetterCmd.Flags().StringVar(&letterCompany, "company", "", "Company name (required)")
	coverLetterCmd.Flags().StringVar(&letterRole, "role", "", "Role title (required)")
	coverLetterCmd.Flags().StringVarP(&letterOutFile, "out", "o", "", "Output file for the letter (default: stdout)")
	coverLetterCmd.Flags().StringVarP(&letterConfigFile, "config", "c", "", "Path to JSON config file")
	coverLetterCmd.Flags().BoolVar(&letterDoResearch, "research", false, "Include company research in the prompt")
	coverLetterCmd.Flags().StringVar(&letterEmailTo, "email-to", "", "Send the letter to this address via SMTP")
	coverLetterCmd.Flags().BoolVar(&letterUseBrowser, "use-browser", false, "Render the job URL in a headless browser first")
	coverLetterCmd.Flags().StringVar(&letterModel, "model", coverletter.DefaultModel, "Gemini model to use")
	coverLetterCmd.Flags().BoolVar(&letterAnalyzeOnly, "analyze", false, "Emit a prose match analysis instead of a letter")

	_ = coverLetterCmd.MarkFlagRequired("company")
	_ = coverLetterCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(letterConfigFile)
	if err != nil {
		return err
	}

	apiKey := cfg.GeminiAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("Gemini API key missing (set gemini_api_key in config or GEMINI_API_KEY)")
	}

	resumeText, err := resolveResumeText(letterResumeFile, cfg)
	if err != nil {
		return err
	}
	jobText, err := resolveJobText(ctx, letterJobFile, letterJobURL, letterUseBrowser, cfg)
	if err != nil {
		return err
	}

	engine, err := matchengine.New(cfg.EngineConfig())
	if err != nil {
		return fmt.Errorf("failed to build match engine: %w", err)
	}
	summary, err := engine.Match(ctx, resumeText, jobText, nil)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	req := coverletter.Request{
		JobText:     jobText,
		CompanyName: letterCompany,
		RoleTitle:   letterRole,
		Summary:     summary,
	}

	// Optional company research feeds the prompt; failures are non-fatal
	if letterDoResearch {
		info, rerr := researchCompany(ctx, cfg, letterCompany)
		if rerr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: company research failed: %v\n", rerr)
		} else {
			req.CompanyInfo = info.Combined
		}
	}

	generator, err := coverletter.NewGenerator(ctx, apiKey, letterModel)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	defer func() { _ = generator.Close() }()

	var letter string
	if letterAnalyzeOnly {
		letter, err = generator.AnalyzeMatch(ctx, req)
	} else {
		letter, err = generator.Generate(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if letterOutFile != "" {
		if err := os.WriteFile(letterOutFile, []byte(letter+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write letter: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Cover letter written to %s\n", letterOutFile)
	} else {
		_, _ = fmt.Fprintln(os.Stdout, letter)
	}

	if letterEmailTo != "" {
		sender, serr := email.NewSender(cfg.SMTP)
		if serr != nil {
			return fmt.Errorf("SMTP not configured: %w", serr)
		}
		msg := email.Message{
			To:      []string{letterEmailTo},
			Subject: fmt.Sprintf("Application: %s at %s", letterRole, letterCompany),
			Body:    letter,
		}
		if serr := sender.Send(msg); serr != nil {
			return fmt.Errorf("failed to send email: %w", serr)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Letter emailed to %s\n", letterEmailTo)
	}

	return nil
}

func researchCompany(ctx context.Context, cfg *config.Config, company string) (*research.CompanyInfo, error) {
	apiKey := cfg.SearchAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("SEARCH_API_KEY")
	}
	engineID := cfg.SearchEngineID
	if engineID == "" {
		engineID = os.Getenv("SEARCH_ENGINE_ID")
	}

	researcher, err := research.NewResearcher(ctx, apiKey, engineID)
	if err != nil {
		return nil, err
	}
	return researcher.Research(ctx, company)
}
