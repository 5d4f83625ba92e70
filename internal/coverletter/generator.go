// Package coverletter drafts cover letters and match-analysis prose
// with an LLM, quoting the achievements the matching engine selected.
// It is a collaborator of the engine, never a dependency: the engine
// produces its MatchSummary without this package.
package coverletter

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/job-application-assistant/internal/types"
)

// DefaultModel is the Gemini model used for letter drafting.
const DefaultModel = "gemini-2.5-flash"

// maxQuotedBullets caps how many selected bullets are woven into the
// letter; beyond this the letter reads like a list.
const maxQuotedBullets = 5

// Request carries everything a letter draft needs.
type Request struct {
	JobText     string
	CompanyName string
	RoleTitle   string
	CompanyInfo string // optional research notes
	Summary     *types.MatchSummary
}

// Error represents a generation failure.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cover letter generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cover letter generation failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Generator drafts cover letters through the Gemini API.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a Generator. The API key is required; model may
// be empty to use the default.
func NewGenerator(ctx context.Context, apiKey, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, &Error{Message: "API key is required"}
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Message: "failed to create client", Cause: err}
	}
	return &Generator{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (g *Generator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// Generate drafts a cover letter from the match summary.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	if req.Summary == nil {
		return "", &Error{Message: "match summary is required"}
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(BuildLetterPrompt(req)))
	if err != nil {
		return "", &Error{Message: "API call failed", Cause: err}
	}
	return extractText(resp)
}

// AnalyzeMatch produces a short prose assessment of the fit, grounded
// in the engine's deterministic summary rather than asking the model to
// re-score the match.
func (g *Generator) AnalyzeMatch(ctx context.Context, req Request) (string, error) {
	if req.Summary == nil {
		return "", &Error{Message: "match summary is required"}
	}

	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.2)

	resp, err := model.GenerateContent(ctx, genai.Text(BuildAnalysisPrompt(req)))
	if err != nil {
		return "", &Error{Message: "API call failed", Cause: err}
	}
	return extractText(resp)
}

// BuildLetterPrompt assembles the drafting prompt. Exported for tests
// and for callers that want to route the prompt to another provider.
func BuildLetterPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("You are an expert cover letter writer. Write a professional, specific cover letter:\n")
	sb.WriteString("- strong opening paragraph\n")
	sb.WriteString("- incorporate the candidate's achievements listed below\n")
	sb.WriteString("- address the job requirements directly\n")
	sb.WriteString("- 3-4 paragraphs, active voice, no generic template phrases\n\n")

	if req.CompanyName != "" {
		fmt.Fprintf(&sb, "COMPANY: %s\n", req.CompanyName)
	}
	if req.RoleTitle != "" {
		fmt.Fprintf(&sb, "ROLE: %s\n", req.RoleTitle)
	}
	if req.CompanyInfo != "" {
		fmt.Fprintf(&sb, "\nCOMPANY RESEARCH:\n%s\n", req.CompanyInfo)
	}

	sb.WriteString("\nJOB DESCRIPTION:\n")
	sb.WriteString(req.JobText)

	sb.WriteString("\n\nCANDIDATE'S MOST RELEVANT ACHIEVEMENTS (fit score ")
	fmt.Fprintf(&sb, "%d/100):\n", req.Summary.OverallScore)
	for i, scored := range req.Summary.SelectedBullets {
		if i == maxQuotedBullets {
			break
		}
		fmt.Fprintf(&sb, "- %s\n", scored.Bullet.Text)
	}

	return sb.String()
}

// BuildAnalysisPrompt assembles the match-analysis prompt.
func BuildAnalysisPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("You are a career advisor. Given the deterministic match data below, ")
	sb.WriteString("explain in plain language why the resume fits or does not fit the job. ")
	sb.WriteString("Do not invent scores; use the ones provided.\n\n")

	fmt.Fprintf(&sb, "FIT SCORE: %d/100\n", req.Summary.OverallScore)
	fmt.Fprintf(&sb, "SKILL COVERAGE: %.0f%%\n", req.Summary.SkillCoverage*100)
	sb.WriteString("TOP MATCHING BULLETS:\n")
	for _, scored := range req.Summary.SelectedBullets {
		fmt.Fprintf(&sb, "- [%.2f] %s\n", scored.Score, scored.Bullet.Text)
	}

	sb.WriteString("\nJOB DESCRIPTION:\n")
	sb.WriteString(req.JobText)
	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &Error{Message: "no candidates in response"}
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &Error{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &Error{Message: "no text parts in response"}
	}
	return strings.Join(parts, ""), nil
}
