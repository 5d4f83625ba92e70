package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/job-application-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process with the given args.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// resetFlags clears package-level flag state so tests don't leak values
// into each other through repeated Execute calls.
func resetFlags() {
	matchResumeFile, matchJobFile, matchJobURL = "", "", ""
	matchOutFile, matchConfigFile = "", ""
	matchTopK = 0
	matchUseBrowser, matchVerbose = false, false
	ingestTextFile, ingestURL, ingestOutFile = "", "", ""
	letterResumeFile, letterJobFile, letterJobURL = "", "", ""
	letterConfigFile, letterOutFile = "", ""
}

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMatchCommand_EndToEnd(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()

	resumePath := writeTempFile(t, tmpDir, "resume.txt",
		"Experience:\n- Led migration of 10 microservices to a new platform.\n- Wrote unit tests.\nSkills: Python, Go, Kubernetes\n")
	jobPath := writeTempFile(t, tmpDir, "job.txt",
		"Seeking an engineer experienced in Kubernetes and microservices migration\n")
	outPath := filepath.Join(tmpDir, "summary.json")

	err := execute(t, "match", "--resume", resumePath, "--job", jobPath, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var summary types.MatchSummary
	require.NoError(t, json.Unmarshal(data, &summary))

	require.NotEmpty(t, summary.SelectedBullets)
	assert.Contains(t, strings.ToLower(summary.SelectedBullets[0].Bullet.Text), "microservices")
	assert.Greater(t, summary.OverallScore, 50)
	assert.Equal(t, 2, summary.TotalBullets)
}

func TestMatchCommand_MissingResume(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	jobPath := writeTempFile(t, tmpDir, "job.txt", "Kubernetes engineer wanted\n")

	err := execute(t, "match", "--job", jobPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--resume")
}

func TestMatchCommand_MissingJob(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	resumePath := writeTempFile(t, tmpDir, "resume.txt", "Experience:\n- Built things.\n")

	err := execute(t, "match", "--resume", resumePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --job or --job-url")
}

func TestIngestJobCommand_CleansFile(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	inPath := writeTempFile(t, tmpDir, "raw.txt", "Kubernetes   engineer\r\n\r\n\r\nRemote   role\r\n")
	outPath := filepath.Join(tmpDir, "cleaned.txt")

	err := execute(t, "ingest-job", "--text-file", inPath, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "Kubernetes engineer\n\nRemote role\n", string(data))
}

func TestIngestJobCommand_MutuallyExclusiveSources(t *testing.T) {
	resetFlags()
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "cleaned.txt")

	err := execute(t, "ingest-job", "--text-file", "job.txt", "--url", "https://example.com", "--out", outPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestTrackStatusCommand_InvalidID(t *testing.T) {
	resetFlags()

	err := execute(t, "track", "status", "--id", "not-a-uuid", "--status", "applied")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid application ID")
}

func TestCoverLetterCommand_MissingAPIKey(t *testing.T) {
	resetFlags()
	t.Setenv("GEMINI_API_KEY", "")
	tmpDir := t.TempDir()
	resumePath := writeTempFile(t, tmpDir, "resume.txt", "Experience:\n- Built things over four years.\n")
	jobPath := writeTempFile(t, tmpDir, "job.txt", "Engineer wanted\n")

	err := execute(t, "cover-letter", "--resume", resumePath, "--job", jobPath,
		"--company", "Acme", "--role", "Engineer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API key")
}
