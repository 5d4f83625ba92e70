package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/job-application-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSchemaPath_FindsRepoSchema(t *testing.T) {
	// Running from internal/schemas, the repo schema sits two levels up.
	path := ResolveSchemaPath(filepath.Join("schemas", "match_summary.schema.json"))
	require.NotEmpty(t, path)
	assert.FileExists(t, path)
}

func TestResolveSchemaPath_Missing(t *testing.T) {
	path := ResolveSchemaPath(filepath.Join("schemas", "does_not_exist.schema.json"))
	assert.Empty(t, path)
}

func TestValidateJSON_MatchSummaryRoundTrip(t *testing.T) {
	summary := types.MatchSummary{
		OverallScore: 53,
		SelectedBullets: []types.ScoredBullet{
			{
				Bullet: types.Bullet{
					ID:           types.BulletID(0, 0),
					SectionIndex: 0,
					SectionKind:  types.KindExperience,
					Position:     0,
					Text:         "Led migration of 10 microservices to a new platform.",
				},
				Score: 0.333,
				Rank:  1,
				Components: types.ScoreComponents{
					Lexical: 0.333,
				},
			},
		},
		JobTerms:      types.TermSet{"kubernet": 1, "microservic": 1},
		SkillCoverage: 0.166,
		TotalBullets:  2,
	}

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	tmpDir := t.TempDir()
	documentPath := filepath.Join(tmpDir, "summary.json")
	require.NoError(t, os.WriteFile(documentPath, data, 0644))

	schemaPath := ResolveSchemaPath(filepath.Join("schemas", "match_summary.schema.json"))
	require.NotEmpty(t, schemaPath)

	assert.NoError(t, ValidateJSON(schemaPath, documentPath))
}

func TestValidateJSON_ReportsFieldErrors(t *testing.T) {
	doc := `{
		"overall_score": 150,
		"selected_bullets": [],
		"job_terms": {},
		"skill_coverage": 0.5,
		"total_bullets": 2
	}`

	tmpDir := t.TempDir()
	documentPath := filepath.Join(tmpDir, "summary.json")
	require.NoError(t, os.WriteFile(documentPath, []byte(doc), 0644))

	schemaPath := ResolveSchemaPath(filepath.Join("schemas", "match_summary.schema.json"))
	require.NotEmpty(t, schemaPath)

	err := ValidateJSON(schemaPath, documentPath)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Greater(t, len(verr.Errors), 0)
	assert.Contains(t, err.Error(), "overall_score")
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	tmpDir := t.TempDir()
	documentPath := filepath.Join(tmpDir, "summary.json")
	require.NoError(t, os.WriteFile(documentPath, []byte(`{}`), 0644))

	err := ValidateJSON(filepath.Join(tmpDir, "missing.schema.json"), documentPath)
	require.Error(t, err)

	var lerr *SchemaLoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "acme"}`))

	err := ValidateJSONString(schema, `{"name": 7}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
