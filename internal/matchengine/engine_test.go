package matchengine

import (
	"context"
	"testing"

	"github.com/jonathan/job-application-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioResume = "Experience:\n- Led migration of 10 microservices to a new platform.\n- Wrote unit tests.\nSkills: Python, Go, Kubernetes"

const scenarioJob = "Seeking an engineer experienced in Kubernetes and microservices migration"

func TestMatch_Scenario_MicroservicesResume(t *testing.T) {
	summary, err := NewDefault().Match(context.Background(), scenarioResume, scenarioJob, nil)
	require.NoError(t, err)
	require.NotEmpty(t, summary.SelectedBullets)

	top := summary.SelectedBullets[0]
	assert.Contains(t, top.Bullet.Text, "microservices")

	// The unit-tests bullet scores strictly lower.
	for _, sb := range summary.SelectedBullets[1:] {
		assert.Less(t, sb.Score, top.Score)
	}

	assert.Greater(t, summary.OverallScore, 50)
	assert.LessOrEqual(t, summary.OverallScore, 100)
}

func TestMatch_Scenario_NoHeadings(t *testing.T) {
	summary, err := NewDefault().Match(context.Background(),
		"Built three internal tools over two years.",
		"Looking for a builder of internal tools", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalBullets)
	require.Len(t, summary.SelectedBullets, 1)
	assert.Equal(t, types.KindOther, summary.SelectedBullets[0].Bullet.SectionKind)
}

func TestMatch_EmptyJobText(t *testing.T) {
	_, err := NewDefault().Match(context.Background(), scenarioResume, "", nil)
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "job", inputErr.Field)
}

func TestMatch_EmptyResumeText(t *testing.T) {
	_, err := NewDefault().Match(context.Background(), "   \n\t ", scenarioJob, nil)
	require.Error(t, err)

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "resume", inputErr.Field)
}

func TestMatch_JobTextWithNoUsableTerms(t *testing.T) {
	// Malformed but non-empty job text degrades to an all-zero summary,
	// not an error.
	summary, err := NewDefault().Match(context.Background(), scenarioResume, "!!! ... ???", nil)
	require.NoError(t, err)

	assert.Zero(t, summary.OverallScore)
	for _, sb := range summary.SelectedBullets {
		assert.Zero(t, sb.Score)
	}
	assert.Empty(t, summary.JobTerms)
}

func TestMatch_Deterministic(t *testing.T) {
	engine := NewDefault()
	first, err := engine.Match(context.Background(), scenarioResume, scenarioJob, nil)
	require.NoError(t, err)
	second, err := engine.Match(context.Background(), scenarioResume, scenarioJob, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatch_SelectedBulletsAreSubsetOfExtracted(t *testing.T) {
	summary, err := NewDefault().Match(context.Background(), scenarioResume, scenarioJob, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(summary.SelectedBullets), summary.TotalBullets)
	seen := map[string]bool{}
	for _, sb := range summary.SelectedBullets {
		assert.False(t, seen[sb.Bullet.ID])
		seen[sb.Bullet.ID] = true
	}
}

func TestMatch_TopKRespected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopK = 1
	engine, err := New(cfg)
	require.NoError(t, err)

	summary, err := engine.Match(context.Background(), scenarioResume, scenarioJob, nil)
	require.NoError(t, err)
	require.Len(t, summary.SelectedBullets, 1)
	assert.Contains(t, summary.SelectedBullets[0].Bullet.Text, "microservices")
}

func TestMatch_EmbeddingSignalChangesRanking(t *testing.T) {
	engine := NewDefault()

	lexOnly, err := engine.Match(context.Background(), scenarioResume, scenarioJob, nil)
	require.NoError(t, err)

	// Boost the unit-tests bullet with a strong semantic signal.
	unitTestsID := types.BulletID(0, 1)
	blended, err := engine.Match(context.Background(), scenarioResume, scenarioJob,
		map[string]float64{unitTestsID: 0.95})
	require.NoError(t, err)

	lexScore := scoreOf(t, lexOnly, unitTestsID)
	blendedScore := scoreOf(t, blended, unitTestsID)
	assert.Greater(t, blendedScore, lexScore)

	sb := bulletOf(t, blended, unitTestsID)
	assert.True(t, sb.Components.Blended)
}

func TestMatch_MissingEmbeddingsIsNotAnError(t *testing.T) {
	summary, err := NewDefault().Match(context.Background(), scenarioResume, scenarioJob,
		map[string]float64{"9#9": 0.5})
	require.NoError(t, err)
	for _, sb := range summary.SelectedBullets {
		assert.False(t, sb.Components.Blended)
	}
}

func TestMatch_DuplicatedTextNeverLowersOriginalScore(t *testing.T) {
	base := "Experience:\n- Led migration of 10 microservices to a new platform."
	withCopy := base + "\n- Led migration of 10 microservices to a new platform again elsewhere."

	engine := NewDefault()
	before, err := engine.Match(context.Background(), base, scenarioJob, nil)
	require.NoError(t, err)
	after, err := engine.Match(context.Background(), withCopy, scenarioJob, nil)
	require.NoError(t, err)

	id := types.BulletID(0, 0)
	assert.GreaterOrEqual(t, scoreOf(t, after, id), scoreOf(t, before, id))
}

func TestMatch_DuplicateBulletsDeduplicated(t *testing.T) {
	resume := "Experience:\n- Increased revenue by 20%\n- Increased revenue by 20 percent\n- Mentored junior engineers"
	job := "Seeking someone who increased revenue"

	summary, err := NewDefault().Match(context.Background(), resume, job, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalBullets)
	revenueCount := 0
	for _, sb := range summary.SelectedBullets {
		if sb.Bullet.Text == "Increased revenue by 20%" || sb.Bullet.Text == "Increased revenue by 20 percent" {
			revenueCount++
		}
	}
	assert.Equal(t, 1, revenueCount)
}

func TestMatch_OverallScoreRange(t *testing.T) {
	resumes := []string{
		scenarioResume,
		"Built three internal tools over two years.",
		"Experience\n- Convinced stakeholders to fund a rewrite.",
	}
	jobs := []string{
		scenarioJob,
		"Completely unrelated gardening position pruning hedges",
	}
	engine := NewDefault()
	for _, resume := range resumes {
		for _, job := range jobs {
			summary, err := engine.Match(context.Background(), resume, job, nil)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, summary.OverallScore, 0)
			assert.LessOrEqual(t, summary.OverallScore, 100)
			assert.LessOrEqual(t, len(summary.SelectedBullets), 5)
		}
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.TopK = 0 },
		func(c *Config) { c.DuplicateThreshold = 0 },
		func(c *Config) { c.DuplicateThreshold = 1.5 },
		func(c *Config) { c.EmbeddingBlendWeight = -0.1 },
		func(c *Config) { c.SkillBonus = 0.5 },
		func(c *Config) { c.ExperienceWeight = 0.9 }, // no longer sums to 1
	}

	for i, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		_, err := New(cfg)
		require.Error(t, err, "case %d", i)

		var cfgErr *ConfigurationError
		assert.ErrorAs(t, err, &cfgErr, "case %d", i)
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func scoreOf(t *testing.T, summary *types.MatchSummary, bulletID string) float64 {
	t.Helper()
	return bulletOf(t, summary, bulletID).Score
}

func bulletOf(t *testing.T, summary *types.MatchSummary, bulletID string) types.ScoredBullet {
	t.Helper()
	for _, sb := range summary.SelectedBullets {
		if sb.Bullet.ID == bulletID {
			return sb
		}
	}
	t.Fatalf("bullet %s not in selected set", bulletID)
	return types.ScoredBullet{}
}
