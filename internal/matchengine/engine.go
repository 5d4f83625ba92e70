package matchengine

import (
	"context"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-application-assistant/internal/bullets"
	"github.com/jonathan/job-application-assistant/internal/scoring"
	"github.com/jonathan/job-application-assistant/internal/segmenting"
	"github.com/jonathan/job-application-assistant/internal/selection"
	"github.com/jonathan/job-application-assistant/internal/terms"
	"github.com/jonathan/job-application-assistant/internal/types"
)

// scoreCurveExponent flattens the raw weighted coverage into the 0-100
// fit range. Term coverage rarely exceeds ~0.5 even for strong matches
// because job postings carry vocabulary (about the company, benefits,
// the word "seeking") no resume bullet repeats; the square root maps
// that realistic range onto an interpretable scale. Tunable in the same
// sense as the other coefficients.
const scoreCurveExponent = 0.5

// Engine performs one or more matching requests. It holds only
// configuration and is safe for concurrent use: every Match call works
// on its own inputs and shares no mutable state.
type Engine struct {
	cfg       Config
	segmenter *segmenting.Segmenter
	extractor *bullets.Extractor
}

// New validates the configuration and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:       cfg,
		segmenter: segmenting.NewWithKeywords(nil, cfg.HeadingMaxLen),
		extractor: bullets.NewExtractor(cfg.MinFragmentWords),
	}, nil
}

// NewDefault returns an Engine with default configuration.
func NewDefault() *Engine {
	engine, err := New(DefaultConfig())
	if err != nil {
		// Defaults are validated by tests; this cannot happen at runtime.
		panic(err)
	}
	return engine
}

// Match analyzes a resume against a job description and returns the fit
// summary. embeddings optionally carries precomputed semantic
// similarities keyed by bullet ID (types.BulletID); pass nil when no
// semantic collaborator ran. The call is deterministic for identical
// inputs and never performs I/O.
func (e *Engine) Match(ctx context.Context, resumeText, jobText string, embeddings map[string]float64) (*types.MatchSummary, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Field: "resume", Message: "resume text is empty"}
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, &InputError{Field: "job", Message: "job description text is empty"}
	}

	// 1. Segment the resume and extract candidate bullets.
	doc := e.segment(resumeText)
	extracted := e.extractor.ExtractAll(doc)

	// 2. Normalize the job description and the declared skills.
	jobTerms := terms.Normalize(jobText)
	skillTerms := make(types.TermSet)
	for _, section := range doc.SectionsOfKind(types.KindSkills) {
		skillTerms = skillTerms.Union(terms.Normalize(section.Text))
	}

	scorer := scoring.NewScorer(jobTerms, skillTerms, scoring.Params{
		SkillBonus:           e.cfg.SkillBonus,
		EmbeddingBlendWeight: e.cfg.EmbeddingBlendWeight,
	})

	// 3. Score every bullet. Each computation reads only the shared
	// scorer and writes its own slot, so parallelism cannot change the
	// result.
	candidates := make([]selection.Candidate, len(extracted))
	g, _ := errgroup.WithContext(ctx)
	for i, bullet := range extracted {
		i, bullet := i, bullet
		g.Go(func() error {
			bulletTerms := terms.Normalize(bullet.Text)
			var embedding *float64
			if sim, ok := embeddings[bullet.ID]; ok {
				embedding = &sim
			}
			score, components := scorer.Score(bulletTerms, embedding)
			candidates[i] = selection.Candidate{
				Scored: types.ScoredBullet{
					Bullet:     bullet,
					Score:      score,
					Components: components,
				},
				Terms: bulletTerms,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 4. Rank, dedup, and select.
	selected := selection.SelectTop(candidates, selection.Options{
		TopK:               e.cfg.TopK,
		DuplicateThreshold: e.cfg.DuplicateThreshold,
	})

	// 5. Aggregate the overall fit score.
	overall := e.overallScore(scorer, selected)

	return &types.MatchSummary{
		OverallScore:    overall,
		SelectedBullets: selected,
		JobTerms:        jobTerms,
		SkillCoverage:   scorer.SkillCoverage(),
		TotalBullets:    len(extracted),
	}, nil
}

// segment builds the resume document, using the engine's heading length
// threshold with the default keyword table.
func (e *Engine) segment(resumeText string) *types.ResumeDocument {
	return e.segmenter.Segment(resumeText)
}

// overallScore combines the selected bullets' joint job coverage with
// declared-skill coverage into a 0-100 integer. The union of selected
// term sets is used rather than a per-bullet mean: complementary
// bullets that each address a different part of the posting should add
// up, not average down.
func (e *Engine) overallScore(scorer *scoring.Scorer, selected []types.ScoredBullet) int {
	union := make(types.TermSet)
	for _, sb := range selected {
		union = union.Union(terms.Normalize(sb.Bullet.Text))
	}

	raw := e.cfg.ExperienceWeight*scorer.JobCoverage(union) +
		e.cfg.SkillsWeight*scorer.SkillCoverage()
	if raw <= 0 {
		return 0
	}

	calibrated := math.Pow(raw, scoreCurveExponent)
	score := int(math.Round(calibrated * 100.0))
	if score > 100 {
		score = 100
	}
	return score
}
