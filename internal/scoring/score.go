// Package scoring computes bullet-to-job relevance scores. The lexical
// signal is a weighted term overlap answering "what fraction of the job
// description's emphasis does this bullet address"; an optional
// precomputed embedding similarity can be blended in when a semantic
// collaborator supplied one.
package scoring

import (
	"github.com/jonathan/job-application-assistant/internal/types"
)

// Default scoring parameters. The exact coefficients are tunable, not a
// compatibility contract; see Params.
const (
	// DefaultSkillBonus multiplies the lexical score when the bullet's
	// claims are corroborated by the resume's declared skills.
	DefaultSkillBonus = 1.15
	// DefaultEmbeddingBlendWeight is the share of the final score taken
	// from the embedding similarity when one is available.
	DefaultEmbeddingBlendWeight = 0.4
)

// Params holds the tunable scoring coefficients.
type Params struct {
	SkillBonus           float64
	EmbeddingBlendWeight float64
}

// DefaultParams returns the default scoring coefficients.
func DefaultParams() Params {
	return Params{
		SkillBonus:           DefaultSkillBonus,
		EmbeddingBlendWeight: DefaultEmbeddingBlendWeight,
	}
}

// Scorer scores bullets against a fixed job term set. It is read-only
// after construction, so one Scorer may be shared across goroutines.
type Scorer struct {
	jobTerms   types.TermSet
	skillTerms types.TermSet
	jobMass    int
	params     Params
}

// NewScorer builds a Scorer for one matching request. skillTerms is the
// union of the resume's Skills sections and may be empty.
func NewScorer(jobTerms, skillTerms types.TermSet, params Params) *Scorer {
	return &Scorer{
		jobTerms:   jobTerms,
		skillTerms: skillTerms,
		jobMass:    jobTerms.Total(),
		params:     params,
	}
}

// Score computes the relevance of one bullet's term set. embedding is
// the optional precomputed semantic similarity in [0,1]; pass nil when
// no collaborator supplied one. The result is always in [0,1], and an
// empty job term set scores everything 0.
func (s *Scorer) Score(bulletTerms types.TermSet, embedding *float64) (float64, types.ScoreComponents) {
	components := types.ScoreComponents{}

	if s.jobMass == 0 {
		return 0.0, components
	}

	lexical := float64(bulletTerms.WeightedOverlap(s.jobTerms)) / float64(s.jobMass)

	if bulletTerms.ContainsAny(s.skillTerms) {
		lexical *= s.params.SkillBonus
		components.SkillBonus = true
	}
	lexical = clamp01(lexical)
	components.Lexical = lexical

	score := lexical
	if embedding != nil {
		w := s.params.EmbeddingBlendWeight
		score = (1.0-w)*lexical + w*clamp01(*embedding)
		components.Embedding = clamp01(*embedding)
		components.Blended = true
	}

	return clamp01(score), components
}

// SkillCoverage returns the fraction of job-term mass that appears in
// the resume's declared skills. Used by the summary builder.
func (s *Scorer) SkillCoverage() float64 {
	if s.jobMass == 0 {
		return 0.0
	}
	covered := 0
	for term, freq := range s.jobTerms {
		if _, ok := s.skillTerms[term]; ok {
			covered += freq
		}
	}
	return float64(covered) / float64(s.jobMass)
}

// JobCoverage returns the fraction of job-term mass addressed by the
// given term set (typically the union of selected bullets).
func (s *Scorer) JobCoverage(set types.TermSet) float64 {
	if s.jobMass == 0 {
		return 0.0
	}
	return clamp01(float64(set.WeightedOverlap(s.jobTerms)) / float64(s.jobMass))
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
