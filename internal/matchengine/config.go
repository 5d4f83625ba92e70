package matchengine

import (
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-application-assistant/internal/bullets"
	"github.com/jonathan/job-application-assistant/internal/scoring"
	"github.com/jonathan/job-application-assistant/internal/segmenting"
	"github.com/jonathan/job-application-assistant/internal/selection"
)

// Weights for combining bullet relevance and declared-skill coverage
// into the overall fit score. Tunable parameters, not a compatibility
// contract.
const (
	DefaultExperienceWeight = 0.7
	DefaultSkillsWeight     = 0.3
)

// Config holds every tunable the engine accepts. It is passed
// explicitly into New so the core stays a pure function; nothing in
// this package reads process-wide state.
type Config struct {
	// TopK is the number of bullets to select.
	TopK int `json:"top_k" validate:"gte=1"`
	// DuplicateThreshold is the term-set Jaccard similarity above which
	// two bullets are near-duplicates.
	DuplicateThreshold float64 `json:"duplicate_threshold" validate:"gt=0,lte=1"`
	// EmbeddingBlendWeight is the share of the bullet score taken from a
	// supplied embedding similarity.
	EmbeddingBlendWeight float64 `json:"embedding_blend_weight" validate:"gte=0,lte=1"`
	// SkillBonus multiplies a bullet's lexical score when its terms are
	// corroborated by the resume's declared skills.
	SkillBonus float64 `json:"skill_bonus" validate:"gte=1"`
	// ExperienceWeight and SkillsWeight combine bullet relevance and
	// skills-term coverage into the overall score; they must sum to 1.
	ExperienceWeight float64 `json:"experience_weight" validate:"gte=0,lte=1"`
	SkillsWeight     float64 `json:"skills_weight" validate:"gte=0,lte=1"`
	// HeadingMaxLen is the longest line that can qualify as a section
	// heading.
	HeadingMaxLen int `json:"heading_max_len" validate:"gte=1"`
	// MinFragmentWords is the shortest sentence fragment allowed to
	// stand alone as a bullet in marker-free prose.
	MinFragmentWords int `json:"min_fragment_words" validate:"gte=1"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TopK:                 selection.DefaultTopK,
		DuplicateThreshold:   selection.DefaultDuplicateThreshold,
		EmbeddingBlendWeight: scoring.DefaultEmbeddingBlendWeight,
		SkillBonus:           scoring.DefaultSkillBonus,
		ExperienceWeight:     DefaultExperienceWeight,
		SkillsWeight:         DefaultSkillsWeight,
		HeadingMaxLen:        segmenting.DefaultHeadingMaxLen,
		MinFragmentWords:     bullets.DefaultMinFragmentWords,
	}
}

var validate = validator.New()

// Validate checks the configuration before any processing begins.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ConfigurationError{Message: "invalid engine configuration", Cause: err}
	}
	const epsilon = 1e-9
	if diff := c.ExperienceWeight + c.SkillsWeight - 1.0; diff > epsilon || diff < -epsilon {
		return &ConfigurationError{Message: "experience_weight and skills_weight must sum to 1"}
	}
	return nil
}
