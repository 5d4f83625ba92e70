package types

import "fmt"

// Bullet is one atomic achievement or responsibility statement
// extracted from a resume section. A bullet never spans two sections
// and its text is non-empty after trimming.
type Bullet struct {
	ID           string      `json:"id"` // deterministic "<section>#<position>" key
	SectionIndex int         `json:"section_index"`
	SectionKind  SectionKind `json:"section_kind"`
	Position     int         `json:"position"` // 0-based position within the owning section
	Text         string      `json:"text"`
}

// BulletID builds the deterministic identity key for a bullet. The same
// key scheme is used by callers supplying precomputed embedding
// similarities, so it must stay stable across runs.
func BulletID(sectionIndex, position int) string {
	return fmt.Sprintf("%d#%d", sectionIndex, position)
}

// ScoreComponents holds the individual factors behind a bullet's score.
type ScoreComponents struct {
	Lexical    float64 `json:"lexical"`
	SkillBonus bool    `json:"skill_bonus"`
	Embedding  float64 `json:"embedding,omitempty"`
	Blended    bool    `json:"blended"`
}

// ScoredBullet pairs a bullet with its relevance score in [0,1] and the
// rank it received after selection (1 = most relevant).
type ScoredBullet struct {
	Bullet     Bullet          `json:"bullet"`
	Score      float64         `json:"score"`
	Rank       int             `json:"rank"` // 1-based position in the selected list
	Components ScoreComponents `json:"components"`
}

// MatchSummary is the engine's sole output contract: an overall fit
// score, the selected bullets ordered best first, and the job term set
// used (kept for auditability).
type MatchSummary struct {
	OverallScore    int            `json:"overall_score"` // 0-100
	SelectedBullets []ScoredBullet `json:"selected_bullets"`
	JobTerms        TermSet        `json:"job_terms"`
	SkillCoverage   float64        `json:"skill_coverage"` // fraction of job-term mass covered by declared skills
	TotalBullets    int            `json:"total_bullets"`  // bullets extracted before dedup/selection
}
