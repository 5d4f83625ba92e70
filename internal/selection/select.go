// Package selection orders scored bullets, drops near-duplicates, and
// picks the top-K under a diversity constraint so one verbose role
// cannot dominate the selected set.
package selection

import (
	"sort"

	"github.com/jonathan/job-application-assistant/internal/types"
)

// DefaultTopK is the default number of bullets to select.
const DefaultTopK = 5

// DefaultDuplicateThreshold is the term-set Jaccard similarity above
// which two bullets are treated as near-duplicates.
const DefaultDuplicateThreshold = 0.85

// Candidate pairs a scored bullet with its normalized term set. The
// term set is needed for near-duplicate detection; the engine already
// computed it for scoring, so it rides along rather than being rebuilt.
type Candidate struct {
	Scored types.ScoredBullet
	Terms  types.TermSet
}

// Options controls ranking and selection behavior.
type Options struct {
	TopK               int
	DuplicateThreshold float64
}

// DefaultOptions returns the default selection options.
func DefaultOptions() Options {
	return Options{
		TopK:               DefaultTopK,
		DuplicateThreshold: DefaultDuplicateThreshold,
	}
}

// SelectTop ranks candidates, removes near-duplicates, and returns up
// to opts.TopK bullets ordered best first. Ordering is deterministic:
// score descending, then earlier document position. Fewer candidates
// than TopK is not an error; all survivors are returned.
func SelectTop(candidates []Candidate, opts Options) []types.ScoredBullet {
	if len(candidates) == 0 {
		return []types.ScoredBullet{}
	}

	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sortByRelevance(ranked)

	ranked = dropNearDuplicates(ranked, opts.DuplicateThreshold)
	picked := pickDiverse(ranked, opts.TopK)

	selected := make([]types.ScoredBullet, len(picked))
	for i, c := range picked {
		sb := c.Scored
		sb.Rank = i + 1
		selected[i] = sb
	}
	return selected
}

// sortByRelevance orders candidates by score descending with document
// position as the tie-break, so equal scores keep source order and the
// result never depends on input permutation.
func sortByRelevance(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].Scored, candidates[j].Scored
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Bullet.SectionIndex != b.Bullet.SectionIndex {
			return a.Bullet.SectionIndex < b.Bullet.SectionIndex
		}
		return a.Bullet.Position < b.Bullet.Position
	})
}

// dropNearDuplicates removes candidates whose term set is too similar
// to an already-kept, higher-or-equal ranked candidate. Input must be
// sorted best first, so the kept bullet is always the better one.
func dropNearDuplicates(ranked []Candidate, threshold float64) []Candidate {
	if threshold <= 0 {
		threshold = DefaultDuplicateThreshold
	}

	kept := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		duplicate := false
		for _, k := range kept {
			if c.Terms.Jaccard(k.Terms) > threshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
		}
	}
	return kept
}

// pickDiverse takes up to k candidates from the ranked list, capping
// each section occurrence at ceil(k/2) picks. The cap is lifted when
// the remaining sections cannot fill k, so a short resume still yields
// a full selection.
func pickDiverse(ranked []Candidate, k int) []Candidate {
	if k <= 0 {
		return nil
	}
	if len(ranked) <= k {
		return ranked
	}

	perSectionCap := (k + 1) / 2
	perSection := make(map[int]int)
	taken := make([]bool, len(ranked))

	picked := make([]Candidate, 0, k)
	for i, c := range ranked {
		if len(picked) == k {
			break
		}
		section := c.Scored.Bullet.SectionIndex
		if perSection[section] >= perSectionCap {
			continue
		}
		perSection[section]++
		taken[i] = true
		picked = append(picked, c)
	}

	// Second pass: the cap starved the selection (fewer distinct
	// sources than needed), so fill remaining slots in rank order.
	for i, c := range ranked {
		if len(picked) == k {
			break
		}
		if taken[i] {
			continue
		}
		picked = append(picked, c)
	}

	// The fill pass can append a better-ranked bullet after a worse one;
	// restore the global order.
	sortByRelevance(picked)
	return picked
}
