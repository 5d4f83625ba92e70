package types

// TermSet maps a normalized term to its frequency within a text span.
// Terms are lower-cased, stop-word free, and lightly stemmed; ordering
// is irrelevant.
type TermSet map[string]int

// Total returns the summed frequency mass of the set.
func (t TermSet) Total() int {
	total := 0
	for _, freq := range t {
		total += freq
	}
	return total
}

// WeightedOverlap returns the sum of min(t[term], other[term]) across
// terms present in both sets.
func (t TermSet) WeightedOverlap(other TermSet) int {
	overlap := 0
	for term, freq := range t {
		if otherFreq, ok := other[term]; ok {
			if otherFreq < freq {
				overlap += otherFreq
			} else {
				overlap += freq
			}
		}
	}
	return overlap
}

// Jaccard returns the set-level Jaccard similarity (shared terms over
// union of terms, frequencies ignored). Two empty sets are considered
// identical.
func (t TermSet) Jaccard(other TermSet) float64 {
	if len(t) == 0 && len(other) == 0 {
		return 1.0
	}
	shared := 0
	for term := range t {
		if _, ok := other[term]; ok {
			shared++
		}
	}
	union := len(t) + len(other) - shared
	if union == 0 {
		return 0.0
	}
	return float64(shared) / float64(union)
}

// ContainsAny reports whether any term of this set appears in other.
func (t TermSet) ContainsAny(other TermSet) bool {
	for term := range t {
		if _, ok := other[term]; ok {
			return true
		}
	}
	return false
}

// Union merges other into a copy of this set, summing frequencies.
func (t TermSet) Union(other TermSet) TermSet {
	merged := make(TermSet, len(t)+len(other))
	for term, freq := range t {
		merged[term] = freq
	}
	for term, freq := range other {
		merged[term] += freq
	}
	return merged
}
