package terms

import (
	"testing"

	"github.com/jonathan/job-application-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercaseAndCount(t *testing.T) {
	got := Normalize("Kubernetes kubernetes KUBERNETES")
	assert.Equal(t, types.TermSet{"kubernet": 3}, got)
}

func TestNormalize_StopWordsRemoved(t *testing.T) {
	got := Normalize("the migration of the services to a platform")
	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "of")
	assert.NotContains(t, got, "to")
	assert.Contains(t, got, "migration")
	assert.Contains(t, got, "platform")
}

func TestNormalize_PunctuationStripped(t *testing.T) {
	got := Normalize("Led migration, (10 microservices)!")
	assert.Contains(t, got, "migration")
	assert.Contains(t, got, "10")
	assert.Contains(t, got, "microservic")
	assert.NotContains(t, got, "")
}

func TestNormalize_CompoundTermsSurvive(t *testing.T) {
	got := Normalize("node.js ci-cd c++ c#")
	assert.Contains(t, got, "node.j") // -s stripped like any plural
	assert.Contains(t, got, "ci-cd")
	assert.Contains(t, got, "c++")
	assert.Contains(t, got, "c#")
}

func TestNormalize_Stemming(t *testing.T) {
	// Inflected forms collide on a common stem.
	migrating := Normalize("migrating")
	migrated := Normalize("migrated")
	migrates := Normalize("migrates")
	assert.Equal(t, migrating, migrated)
	assert.Equal(t, migrated, migrates)

	// Short words are left alone.
	assert.Equal(t, types.TermSet{"go": 1}, Normalize("go"))
	// -ss endings are preserved.
	assert.Contains(t, Normalize("process"), "process")
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Led migration of 10 microservices to a new platform.",
		"Seeking an engineer experienced in Kubernetes and microservices migration",
		"Increased revenue by 20%",
	}
	for _, input := range inputs {
		once := Normalize(input)

		var flattened []string
		for term, freq := range once {
			for i := 0; i < freq; i++ {
				flattened = append(flattened, term)
			}
		}
		twice := Normalize(join(flattened))
		assert.Equal(t, once, twice, "input %q", input)
	}
}

func join(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

func TestNormalize_EmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, Normalize(""))
	assert.Empty(t, Normalize("   \n\t  "))
	assert.Empty(t, Normalize("... !!! ,,,"))
}

func TestNormalize_Deterministic(t *testing.T) {
	text := "Built and operated the core ledger service, cutting costs by 30%."
	assert.Equal(t, Normalize(text), Normalize(text))
}

func TestNormalize_NearDuplicatePhrasing(t *testing.T) {
	// The near-duplicate dedup in selection depends on "%" and
	// "percent" collapsing to the same term.
	a := Normalize("Increased revenue by 20%")
	b := Normalize("Increased revenue by 20 percent")
	assert.Greater(t, a.Jaccard(b), 0.85)
	assert.Contains(t, a, "percent")
}
