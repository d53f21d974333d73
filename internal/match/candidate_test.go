package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankNames(t *testing.T) {
	known := []string{"bundle", "source", "src", "v", "bundle.entry"}

	ranked := RankNames("sourc", known)
	assert.Equal(t, "source", ranked[0].Name)
	assert.Len(t, ranked, len(known))

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRankNames_SkipsExactName(t *testing.T) {
	ranked := RankNames("v", []string{"v", "w"})
	assert.Equal(t, []string{"w"}, ranked.Names())
}

func TestRankNames_TieBreakByName(t *testing.T) {
	ranked := RankNames("ab", []string{"ax", "aa"})
	assert.Equal(t, []string{"aa", "ax"}, ranked.Names())
}

func TestSuggest(t *testing.T) {
	known := []string{"patientName", "bundle", "entry", "e"}

	assert.Equal(t, []string{"patientName"}, Suggest("patient_name", known, DefaultMaxSuggestions, DefaultMinScore))
	assert.Equal(t, []string{"bundle"}, Suggest("bundel", known, DefaultMaxSuggestions, DefaultMinScore))
	assert.Empty(t, Suggest("zzzzzz", known, DefaultMaxSuggestions, DefaultMinScore))
	assert.Empty(t, Suggest("", known, DefaultMaxSuggestions, DefaultMinScore))
	assert.Empty(t, Suggest("bundle", known, 0, DefaultMinScore))
}

func TestSuggest_Limit(t *testing.T) {
	known := []string{"e1", "e2", "e3", "e4"}
	assert.Len(t, Suggest("e", known, 2, 0), 2)
}
