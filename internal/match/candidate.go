package match

import "sort"

// DefaultMinScore is the lowest similarity a suggestion may have.
const DefaultMinScore = 0.5

// DefaultMaxSuggestions caps the number of names offered for one miss.
const DefaultMaxSuggestions = 3

// Candidate is a known name scored against a missing one.
type Candidate struct {
	Name  string
	Score float64 // 0..1, see Score
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Less implements sort.Interface: higher score first, then name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Names returns the candidate names in ranking order.
func (c CandidateList) Names() []string {
	out := make([]string, len(c))
	for i := range c {
		out[i] = c[i].Name
	}

	return out
}

// RankNames scores every known name against missing.
// Returns candidates sorted by score (descending).
func RankNames(missing string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		if name == missing {
			continue
		}

		candidates = append(candidates, Candidate{
			Name:  name,
			Score: Score(missing, name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known names scoring at least minScore.
func Suggest(missing string, known []string, limit int, minScore float64) []string {
	if missing == "" || limit <= 0 {
		return nil
	}

	var out []string

	for _, c := range RankNames(missing, known) {
		if c.Score < minScore || len(out) == limit {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
