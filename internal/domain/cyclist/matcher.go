package cyclist

import (
	"strings"

	"github.com/riskibarqy/fantasy-cycling/internal/platform/fuzzy"
)

const DefaultMatchThreshold = 80.0

// Match is the best candidate found for a free-text rider name.
// Cyclist is zero when there were no candidates.
type Match struct {
	Cyclist Cyclist
	Score   float64
}

type candidate struct {
	cyclist Cyclist
	sorted  string
}

// Matcher resolves rider names against a fixed set of known cyclists.
type Matcher struct {
	threshold  float64
	candidates []candidate
}

func NewMatcher(cyclists []Cyclist, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}

	candidates := make([]candidate, 0, len(cyclists))
	for _, item := range cyclists {
		sorted := fuzzy.SortTokens(item.FullName())
		if sorted == "" {
			continue
		}
		candidates = append(candidates, candidate{cyclist: item, sorted: sorted})
	}

	return &Matcher{threshold: threshold, candidates: candidates}
}

func (m *Matcher) Threshold() float64 {
	return m.threshold
}

func (m *Matcher) Len() int {
	return len(m.candidates)
}

// Match returns the highest scoring cyclist for name. ok is false when the
// best score is below the threshold; Match still carries that best guess.
// Ties keep the earliest candidate.
func (m *Matcher) Match(name string) (Match, bool) {
	query := fuzzy.SortTokens(name)
	if strings.TrimSpace(query) == "" || len(m.candidates) == 0 {
		return Match{}, false
	}

	best := Match{Score: -1}
	for _, item := range m.candidates {
		score := fuzzy.Ratio(query, item.sorted)
		if score > best.Score {
			best = Match{Cyclist: item.cyclist, Score: score}
		}
		if score == 100 {
			break
		}
	}

	return best, best.Score >= m.threshold
}

// FindBestMatch is the one-shot form of Matcher.Match.
func FindBestMatch(name string, cyclists []Cyclist, threshold float64) (Match, bool) {
	return NewMatcher(cyclists, threshold).Match(name)
}
