// Package heritage scores church profiles for heritage significance. The
// scorer is pure and deterministic: identical profiles always produce
// identical classifications, which lets the workflow engine recompute the
// score at every transition and store it for later explainability.
package heritage

import (
	"strings"

	"simbahan/internal/church/models"
	pstrings "simbahan/pkg/platform/strings"
)

// Scoring weights. Signals are additive and deliberately uncapped: a profile
// carrying several independent signals scores above any single one.
const (
	weightHeritageTag   = 100
	weightFoundingYear  = 50
	weightHistoricStyle = 30
	weightKeywordMatch  = 20

	// foundingYearCutoff marks the pre-1900 construction signal.
	foundingYearCutoff = 1900

	// heritageThreshold is the minimum score that routes a church into
	// heritage review. highConfidenceThreshold splits the band above it.
	heritageThreshold       = 50
	highConfidenceThreshold = 100
)

// historicStyleMarkers flag the "historic architecture" signal when they
// appear in the architectural style or description fields.
var historicStyleMarkers = []string{
	"baroque",
	"earthquake baroque",
	"gothic",
	"romanesque",
	"neoclassical",
	"spanish colonial",
	"colonial",
}

// heritageKeywords is the controlled vocabulary for the keyword signal. Each
// distinct match contributes once.
var heritageKeywords = map[string]bool{
	"coral stone":   true,
	"retablo":       true,
	"belfry":        true,
	"watchtower":    true,
	"convento":      true,
	"espadana":      true,
	"ruins":         true,
	"mural":         true,
	"pipe organ":    true,
	"azotea":        true,
	"heritage zone": true,
}

// Scorer is the stateless heritage classifier. It holds no configuration so a
// zero value is usable, but NewScorer keeps construction symmetrical with the
// other services.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Classify produces the weighted additive score and confidence band for a
// profile. No side effects; callable standalone for previewing a submission.
func (s *Scorer) Classify(p models.Profile) models.Classification {
	score := 0

	if p.HeritageTag == models.TagICP || p.HeritageTag == models.TagNCT {
		score += weightHeritageTag
	}

	if p.FoundingYear > 0 && p.FoundingYear < foundingYearCutoff {
		score += weightFoundingYear
	}

	if hasHistoricStyle(p) {
		score += weightHistoricStyle
	}

	score += weightKeywordMatch * matchedKeywords(p.Keywords)

	return models.Classification{
		Score:      score,
		Confidence: confidenceFor(score),
		IsHeritage: score >= heritageThreshold,
	}
}

func hasHistoricStyle(p models.Profile) bool {
	style := strings.ToLower(p.ArchitecturalStyle)
	desc := strings.ToLower(p.Description)
	for _, marker := range historicStyleMarkers {
		if strings.Contains(style, marker) || strings.Contains(desc, marker) {
			return true
		}
	}
	return false
}

// matchedKeywords counts distinct heritage-vocabulary hits. Duplicates in the
// input collapse first so resubmitting the same keyword cannot inflate a
// score.
func matchedKeywords(keywords []string) int {
	matched := 0
	for _, kw := range pstrings.DedupeAndTrimLower(keywords) {
		if heritageKeywords[kw] {
			matched++
		}
	}
	return matched
}

func confidenceFor(score int) models.Confidence {
	switch {
	case score > highConfidenceThreshold:
		return models.ConfidenceHigh
	case score >= heritageThreshold:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
