package heritage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simbahan/internal/church/models"
)

func TestClassifyBands(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name           string
		profile        models.Profile
		wantScore      int
		wantConfidence models.Confidence
		wantHeritage   bool
	}{
		{
			name:           "empty profile scores zero",
			profile:        models.Profile{},
			wantScore:      0,
			wantConfidence: models.ConfidenceLow,
			wantHeritage:   false,
		},
		{
			name:           "modern church stays on the standard path",
			profile:        models.Profile{FoundingYear: 1984, ArchitecturalStyle: "modern"},
			wantScore:      0,
			wantConfidence: models.ConfidenceLow,
			wantHeritage:   false,
		},
		{
			name:           "pre-1900 founding alone lands in the medium band",
			profile:        models.Profile{FoundingYear: 1856},
			wantScore:      50,
			wantConfidence: models.ConfidenceMedium,
			wantHeritage:   true,
		},
		{
			name:           "explicit ICP tag alone is medium, not high",
			profile:        models.Profile{HeritageTag: models.TagICP},
			wantScore:      100,
			wantConfidence: models.ConfidenceMedium,
			wantHeritage:   true,
		},
		{
			name: "NCT tag plus age crosses into high confidence",
			profile: models.Profile{
				HeritageTag:  models.TagNCT,
				FoundingYear: 1727,
			},
			wantScore:      150,
			wantConfidence: models.ConfidenceHigh,
			wantHeritage:   true,
		},
		{
			name: "all signals sum uncapped",
			profile: models.Profile{
				HeritageTag:        models.TagICP,
				FoundingYear:       1595,
				ArchitecturalStyle: "earthquake baroque",
				Keywords:           []string{"coral stone", "retablo", "belfry"},
			},
			wantScore:      240,
			wantConfidence: models.ConfidenceHigh,
			wantHeritage:   true,
		},
		{
			name: "style marker in description counts once",
			profile: models.Profile{
				Description: "Spanish colonial church rebuilt after the earthquake",
			},
			wantScore:      30,
			wantConfidence: models.ConfidenceLow,
			wantHeritage:   false,
		},
		{
			name: "duplicate keywords do not inflate the score",
			profile: models.Profile{
				Keywords: []string{"retablo", " Retablo ", "RETABLO"},
			},
			wantScore:      20,
			wantConfidence: models.ConfidenceLow,
			wantHeritage:   false,
		},
		{
			name: "unknown keywords contribute nothing",
			profile: models.Profile{
				Keywords: []string{"parking lot", "air conditioning"},
			},
			wantScore:      0,
			wantConfidence: models.ConfidenceLow,
			wantHeritage:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Classify(tt.profile)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
			assert.Equal(t, tt.wantHeritage, got.IsHeritage)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	scorer := NewScorer()
	profile := models.Profile{
		HeritageTag:        models.TagICP,
		FoundingYear:       1717,
		ArchitecturalStyle: "baroque",
		Keywords:           []string{"coral stone", "belfry"},
	}

	first := scorer.Classify(profile)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, scorer.Classify(profile))
	}
}

// TestClassifyMonotonicity verifies that adding any single positive signal to
// a profile never decreases the score.
func TestClassifyMonotonicity(t *testing.T) {
	scorer := NewScorer()

	bases := []models.Profile{
		{},
		{FoundingYear: 1850},
		{HeritageTag: models.TagNCT, ArchitecturalStyle: "gothic"},
		{Keywords: []string{"retablo"}},
	}

	additions := []func(models.Profile) models.Profile{
		func(p models.Profile) models.Profile { p.HeritageTag = models.TagICP; return p },
		func(p models.Profile) models.Profile { p.FoundingYear = 1750; return p },
		func(p models.Profile) models.Profile { p.ArchitecturalStyle = "earthquake baroque"; return p },
		func(p models.Profile) models.Profile {
			p.Keywords = append(append([]string{}, p.Keywords...), "watchtower")
			return p
		},
	}

	for _, base := range bases {
		before := scorer.Classify(base).Score
		for _, add := range additions {
			after := scorer.Classify(add(base)).Score
			require.GreaterOrEqual(t, after, before,
				"adding a positive signal must never decrease the score (base %+v)", base)
		}
	}
}
