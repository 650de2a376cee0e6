package profiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFeature(t *testing.T) {
	for _, f := range Features {
		got, ok := ParseFeature(string(f))
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}

	_, ok := ParseFeature("video_review")
	assert.False(t, ok)
}

func TestProfileUsageAccessors(t *testing.T) {
	var p Profile

	p.SetUsage(FeaturePDFAnalysis, 1)
	p.SetUsage(FeatureChat, 7)
	p.SetUsage(FeatureDeepReview, 2)

	assert.Equal(t, 1, p.Usage(FeaturePDFAnalysis))
	assert.Equal(t, 7, p.Usage(FeatureChat))
	assert.Equal(t, 2, p.Usage(FeatureDeepReview))
	assert.Equal(t, 0, p.Usage(Feature("unknown")))
}

func TestIncrementQueriesCoverEveryFeature(t *testing.T) {
	for _, f := range Features {
		query, ok := incrementQueries[f]
		assert.True(t, ok, f)
		assert.Contains(t, query, "usage_"+string(f)+" = usage_"+string(f)+" + 1")
	}
}
