package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pctPtr(v float64) *float64 { return &v }

func TestClassify_Bands(t *testing.T) {
	assert.Equal(t, BandNoData, Classify(nil))
	assert.Equal(t, BandAchieved, Classify(pctPtr(100)))
	assert.Equal(t, BandAchieved, Classify(pctPtr(95)))
	assert.Equal(t, BandOnTrack, Classify(pctPtr(94.9)))
	assert.Equal(t, BandOnTrack, Classify(pctPtr(85)))
	assert.Equal(t, BandInProgress, Classify(pctPtr(84.9)))
	assert.Equal(t, BandInProgress, Classify(pctPtr(65)))
	assert.Equal(t, BandWeakPerformance, Classify(pctPtr(64.9)))
	assert.Equal(t, BandWeakPerformance, Classify(pctPtr(50)))
	assert.Equal(t, BandRequiresIntervention, Classify(pctPtr(49.9)))
	assert.Equal(t, BandRequiresIntervention, Classify(pctPtr(0)))
}

func TestClassify_ZeroIsNotNoData(t *testing.T) {
	// 0% is a valid low-but-defined performance, distinct from missing data.
	assert.NotEqual(t, BandNoData, Classify(pctPtr(0)))
}

func TestPercentage(t *testing.T) {
	p := Percentage(200, 50)
	assert.NotNil(t, p)
	assert.InDelta(t, 25.0, *p, 1e-9)

	assert.Nil(t, Percentage(0, 50))
	assert.Nil(t, Percentage(-1, 50))
}
