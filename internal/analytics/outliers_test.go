package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/pkg/contracts/domain"
)

func TestOutliersIQRFlagsExtremeHigh(t *testing.T) {
	report := OutliersIQR([]float64{1, 2, 3, 4, 5, 100})

	assert.Equal(t, domain.OutlierMethodIQR, report.Method)
	require.NotNil(t, report.UpperBound)
	assert.Empty(t, report.Low)
	assert.Equal(t, []float64{100}, report.High)
}

func TestOutliersIQRFlagsExtremeLow(t *testing.T) {
	report := OutliersIQR([]float64{-80, 50, 52, 54, 56, 58})

	assert.Equal(t, []float64{-80}, report.Low)
	assert.Empty(t, report.High)
}

func TestOutliersIQRTooFewValues(t *testing.T) {
	report := OutliersIQR([]float64{1, 2, 100})

	assert.Nil(t, report.LowerBound)
	assert.Nil(t, report.UpperBound)
	assert.Empty(t, report.Low)
	assert.Empty(t, report.High)
}

func TestOutliersIQRNoOutliers(t *testing.T) {
	report := OutliersIQR([]float64{70, 72, 74, 76, 78, 80})

	require.NotNil(t, report.LowerBound)
	require.NotNil(t, report.UpperBound)
	assert.Empty(t, report.Low)
	assert.Empty(t, report.High)
}

func TestOutliersZScore(t *testing.T) {
	// 50 tightly clustered values plus one far outlier.
	values := make([]float64, 0, 51)
	for i := 0; i < 25; i++ {
		values = append(values, 79, 81)
	}
	values = append(values, 0)

	report := OutliersZScore(values)
	assert.Equal(t, domain.OutlierMethodZScore, report.Method)
	require.NotNil(t, report.LowerBound)
	assert.Equal(t, []float64{0}, report.Low)
	assert.Empty(t, report.High)
}

func TestOutliersZScoreZeroVariance(t *testing.T) {
	report := OutliersZScore([]float64{5, 5, 5, 5, 5})

	assert.Nil(t, report.LowerBound)
	assert.Nil(t, report.UpperBound)
	assert.Empty(t, report.Low)
	assert.Empty(t, report.High)
}

func TestOutliersZScoreEmpty(t *testing.T) {
	report := OutliersZScore(nil)
	assert.Empty(t, report.Low)
	assert.Empty(t, report.High)
}
