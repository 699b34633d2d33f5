package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Distance(55.75, 37.61, 55.75, 37.61))
}

func TestDistanceSymmetric(t *testing.T) {
	d1 := Distance(55.75, 37.61, 59.93, 30.33)
	d2 := Distance(59.93, 30.33, 55.75, 37.61)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceKnownValues(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		delta                  float64
	}{
		{
			name: "One thousandth of a degree east at the equator",
			lat1: 0, lon1: 0, lat2: 0, lon2: 0.001,
			expected: 111.19,
			delta:    0.5,
		},
		{
			name: "One degree of latitude",
			lat1: 0, lon1: 0, lat2: 1, lon2: 0,
			expected: 111194.9,
			delta:    100,
		},
		{
			name: "Moscow to Saint Petersburg",
			lat1: 55.7558, lon1: 37.6173, lat2: 59.9311, lon2: 30.3609,
			expected: 634000,
			delta:    5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2), tt.delta)
		})
	}
}
