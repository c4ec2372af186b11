package stats

import (
	"testing"
	"time"

	"github.com/arianafaustini/dial-tester/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	testCases := []struct {
		name     string
		values   []int
		expected Stats
	}{
		{
			name:     "Empty input - zero fallback",
			values:   nil,
			expected: Stats{},
		},
		{
			name:     "Single value",
			values:   []int{42},
			expected: Stats{Highest: 42, Lowest: 42, Average: 42, Mode: 42},
		},
		{
			name:     "Mixed values",
			values:   []int{-100, 0, 100},
			expected: Stats{Highest: 100, Lowest: -100, Average: 0, Mode: -100},
		},
		{
			name:     "Average rounded to one decimal",
			values:   []int{1, 2, 2},
			expected: Stats{Highest: 2, Lowest: 1, Average: 1.7, Mode: 2},
		},
		{
			name:     "Negative average rounding",
			values:   []int{-1, -2, -2},
			expected: Stats{Highest: -1, Lowest: -2, Average: -1.7, Mode: -2},
		},
		{
			name:     "Mode tie broken by first encountered",
			values:   []int{5, 5, 3, 3},
			expected: Stats{Highest: 5, Lowest: 3, Average: 4, Mode: 5},
		},
		{
			name:     "Mode tie with later numerically smaller value",
			values:   []int{10, -4, 10, -4, 7},
			expected: Stats{Highest: 10, Lowest: -4, Average: 3.8, Mode: 10},
		},
		{
			name:     "Clear mode beats earlier value",
			values:   []int{5, 3, 3, 3},
			expected: Stats{Highest: 5, Lowest: 3, Average: 3.5, Mode: 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Compute(tc.values))
		})
	}
}

func TestComputeMatchesMinMax(t *testing.T) {
	values := []int{12, -7, 99, -100, 0, 54, 54, -7}
	result := Compute(values)

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	assert.Equal(t, max, result.Highest)
	assert.Equal(t, min, result.Lowest)
}

func TestValuesOf(t *testing.T) {
	points := []models.DataPoint{
		{Value: 3},
		{Value: -8},
		{Value: 3},
	}
	assert.Equal(t, []int{3, -8, 3}, ValuesOf(points))
	assert.Empty(t, ValuesOf(nil))
}

func TestComputeOverview(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Minute)

	sessions := []models.Session{
		{
			Email:     "a@example.com",
			StartTime: start,
			EndTime:   &end,
			DataPoints: []models.DataPoint{
				{Value: 1}, {Value: 2},
			},
		},
		{
			Email:      "a@example.com",
			StartTime:  start,
			DataPoints: []models.DataPoint{{Value: 3}},
		},
		{
			Email:     "b@example.com",
			StartTime: start,
			EndTime:   &end,
		},
	}

	overview := ComputeOverview(sessions)
	assert.Equal(t, 3, overview.TotalSessions)
	assert.Equal(t, 3, overview.TotalDataPoints)
	assert.Equal(t, 2, overview.UniqueParticipants)
	// Two completed 4-minute sessions and one open session average to 8/3 minutes.
	assert.Equal(t, 3, overview.AvgDurationMinutes)
}

func TestComputeOverviewEmpty(t *testing.T) {
	assert.Equal(t, Overview{}, ComputeOverview(nil))
}
