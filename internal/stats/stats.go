package stats

import (
	"math"

	"github.com/arianafaustini/dial-tester/internal/models"
)

// Stats are the summary figures the dashboard shows for one session.
type Stats struct {
	Highest int     `json:"highest"`
	Lowest  int     `json:"lowest"`
	Average float64 `json:"average"`
	Mode    int     `json:"mode"`
}

// Compute summarizes an ordered sequence of recorded values. An empty input
// yields the zero Stats; that is a defined fallback, not an error.
//
// Mode ties are broken by the value first encountered in input order. This
// matches what users see on the dashboard, so it must not be changed to a
// numeric tie-break.
func Compute(values []int) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	highest := values[0]
	lowest := values[0]
	sum := 0
	freq := make(map[int]int, len(values))
	for _, v := range values {
		if v > highest {
			highest = v
		}
		if v < lowest {
			lowest = v
		}
		sum += v
		freq[v]++
	}

	average := math.Round(float64(sum)/float64(len(values))*10) / 10

	// Walking the input again in order makes the first value to reach the
	// top frequency win ties.
	mode := values[0]
	best := 0
	for _, v := range values {
		if freq[v] > best {
			best = freq[v]
			mode = v
		}
	}

	return Stats{
		Highest: highest,
		Lowest:  lowest,
		Average: average,
		Mode:    mode,
	}
}

// ValuesOf extracts the value sequence from a session's data points,
// preserving their stored order.
func ValuesOf(points []models.DataPoint) []int {
	values := make([]int, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}
