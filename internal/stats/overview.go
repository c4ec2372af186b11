package stats

import (
	"math"

	"github.com/arianafaustini/dial-tester/internal/models"
)

// Overview aggregates across all sessions for the dashboard header.
type Overview struct {
	TotalSessions      int `json:"total_sessions"`
	TotalDataPoints    int `json:"total_data_points"`
	UniqueParticipants int `json:"unique_participants"`
	AvgDurationMinutes int `json:"avg_duration_minutes"`
}

// ComputeOverview tallies sessions, data points and unique participant
// emails, and averages the duration of completed sessions in whole minutes.
func ComputeOverview(sessions []models.Session) Overview {
	overview := Overview{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return overview
	}

	participants := make(map[string]struct{})
	var totalDuration float64
	for _, session := range sessions {
		overview.TotalDataPoints += len(session.DataPoints)
		participants[session.Email] = struct{}{}
		totalDuration += session.Duration().Seconds()
	}

	overview.UniqueParticipants = len(participants)
	overview.AvgDurationMinutes = int(math.Round(totalDuration / float64(len(sessions)) / 60))
	return overview
}
