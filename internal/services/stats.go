package services

import (
	"math"

	"github.com/hotreminder/backend/internal/domain"
)

// Aggregate computes adherence statistics over the events inside the window.
// Every event increments at most one bucket; statuses outside the known three
// are tolerated and simply not counted. The rate is taken/total*100 rounded
// to one decimal, and 0 when there are no counted events.
func Aggregate(events []domain.HistoryEvent, window domain.Window) domain.Stats {
	var stats domain.Stats
	for _, event := range events {
		if !window.Contains(event.Timestamp) {
			continue
		}
		switch event.Status {
		case domain.StatusTaken:
			stats.Taken++
		case domain.StatusRejected:
			stats.Rejected++
		case domain.StatusMissed:
			stats.Missed++
		}
	}

	stats.Total = stats.Taken + stats.Rejected + stats.Missed
	if stats.Total > 0 {
		stats.AdherenceRate = math.Round(float64(stats.Taken)/float64(stats.Total)*1000) / 10
	}
	return stats
}
