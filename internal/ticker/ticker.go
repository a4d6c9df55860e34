// Package ticker derives the status-change feed shown in the scrolling
// marquee: every history entry from the last day, flattened across
// appointments and sorted newest first.
package ticker

import (
	"sort"

	"github.com/concealdc/webgate/internal/model"
)

// lookback is the feed window in seconds.
const lookback = 24 * 60 * 60

// RecentChanges flattens the appointments' histories into a single list
// of transitions from the last 24 hours, sorted descending by timestamp.
// Ties keep their original relative order. Each entry carries the status
// of the immediately preceding history entry of the same appointment,
// or nil for an appointment's first recorded entry.
func RecentChanges(appointments []model.Appointment, nowSeconds int64) []model.RecentChange {
	cutoff := nowSeconds - lookback

	var changes []model.RecentChange
	for _, appt := range appointments {
		for i, entry := range appt.History {
			if entry.Timestamp < cutoff {
				continue
			}
			change := model.RecentChange{
				Date:        appt.Date,
				Time:        appt.Time,
				Status:      entry.Status,
				LastChanged: entry.Timestamp,
			}
			if i > 0 {
				prev := appt.History[i-1].Status
				change.PreviousStatus = &prev
			}
			changes = append(changes, change)
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].LastChanged > changes[j].LastChanged
	})
	return changes
}

// DedupeConsecutive drops history entries that repeat the previous
// status, leaving only real transitions. The watcher runs detected
// histories through this before emitting events.
func DedupeConsecutive(history []model.StatusChange) []model.StatusChange {
	if len(history) == 0 {
		return nil
	}
	out := []model.StatusChange{history[0]}
	for _, entry := range history[1:] {
		if entry.Status != out[len(out)-1].Status {
			out = append(out, entry)
		}
	}
	return out
}
