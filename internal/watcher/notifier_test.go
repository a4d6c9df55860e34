package watcher

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/logger"
)

type fakeEmail struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (f *fakeEmail) SendAvailabilityAlert(to, date, slotTime string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return assert.AnError
	}
	f.sent = append(f.sent, to)
	return nil
}

func weekPref() model.NotificationPreference {
	return model.NotificationPreference{
		Days:      []string{"Monday", "Wednesday", "Friday"},
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		StartTime: "09:00",
		EndTime:   "17:00",
	}
}

func TestMatches(t *testing.T) {
	pref := weekPref()

	// 2024-03-20 is a Wednesday.
	assert.True(t, Matches(pref, "2024-03-20", "10:30"))

	assert.False(t, Matches(pref, "2024-03-19", "10:30"), "Tuesday is not subscribed")
	assert.False(t, Matches(pref, "2024-02-28", "10:30"), "before the date range")
	assert.False(t, Matches(pref, "2024-04-01", "10:30"), "after the date range")
	assert.False(t, Matches(pref, "2024-03-20", "08:59"), "before the time window")
	assert.False(t, Matches(pref, "2024-03-20", "17:01"), "after the time window")
	assert.False(t, Matches(pref, "not-a-date", "10:30"))

	// Window boundaries are inclusive.
	assert.True(t, Matches(pref, "2024-03-20", "09:00"))
	assert.True(t, Matches(pref, "2024-03-20", "17:00"))

	// Empty fields leave that dimension unconstrained.
	assert.True(t, Matches(model.NotificationPreference{}, "2024-03-20", "10:30"))
}

func TestNotifierEmailsMatchingSubscribers(t *testing.T) {
	mail := &fakeEmail{}
	subscribers := StaticSource{
		{Email: "wed@example.com", Preference: weekPref()},
		{Email: "weekend@example.com", Preference: model.NotificationPreference{Days: []string{"Saturday", "Sunday"}}},
	}
	n := NewNotifier(&fakeBroker{}, subscribers, mail, logger.NewLogger(nil), nil)

	open := ChangeEvent{Date: "2024-03-20", Time: "10:30", Status: model.AppointmentStatusOpen}
	n.handle(context.Background(), open)
	assert.Equal(t, []string{"wed@example.com"}, mail.sent)

	// A slot getting booked is not an alert.
	booked := ChangeEvent{Date: "2024-03-20", Time: "10:30", Status: model.AppointmentStatusBooked}
	n.handle(context.Background(), booked)
	assert.Len(t, mail.sent, 1)
}
