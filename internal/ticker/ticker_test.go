package ticker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concealdc/webgate/internal/model"
)

const now = int64(1_710_000_000)

func TestRecentChangesWindowAndOrder(t *testing.T) {
	appointments := []model.Appointment{
		{
			Date: "2024-03-20", Time: "10:30",
			History: []model.StatusChange{
				{Status: model.AppointmentStatusBooked, Timestamp: now - 90_000}, // outside 24h
				{Status: model.AppointmentStatusOpen, Timestamp: now - 5_000},
				{Status: model.AppointmentStatusBooked, Timestamp: now - 1_000},
			},
		},
		{
			Date: "2024-03-21", Time: "14:00",
			History: []model.StatusChange{
				{Status: model.AppointmentStatusOpen, Timestamp: now - 3_000},
			},
		},
	}

	changes := RecentChanges(appointments, now)
	require.Len(t, changes, 3)

	for _, c := range changes {
		assert.GreaterOrEqual(t, c.LastChanged, now-86_400)
	}
	for i := 1; i < len(changes); i++ {
		assert.GreaterOrEqual(t, changes[i-1].LastChanged, changes[i].LastChanged)
	}

	assert.Equal(t, "2024-03-20", changes[0].Date)
	assert.Equal(t, model.AppointmentStatusBooked, changes[0].Status)
	assert.Equal(t, "2024-03-21", changes[1].Date)
	assert.Equal(t, "2024-03-20", changes[2].Date)
}

func TestRecentChangesPreviousStatus(t *testing.T) {
	appointments := []model.Appointment{
		{
			Date: "2024-03-20", Time: "10:30",
			History: []model.StatusChange{
				{Status: model.AppointmentStatusOpen, Timestamp: now - 400},
				{Status: model.AppointmentStatusBooked, Timestamp: now - 300},
			},
		},
	}

	changes := RecentChanges(appointments, now)
	require.Len(t, changes, 2)

	// Newest first: the Booked entry transitioned from Open.
	require.NotNil(t, changes[0].PreviousStatus)
	assert.Equal(t, model.AppointmentStatusOpen, *changes[0].PreviousStatus)
	// The appointment's first entry has nothing before it.
	assert.Nil(t, changes[1].PreviousStatus)
}

func TestRecentChangesPreviousOutsideWindowStillCounts(t *testing.T) {
	// The window filters emitted entries, not the index used to find the
	// preceding status.
	appointments := []model.Appointment{
		{
			Date: "2024-03-20", Time: "10:30",
			History: []model.StatusChange{
				{Status: model.AppointmentStatusBooked, Timestamp: now - 90_000},
				{Status: model.AppointmentStatusOpen, Timestamp: now - 100},
			},
		},
	}

	changes := RecentChanges(appointments, now)
	require.Len(t, changes, 1)
	require.NotNil(t, changes[0].PreviousStatus)
	assert.Equal(t, model.AppointmentStatusBooked, *changes[0].PreviousStatus)
}

func TestRecentChangesStableOnTies(t *testing.T) {
	appointments := []model.Appointment{
		{Date: "2024-03-20", Time: "09:00", History: []model.StatusChange{{Status: model.AppointmentStatusOpen, Timestamp: now - 50}}},
		{Date: "2024-03-20", Time: "10:00", History: []model.StatusChange{{Status: model.AppointmentStatusOpen, Timestamp: now - 50}}},
	}

	changes := RecentChanges(appointments, now)
	require.Len(t, changes, 2)
	assert.Equal(t, "09:00", changes[0].Time)
	assert.Equal(t, "10:00", changes[1].Time)
}

func TestRecentChangesEmpty(t *testing.T) {
	assert.Empty(t, RecentChanges(nil, now))
	assert.Empty(t, RecentChanges([]model.Appointment{{Date: "2024-03-20"}}, now))
}

func TestDedupeConsecutive(t *testing.T) {
	history := []model.StatusChange{
		{Status: model.AppointmentStatusOpen, Timestamp: 1},
		{Status: model.AppointmentStatusOpen, Timestamp: 2},
		{Status: model.AppointmentStatusBooked, Timestamp: 3},
		{Status: model.AppointmentStatusBooked, Timestamp: 4},
		{Status: model.AppointmentStatusOpen, Timestamp: 5},
	}

	out := DedupeConsecutive(history)
	require.Len(t, out, 3)
	assert.Equal(t, int64(1), out[0].Timestamp)
	assert.Equal(t, int64(3), out[1].Timestamp)
	assert.Equal(t, int64(5), out[2].Timestamp)

	assert.Nil(t, DedupeConsecutive(nil))
}
