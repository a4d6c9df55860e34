package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concealdc/webgate/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayByDate(t *testing.T, month model.MonthView, key string) model.DayInfo {
	t.Helper()
	for _, d := range month.Days {
		if d.Date == key {
			return d
		}
	}
	t.Fatalf("day %s not in month %d-%02d", key, month.Year, month.Month)
	return model.DayInfo{}
}

func TestBuildMonthsClassification(t *testing.T) {
	daily := &model.DailyAppointments{
		Open:        []string{"2024-03-20"},
		Booked:      []string{"2024-03-21"},
		Unavailable: []string{"2024-03-22"},
	}

	view := BuildMonths(date(2024, time.March, 1), daily)
	require.Len(t, view.Months, 12)

	march := view.Months[0]
	assert.Equal(t, 2024, march.Year)
	assert.Equal(t, 3, march.Month)
	assert.Len(t, march.Days, 31)

	open := dayByDate(t, march, "2024-03-20")
	require.NotNil(t, open.Availability)
	assert.True(t, open.Availability.Available)

	booked := dayByDate(t, march, "2024-03-21")
	require.NotNil(t, booked.Availability)
	assert.False(t, booked.Availability.Available)
	assert.Empty(t, booked.Availability.StartTime)

	closed := dayByDate(t, march, "2024-03-22")
	require.NotNil(t, closed.Availability)
	assert.False(t, closed.Availability.Available)
	assert.Equal(t, "unavailable", closed.Availability.StartTime)
	assert.Equal(t, "unavailable", closed.Availability.EndTime)

	unknown := dayByDate(t, march, "2024-03-23")
	assert.Nil(t, unknown.Availability)

	assert.Equal(t, "2024-03-20", view.FirstAvailableDay)
}

func TestBuildMonthsPrecedence(t *testing.T) {
	// A date wrongly present in several buckets resolves by
	// unavailable > open > booked.
	daily := &model.DailyAppointments{
		Open:        []string{"2024-03-20", "2024-03-21"},
		Booked:      []string{"2024-03-21"},
		Unavailable: []string{"2024-03-20"},
	}

	view := BuildMonths(date(2024, time.March, 1), daily)
	march := view.Months[0]

	conflicted := dayByDate(t, march, "2024-03-20")
	assert.False(t, conflicted.Availability.Available)
	assert.Equal(t, "unavailable", conflicted.Availability.StartTime)

	openWins := dayByDate(t, march, "2024-03-21")
	assert.True(t, openWins.Availability.Available)

	assert.Equal(t, "2024-03-21", view.FirstAvailableDay)
}

func TestFirstAvailableDayFirstMatchWins(t *testing.T) {
	daily := &model.DailyAppointments{
		Open: []string{"2024-07-04", "2024-04-10"},
	}

	view := BuildMonths(date(2024, time.March, 15), daily)
	assert.Equal(t, "2024-04-10", view.FirstAvailableDay)
}

func TestFirstAvailableDayAbsent(t *testing.T) {
	daily := &model.DailyAppointments{
		Booked:      []string{"2024-03-21"},
		Unavailable: []string{"2024-03-22"},
	}

	view := BuildMonths(date(2024, time.March, 1), daily)
	assert.Empty(t, view.FirstAvailableDay)
}

func TestTodayAndWeekendFlags(t *testing.T) {
	today := date(2024, time.March, 15)
	view := BuildMonths(today, &model.DailyAppointments{})
	march := view.Months[0]

	assert.True(t, dayByDate(t, march, "2024-03-15").IsToday)
	assert.False(t, dayByDate(t, march, "2024-03-14").IsToday)

	// 2024-03-16 is a Saturday, 2024-03-17 a Sunday.
	assert.True(t, dayByDate(t, march, "2024-03-16").IsWeekend)
	assert.True(t, dayByDate(t, march, "2024-03-17").IsWeekend)
	assert.False(t, dayByDate(t, march, "2024-03-18").IsWeekend)
}

func TestWeekNumberApproximation(t *testing.T) {
	// March 2024 starts on a Friday (weekday 5): day 1 is week 1,
	// day 3 (first Sunday) starts week 2 by ceil((3+5)/7)=2.
	view := BuildMonths(date(2024, time.March, 1), &model.DailyAppointments{})
	march := view.Months[0]

	assert.Equal(t, 1, dayByDate(t, march, "2024-03-01").WeekNumber)
	assert.Equal(t, 1, dayByDate(t, march, "2024-03-02").WeekNumber)
	assert.Equal(t, 2, dayByDate(t, march, "2024-03-03").WeekNumber)
	assert.Equal(t, 6, dayByDate(t, march, "2024-03-31").WeekNumber)
}

func TestTwelveConsecutiveMonthsSpanYears(t *testing.T) {
	view := BuildMonths(date(2024, time.November, 30), &model.DailyAppointments{})
	require.Len(t, view.Months, 12)

	assert.Equal(t, 11, view.Months[0].Month)
	assert.Equal(t, 2024, view.Months[0].Year)
	assert.Equal(t, 1, view.Months[2].Month)
	assert.Equal(t, 2025, view.Months[2].Year)
	assert.Equal(t, 10, view.Months[11].Month)
	assert.Equal(t, 2025, view.Months[11].Year)

	// Leap February is enumerated in full.
	leap := BuildMonths(date(2024, time.February, 1), &model.DailyAppointments{})
	assert.Len(t, leap.Months[0].Days, 29)
}
