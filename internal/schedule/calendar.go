// Package schedule derives the rolling calendar view from the daily
// availability buckets. Everything here is a pure function of its inputs
// and is recomputed per request.
package schedule

import (
	"time"

	"github.com/concealdc/webgate/internal/model"
)

const monthsAhead = 12

const dateLayout = "2006-01-02"

// Sentinel start/end times marking a day the facility is closed.
const unavailableSentinel = "unavailable"

// BuildMonths expands the daily buckets into twelve consecutive month
// views starting at today's month, and reports the first open day found
// scanning the window in calendar order.
func BuildMonths(today time.Time, daily *model.DailyAppointments) *model.CalendarView {
	open := toSet(daily.Open)
	booked := toSet(daily.Booked)
	unavailable := toSet(daily.Unavailable)

	todayKey := today.Format(dateLayout)

	view := &model.CalendarView{Months: make([]model.MonthView, 0, monthsAhead)}

	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	for m := 0; m < monthsAhead; m++ {
		monthStart := first.AddDate(0, m, 0)
		daysInMonth := monthStart.AddDate(0, 1, -1).Day()
		firstWeekday := int(monthStart.Weekday())

		month := model.MonthView{
			Year:  monthStart.Year(),
			Month: int(monthStart.Month()),
			Days:  make([]model.DayInfo, 0, daysInMonth),
		}

		for d := 1; d <= daysInMonth; d++ {
			date := monthStart.AddDate(0, 0, d-1)
			key := date.Format(dateLayout)
			weekday := date.Weekday()

			day := model.DayInfo{
				Date:           key,
				Day:            d,
				IsCurrentMonth: true,
				IsToday:        key == todayKey,
				IsWeekend:      weekday == time.Sunday || weekday == time.Saturday,
				// In-month week index, not an ISO week number.
				WeekNumber:   (d + firstWeekday + 6) / 7,
				Availability: classify(key, open, booked, unavailable),
			}

			if view.FirstAvailableDay == "" && day.Availability != nil && day.Availability.Available {
				view.FirstAvailableDay = key
			}
			month.Days = append(month.Days, day)
		}
		view.Months = append(view.Months, month)
	}

	return view
}

// classify resolves a date against the buckets. A date in none of them
// has unknown availability; a date in several resolves by precedence
// unavailable > open > booked.
func classify(date string, open, booked, unavailable map[string]struct{}) *model.DayAvailability {
	if _, ok := unavailable[date]; ok {
		return &model.DayAvailability{
			Available: false,
			StartTime: unavailableSentinel,
			EndTime:   unavailableSentinel,
		}
	}
	if _, ok := open[date]; ok {
		return &model.DayAvailability{Available: true}
	}
	if _, ok := booked[date]; ok {
		return &model.DayAvailability{Available: false}
	}
	return nil
}

func toSet(dates []string) map[string]struct{} {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}
