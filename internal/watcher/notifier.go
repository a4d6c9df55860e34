package watcher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/concealdc/webgate/internal/email"
	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/logger"
	"github.com/concealdc/webgate/pkg/messaging"
	"github.com/concealdc/webgate/pkg/metrics"
)

// Subscriber pairs an email address with the window it wants alerts for.
type Subscriber struct {
	Email      string                       `json:"email" mapstructure:"email"`
	Preference model.NotificationPreference `json:"preference" mapstructure:"preference"`
}

// SubscriberSource supplies the current subscriber list per event, so a
// reload never requires a restart.
type SubscriberSource interface {
	Subscribers(ctx context.Context) ([]Subscriber, error)
}

// StaticSource serves a fixed list, loaded from configuration.
type StaticSource []Subscriber

func (s StaticSource) Subscribers(ctx context.Context) ([]Subscriber, error) {
	return s, nil
}

// Notifier consumes change events and emails every subscriber whose
// preference window matches a newly opened slot.
type Notifier struct {
	broker  messaging.Broker
	source  SubscriberSource
	email   email.Service
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewNotifier(broker messaging.Broker, source SubscriberSource, email email.Service, logger *logger.Logger, m *metrics.Metrics) *Notifier {
	return &Notifier{
		broker:  broker,
		source:  source,
		email:   email,
		logger:  logger,
		metrics: m,
	}
}

func (n *Notifier) Start(ctx context.Context) error {
	events, err := n.broker.Subscribe(ctx, EventChannel)
	if err != nil {
		return err
	}

	n.logger.Info("starting availability notifier")

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("shutting down availability notifier")
			return nil
		case raw, ok := <-events:
			if !ok {
				return nil
			}
			var event ChangeEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				n.logger.Error(err, "discarding malformed change event")
				continue
			}
			n.handle(ctx, event)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, event ChangeEvent) {
	// Only newly opened slots are worth waking anyone up for.
	if event.Status != model.AppointmentStatusOpen {
		return
	}

	subscribers, err := n.source.Subscribers(ctx)
	if err != nil {
		n.logger.Error(err, "failed to load subscribers")
		return
	}

	for _, sub := range subscribers {
		if !Matches(sub.Preference, event.Date, event.Time) {
			continue
		}
		if err := n.email.SendAvailabilityAlert(sub.Email, event.Date, event.Time); err != nil {
			n.logger.Error(err, "failed to notify subscriber", "email", sub.Email)
			if n.metrics != nil {
				n.metrics.NotificationsFailed.Inc()
			}
			continue
		}
		if n.metrics != nil {
			n.metrics.NotificationsSent.Inc()
		}
	}
}

// Matches reports whether a slot at date/slotTime falls inside the
// preference window: date range, weekday list, and time-of-day range.
// Times are "HH:MM" 24h strings, so lexical comparison is ordering.
func Matches(pref model.NotificationPreference, date, slotTime string) bool {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}

	if pref.StartDate != "" && date < pref.StartDate {
		return false
	}
	if pref.EndDate != "" && date > pref.EndDate {
		return false
	}

	if len(pref.Days) > 0 {
		weekday := day.Weekday().String()
		found := false
		for _, d := range pref.Days {
			if d == weekday {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if pref.StartTime != "" && slotTime < pref.StartTime {
		return false
	}
	if pref.EndTime != "" && slotTime > pref.EndTime {
		return false
	}
	return true
}
