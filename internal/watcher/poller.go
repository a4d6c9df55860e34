// Package watcher is the tracking half of the system: it polls the
// appointments API, detects status transitions, and fans them out to
// subscribers through the message broker.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/internal/ticker"
	"github.com/concealdc/webgate/pkg/logger"
	"github.com/concealdc/webgate/pkg/messaging"
	"github.com/concealdc/webgate/pkg/metrics"
)

// EventChannel is the broker channel transitions are published on.
const EventChannel = "availability.changed"

// maxPages bounds one poll cycle's pagination.
const maxPages = 10

// ChangeEvent is one detected status transition.
type ChangeEvent struct {
	Date           string                   `json:"date"`
	Time           string                   `json:"time"`
	Status         model.AppointmentStatus  `json:"status"`
	PreviousStatus *model.AppointmentStatus `json:"previousStatus,omitempty"`
	Timestamp      int64                    `json:"timestamp"`
}

// AppointmentsSource is the slice of the upstream client the poller uses.
type AppointmentsSource interface {
	RecentAppointments(ctx context.Context, nextToken string) (*model.RecentAppointmentsPage, error)
}

type PollerConfig struct {
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

type Poller struct {
	source  AppointmentsSource
	broker  messaging.Broker
	config  PollerConfig
	logger  *logger.Logger
	metrics *metrics.Metrics

	// last published history timestamp per slot (date|time key)
	seen map[string]int64
}

func NewPoller(source AppointmentsSource, broker messaging.Broker, config PollerConfig, logger *logger.Logger, m *metrics.Metrics) *Poller {
	if config.PollInterval <= 0 {
		panic("PollInterval must be greater than 0")
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 2 * time.Second
	}
	return &Poller{
		source:  source,
		broker:  broker,
		config:  config,
		logger:  logger,
		metrics: m,
		seen:    make(map[string]int64),
	}
}

func (p *Poller) Start(ctx context.Context) {
	t := time.NewTicker(p.config.PollInterval)
	defer t.Stop()

	p.logger.Info("starting availability poller")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down availability poller")
			return
		case <-t.C:
			if err := p.Poll(ctx); err != nil {
				p.logger.Error(err, "poll cycle failed")
			}
		}
	}
}

// Poll runs one cycle: fetch the recent-appointments feed, diff every
// appointment's history against what was already published, and emit the
// new transitions.
func (p *Poller) Poll(ctx context.Context) error {
	var obs *prometheus.Timer
	if p.metrics != nil {
		p.metrics.PollsTotal.Inc()
		obs = prometheus.NewTimer(p.metrics.PollDuration)
		defer obs.ObserveDuration()
	}

	appointments, err := p.fetchAll(ctx)
	if err != nil {
		if p.metrics != nil {
			p.metrics.PollFailures.Inc()
		}
		return fmt.Errorf("failed to fetch recent appointments: %w", err)
	}

	for _, appt := range appointments {
		if err := p.publishNew(ctx, appt); err != nil {
			p.logger.Error(err, "failed to publish changes",
				"date", appt.Date, "time", appt.Time)
		}
	}
	return nil
}

func (p *Poller) fetchAll(ctx context.Context) ([]model.Appointment, error) {
	var out []model.Appointment
	token := ""
	for page := 0; page < maxPages; page++ {
		resp, err := p.source.RecentAppointments(ctx, token)
		if err != nil {
			return nil, err
		}
		out = append(out, resp.Items...)
		if resp.NextToken == "" {
			break
		}
		token = resp.NextToken
	}
	return out, nil
}

func (p *Poller) publishNew(ctx context.Context, appt model.Appointment) error {
	history := ticker.DedupeConsecutive(appt.History)
	key := appt.Date + "|" + appt.Time
	last := p.seen[key]

	for i, entry := range history {
		if entry.Timestamp <= last {
			continue
		}

		event := ChangeEvent{
			Date:      appt.Date,
			Time:      appt.Time,
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
		}
		if i > 0 {
			prev := history[i-1].Status
			event.PreviousStatus = &prev
		}

		err := retry(p.config.RetryAttempts, p.config.RetryDelay, func() error {
			return p.broker.Publish(ctx, EventChannel, event)
		})
		if err != nil {
			return err
		}

		p.seen[key] = entry.Timestamp
		if p.metrics != nil {
			p.metrics.ChangesDetected.WithLabelValues(string(entry.Status)).Inc()
		}
	}
	return nil
}

func retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return err
}
