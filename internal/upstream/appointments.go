package upstream

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/metrics"
)

const dailyCacheKey = "appointments:daily"

// ConcealClient talks to the Conceal DC appointments API.
type ConcealClient struct {
	*rest
	daily *cache.Cache
}

// NewConcealClient builds a client with a short-TTL cache over the daily
// availability endpoint, the one hot path every calendar render hits.
func NewConcealClient(cfg Config, m *metrics.Metrics) *ConcealClient {
	return &ConcealClient{
		rest:  newRest(cfg, "conceal-api", m),
		daily: cache.New(time.Minute, 5*time.Minute),
	}
}

// RecentAppointments returns one page of the recent-appointments feed.
func (c *ConcealClient) RecentAppointments(ctx context.Context, nextToken string) (*model.RecentAppointmentsPage, error) {
	path := "/appointments/recent"
	if nextToken != "" {
		path += "?next_token=" + url.QueryEscape(nextToken)
	}
	var page model.RecentAppointmentsPage
	if err := c.call(ctx, "recent_appointments", "GET", path, nil, "", "failed to fetch appointments", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DailyAppointments returns the rolling open/booked/unavailable date
// buckets, served from cache when fresh.
func (c *ConcealClient) DailyAppointments(ctx context.Context) (*model.DailyAppointments, error) {
	if v, ok := c.daily.Get(dailyCacheKey); ok {
		c.cacheResult("hit")
		return v.(*model.DailyAppointments), nil
	}
	c.cacheResult("miss")

	var daily model.DailyAppointments
	if err := c.call(ctx, "daily_appointments", "GET", "/appointments/daily", nil, "", "failed to fetch daily appointments", &daily); err != nil {
		return nil, err
	}
	c.daily.SetDefault(dailyCacheKey, &daily)
	return &daily, nil
}

// Appointments lists slots between two dates inclusive.
func (c *ConcealClient) Appointments(ctx context.Context, startDate, endDate string) (*model.AppointmentsPage, error) {
	path := fmt.Sprintf("/appointments?start_date=%s&end_date=%s",
		url.QueryEscape(startDate), url.QueryEscape(endDate))
	var page model.AppointmentsPage
	if err := c.call(ctx, "appointments", "GET", path, nil, "", "failed to fetch appointments", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *ConcealClient) cacheResult(result string) {
	if c.metrics != nil {
		c.metrics.UpstreamCacheHit.WithLabelValues(result).Inc()
	}
}
