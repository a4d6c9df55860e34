package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/errors"
)

func upstreamErr() error {
	return errors.Upstream("failed to fetch appointments", nil)
}

type fakeSource struct {
	daily *model.DailyAppointments
	err   error
	calls int
}

func (f *fakeSource) DailyAppointments(ctx context.Context) (*model.DailyAppointments, error) {
	f.calls++
	return f.daily, f.err
}

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestGetCalendarDerivesMonths(t *testing.T) {
	source := &fakeSource{daily: &model.DailyAppointments{
		Open:   []string{"2024-03-15"},
		Booked: []string{"2024-03-10"},
	}}
	h := NewHandler(source)
	h.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }

	r := setupRouter(h)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/calendar", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    model.CalendarView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Months, 12)
	assert.Equal(t, "2024-03-15", resp.Data.FirstAvailableDay)
	assert.Equal(t, 3, resp.Data.Months[0].Month)
	assert.Equal(t, 2024, resp.Data.Months[0].Year)
}

func TestGetDailyPassesThrough(t *testing.T) {
	source := &fakeSource{daily: &model.DailyAppointments{
		Open:        []string{"2024-03-15"},
		Unavailable: []string{"2024-03-16"},
	}}
	r := setupRouter(NewHandler(source))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/daily", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-03-16")
}

func TestGetCalendarUpstreamFailure(t *testing.T) {
	source := &fakeSource{err: upstreamErr()}
	r := setupRouter(NewHandler(source))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/calendar", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "failed to fetch appointments")
}
