package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/errors"
)

func TestRecentAppointmentsCamelizesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appointments/recent", r.URL.Path)
		io.WriteString(w, `{"items":[{"date":"2024-03-20","time":"10:30","status":"Open","history":[{"status":"Booked","timestamp":1710000000}]}],"next_token":"abc"}`)
	}))
	defer srv.Close()

	c := NewConcealClient(Config{BaseURL: srv.URL}, nil)
	page, err := c.RecentAppointments(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "abc", page.NextToken)
	require.Len(t, page.Items, 1)
	assert.Equal(t, model.AppointmentStatusOpen, page.Items[0].Status)
	require.Len(t, page.Items[0].History, 1)
	assert.Equal(t, int64(1710000000), page.Items[0].History[0].Timestamp)
}

func TestDailyAppointmentsCached(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, `{"open":["2024-03-20"],"booked":[],"unavailable":[]}`)
	}))
	defer srv.Close()

	c := NewConcealClient(Config{BaseURL: srv.URL}, nil)
	for i := 0; i < 3; i++ {
		daily, err := c.DailyAppointments(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-03-20"}, daily.Open)
	}
	assert.Equal(t, 1, calls, "daily endpoint should be served from cache after the first fetch")
}

func TestCreateNotificationSendsSnakeCaseWithBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "2024-03-01", body["start_date"])
		assert.Equal(t, "2024-03-31", body["end_date"])
		assert.Contains(t, body, "start_time")

		io.WriteString(w, `{"notification_id":"n1","days":["Monday"],"start_date":"2024-03-01","end_date":"2024-03-31","start_time":"08:00","end_time":"17:00","created_at":"2024-02-01","updated_at":"2024-02-01"}`)
	}))
	defer srv.Close()

	c := NewConcealClient(Config{BaseURL: srv.URL}, nil)
	pref, err := c.CreateNotification(context.Background(), "tok123", &model.CreateNotificationRequest{
		Days:      []string{"Monday"},
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		StartTime: "08:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", pref.NotificationID)
}

func TestNonOKSurfacesStaticMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewConcealClient(Config{BaseURL: srv.URL}, nil)
	_, err := c.RecentAppointments(context.Background(), "")
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUpstream, appErr.Code)
	assert.Equal(t, "failed to fetch appointments", appErr.Message)
}

func TestUnauthorizedMapsToUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewConcealClient(Config{BaseURL: srv.URL}, nil)
	_, err := c.ListNotifications(context.Background(), "stale")
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnauthenticated, errors.Code(err))
}

func TestSearchGroupsEncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/groups/search", r.URL.Path)
		assert.Equal(t, "office pool", r.URL.Query().Get("q"))
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		io.WriteString(w, `{"groups":[{"id":"g1","name":"Office Pool","year":2024,"size":12}]}`)
	}))
	defer srv.Close()

	c := NewBracketClient(Config{BaseURL: srv.URL}, nil)
	groups, err := c.SearchGroups(context.Background(), "office pool", 2024)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Office Pool", groups[0].Name)
}
