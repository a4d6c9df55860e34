package appointment

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/internal/ticker"
	"github.com/concealdc/webgate/pkg/errors"
	"github.com/concealdc/webgate/pkg/httputil"
)

// Source is the upstream slice the appointment endpoints need.
type Source interface {
	RecentAppointments(ctx context.Context, nextToken string) (*model.RecentAppointmentsPage, error)
	Appointments(ctx context.Context, startDate, endDate string) (*model.AppointmentsPage, error)
}

type Handler struct {
	source Source
	now    func() time.Time
}

func NewHandler(source Source) *Handler {
	return &Handler{source: source, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appts := r.Group("/appointments")
	{
		appts.GET("", h.ListAppointments)
		appts.GET("/recent", h.ListRecent)
		appts.GET("/changes", h.ListChanges)
	}
}

func (h *Handler) ListRecent(c *gin.Context) {
	page, err := h.source.RecentAppointments(c.Request.Context(), c.Query("next_token"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, page)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		httputil.RespondWithError(c, errors.BadRequest("start_date and end_date are required", nil))
		return
	}
	if _, err := time.Parse("2006-01-02", startDate); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("start_date must be YYYY-MM-DD", nil))
		return
	}
	if _, err := time.Parse("2006-01-02", endDate); err != nil {
		httputil.RespondWithError(c, errors.BadRequest("end_date must be YYYY-MM-DD", nil))
		return
	}

	page, err := h.source.Appointments(c.Request.Context(), startDate, endDate)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, page)
}

// ListChanges flattens the paginated recent feed into status transitions
// from the last twenty-four hours, newest first.
func (h *Handler) ListChanges(c *gin.Context) {
	const maxPages = 10

	var appointments []model.Appointment
	nextToken := ""
	for page := 0; page < maxPages; page++ {
		resp, err := h.source.RecentAppointments(c.Request.Context(), nextToken)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		appointments = append(appointments, resp.Items...)
		if resp.NextToken == "" {
			break
		}
		nextToken = resp.NextToken
	}

	changes := ticker.RecentChanges(appointments, h.now().Unix())
	httputil.RespondWithSuccess(c, changes)
}
