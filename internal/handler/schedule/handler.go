package schedule

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/internal/schedule"
	"github.com/concealdc/webgate/pkg/httputil"
)

// AvailabilitySource is the upstream slice the schedule endpoints need.
type AvailabilitySource interface {
	DailyAppointments(ctx context.Context) (*model.DailyAppointments, error)
}

type Handler struct {
	source AvailabilitySource
	now    func() time.Time
}

func NewHandler(source AvailabilitySource) *Handler {
	return &Handler{source: source, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sched := r.Group("/schedule")
	{
		sched.GET("/calendar", h.GetCalendar)
		sched.GET("/daily", h.GetDaily)
	}
}

// GetCalendar returns the rolling twelve month availability view derived
// from the per-day status lists.
func (h *Handler) GetCalendar(c *gin.Context) {
	daily, err := h.source.DailyAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	view := schedule.BuildMonths(h.now(), daily)
	httputil.RespondWithSuccess(c, view)
}

func (h *Handler) GetDaily(c *gin.Context) {
	daily, err := h.source.DailyAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, daily)
}
