package bracket

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/errors"
	"github.com/concealdc/webgate/pkg/httputil"
)

const minQueryLength = 3

// Service is the upstream slice the bracket endpoints need.
type Service interface {
	SearchGroups(ctx context.Context, query string, year int) ([]model.GroupSummary, error)
	Group(ctx context.Context, id string, year int) (*model.Group, error)
	BracketGroups(ctx context.Context, bracketID string) ([]model.GroupSummary, error)
	Teams(ctx context.Context, year int) ([]model.Team, error)
	WrappedSlides(ctx context.Context, bracketID, groupID string) ([]model.WrappedSlide, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	groups := r.Group("/groups")
	{
		groups.GET("/search", h.SearchGroups)
		groups.GET("/:id", h.GetGroup)
	}

	brackets := r.Group("/brackets")
	{
		brackets.GET("/:id/groups", h.ListBracketGroups)
		brackets.GET("/:id/wrapped", h.GetWrappedSlides)
	}

	r.GET("/teams", h.ListTeams)
}

// SearchGroups matches group names against a query. Queries shorter than
// three characters return an empty result instead of fanning out upstream.
func (h *Handler) SearchGroups(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < minQueryLength {
		httputil.RespondWithSuccess(c, []model.GroupSummary{})
		return
	}

	year, err := h.year(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	groups, err := h.svc.SearchGroups(c.Request.Context(), query, year)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, groups)
}

func (h *Handler) GetGroup(c *gin.Context) {
	year, err := h.year(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	group, err := h.svc.Group(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, group)
}

func (h *Handler) ListBracketGroups(c *gin.Context) {
	groups, err := h.svc.BracketGroups(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, groups)
}

func (h *Handler) ListTeams(c *gin.Context) {
	year, err := h.year(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	teams, err := h.svc.Teams(c.Request.Context(), year)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, teams)
}

func (h *Handler) GetWrappedSlides(c *gin.Context) {
	groupID := c.Query("group_id")
	if groupID == "" {
		httputil.RespondWithError(c, errors.BadRequest("group_id is required", nil))
		return
	}

	slides, err := h.svc.WrappedSlides(c.Request.Context(), c.Param("id"), groupID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, slides)
}

func (h *Handler) year(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return h.now().Year(), nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		return 0, errors.BadRequest("year must be a four digit year", err)
	}
	return year, nil
}
