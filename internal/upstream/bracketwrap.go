package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/concealdc/webgate/internal/model"
	"github.com/concealdc/webgate/pkg/metrics"
)

// BracketClient talks to the BracketWrap tournament API.
type BracketClient struct {
	*rest
}

func NewBracketClient(cfg Config, m *metrics.Metrics) *BracketClient {
	return &BracketClient{rest: newRest(cfg, "bracketwrap-api", m)}
}

// SearchGroups finds bracket pools matching a query for a tournament year.
func (c *BracketClient) SearchGroups(ctx context.Context, query string, year int) ([]model.GroupSummary, error) {
	path := fmt.Sprintf("/groups/search?q=%s&year=%d", url.QueryEscape(query), year)
	var resp struct {
		Groups []model.GroupSummary `json:"groups"`
	}
	if err := c.call(ctx, "search_groups", "GET", path, nil, "", "failed to search groups", &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

// Group fetches one pool with its full bracket list.
func (c *BracketClient) Group(ctx context.Context, id string, year int) (*model.Group, error) {
	path := fmt.Sprintf("/groups/%s?year=%d", url.PathEscape(id), year)
	var group model.Group
	if err := c.call(ctx, "group", "GET", path, nil, "", "failed to fetch group", &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// BracketGroups lists the pools a bracket belongs to.
func (c *BracketClient) BracketGroups(ctx context.Context, bracketID string) ([]model.GroupSummary, error) {
	var resp struct {
		Groups []model.GroupSummary `json:"groups"`
	}
	if err := c.call(ctx, "bracket_groups", "GET", "/brackets/"+url.PathEscape(bracketID)+"/groups", nil, "", "failed to fetch bracket groups", &resp); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

func (c *BracketClient) Teams(ctx context.Context, year int) ([]model.Team, error) {
	var resp struct {
		Teams []model.Team `json:"teams"`
	}
	if err := c.call(ctx, "teams", "GET", fmt.Sprintf("/teams?year=%d", year), nil, "", "failed to fetch teams", &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// WrappedSlides returns the precomputed story slides for a bracket within
// a group. Slides are served fully formed; nothing is derived here.
func (c *BracketClient) WrappedSlides(ctx context.Context, bracketID, groupID string) ([]model.WrappedSlide, error) {
	path := "/brackets/" + url.PathEscape(bracketID) + "/wrapped/"
	if groupID != "" {
		path += "?groupId=" + url.QueryEscape(groupID)
	}
	var resp struct {
		Slides []model.WrappedSlide `json:"slides"`
	}
	if err := c.call(ctx, "wrapped_slides", "GET", path, nil, "", "failed to fetch wrapped slides", &resp); err != nil {
		return nil, err
	}
	return resp.Slides, nil
}
