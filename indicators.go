package threatconnect

import (
	"context"
	"net/url"
)

// ListIndicators returns one page of indicators matching q. Use
// Query.ResultStart to request later pages.
func (c *Client) ListIndicators(ctx context.Context, q Query) (*ListResponse[Indicator], error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}
	resp, err := Get[ListResponse[Indicator]](ctx, c, EndpointIndicators, params)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetIndicator returns a single indicator by numeric id or by summary (an IP
// address, host name, hash, ...). Extra fields such as "tags" can be
// requested.
func (c *Client) GetIndicator(ctx context.Context, idOrSummary string, fields ...string) (*Indicator, error) {
	if idOrSummary == "" {
		return nil, &ValidationError{Field: "id", Message: "indicator id or summary is required"}
	}
	resp, err := Get[ItemResponse[Indicator]](ctx, c, EndpointIndicator+url.PathEscape(idOrSummary), appendFields(nil, fields))
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
