package threatconnect

import (
	"context"
	"strconv"
)

// ListGroups returns one page of groups matching q.
func (c *Client) ListGroups(ctx context.Context, q Query) (*ListResponse[Group], error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}
	resp, err := Get[ListResponse[Group]](ctx, c, EndpointGroups, params)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetGroup returns a single group by id.
func (c *Client) GetGroup(ctx context.Context, id int64, fields ...string) (*Group, error) {
	if id <= 0 {
		return nil, &ValidationError{Field: "id", Message: "group id must be positive"}
	}
	resp, err := Get[ItemResponse[Group]](ctx, c, EndpointGroup+strconv.FormatInt(id, 10), appendFields(nil, fields))
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
