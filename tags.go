package threatconnect

import "context"

// ListTags returns one page of tags matching q.
func (c *Client) ListTags(ctx context.Context, q Query) (*ListResponse[Tag], error) {
	params, err := q.params()
	if err != nil {
		return nil, err
	}
	resp, err := Get[ListResponse[Tag]](ctx, c, EndpointTags, params)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListOwners returns the owners visible to the API user.
func (c *Client) ListOwners(ctx context.Context) ([]Owner, error) {
	resp, err := Get[ListResponse[Owner]](ctx, c, EndpointOwners, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}
