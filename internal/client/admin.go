package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oshokin/mission-console/internal/domain/system"
)

// listThreadsResponse is the body of the threads route.
type listThreadsResponse struct {
	Threads []system.ThreadInfo `json:"threads"`
}

// GetUser returns one account.
func (c *Client) GetUser(ctx context.Context, name string) (*system.UserInfo, error) {
	req, cancel := c.request(ctx)
	defer cancel()

	var user system.UserInfo

	resp, err := req.
		SetResult(&user).
		Get("/users/" + url.PathEscape(name))
	if err := checkResponse("get user", resp, err); err != nil {
		return nil, err
	}

	return &user, nil
}

// EditUser applies a partial update to an account.
func (c *Client) EditUser(ctx context.Context, name string, patch system.UserPatch) error {
	req, cancel := c.request(ctx)
	defer cancel()

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		Patch("/users/" + url.PathEscape(name))

	return checkResponse(fmt.Sprintf("edit user %s", name), resp, err)
}

// ListThreads returns a dump of the server threads.
func (c *Client) ListThreads(ctx context.Context) ([]system.ThreadInfo, error) {
	req, cancel := c.request(ctx)
	defer cancel()

	var body listThreadsResponse

	resp, err := req.
		SetResult(&body).
		Get("/threads")
	if err := checkResponse("list threads", resp, err); err != nil {
		return nil, err
	}

	return body.Threads, nil
}
