package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/oshokin/mission-console/internal/domain/mdb"
)

// GetParameter returns the definition of a parameter by qualified name.
func (c *Client) GetParameter(ctx context.Context, qualifiedName string) (*mdb.Parameter, error) {
	req, cancel := c.request(ctx)
	defer cancel()

	var parameter mdb.Parameter

	resp, err := req.
		SetResult(&parameter).
		Get(fmt.Sprintf("/mdb/%s/parameters/%s", url.PathEscape(c.instance), escapePath(qualifiedName)))
	if err := checkResponse("get parameter "+qualifiedName, resp, err); err != nil {
		return nil, err
	}

	return &parameter, nil
}
