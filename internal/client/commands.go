package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/oshokin/mission-console/internal/domain/command"
)

const (
	// commandsTopic is the WebSocket topic of command history updates.
	commandsTopic = "commands"
	// DefaultHistoryLimit is the number of archived commands fetched for a snapshot.
	DefaultHistoryLimit = 100
)

// listCommandsResponse is the body of the command history route.
type listCommandsResponse struct {
	Commands []command.Entry `json:"commands"`
}

// GetCommandHistory returns the most recent archived commands, newest first.
// Entries are tagged as issued.
func (c *Client) GetCommandHistory(ctx context.Context, limit int) ([]command.Entry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	req, cancel := c.request(ctx)
	defer cancel()

	var body listCommandsResponse

	resp, err := req.
		SetResult(&body).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("order", "desc").
		Get(fmt.Sprintf("/archive/%s/commands", url.PathEscape(c.instance)))
	if err := checkResponse("get command history", resp, err); err != nil {
		return nil, err
	}

	for i := range body.Commands {
		body.Commands[i].Event = command.EventIssued
	}

	return body.Commands, nil
}

// SubscribeCommands streams command history updates of the processor.
// Entries are tagged as updates.
func (c *Client) SubscribeCommands(ctx context.Context, processor string) (*Subscription[command.Entry], error) {
	options := processorOptions{
		Instance:  c.instance,
		Processor: processor,
	}

	return subscribe(ctx, c, commandsTopic, options, func(data json.RawMessage) (command.Entry, error) {
		var e command.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return e, err
		}

		e.Event = command.EventUpdated

		return e, nil
	})
}
