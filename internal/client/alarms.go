package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/oshokin/mission-console/internal/domain/alarm"
)

// alarmsTopic is the WebSocket topic of alarm notifications.
const alarmsTopic = "alarms"

// listAlarmsResponse is the body of the active alarms route.
type listAlarmsResponse struct {
	Alarms []alarm.Alarm `json:"alarms"`
}

// processorOptions scopes a subscription to one processor.
type processorOptions struct {
	Instance  string `json:"instance"`
	Processor string `json:"processor"`
}

// GetActiveAlarms returns the alarms currently active on the processor.
func (c *Client) GetActiveAlarms(ctx context.Context, processor string) ([]alarm.Alarm, error) {
	req, cancel := c.request(ctx)
	defer cancel()

	var body listAlarmsResponse

	resp, err := req.
		SetResult(&body).
		Get(fmt.Sprintf("/processors/%s/%s/alarms", url.PathEscape(c.instance), url.PathEscape(processor)))
	if err := checkResponse("get active alarms", resp, err); err != nil {
		return nil, err
	}

	return body.Alarms, nil
}

// SubscribeAlarms streams alarm notifications of the processor.
func (c *Client) SubscribeAlarms(ctx context.Context, processor string) (*Subscription[alarm.Alarm], error) {
	options := processorOptions{
		Instance:  c.instance,
		Processor: processor,
	}

	return subscribe(ctx, c, alarmsTopic, options, func(data json.RawMessage) (alarm.Alarm, error) {
		var a alarm.Alarm
		err := json.Unmarshal(data, &a)

		return a, err
	})
}
