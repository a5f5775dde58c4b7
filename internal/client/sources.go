package client

import (
	"context"

	"github.com/oshokin/mission-console/internal/datasource"
	"github.com/oshokin/mission-console/internal/domain/alarm"
	"github.com/oshokin/mission-console/internal/domain/command"
)

// AlarmSource adapts the client to the alarms data source.
func (c *Client) AlarmSource() datasource.Source[alarm.Alarm] {
	return alarmSource{c}
}

// CommandSource adapts the client to the command history data source.
// Snapshots hold the last limit archived commands.
func (c *Client) CommandSource(limit int) datasource.Source[command.Entry] {
	return commandSource{client: c, limit: limit}
}

// alarmSource fetches active alarms and follows alarm notifications.
type alarmSource struct {
	client *Client
}

func (s alarmSource) Fetch(ctx context.Context, processor string) ([]alarm.Alarm, error) {
	return s.client.GetActiveAlarms(ctx, processor)
}

func (s alarmSource) Subscribe(ctx context.Context, processor string) (datasource.Stream[alarm.Alarm], error) {
	sub, err := s.client.SubscribeAlarms(ctx, processor)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// commandSource fetches archived commands and follows live updates.
type commandSource struct {
	client *Client
	limit  int
}

func (s commandSource) Fetch(ctx context.Context, _ string) ([]command.Entry, error) {
	return s.client.GetCommandHistory(ctx, s.limit)
}

func (s commandSource) Subscribe(ctx context.Context, processor string) (datasource.Stream[command.Entry], error) {
	sub, err := s.client.SubscribeCommands(ctx, processor)
	if err != nil {
		return nil, err
	}

	return sub, nil
}
