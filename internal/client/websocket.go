package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/multierr"

	"github.com/oshokin/mission-console/internal/logger"
)

const (
	// replyType is the frame type of call acknowledgements.
	replyType = "reply"
	// cancelType is the frame type that ends a call.
	cancelType = "cancel"
	// subscribeCallID is the client-side id of the single call made on each connection.
	subscribeCallID = 1
	// writeWait bounds the cancel and close writes.
	writeWait = time.Second
	// eventBuffer is the capacity of the event channel.
	eventBuffer = 64
)

// ErrSubscriptionRejected is returned when the server refuses a subscription.
var ErrSubscriptionRejected = errors.New("subscription rejected")

// clientFrame is a message sent to the server.
type clientFrame struct {
	Type    string `json:"type"`
	ID      int    `json:"id,omitempty"`
	Options any    `json:"options,omitempty"`
}

// serverFrame is a message received from the server.
type serverFrame struct {
	Type string          `json:"type"`
	Call int             `json:"call"`
	Seq  int             `json:"seq"`
	Data json.RawMessage `json:"data"`
}

// replyData is the payload of a reply frame.
type replyData struct {
	ReplyTo   int        `json:"replyTo"`
	Exception *errorBody `json:"exception,omitempty"`
}

// cancelOptions identifies the call to cancel.
type cancelOptions struct {
	Call int `json:"call"`
}

// Subscription is a live stream of decoded events on its own WebSocket
// connection. It ends when Close is called, the context given to the
// subscribe call is cancelled, or the connection breaks.
type Subscription[E any] struct {
	// conn is the underlying WebSocket connection.
	conn *websocket.Conn
	// topic is the subscribed frame type.
	topic string
	// call is the server-side call id from the reply.
	call int
	// decode turns a data payload into an event.
	decode func(json.RawMessage) (E, error)
	// events carries decoded events; closed when the reader exits.
	events chan E
	// done is closed by Close.
	done chan struct{}
	// closeOnce guards Close.
	closeOnce sync.Once
	// closeErr is the result of the first Close.
	closeErr error
	// mu guards err.
	mu sync.Mutex
	// err is why the reader stopped, nil after Close.
	err error
}

// subscribe opens a connection, issues one call for topic and starts reading.
func subscribe[E any](
	ctx context.Context,
	c *Client,
	topic string,
	options any,
	decode func(json.RawMessage) (E, error),
) (*Subscription[E], error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.websocketURL(), c.authHeader())
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, fmt.Errorf("dial websocket: %w", err)
	}

	call, err := handshake(ctx, conn, topic, options)
	if err != nil {
		_ = conn.Close()

		return nil, err
	}

	sub := &Subscription[E]{
		conn:   conn,
		topic:  topic,
		call:   call,
		decode: decode,
		events: make(chan E, eventBuffer),
		done:   make(chan struct{}),
	}

	ctx = logger.WithKV(ctx, "topic", topic)

	go sub.read(ctx)

	go func() {
		select {
		case <-ctx.Done():
			_ = sub.Close()
		case <-sub.done:
		}
	}()

	return sub, nil
}

// handshake sends the call and waits for its reply.
func handshake(ctx context.Context, conn *websocket.Conn, topic string, options any) (int, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
		defer conn.SetReadDeadline(time.Time{}) //nolint:errcheck // Reset is best effort.
	}

	request := clientFrame{
		Type:    topic,
		ID:      subscribeCallID,
		Options: options,
	}

	if err := conn.WriteJSON(request); err != nil {
		return 0, fmt.Errorf("send %s call: %w", topic, err)
	}

	for {
		var frame serverFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return 0, fmt.Errorf("read %s reply: %w", topic, err)
		}

		if frame.Type != replyType {
			continue
		}

		var reply replyData
		if err := json.Unmarshal(frame.Data, &reply); err != nil {
			return 0, fmt.Errorf("decode %s reply: %w", topic, err)
		}

		if reply.ReplyTo != subscribeCallID {
			continue
		}

		if reply.Exception != nil {
			return 0, fmt.Errorf("%w: %s: %s", ErrSubscriptionRejected, topic, reply.Exception.Msg)
		}

		return frame.Call, nil
	}
}

// Events yields decoded events until the subscription ends.
func (s *Subscription[E]) Events() <-chan E {
	return s.events
}

// Err reports why the subscription ended, nil when it was closed on purpose.
func (s *Subscription[E]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Close cancels the call and closes the connection. It is safe to call more than once.
func (s *Subscription[E]) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)

		deadline := time.Now().Add(writeWait)

		var err error

		_ = s.conn.SetWriteDeadline(deadline)

		err = multierr.Append(err, s.conn.WriteJSON(clientFrame{
			Type:    cancelType,
			Options: cancelOptions{Call: s.call},
		}))
		err = multierr.Append(err, s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			deadline,
		))
		err = multierr.Append(err, s.conn.Close())

		s.closeErr = err
	})

	return s.closeErr
}

// read decodes frames of the subscribed call until the connection ends.
func (s *Subscription[E]) read(ctx context.Context) {
	defer close(s.events)

	for {
		var frame serverFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			select {
			case <-s.done:
			default:
				s.setErr(fmt.Errorf("read %s: %w", s.topic, err))
			}

			return
		}

		if frame.Type != s.topic || frame.Call != s.call {
			continue
		}

		event, err := s.decode(frame.Data)
		if err != nil {
			logger.WarnKV(ctx, "Dropping undecodable frame", "seq", frame.Seq, "error", err)

			continue
		}

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}

// setErr records the reader failure.
func (s *Subscription[E]) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
}
