package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/websocket"

	"github.com/oshokin/mission-console/internal/version"
)

// apiPrefix is the path prefix of every REST route.
const apiPrefix = "/api"

// Client wraps the REST and WebSocket API of one server instance.
type Client struct {
	// http is the REST transport.
	http *resty.Client
	// dialer opens WebSocket subscriptions.
	dialer *websocket.Dialer
	// baseURL is the server root without trailing slash.
	baseURL string
	// instance scopes instance-bound routes.
	instance string
	// username and password enable basic authentication when set.
	username, password string

	// callTimeout is the default timeout for individual REST calls.
	callTimeout time.Duration
	// retries is the number of retries of idempotent REST calls.
	retries int
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for REST calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithBasicAuth authenticates every call with the given credentials.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithRetries retries failed idempotent REST calls the given number of times.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// DefaultCallTimeout is used when no WithCallTimeout option is given.
const DefaultCallTimeout = 10 * time.Second

var (
	// errServerURLRequired is returned when the base URL is missing.
	errServerURLRequired = errors.New("server url must be provided")
	// errInstanceRequired is returned when the instance is missing.
	errInstanceRequired = errors.New("instance must be provided")
)

// New creates a client for the server at baseURL, scoped to instance.
func New(baseURL, instance string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errServerURLRequired
	}

	if instance == "" {
		return nil, errInstanceRequired
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		instance:    instance,
		callTimeout: DefaultCallTimeout,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: DefaultCallTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetBaseURL(c.baseURL+apiPrefix).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent()).
		SetRetryCount(c.retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	if c.username != "" {
		c.http.SetBasicAuth(c.username, c.password)
	}

	return c, nil
}

// Instance returns the instance the client is scoped to.
func (c *Client) Instance() string {
	return c.instance
}

// Close releases idle connections.
func (c *Client) Close() error {
	if c == nil || c.http == nil {
		return nil
	}

	c.http.GetClient().CloseIdleConnections()

	return nil
}

// request returns a REST request bound to a call context. The returned
// cancel function must be called once the response was consumed.
func (c *Client) request(ctx context.Context) (*resty.Request, context.CancelFunc) {
	callCtx, cancel := c.callContext(ctx)

	return c.http.R().SetContext(callCtx), cancel
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}

// authHeader returns the headers used for the WebSocket handshake.
func (c *Client) authHeader() http.Header {
	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	if c.username != "" {
		token := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
		header.Set("Authorization", "Basic "+token)
	}

	return header
}

// websocketURL derives the WebSocket endpoint from the base URL.
func (c *Client) websocketURL() string {
	u := c.baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}

	return u + apiPrefix + "/websocket"
}

// escapePath escapes each segment of a slash separated name.
func escapePath(name string) string {
	segments := strings.Split(strings.TrimPrefix(name, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return strings.Join(segments, "/")
}
