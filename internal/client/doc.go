// Package client is a typed wrapper around the REST and WebSocket API of the
// mission control server.
//
// REST calls go through resty with per-call timeouts, optional retries and
// basic authentication. Server errors surface as *APIError and 404 answers
// match ErrNotFound.
//
// Subscriptions open one WebSocket connection each and deliver decoded events
// on a channel until they are closed. AlarmSource and CommandSource adapt the
// client to the datasource package.
package client
