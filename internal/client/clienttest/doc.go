// Package clienttest provides an in-memory fake of the mission control
// server for tests.
//
// The fake serves the REST routes used by the client package and accepts
// WebSocket subscriptions, so tests can publish alarm or command updates and
// observe how consumers fold them.
package clienttest
