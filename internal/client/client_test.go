package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mission-console/internal/client/clienttest"
	"github.com/oshokin/mission-console/internal/domain/alarm"
	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/domain/mdb"
	"github.com/oshokin/mission-console/internal/domain/system"
	"github.com/oshokin/mission-console/internal/domain/telemetry"
)

const testInstance = "simulator"

func newTestClient(t *testing.T, opts ...Option) (*Client, *clienttest.Server) {
	t.Helper()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)

	c, err := New(srv.URL(), testInstance, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, srv
}

func testAlarm(name string, kind alarm.EventType) alarm.Alarm {
	return alarm.Alarm{
		Type: kind,
		TriggerValue: &telemetry.ParameterValue{
			ID: telemetry.NamedObjectID{Name: name},
		},
	}
}

// TestNew_Validates verifies that New rejects missing or malformed arguments.
func TestNew_Validates(t *testing.T) {
	t.Parallel()

	_, err := New("", testInstance)
	require.ErrorIs(t, err, errServerURLRequired)

	_, err = New("http://localhost:8090", "")
	require.ErrorIs(t, err, errInstanceRequired)

	_, err = New("not a url", testInstance)
	require.Error(t, err)

	c, err := New("https://mcs.example.org/", testInstance)
	require.NoError(t, err)
	require.Equal(t, "wss://mcs.example.org/api/websocket", c.websocketURL())
	require.Equal(t, testInstance, c.Instance())
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}

// TestEscapePath ensures every segment of a qualified name is escaped on its own.
func TestEscapePath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sat/power/bus%20voltage", escapePath("/sat/power/bus voltage"))
	require.Equal(t, "stacks/a%3Fb.ycs", escapePath("stacks/a?b.ycs"))
}

// TestGetActiveAlarms verifies decoding of the active alarms route.
func TestGetActiveAlarms(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)
	srv.SetAlarms(testAlarm("/sat/temp", alarm.EventActive), testAlarm("/sat/volt", alarm.EventTriggered))

	alarms, err := c.GetActiveAlarms(context.Background(), "realtime")
	require.NoError(t, err)
	require.Len(t, alarms, 2)

	name, ok := alarms[0].Name()
	require.True(t, ok)
	require.Equal(t, "/sat/temp", name)
	require.Equal(t, []string{"GET /api/processors/simulator/realtime/alarms"}, srv.Requests())
}

// TestGetCommandHistory_TagsIssued ensures archived entries are tagged as issued and limited.
func TestGetCommandHistory_TagsIssued(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)
	srv.SetCommands(
		command.Entry{CommandID: command.ID{GenerationTime: 3, Origin: "ops", SequenceNumber: 3, CommandName: "/a"}},
		command.Entry{CommandID: command.ID{GenerationTime: 2, Origin: "ops", SequenceNumber: 2, CommandName: "/b"}},
		command.Entry{CommandID: command.ID{GenerationTime: 1, Origin: "ops", SequenceNumber: 1, CommandName: "/c"}},
	)

	entries, err := c.GetCommandHistory(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		require.Equal(t, command.EventIssued, e.Event)
	}

	require.Equal(t, "/a", entries[0].CommandID.CommandName)
}

// TestGetParameter_NotFound checks that 404 answers match ErrNotFound and carry the server message.
func TestGetParameter_NotFound(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)
	srv.AddParameter(&mdb.Parameter{Name: "temp", QualifiedName: "/sat/temp"})

	p, err := c.GetParameter(context.Background(), "/sat/temp")
	require.NoError(t, err)
	require.Equal(t, "temp", p.Name)

	_, err = c.GetParameter(context.Background(), "/sat/missing")
	require.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "NotFoundException", apiErr.Type)
	require.Contains(t, apiErr.Message, "/sat/missing")
}

// TestEditUser verifies that only the patched fields are sent.
func TestEditUser(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)
	srv.AddUser(system.UserInfo{Name: "operator", Active: true})

	password := "s3cret"
	require.NoError(t, c.EditUser(context.Background(), "operator", system.UserPatch{Password: &password}))

	patches := srv.Patches("operator")
	require.Len(t, patches, 1)
	require.NotNil(t, patches[0].Password)
	require.Equal(t, password, *patches[0].Password)
	require.Nil(t, patches[0].DisplayName)

	user, err := c.GetUser(context.Background(), "operator")
	require.NoError(t, err)
	require.True(t, user.Active)

	err = c.EditUser(context.Background(), "nobody", system.UserPatch{Password: &password})
	require.ErrorIs(t, err, ErrNotFound)
}

// TestListThreads verifies decoding of string encoded thread ids.
func TestListThreads(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)
	srv.SetThreads(system.ThreadInfo{ID: 42, Name: "main", State: "RUNNABLE"})

	threads, err := c.ListThreads(context.Background())
	require.NoError(t, err)
	require.Len(t, threads, 1)
	require.Equal(t, int64(42), threads[0].ID)
}

// TestStorage covers the object upload, download and delete routes.
func TestStorage(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.UploadObject(ctx, "stacks", "ops/pass.ycs", []byte("stack")))

	data, ok := srv.Object("stacks", "ops/pass.ycs")
	require.True(t, ok)
	require.Equal(t, []byte("stack"), data)

	data, err := c.GetObject(ctx, "stacks", "ops/pass.ycs")
	require.NoError(t, err)
	require.Equal(t, []byte("stack"), data)

	require.NoError(t, c.DeleteObject(ctx, "stacks", "ops/pass.ycs"))

	_, err = c.GetObject(ctx, "stacks", "ops/pass.ycs")
	require.ErrorIs(t, err, ErrNotFound)

	require.Equal(t, srv.URL()+"/api/storage/buckets/displays/objects/img/earth%20map.png",
		c.ObjectURL("displays", "img/earth map.png"))
}

// TestBasicAuth ensures credentials are sent on REST calls and subscriptions.
func TestBasicAuth(t *testing.T) {
	t.Parallel()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)
	srv.RequireBasicAuth("operator", "pw")

	anonymous, err := New(srv.URL(), testInstance)
	require.NoError(t, err)

	_, err = anonymous.ListThreads(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	authed, err := New(srv.URL(), testInstance, WithBasicAuth("operator", "pw"))
	require.NoError(t, err)

	_, err = authed.ListThreads(context.Background())
	require.NoError(t, err)

	sub, err := authed.SubscribeAlarms(context.Background(), "realtime")
	require.NoError(t, err)
	require.NoError(t, sub.Close())
}

// TestSubscribeAlarms verifies delivery of published alarms and a clean close.
func TestSubscribeAlarms(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)

	sub, err := c.SubscribeAlarms(context.Background(), "realtime")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return srv.Subscribers("alarms") == 1 }, time.Second, 5*time.Millisecond)

	require.Equal(t, 1, srv.Publish("alarms", testAlarm("/sat/temp", alarm.EventTriggered)))
	require.Equal(t, 0, srv.Publish("commands", testAlarm("/sat/other", alarm.EventTriggered)))

	select {
	case a := <-sub.Events():
		name, _ := a.Name()
		require.Equal(t, "/sat/temp", name)
		require.Equal(t, alarm.EventTriggered, a.Type)
	case <-time.After(time.Second):
		t.Fatal("alarm not delivered")
	}

	_ = sub.Close()
	require.NoError(t, sub.Close(), "second close must be a no-op")

	for range sub.Events() {
	}

	require.NoError(t, sub.Err())
	require.Eventually(t, func() bool { return srv.Subscribers("alarms") == 0 }, time.Second, 5*time.Millisecond)
}

// TestSubscribeCommands_TagsUpdates ensures streamed entries are tagged as updates.
func TestSubscribeCommands_TagsUpdates(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)

	sub, err := c.SubscribeCommands(context.Background(), "realtime")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sub.Close()
	})

	require.Eventually(t, func() bool { return srv.Subscribers("commands") == 1 }, time.Second, 5*time.Millisecond)

	srv.Publish("commands", command.Entry{
		CommandID: command.ID{GenerationTime: 1, Origin: "ops", SequenceNumber: 7, CommandName: "/sat/reboot"},
		Attr:      []command.Attribute{{Name: command.AttrCommandComplete, Value: telemetry.StringOf(command.CompletionOK)}},
	})

	select {
	case e := <-sub.Events():
		require.Equal(t, command.EventUpdated, e.Event)
		require.True(t, e.IsCompleted())
	case <-time.After(time.Second):
		t.Fatal("command update not delivered")
	}
}

// TestSubscribe_Rejected verifies that a refused call surfaces ErrSubscriptionRejected.
func TestSubscribe_Rejected(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)
	srv.Reject("alarms")

	sub, err := c.SubscribeAlarms(context.Background(), "realtime")
	require.ErrorIs(t, err, ErrSubscriptionRejected)
	require.Nil(t, sub)
}

// TestSubscription_ServerDrop checks that a broken connection ends the stream with an error.
func TestSubscription_ServerDrop(t *testing.T) {
	t.Parallel()

	c, srv := newTestClient(t)

	sub, err := c.SubscribeAlarms(context.Background(), "realtime")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sub.Close()
	})

	require.Eventually(t, func() bool { return srv.Subscribers("alarms") == 1 }, time.Second, 5*time.Millisecond)
	srv.DropSubscribers()

	select {
	case _, ok := <-sub.Events():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stream did not end")
	}

	require.Error(t, sub.Err())
}

// TestSubscription_ContextCancel ensures cancelling the subscribe context ends the stream cleanly.
func TestSubscription_ContextCancel(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := c.SubscribeAlarms(ctx, "realtime")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-sub.Events():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stream did not end")
	}

	require.NoError(t, sub.Err())
}

// TestAPIError_Is verifies that only 404 answers match ErrNotFound.
func TestAPIError_Is(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, &APIError{StatusCode: http.StatusNotFound}, ErrNotFound)
	require.False(t, errors.Is(&APIError{StatusCode: http.StatusConflict}, ErrNotFound))
	require.Contains(t, (&APIError{StatusCode: 409, Type: "Conflict", Message: "exists"}).Error(), "409 Conflict")
}
