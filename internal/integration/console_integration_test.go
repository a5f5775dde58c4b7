package integration

import (
	"context"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mission-console/internal/client"
	"github.com/oshokin/mission-console/internal/client/clienttest"
	"github.com/oshokin/mission-console/internal/datasource"
	"github.com/oshokin/mission-console/internal/dialog"
	"github.com/oshokin/mission-console/internal/domain/alarm"
	"github.com/oshokin/mission-console/internal/domain/command"
	"github.com/oshokin/mission-console/internal/domain/system"
	"github.com/oshokin/mission-console/internal/domain/telemetry"
	"github.com/oshokin/mission-console/internal/view/cmdhist"
)

const (
	// waitFor bounds every eventual assertion.
	waitFor = 2 * time.Second
	// tick is the polling period of eventual assertions.
	tick = 5 * time.Millisecond
)

func connect(t *testing.T) (*client.Client, *clienttest.Server) {
	t.Helper()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL(), "simulator", client.WithCallTimeout(time.Second))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, srv
}

func newAlarm(name string, kind alarm.EventType) alarm.Alarm {
	return alarm.Alarm{
		Type:         kind,
		TriggerValue: &telemetry.ParameterValue{ID: telemetry.NamedObjectID{Name: name}, MonitoringResult: "WARNING"},
	}
}

func alarmNames(alarms []alarm.Alarm) []string {
	names := make([]string, 0, len(alarms))
	for i := range alarms {
		name, _ := alarms[i].Name()
		names = append(names, name)
	}

	return names
}

// TestAlarms_FetchThenFollow loads the active alarms and folds live updates.
func TestAlarms_FetchThenFollow(t *testing.T) {
	t.Parallel()

	c, srv := connect(t)
	srv.SetAlarms(
		newAlarm("/sat/temp", alarm.EventActive),
		newAlarm("/sat/battery", alarm.EventActive),
	)

	ds := datasource.NewAlarms(c.AlarmSource())
	items := ds.Connect()

	ds.Load(context.Background(), "realtime")

	require.Eventually(t, func() bool {
		return !ds.Loading() && len(ds.Snapshot()) == 2 && srv.Subscribers("alarms") == 1
	}, waitFor, tick)
	require.Equal(t, []string{"/sat/battery", "/sat/temp"}, alarmNames(ds.Snapshot()))

	srv.Publish("alarms", newAlarm("/sat/temp", alarm.EventCleared))
	srv.Publish("alarms", newAlarm("/sat/pressure", alarm.EventTriggered))

	require.Eventually(t, func() bool {
		return slices.Equal([]string{"/sat/battery", "/sat/pressure"}, alarmNames(ds.Snapshot()))
	}, waitFor, tick)
	require.NoError(t, ds.Err())

	ds.Disconnect()

	for range items {
	}

	require.Eventually(t, func() bool { return srv.Subscribers("alarms") == 0 }, waitFor, tick)
}

// TestAlarms_RetryAfterFetchFailure surfaces a failed fetch and recovers on reload.
func TestAlarms_RetryAfterFetchFailure(t *testing.T) {
	t.Parallel()

	const path = "/api/processors/simulator/realtime/alarms"

	c, srv := connect(t)
	srv.SetAlarms(newAlarm("/sat/temp", alarm.EventActive))
	srv.Fail(http.MethodGet, path, http.StatusServiceUnavailable)

	ds := datasource.NewAlarms(c.AlarmSource())
	t.Cleanup(ds.Disconnect)

	ds.Load(context.Background(), "realtime")

	require.Eventually(t, func() bool { return !ds.Loading() && ds.Err() != nil }, waitFor, tick)
	require.True(t, ds.IsEmpty())

	srv.Recover(http.MethodGet, path)
	ds.Load(context.Background(), "realtime")

	require.Eventually(t, func() bool { return !ds.Loading() && len(ds.Snapshot()) == 1 }, waitFor, tick)
	require.NoError(t, ds.Err())
}

// TestCommandHistory_MergesAcknowledgments folds updates onto archived commands.
func TestCommandHistory_MergesAcknowledgments(t *testing.T) {
	t.Parallel()

	c, srv := connect(t)

	id := command.ID{GenerationTime: 1_700_000_000_000, Origin: "ops", SequenceNumber: 4, CommandName: "/sat/reboot"}
	srv.SetCommands(command.Entry{
		CommandID: id,
		Attr:      []command.Attribute{{Name: command.AttrUsername, Value: telemetry.StringOf("operator")}},
	})

	page := cmdhist.NewPage(datasource.NewCommandHistory(c.CommandSource(10)))
	t.Cleanup(page.Close)

	page.Load(context.Background(), "realtime")

	require.Eventually(t, func() bool {
		return !page.Source().Loading() && len(page.Source().Snapshot()) == 1 && srv.Subscribers("commands") == 1
	}, waitFor, tick)

	entry := page.Source().Snapshot()[0]
	require.Equal(t, cmdhist.CompletionPending, cmdhist.Completion(&entry))

	srv.Publish("commands", command.Entry{
		CommandID: id,
		Attr:      []command.Attribute{{Name: command.AttrCommandComplete, Value: telemetry.StringOf(command.CompletionOK)}},
	})

	require.Eventually(t, func() bool {
		snapshot := page.Source().Snapshot()

		return len(snapshot) == 1 && cmdhist.Completion(&snapshot[0]) == cmdhist.CompletionCompleted
	}, waitFor, tick)

	entry = page.Source().Snapshot()[0]
	page.Select(&entry)

	detail := cmdhist.NewDetail(page.Selected())
	require.Equal(t, "operator", detail.Username)
	require.Equal(t, cmdhist.CompletionCompleted, detail.Completion)
}

// TestDialogs_AgainstServer runs the password and rename dialogs over REST.
func TestDialogs_AgainstServer(t *testing.T) {
	t.Parallel()

	c, srv := connect(t)
	srv.AddUser(system.UserInfo{Name: "operator", Active: true})
	srv.PutObject("stacks", "passes/pass-1.YCS", []byte("stack"))

	ctx := context.Background()

	user, err := c.GetUser(ctx, "operator")
	require.NoError(t, err)

	passwd := dialog.NewChangePasswordDialog(c, *user)
	passwd.Password = "s3cret"
	passwd.PasswordConfirmation = "s3cret"
	require.NoError(t, passwd.Submit(ctx))
	require.True(t, passwd.Closed())
	require.Len(t, srv.Patches("operator"), 1)

	rename := dialog.NewRenameDialog(c, "stacks", "passes/pass-1.YCS")
	require.Equal(t, "pass-1", rename.Name)

	rename.Name = "pass-2"

	result, err := rename.Submit(ctx)
	require.NoError(t, err)
	require.True(t, result.Renamed)
	require.Equal(t, "passes/pass-2.ycs", result.Name)

	_, ok := srv.Object("stacks", "passes/pass-2.ycs")
	require.True(t, ok)

	_, ok = srv.Object("stacks", "passes/pass-1.YCS")
	require.False(t, ok)
}
