package parameters

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mission-console/internal/client/clienttest"
	"github.com/oshokin/mission-console/internal/domain/mdb"
	"github.com/oshokin/mission-console/internal/service/common"
	"github.com/oshokin/mission-console/internal/view/parameter"
)

// TestSplitOffset separates member paths from qualified names.
func TestSplitOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, name, offset string
	}{
		{in: "/sat/mode", name: "/sat/mode"},
		{in: "/sat/attitude.points[2].x", name: "/sat/attitude", offset: ".points[2].x"},
		{in: "/sat/samples[4]", name: "/sat/samples", offset: "[4]"},
		{in: "/sat.v2/mode", name: "/sat.v2/mode"},
	}

	for _, tt := range tests {
		name, offset := SplitOffset(tt.in)
		require.Equal(t, tt.name, name, tt.in)
		require.Equal(t, tt.offset, offset, tt.in)
	}
}

// TestRun prints an enumeration with default and context alarm levels.
func TestRun(t *testing.T) {
	t.Parallel()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddParameter(&mdb.Parameter{
		Name:          "status",
		QualifiedName: "/sat/status",
		Type: &mdb.ParameterType{
			EngType: "aggregate",
			Member: []mdb.Member{{
				Name: "mode",
				Type: &mdb.ParameterType{
					EngType:   "enumeration",
					EnumValue: []mdb.EnumValue{{Value: 1, Label: "SAFE"}},
				},
			}},
			DefaultAlarm: &mdb.AlarmInfo{
				EnumerationAlarm: []mdb.EnumerationAlarm{{Label: "SAFE", Level: mdb.LevelCritical}},
			},
			ContextAlarm: []mdb.ContextAlarmInfo{{
				Context: "phase == LAUNCH",
				Alarm:   &mdb.AlarmInfo{EnumerationAlarm: []mdb.EnumerationAlarm{{Label: "SAFE", Level: mdb.LevelWatch}}},
			}},
		},
	})

	target := common.Target{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		ServerURL:  srv.URL(),
		Instance:   "simulator",
	}

	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{Target: target, Name: "/sat/status.mode", Out: &out}))
	require.Contains(t, out.String(), "SAFE")
	require.Contains(t, out.String(), "CRITICAL")

	out.Reset()
	require.NoError(t, Run(context.Background(), &Options{Target: target, Name: "/sat/status.mode", Context: "phase == LAUNCH", Out: &out}))
	require.Contains(t, out.String(), "WATCH")

	err := Run(context.Background(), &Options{Target: target, Name: "/sat/status.mode", Context: "phase == ORBIT", Out: &out})
	require.ErrorIs(t, err, ErrUnknownContext)

	err = Run(context.Background(), &Options{Target: target, Name: "/sat/status.speed", Out: &out})
	require.ErrorIs(t, err, parameter.ErrEntryNotFound)
}
