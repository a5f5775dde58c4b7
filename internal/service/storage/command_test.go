package storage

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/mission-console/internal/client/clienttest"
	"github.com/oshokin/mission-console/internal/config"
	"github.com/oshokin/mission-console/internal/service/common"
)

func newTarget(t *testing.T, srv *clienttest.Server) common.Target {
	t.Helper()

	return common.Target{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
		ServerURL:  srv.URL(),
		Instance:   "simulator",
	}
}

// TestRename moves a stack to its new name in the default stack bucket.
func TestRename(t *testing.T) {
	t.Parallel()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)
	srv.PutObject(config.DefaultStackBucket, "passes/old.YCS", []byte("stack"))

	var out bytes.Buffer

	err := Rename(context.Background(), &RenameOptions{
		Target:  newTarget(t, srv),
		Object:  "passes/old.YCS",
		NewName: "new",
		Out:     &out,
	})
	require.NoError(t, err)
	require.Equal(t, "passes/new.ycs\n", out.String())

	data, ok := srv.Object(config.DefaultStackBucket, "passes/new.ycs")
	require.True(t, ok)
	require.Equal(t, []byte("stack"), data)

	_, ok = srv.Object(config.DefaultStackBucket, "passes/old.YCS")
	require.False(t, ok)
}

// TestRename_CleanupFailure still succeeds and warns when the original stays.
func TestRename_CleanupFailure(t *testing.T) {
	t.Parallel()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)
	srv.PutObject("stacks", "old.ycs", []byte("stack"))
	srv.Fail(http.MethodDelete, "/api/storage/buckets/stacks/objects/old.ycs", http.StatusForbidden)

	var out bytes.Buffer

	err := Rename(context.Background(), &RenameOptions{
		Target:  newTarget(t, srv),
		Bucket:  "stacks",
		Object:  "old.ycs",
		NewName: "new",
		Out:     &out,
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "warning: old.ycs still exists")
	require.Contains(t, out.String(), "new.ycs\n")

	_, ok := srv.Object("stacks", "new.ycs")
	require.True(t, ok)
}

// TestURL prints image URLs from the display bucket and raw URLs otherwise.
func TestURL(t *testing.T) {
	t.Parallel()

	srv := clienttest.NewServer()
	t.Cleanup(srv.Close)

	var out bytes.Buffer

	require.NoError(t, URL(context.Background(), &URLOptions{Target: newTarget(t, srv), Object: "maps/earth.png", Out: &out}))
	require.Equal(t, srv.URL()+"/api/storage/buckets/displays/objects/maps/earth.png\n", out.String())

	out.Reset()
	require.NoError(t, URL(context.Background(), &URLOptions{Target: newTarget(t, srv), Bucket: "stacks", Object: "a.ycs", Out: &out}))
	require.Equal(t, srv.URL()+"/api/storage/buckets/stacks/objects/a.ycs\n", out.String())
}
