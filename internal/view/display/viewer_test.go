package display

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeStorage builds predictable object URLs.
type fakeStorage struct{}

func (fakeStorage) ObjectURL(bucket, name string) string {
	return "http://mcs/api/storage/buckets/" + bucket + "/objects/" + name
}

// TestImageViewer checks URL resolution in the display bucket and the read-only contract.
func TestImageViewer(t *testing.T) {
	t.Parallel()

	v := NewImageViewer(fakeStorage{}, "displays")
	require.Empty(t, v.URL())
	require.NoError(t, v.Init(context.Background(), "maps/earth.PNG"))
	require.Equal(t, "http://mcs/api/storage/buckets/displays/objects/maps/earth.PNG", v.URL())
	require.False(t, v.HasPendingChanges())
}

// TestOpen ensures only images get a viewer.
func TestOpen(t *testing.T) {
	t.Parallel()

	v, err := Open(context.Background(), fakeStorage{}, "displays", "logo.svg")
	require.NoError(t, err)
	require.IsType(t, &ImageViewer{}, v)

	_, err = Open(context.Background(), fakeStorage{}, "displays", "overview.opi")
	require.ErrorIs(t, err, ErrNoViewer)
}
