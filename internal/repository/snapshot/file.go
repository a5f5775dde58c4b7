package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oshokin/mission-console/internal/config"
)

// Snapshot is one saved collection.
type Snapshot[E any] struct {
	// Timestamp is when the collection was saved.
	Timestamp time.Time `json:"timestamp"`
	// SavedBy identifies who saved it, as user@host.
	SavedBy string `json:"savedBy,omitempty"`
	// Instance is the server instance the collection belongs to.
	Instance string `json:"instance,omitempty"`
	// Processor is the processor the collection belongs to.
	Processor string `json:"processor,omitempty"`
	// Items are the entities in display order.
	Items []E `json:"items"`
}

// Repository defines persistence operations for snapshots.
type Repository[E any] interface {
	Load(ctx context.Context) (*Snapshot[E], error)
	Save(ctx context.Context, snapshot *Snapshot[E]) error
}

// FileRepository persists the latest snapshot to a JSON file on disk.
type FileRepository[E any] struct {
	// path is the filesystem location of the JSON file.
	path string
	// mu protects concurrent access to the file.
	mu sync.Mutex
}

// ErrNotFound is returned when the snapshot file does not exist yet.
var ErrNotFound = errors.New("snapshot not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository[E any](path string) *FileRepository[E] {
	return &FileRepository[E]{
		path: filepath.Clean(path),
	}
}

// Path returns the location of the snapshot file.
func (r *FileRepository[E]) Path() string {
	return r.path
}

// Load reads the snapshot from disk.
func (r *FileRepository[E]) Load(_ context.Context) (*Snapshot[E], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snapshot Snapshot[E]
	if err = json.Unmarshal(contents, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	return &snapshot, nil
}

// Save replaces the file with snapshot. The file is written next to its
// destination and renamed, so readers never see a partial document.
func (r *FileRepository[E]) Save(_ context.Context, snapshot *Snapshot[E]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.Items == nil {
		snapshot.Items = []E{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := r.path + ".tmp"

	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("replace snapshot file: %w", err)
	}

	return nil
}
