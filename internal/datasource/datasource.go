package datasource

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/mission-console/internal/logger"
	"github.com/oshokin/mission-console/internal/observable"
	"github.com/oshokin/mission-console/internal/reducer"
)

// Stream is a live, cancellable sequence of update events.
type Stream[E any] interface {
	// Events yields update events until the stream ends.
	Events() <-chan E
	// Err reports why the stream ended; nil after a clean Close.
	Err() error
	// Close cancels the stream.
	Close() error
}

// Source supplies the current state and the live updates of one entity type.
type Source[E any] interface {
	// Fetch returns the full current state for the processor.
	Fetch(ctx context.Context, processor string) ([]E, error)
	// Subscribe opens a standing update stream for the processor.
	Subscribe(ctx context.Context, processor string) (Stream[E], error)
}

// ErrNotLoaded is returned by Wait when Load was never called.
var ErrNotLoaded = errors.New("data source was never loaded")

// DataSource keeps a de-duplicated, display-ordered collection of live
// entities fed by one snapshot fetch and a standing update stream.
type DataSource[K comparable, E any] struct {
	// name labels log lines and errors.
	name string
	// source provides the snapshot and the stream.
	source Source[E]
	// rules fold events into the collection.
	rules reducer.Rules[K, E]

	// items publishes the ordered collection.
	items *observable.Subject[[]E]
	// loading is true between Load and the end of the snapshot fetch.
	loading *observable.Subject[bool]
	// failure holds the last fetch or stream error.
	failure *observable.Subject[error]

	// mu guards everything below.
	mu sync.Mutex
	// collection is the current state, folded only under mu.
	collection reducer.Collection[K, E]
	// generation identifies the current Load so that goroutines of a
	// replaced load stop folding.
	generation uint64
	// cancel stops the goroutines of the current load.
	cancel context.CancelFunc
	// group runs the fetch and the subscription of the current load.
	group *errgroup.Group
	// disconnected is set by Disconnect.
	disconnected bool
}

// New creates a data source for one entity type.
func New[K comparable, E any](name string, source Source[E], rules reducer.Rules[K, E]) *DataSource[K, E] {
	return &DataSource[K, E]{
		name:       name,
		source:     source,
		rules:      rules,
		items:      observable.NewSubject([]E{}),
		loading:    observable.NewSubject(false),
		failure:    observable.NewSubject[error](nil),
		collection: reducer.NewCollection[K, E](),
	}
}

// Connect returns a live sequence of ordered snapshots. The first value is
// the current snapshot; the channel closes on Disconnect.
func (d *DataSource[K, E]) Connect() <-chan []E {
	ch, _ := d.items.Subscribe()

	return ch
}

// Disconnect terminates every sequence returned by Connect and cancels the
// standing subscription. It does not wait for in-flight calls; use Wait.
func (d *DataSource[K, E]) Disconnect() {
	d.mu.Lock()
	d.disconnected = true

	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()

	d.items.Complete()
	d.loading.Complete()
	d.failure.Complete()
}

// Load starts fetching the current state for processor and subscribes to its
// updates. It returns immediately. Calling Load again replaces the previous
// load, which is how a failed load is retried.
func (d *DataSource[K, E]) Load(ctx context.Context, processor string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disconnected {
		return
	}

	if d.cancel != nil {
		d.cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	ctx = logger.WithKV(logger.WithKV(ctx, "datasource", d.name), "processor", processor)

	d.generation++
	d.cancel = cancel
	d.collection = reducer.NewCollection[K, E]()
	d.group = new(errgroup.Group)

	d.failure.Next(nil)
	d.loading.Next(true)

	generation := d.generation

	d.group.Go(func() error {
		return d.fetch(ctx, generation, processor)
	})

	d.group.Go(func() error {
		return d.follow(ctx, generation, processor)
	})
}

// Wait blocks until the goroutines of the current load have finished and
// returns the first fetch or stream error.
func (d *DataSource[K, E]) Wait() error {
	d.mu.Lock()
	group := d.group
	d.mu.Unlock()

	if group == nil {
		return ErrNotLoaded
	}

	return group.Wait()
}

// Snapshot returns the current ordered collection.
func (d *DataSource[K, E]) Snapshot() []E {
	return d.items.Value()
}

// IsEmpty reports whether the collection holds no entity.
func (d *DataSource[K, E]) IsEmpty() bool {
	return len(d.items.Value()) == 0
}

// Loading reports whether the snapshot fetch is still in flight.
func (d *DataSource[K, E]) Loading() bool {
	return d.loading.Value()
}

// WatchLoading streams changes of the loading flag.
func (d *DataSource[K, E]) WatchLoading() <-chan bool {
	ch, _ := d.loading.Subscribe()

	return ch
}

// Err returns the last fetch or stream error, or nil.
func (d *DataSource[K, E]) Err() error {
	return d.failure.Value()
}

// WatchErr streams error state changes; nil means healthy.
func (d *DataSource[K, E]) WatchErr() <-chan error {
	ch, _ := d.failure.Subscribe()

	return ch
}

// fetch loads the snapshot and folds it.
func (d *DataSource[K, E]) fetch(ctx context.Context, generation uint64, processor string) error {
	entities, err := d.source.Fetch(ctx, processor)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return d.fail(ctx, generation, fmt.Errorf("fetch %s: %w", d.name, err))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if generation != d.generation {
		return nil
	}

	for _, entity := range entities {
		d.foldLocked(ctx, entity)
	}

	d.publishLocked()
	d.loading.Next(false)

	logger.DebugKV(ctx, "Snapshot loaded", "entities", len(entities), "live", d.collection.Len())

	return nil
}

// follow folds stream events until the stream ends or ctx is cancelled.
func (d *DataSource[K, E]) follow(ctx context.Context, generation uint64, processor string) error {
	stream, err := d.source.Subscribe(ctx, processor)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return d.fail(ctx, generation, fmt.Errorf("subscribe %s: %w", d.name, err))
	}

	defer func() {
		if err := stream.Close(); err != nil {
			logger.DebugKV(ctx, "Closing stream failed", "error", err)
		}
	}()

	events := stream.Events()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				if err := stream.Err(); err != nil && ctx.Err() == nil {
					return d.fail(ctx, generation, fmt.Errorf("%s stream: %w", d.name, err))
				}

				return nil
			}

			d.mu.Lock()
			if generation == d.generation && d.foldLocked(ctx, event) {
				d.publishLocked()
			}
			d.mu.Unlock()
		}
	}
}

// foldLocked applies one event; unknown events are logged and dropped.
func (d *DataSource[K, E]) foldLocked(ctx context.Context, event E) bool {
	changed, err := d.collection.Apply(d.rules, event)
	if err != nil {
		logger.WarnKV(ctx, "Ignoring update event", "error", err)

		return false
	}

	return changed
}

// publishLocked pushes the ordered collection to subscribers.
func (d *DataSource[K, E]) publishLocked() {
	d.items.Next(d.collection.List(d.rules.Compare))
}

// fail surfaces err for the current load, then clears the loading flag so
// that watchers of the flag already see the error.
func (d *DataSource[K, E]) fail(ctx context.Context, generation uint64, err error) error {
	d.mu.Lock()
	current := generation == d.generation
	d.mu.Unlock()

	if !current {
		return nil
	}

	logger.ErrorKV(ctx, "Data source failed", "error", err)

	d.failure.Next(err)
	d.loading.Next(false)

	return err
}
