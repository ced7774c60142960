package tracking

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

var ErrRunning = errors.New("tracking already running")

// Tracker records one route at a time. Positions from the source are handed
// to the registry under TaskID; the tracker's own handler persists them and
// extends the live path.
type Tracker struct {
	registry *Registry
	store    *Store
	source   Source

	mu      sync.Mutex
	routeID string
	path    []Sample
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewTracker registers the location task with reg. If TaskID was already
// registered the existing handler keeps receiving batches.
func NewTracker(reg *Registry, store *Store, src Source) *Tracker {
	t := &Tracker{registry: reg, store: store, source: src}
	if !reg.Register(TaskID, t.record) {
		log.Printf("Tracker: task %q already registered", TaskID)
	}
	return t
}

// Start begins a new route and returns its id.
func (t *Tracker) Start(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return "", ErrRunning
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(ctx)
	t.routeID = id
	t.path = nil
	t.cancel = cancel
	t.done = make(chan struct{})

	go t.pump(ctx, id, t.done)
	return id, nil
}

func (t *Tracker) pump(ctx context.Context, routeID string, done chan struct{}) {
	defer close(done)

	ch := make(chan Sample, 16)
	go func() {
		if err := t.source.Run(ctx, ch); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Tracker: source stopped: %v", err)
		}
		close(ch)
	}()

	for sample := range ch {
		sample.RouteID = routeID
		if err := t.registry.Dispatch(ctx, TaskID, []Sample{sample}); err != nil {
			log.Printf("Tracker: dispatch failed: %v", err)
		}
	}
}

func (t *Tracker) record(_ context.Context, batch []Sample) error {
	if err := t.store.Append(batch...); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range batch {
		if s.RouteID == t.routeID {
			t.path = append(t.path, s)
		}
	}
	return nil
}

// Stop ends the current route and waits for in-flight samples to be stored.
// It returns the finished route id, or "" if nothing was running.
func (t *Tracker) Stop() string {
	t.mu.Lock()
	cancel, done, id := t.cancel, t.done, t.routeID
	t.cancel = nil
	t.mu.Unlock()

	if cancel == nil {
		return ""
	}
	cancel()
	<-done
	return id
}

func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Path returns a copy of the current route's samples.
func (t *Tracker) Path() []Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Sample(nil), t.path...)
}

func (t *Tracker) Store() *Store { return t.store }
