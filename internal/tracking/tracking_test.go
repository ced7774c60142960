package tracking

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "nested", "routes.cbor"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAppendLoad(t *testing.T) {
	s := openTestStore(t)
	at := time.Date(2026, 3, 1, 8, 30, 0, 123456789, time.UTC)

	require.NoError(t, s.Append(
		Sample{RouteID: "a", Lat: 1.30, Lng: 103.80, Time: at},
		Sample{RouteID: "b", Lat: 1.31, Lng: 103.81, Time: at.Add(time.Second)},
	))
	require.NoError(t, s.Append(Sample{RouteID: "a", Lat: 1.32, Lng: 103.82, Time: at.Add(2 * time.Second)}))
	require.NoError(t, s.Append())

	got, err := s.Load("a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1.32, got[1].Lat)
	assert.True(t, at.Equal(got[0].Time), "times keep sub-second precision")

	ids, err := s.Routes()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	none, err := s.Load("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreSurvivesReopenAndTruncatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.cbor")
	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(Sample{RouteID: "r", Lat: 1, Lng: 2, Time: time.Unix(0, 0).UTC()}))
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Append(Sample{RouteID: "r"}), os.ErrClosed)

	// Simulate a crash halfway through a second record.
	partial, err := marshal(Sample{RouteID: "r", Lat: 3, Lng: 4})
	require.NoError(t, err)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write(partial[:len(partial)/2])
	require.NoError(t, err)
	require.NoError(t, f.Close())

	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load("r")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Lng)

	// New records land after the last complete one, not after the fragment.
	next := Sample{RouteID: "c", Lat: 5, Lng: 6, Time: time.Unix(10, 0).UTC()}
	require.NoError(t, s.Append(next))
	ids, err := s.Routes()
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "c"}, ids)
	got, err = s.Load("c")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 6.0, got[0].Lng)

	good, err := marshal(next)
	require.NoError(t, err)
	first, err := marshal(Sample{RouteID: "r", Lat: 1, Lng: 2, Time: time.Unix(0, 0).UTC()})
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(first)+len(good)), info.Size(), "the fragment is gone from disk")

	require.NoError(t, s.Close())
	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()
	ids, err = s.Routes()
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "c"}, ids)
}

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	var first, second int
	assert.True(t, reg.Register(TaskID, func(context.Context, []Sample) error { first++; return nil }))
	assert.False(t, reg.Register(TaskID, func(context.Context, []Sample) error { second++; return nil }))
	assert.True(t, reg.Registered(TaskID))

	require.NoError(t, reg.Dispatch(context.Background(), TaskID, []Sample{{}}))
	assert.Equal(t, 1, first)
	assert.Zero(t, second)
}

func TestRegistryDispatchErrors(t *testing.T) {
	reg := NewRegistry()
	err := reg.Dispatch(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTask)

	boom := errors.New("boom")
	reg.Register("t", func(context.Context, []Sample) error { return boom })
	assert.ErrorIs(t, reg.Dispatch(context.Background(), "t", nil), boom)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 111195, Distance(0, 0, 1, 0), 1)
	assert.Zero(t, Distance(1.3, 103.8, 1.3, 103.8))
	assert.InDelta(t, Distance(1.3, 103.8, 1.4, 103.9), Distance(1.4, 103.9, 1.3, 103.8), 1e-6)
}

func TestSimulatedSourceFiltersByDistance(t *testing.T) {
	src := NewSimulatedSource(1.3521, 103.8198, time.Millisecond, 5, 42)

	first, ok := src.Next()
	require.True(t, ok, "the first position is always emitted")

	prev := first
	for range 200 {
		s, ok := src.Next()
		if !ok {
			continue
		}
		assert.GreaterOrEqual(t, Distance(prev.Lat, prev.Lng, s.Lat, s.Lng), 5.0)
		prev = s
	}

	still := NewSimulatedSource(0, 0, time.Millisecond, 1e9, 7)
	_, ok = still.Next()
	require.True(t, ok)
	for range 50 {
		_, ok := still.Next()
		assert.False(t, ok)
	}
}

func TestSimulatedSourceRunStopsOnCancel(t *testing.T) {
	src := NewSimulatedSource(1.3, 103.8, time.Millisecond, 0, 1)
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Sample)
	errc := make(chan error, 1)
	go func() { errc <- src.Run(ctx, out) }()

	<-out
	<-out
	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type fixedSource struct {
	samples []Sample
}

func (f *fixedSource) Run(ctx context.Context, out chan<- Sample) error {
	for _, s := range f.samples {
		select {
		case out <- s:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestTrackerRecordsRoute(t *testing.T) {
	store := openTestStore(t)
	reg := NewRegistry()
	src := &fixedSource{samples: []Sample{{Lat: 1}, {Lat: 2}, {Lat: 3, RouteID: "ignored"}}}
	tr := NewTracker(reg, store, src)
	assert.True(t, reg.Registered(TaskID))

	id, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.True(t, tr.Running())

	_, err = tr.Start(context.Background())
	assert.ErrorIs(t, err, ErrRunning)

	require.Eventually(t, func() bool { return len(tr.Path()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, id, tr.Stop())
	assert.False(t, tr.Running())
	assert.Equal(t, "", tr.Stop())

	stored, err := store.Load(id)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, s := range stored {
		assert.Equal(t, id, s.RouteID)
	}
	assert.Len(t, tr.Path(), 3, "path stays readable after stop")
}

func TestTrackerNewRouteEachStart(t *testing.T) {
	store := openTestStore(t)
	tr := NewTracker(NewRegistry(), store, &fixedSource{samples: []Sample{{Lat: 1}}})

	first, err := tr.Start(context.Background())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(tr.Path()) == 1 }, time.Second, 5*time.Millisecond)
	tr.Stop()

	second, err := tr.Start(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	require.Eventually(t, func() bool { return len(tr.Path()) == 1 }, time.Second, 5*time.Millisecond)
	tr.Stop()

	ids, err := store.Routes()
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, ids)
}
