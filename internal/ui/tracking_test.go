package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/hipster/internal/sheet"
	"github.com/depeter/hipster/internal/tracking"
)

type walkSource struct {
	samples []tracking.Sample
}

func (w *walkSource) Run(ctx context.Context, out chan<- tracking.Sample) error {
	for _, s := range w.samples {
		select {
		case out <- s:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func newTrackingFixture(t *testing.T) *TrackingScreen {
	t.Helper()
	store, err := tracking.OpenStore(filepath.Join(t.TempDir(), "routes.cbor"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	src := &walkSource{samples: []tracking.Sample{
		{Lat: 1.300, Lng: 103.800},
		{Lat: 1.301, Lng: 103.801},
		{Lat: 1.302, Lng: 103.803},
	}}
	tr := tracking.NewTracker(tracking.NewRegistry(), store, src)
	return NewTrackingScreen(context.Background(), tr, sheet.DefaultConfig(ScreenHeight), 10)
}

func (ts *TrackingScreen) locked(fn func()) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	fn()
}

func TestTrackingLivePathFollowsTracker(t *testing.T) {
	ts := newTrackingFixture(t)

	ts.locked(ts.toggle)
	require.True(t, ts.tracker.Running())

	require.Eventually(t, func() bool {
		n := 0
		ts.locked(func() {
			ts.tick()
			n = len(ts.viewed)
		})
		return n == 3
	}, time.Second, 5*time.Millisecond)

	ts.locked(func() {
		assert.InDelta(t, 1.301, ts.mapView.Region.Center.Lat, 1e-9)
		x0, _ := ts.mapView.Project(ts.viewed[0])
		x2, _ := ts.mapView.Project(ts.viewed[2])
		assert.Less(t, x0, x2)

		ts.toggle()
		assert.False(t, ts.tracker.Running())
		assert.Len(t, ts.routeIDs, 1)
	})
}

func TestTrackingHistoryListsAndLoadsRoutes(t *testing.T) {
	ts := newTrackingFixture(t)

	var ids []string
	for range 2 {
		id, err := ts.tracker.Start(context.Background())
		require.NoError(t, err)
		require.Eventually(t, func() bool { return len(ts.tracker.Path()) == 3 }, time.Second, 5*time.Millisecond)
		ts.tracker.Stop()
		ids = append(ids, id)
	}

	ts.locked(ts.openHistory)
	require.Eventually(t, func() bool {
		visible := false
		ts.locked(func() {
			ts.tick()
			visible = ts.history.Visible()
		})
		return visible
	}, time.Second, 5*time.Millisecond)

	ts.locked(func() {
		body := ts.history.Body()
		require.Len(t, body.Items, 2)
		assert.Equal(t, "Route 2", body.Items[0].Title, "newest first")
		assert.Equal(t, ids[1], body.Items[0].Subtitle)
		assert.Equal(t, ids, ts.routeIDs)

		body.OnItem(1)
		assert.Equal(t, sheet.Closing, ts.history.Sheet.State())
	})

	require.Eventually(t, func() bool {
		id := ""
		ts.locked(func() { id = ts.viewing })
		return id == ids[0]
	}, time.Second, 5*time.Millisecond)

	ts.locked(func() {
		assert.Len(t, ts.viewed, 3)
		assert.False(t, ts.loading)
	})
}

func TestTrackingEmptyHistory(t *testing.T) {
	ts := newTrackingFixture(t)

	ts.locked(ts.openHistory)
	require.Eventually(t, func() bool {
		visible := false
		ts.locked(func() {
			ts.tick()
			visible = ts.history.Visible()
		})
		return visible
	}, time.Second, 5*time.Millisecond)

	ts.locked(func() {
		assert.Empty(t, ts.history.Body().Items)
		assert.Equal(t, "No routes recorded yet", ts.history.Body().Empty)
	})
}
