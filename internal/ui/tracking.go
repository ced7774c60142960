package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/hipster/internal/places"
	"github.com/depeter/hipster/internal/sheet"
	"github.com/depeter/hipster/internal/tracking"
)

// Tracking screen geometry.
const (
	trackButtonY   = 72.0
	trackButtonH   = 48.0
	trackStatusY   = trackButtonY + trackButtonH + 14
	trackMapY      = trackStatusY + 60
	trackMapBottom = ScreenHeight - NavBarHeight - SectionPadding
)

const (
	trackFocusToggle = iota
	trackFocusHistory
)

// TrackingScreen starts and stops route recording, draws the live path and
// lists saved routes in a bottom sheet.
type TrackingScreen struct {
	ctx     context.Context
	tracker *tracking.Tracker

	focus   int
	history *SheetView
	pointer PointerTracker
	mapView MapView

	liveLen  int
	routeIDs []string
	viewing  string // saved route shown on the map, "" for the live one
	viewed   []places.Coord
	loading  bool
	pending  []string // route ids waiting to be presented
	errText  string
	errDisp  ErrorDisplay
	lastLoad func()

	mu sync.Mutex
}

func NewTrackingScreen(ctx context.Context, tracker *tracking.Tracker, cfg sheet.Config, recognize float64) *TrackingScreen {
	ts := &TrackingScreen{
		ctx:     ctx,
		tracker: tracker,
		history: NewSheetView(cfg, recognize),
		pointer: PointerTracker{Threshold: recognize},
		mapView: MapView{Rect: ButtonRect{
			X: SectionPadding,
			Y: trackMapY,
			W: ScreenWidth - SectionPadding*2,
			H: trackMapBottom - trackMapY,
		}},
	}
	ts.errDisp.OnRetry = func() {
		if ts.lastLoad != nil {
			ts.lastLoad()
		}
	}
	return ts
}

func (ts *TrackingScreen) Name() string { return "Tracking" }
func (ts *TrackingScreen) OnEnter()     {}

func (ts *TrackingScreen) OnExit() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.history.Dismiss()
}

func (ts *TrackingScreen) Unmount() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.history.Unmount()
	ts.pending = nil
}

func toggleRect() ButtonRect {
	w := float64(ScreenWidth-SectionPadding*2-12) / 2
	return ButtonRect{X: SectionPadding, Y: trackButtonY, W: w, H: trackButtonH}
}

func historyRect() ButtonRect {
	t := toggleRect()
	return ButtonRect{X: t.X + t.W + 12, Y: trackButtonY, W: t.W, H: trackButtonH}
}

func (ts *TrackingScreen) Update() (*ScreenTransition, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.tick()
	if ts.history.Visible() {
		ts.history.Update()
		return nil, nil
	}

	dir, enter, _ := InputState()
	switch dir {
	case DirLeft:
		ts.focus = trackFocusToggle
	case DirRight:
		ts.focus = trackFocusHistory
	case DirDown:
		return &ScreenTransition{Type: TransitionFocusNavBar}, nil
	}
	if enter {
		ts.press(ts.focus)
	}

	ts.handlePointer(PollPointer())
	return nil, nil
}

// tick follows the live path and presents a finished history lookup.
func (ts *TrackingScreen) tick() {
	if ts.viewing == "" {
		path := ts.tracker.Path()
		if len(path) != ts.liveLen {
			ts.liveLen = len(path)
			ts.viewed = coordsOf(path)
			if len(path) > 0 {
				ts.mapView.Fit(ts.viewed)
			}
		}
	}
	if ts.pending != nil && ts.showHistory(ts.pending) {
		ts.pending = nil
	}
}

func coordsOf(samples []tracking.Sample) []places.Coord {
	out := make([]places.Coord, len(samples))
	for i, s := range samples {
		out[i] = s.Coord()
	}
	return out
}

func (ts *TrackingScreen) press(button int) {
	switch button {
	case trackFocusToggle:
		ts.toggle()
	case trackFocusHistory:
		ts.openHistory()
	}
}

// toggle starts a new route or stops the running one.
func (ts *TrackingScreen) toggle() {
	ts.errText = ""
	if ts.tracker.Running() {
		// Stop waits for the pump, which never takes ts.mu.
		id := ts.tracker.Stop()
		ts.routeIDs = appendUnique(ts.routeIDs, id)
		return
	}
	if _, err := ts.tracker.Start(ts.ctx); err != nil {
		ts.errText = "Could not start tracking: " + err.Error()
		ts.lastLoad = nil
		return
	}
	ts.viewing = ""
	ts.liveLen = -1
}

func appendUnique(ids []string, id string) []string {
	if id == "" {
		return ids
	}
	for _, have := range ids {
		if have == id {
			return ids
		}
	}
	return append(ids, id)
}

func (ts *TrackingScreen) openHistory() {
	if ts.loading {
		return
	}
	ts.loading = true
	ts.errText = ""
	ts.lastLoad = ts.openHistory
	go ts.loadRoutes()
}

func (ts *TrackingScreen) loadRoutes() {
	ids, err := ts.tracker.Store().Routes()

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.loading = false
	if err != nil {
		ts.errText = "Could not read saved routes: " + err.Error()
		return
	}
	ts.routeIDs = ids
	if ids == nil {
		ids = []string{}
	}
	ts.pending = ids
}

func (ts *TrackingScreen) showHistory(ids []string) bool {
	body := SheetBody{
		Title: "Saved routes",
		Empty: "No routes recorded yet",
	}
	// Newest first.
	for i := len(ids) - 1; i >= 0; i-- {
		body.Items = append(body.Items, SheetItem{
			Title:    fmt.Sprintf("Route %d", i+1),
			Subtitle: ids[i],
		})
	}
	items := body.Items
	body.OnItem = func(i int) {
		if i >= 0 && i < len(items) {
			ts.viewRoute(items[i].Subtitle)
		}
	}

	switch ts.history.Sheet.State() {
	case sheet.Closing:
		return false
	case sheet.Closed:
		return ts.history.Present(body, nil)
	default:
		ts.history.SetBody(body)
		return true
	}
}

// viewRoute dismisses the history and loads one saved route onto the map.
func (ts *TrackingScreen) viewRoute(id string) {
	ts.history.Dismiss()
	ts.loading = true
	ts.errText = ""
	ts.lastLoad = func() { ts.viewRoute(id) }
	go ts.loadRoute(id)
}

func (ts *TrackingScreen) loadRoute(id string) {
	samples, err := ts.tracker.Store().Load(id)

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.loading = false
	if err != nil {
		ts.errText = "Could not load route: " + err.Error()
		return
	}
	ts.viewing = id
	ts.viewed = coordsOf(samples)
	ts.mapView.Fit(ts.viewed)
}

func (ts *TrackingScreen) handlePointer(s PointerSample) {
	_, action := ts.pointer.Feed(s, Now())
	if action != PointerTap {
		return
	}
	if ts.errDisp.HandleClick(s.X, s.Y) {
		return
	}
	switch {
	case toggleRect().Contains(s.X, s.Y):
		ts.focus = trackFocusToggle
		ts.toggle()
	case historyRect().Contains(s.X, s.Y):
		ts.focus = trackFocusHistory
		ts.openHistory()
	}
}

func (ts *TrackingScreen) drawButton(dst *ebiten.Image, r ButtonRect, label string, primary, focused bool) {
	bg, fg := ColorSurface, ColorText
	if primary {
		bg, fg = ColorPrimary, ColorBackground
	}
	DrawFilledRoundRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 10, bg)
	if focused {
		vector.StrokeRect(dst, float32(r.X)+1, float32(r.Y)+1, float32(r.W)-2, float32(r.H)-2, 2, ColorFocusBorder, false)
	}
	DrawTextCentered(dst, label, r.X+r.W/2, r.Y+r.H/2, FontSizeBody, fg)
}

func (ts *TrackingScreen) Draw(dst *ebiten.Image) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	dst.Fill(ColorBackground)
	DrawText(dst, "Location Tracking", SectionPadding, 24, FontSizeTitle, ColorText)

	running := ts.tracker.Running()
	label := "Start"
	if running {
		label = "Stop"
	}
	ts.drawButton(dst, toggleRect(), label, !running, ts.focus == trackFocusToggle)
	ts.drawButton(dst, historyRect(), "History", false, ts.focus == trackFocusHistory)

	y := trackStatusY
	switch {
	case ts.errText != "":
		ts.errDisp.Draw(dst, ts.errText, SectionPadding, y, ScreenWidth-SectionPadding*2, FontSizeSmall)
	case ts.loading:
		DrawText(dst, "Loading...", SectionPadding, y, FontSizeSmall, ColorTextSecondary)
	case ts.viewing != "":
		DrawText(dst, fmt.Sprintf("Saved route · %d points", len(ts.viewed)), SectionPadding, y, FontSizeBody, ColorText)
	case running:
		vector.DrawFilledCircle(dst, SectionPadding+5, float32(y)+9, 5, ColorError, true)
		DrawText(dst, fmt.Sprintf("Recording · %d points", len(ts.viewed)), SectionPadding+18, y, FontSizeBody, ColorText)
	default:
		DrawText(dst, "Press Start to record a route", SectionPadding, y, FontSizeSmall, ColorTextSecondary)
	}

	ts.mapView.DrawBackground(dst)
	ts.mapView.DrawPolyline(dst, ts.viewed, 4, ColorAccent)
	if n := len(ts.viewed); n > 0 {
		ts.mapView.DrawMarker(dst, ts.viewed[0], ColorPrimary)
		if n > 1 {
			ts.mapView.DrawMarker(dst, ts.viewed[n-1], ColorAccent)
		}
	}
}

// DrawOverlay draws the history sheet above the navbar.
func (ts *TrackingScreen) DrawOverlay(dst *ebiten.Image) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.history.Draw(dst)
}

func (ts *TrackingScreen) Modal() bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.history.Visible()
}
