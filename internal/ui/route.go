package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/depeter/hipster/internal/places"
	"github.com/depeter/hipster/internal/sheet"
)

// PlaceFinder looks up places by name and routes between them.
type PlaceFinder interface {
	Search(ctx context.Context, query string) ([]places.Place, error)
	Route(ctx context.Context, from, to places.Coord) (*places.Route, error)
}

const searchDebounce = 350 * time.Millisecond

const (
	fieldStart = iota
	fieldEnd
	fieldCount
)

var fieldLabels = [fieldCount]string{"Start location", "Destination"}

// Route screen geometry.
const (
	routeFieldY    = 72.0
	routeFieldH    = 48.0
	routeConfirmY  = routeFieldY + 2*(routeFieldH+12)
	routeConfirmH  = 44.0
	routeStatusY   = routeConfirmY + routeConfirmH + 14
	routeMapY      = routeStatusY + 60
	routeMapBottom = ScreenHeight - NavBarHeight - SectionPadding
)

// searchResult is a finished lookup waiting to be shown.
type searchResult struct {
	field  int
	query  string
	places []places.Place
	err    error
}

// RouteScreen finds a start and a destination by name, then draws the
// driving route between them. Search results open in a bottom sheet that
// follows the query as the user types.
type RouteScreen struct {
	ctx    context.Context
	finder PlaceFinder

	inputs  [fieldCount]TextInput
	chosen  [fieldCount]*places.Place
	active  int // focused field, -1 for none
	sheet   *SheetView
	pointer PointerTracker
	mapView MapView

	searchDue   time.Duration // frame-clock time the pending search fires, 0 for none
	searchSeq   int
	searching   bool
	pending     *searchResult
	shownField  int
	shownPlaces []places.Place

	route      *places.Route
	routing    bool
	routeErr   string
	errDisplay ErrorDisplay

	mu sync.Mutex
}

func NewRouteScreen(ctx context.Context, finder PlaceFinder, cfg sheet.Config, recognize float64) *RouteScreen {
	rs := &RouteScreen{
		ctx:     ctx,
		finder:  finder,
		active:  fieldStart,
		sheet:   NewSheetView(cfg, recognize),
		pointer: PointerTracker{Threshold: recognize},
		mapView: MapView{Rect: ButtonRect{
			X: SectionPadding,
			Y: routeMapY,
			W: ScreenWidth - SectionPadding*2,
			H: routeMapBottom - routeMapY,
		}},
	}
	rs.errDisplay.OnRetry = rs.confirm
	return rs
}

func (rs *RouteScreen) Name() string { return "Route" }
func (rs *RouteScreen) OnEnter()     {}

func (rs *RouteScreen) OnExit() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.sheet.Dismiss()
	rs.searchDue = 0
}

func (rs *RouteScreen) Unmount() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.sheet.Unmount()
}

func fieldRect(i int) ButtonRect {
	return ButtonRect{
		X: SectionPadding,
		Y: routeFieldY + float64(i)*(routeFieldH+12),
		W: ScreenWidth - SectionPadding*2,
		H: routeFieldH,
	}
}

func confirmRect() ButtonRect {
	return ButtonRect{X: SectionPadding, Y: routeConfirmY, W: ScreenWidth - SectionPadding*2, H: routeConfirmH}
}

func (rs *RouteScreen) Update() (*ScreenTransition, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	tr := rs.handleKeys()
	rs.tick()
	if rs.sheet.Visible() {
		rs.sheet.Update()
		return nil, nil
	}
	rs.handlePointer(PollPointer())
	return tr, nil
}

func (rs *RouteScreen) handleKeys() *ScreenTransition {
	if rs.active >= 0 {
		if rs.inputs[rs.active].Update() {
			rs.edited()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			rs.focusField((rs.active + 1) % fieldCount)
		}
	}
	if rs.sheet.Visible() {
		return nil
	}

	dir, enter, back := InputState()
	switch {
	case back && rs.active >= 0:
		rs.active = -1
	case rs.active < 0 && dir == DirDown:
		return &ScreenTransition{Type: TransitionFocusNavBar}
	case rs.active < 0 && dir == DirUp:
		rs.focusField(fieldEnd)
	case rs.active >= 0 && dir == DirDown && rs.active < fieldEnd:
		rs.focusField(rs.active + 1)
	case rs.active >= 0 && dir == DirUp && rs.active > fieldStart:
		rs.focusField(rs.active - 1)
	case enter && rs.active >= 0 && rs.chosen[rs.active] == nil:
		rs.searchDue = Now()
	case enter:
		rs.confirm()
	}
	return nil
}

func (rs *RouteScreen) focusField(i int) {
	rs.active = i
	rs.searchDue = 0
}

// edited reacts to a change in the active field: the old choice and route
// are dropped and a search is scheduled once typing pauses.
func (rs *RouteScreen) edited() {
	rs.chosen[rs.active] = nil
	rs.route = nil
	rs.routeErr = ""

	query := strings.TrimSpace(rs.inputs[rs.active].Text)
	if utf8.RuneCountInString(query) < places.MinQueryLength {
		rs.searchDue = 0
		rs.searchSeq++ // drops any search still in flight
		rs.searching = false
		if rs.sheet.Visible() && rs.shownField == rs.active {
			rs.sheet.Dismiss()
		}
		return
	}
	rs.searchDue = Now() + searchDebounce
}

// tick fires a due search and shows finished results.
func (rs *RouteScreen) tick() {
	if rs.searchDue > 0 && Now() >= rs.searchDue && rs.active >= 0 {
		rs.searchDue = 0
		rs.searchSeq++
		rs.searching = true
		go rs.search(rs.searchSeq, rs.active, strings.TrimSpace(rs.inputs[rs.active].Text))
	}
	if rs.pending != nil && rs.showResults(rs.pending) {
		rs.pending = nil
	}
}

func (rs *RouteScreen) search(seq, field int, query string) {
	found, err := rs.finder.Search(rs.ctx, query)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if seq != rs.searchSeq {
		return
	}
	rs.searching = false
	rs.pending = &searchResult{field: field, query: query, places: found, err: err}
}

// showResults puts a finished search into the sheet, presenting it if
// needed. It returns false while the sheet is still closing from an
// earlier dismissal.
func (rs *RouteScreen) showResults(res *searchResult) bool {
	body := SheetBody{
		Title: fmt.Sprintf("%s: %s", fieldLabels[res.field], res.query),
		Empty: "No places found",
	}
	if res.err != nil {
		body.Empty = "Search failed: " + res.err.Error()
	}
	for _, p := range res.places {
		body.Items = append(body.Items, SheetItem{Title: p.Name, Subtitle: p.Address})
	}
	body.OnItem = rs.choose

	switch rs.sheet.Sheet.State() {
	case sheet.Closing:
		return false
	case sheet.Closed:
		if !rs.sheet.Present(body, nil) {
			return false
		}
	default:
		rs.sheet.SetBody(body)
	}
	rs.shownField = res.field
	rs.shownPlaces = res.places
	return true
}

// choose takes result i of the shown search for its field.
func (rs *RouteScreen) choose(i int) {
	if i < 0 || i >= len(rs.shownPlaces) {
		return
	}
	p := rs.shownPlaces[i]
	f := rs.shownField
	rs.chosen[f] = &p
	rs.inputs[f].SetText(p.Name)
	rs.searchDue = 0
	rs.sheet.Dismiss()

	rs.active = -1
	for j, c := range rs.chosen {
		if c == nil {
			rs.active = j
			break
		}
	}

	var marks []places.Coord
	for _, c := range rs.chosen {
		if c != nil {
			marks = append(marks, c.Coord)
		}
	}
	rs.mapView.Fit(marks)
}

// Ready reports whether both ends are chosen.
func (rs *RouteScreen) Ready() bool {
	return rs.chosen[fieldStart] != nil && rs.chosen[fieldEnd] != nil
}

func (rs *RouteScreen) confirm() {
	if !rs.Ready() || rs.routing {
		return
	}
	rs.routing = true
	rs.routeErr = ""
	go rs.fetchRoute(rs.chosen[fieldStart].Coord, rs.chosen[fieldEnd].Coord)
}

func (rs *RouteScreen) fetchRoute(from, to places.Coord) {
	route, err := rs.finder.Route(rs.ctx, from, to)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.routing = false
	if err != nil {
		rs.routeErr = "Route failed: " + err.Error()
		return
	}
	// A field changed while the request ran.
	if !rs.Ready() || rs.chosen[fieldStart].Coord != from || rs.chosen[fieldEnd].Coord != to {
		return
	}
	rs.route = route
	rs.mapView.Fit(route.Coords)
}

func (rs *RouteScreen) handlePointer(s PointerSample) {
	_, action := rs.pointer.Feed(s, Now())
	if action != PointerTap {
		return
	}
	if rs.errDisplay.HandleClick(s.X, s.Y) {
		return
	}
	for i := range fieldCount {
		if fieldRect(i).Contains(s.X, s.Y) {
			rs.focusField(i)
			return
		}
	}
	if confirmRect().Contains(s.X, s.Y) {
		rs.confirm()
		return
	}
	rs.active = -1
}

func (rs *RouteScreen) Draw(dst *ebiten.Image) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	dst.Fill(ColorBackground)
	DrawText(dst, "Find Route", SectionPadding, 24, FontSizeTitle, ColorText)

	for i := range fieldCount {
		r := fieldRect(i)
		rs.inputs[i].DrawField(dst, r, fieldLabels[i], i == rs.active && !rs.sheet.Visible())
		if rs.chosen[i] != nil {
			drawPinIcon(dst, float32(r.X+r.W-22), float32(r.Y+r.H/2), 8, ColorAccent)
		} else {
			drawSearchIcon(dst, float32(r.X+r.W-22), float32(r.Y+r.H/2), 9, ColorTextMuted)
		}
	}

	cr := confirmRect()
	bg, fg := ColorSurfaceHover, ColorTextMuted
	if rs.Ready() && !rs.routing {
		bg, fg = ColorPrimary, ColorBackground
	}
	DrawFilledRoundRect(dst, float32(cr.X), float32(cr.Y), float32(cr.W), float32(cr.H), 10, bg)
	DrawTextCentered(dst, "Confirm", cr.X+cr.W/2, cr.Y+cr.H/2, FontSizeBody, fg)

	y := routeStatusY
	switch {
	case rs.routeErr != "":
		rs.errDisplay.Draw(dst, rs.routeErr, SectionPadding, y, ScreenWidth-SectionPadding*2, FontSizeSmall)
	case rs.routing:
		DrawText(dst, "Fetching route...", SectionPadding, y, FontSizeSmall, ColorTextSecondary)
	case rs.searching:
		DrawText(dst, "Searching...", SectionPadding, y, FontSizeSmall, ColorTextSecondary)
	case rs.route != nil:
		summary := fmt.Sprintf("%.1f km  ·  %d min", rs.route.DistanceM/1000, int(rs.route.DurationS/60+0.5))
		DrawText(dst, summary, SectionPadding, y, FontSizeBody, ColorText)
	}

	rs.mapView.DrawBackground(dst)
	if rs.route != nil {
		rs.mapView.DrawPolyline(dst, rs.route.Coords, 4, ColorAccent)
	}
	for i, c := range rs.chosen {
		if c == nil {
			continue
		}
		clr := ColorPrimary
		if i == fieldEnd {
			clr = ColorAccent
		}
		rs.mapView.DrawMarker(dst, c.Coord, clr)
	}
}

// DrawOverlay draws the results sheet above the navbar.
func (rs *RouteScreen) DrawOverlay(dst *ebiten.Image) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.sheet.Draw(dst)
}

func (rs *RouteScreen) Modal() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.sheet.Visible()
}
