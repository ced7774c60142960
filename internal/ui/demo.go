package ui

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/hipster/internal/sheet"
)

// DemoCard is one entry of the sheet demo's vertical list.
type DemoCard struct {
	Title       string
	Description string
}

func demoCards() []DemoCard {
	cards := make([]DemoCard, 8)
	for i := range cards {
		cards[i] = DemoCard{
			Title:       fmt.Sprintf("Card %d", i+1),
			Description: fmt.Sprintf("Detailed description for Card %d", i+1),
		}
	}
	return cards
}

func trendingItems() []string {
	items := make([]string, 7)
	for i := range items {
		items[i] = fmt.Sprintf("Trending %d", i+1)
	}
	return items
}

const (
	demoListTop = 72.0
	demoRowY    = ScreenHeight - NavBarHeight - ChipHeight - SectionGap
)

type demoFocus int

const (
	demoFocusList demoFocus = iota
	demoFocusRow
)

// DemoScreen shows a vertical card list above a horizontal trending row.
// Selecting a card presents it in a bottom sheet that carries its own
// trending row.
type DemoScreen struct {
	Cards []DemoCard

	list    *ScrollView
	row     *CardRow
	sheet   *SheetView
	pointer PointerTracker
	rowDrag bool

	focus    demoFocus
	focused  int
	selected int
}

func NewDemoScreen(cfg sheet.Config, recognize float64) *DemoScreen {
	ds := &DemoScreen{
		Cards:    demoCards(),
		list:     NewScrollView(ButtonRect{X: 0, Y: demoListTop, W: ScreenWidth, H: demoRowY - SectionGap - demoListTop}),
		row:      NewCardRow(trendingItems()),
		sheet:    NewSheetView(cfg, recognize),
		pointer:  PointerTracker{Threshold: recognize},
		selected: -1,
	}
	ds.row.SetWidth(ScreenWidth - SectionPadding*2)
	ds.list.SetContentHeight(ds.listHeight())
	return ds
}

func (ds *DemoScreen) Name() string { return "Sheet" }
func (ds *DemoScreen) OnEnter()     {}

func (ds *DemoScreen) OnExit() {
	ds.sheet.Dismiss()
}

func (ds *DemoScreen) Unmount() {
	ds.sheet.Unmount()
	ds.selected = -1
}

// Selected returns the index of the card shown in the sheet, or -1.
func (ds *DemoScreen) Selected() int { return ds.selected }

func (ds *DemoScreen) listHeight() float64 {
	return float64(len(ds.Cards))*(CardHeight+CardGap) - CardGap
}

func (ds *DemoScreen) rowRect() ButtonRect {
	return ButtonRect{X: 0, Y: demoRowY, W: ScreenWidth, H: ChipHeight}
}

// Select presents card i in the bottom sheet.
func (ds *DemoScreen) Select(i int) bool {
	if i < 0 || i >= len(ds.Cards) {
		return false
	}
	card := ds.Cards[i]
	body := SheetBody{
		Title:       card.Title,
		Description: card.Description,
		Row:         trendingItems(),
		OnRow: func(j int) {
			log.Printf("Sheet: %s: trending %d", card.Title, j+1)
		},
	}
	if !ds.sheet.Present(body, func() { ds.selected = -1 }) {
		return false
	}
	ds.selected = i
	return true
}

func (ds *DemoScreen) Update() (*ScreenTransition, error) {
	if ds.sheet.Visible() {
		ds.sheet.Update()
		return nil, nil
	}

	if tr := ds.handleKeys(); tr != nil {
		return tr, nil
	}
	ds.list.HandleMouseWheel()
	ds.HandlePointer(PollPointer())
	ds.list.Step(FrameDuration())
	return nil, nil
}

func (ds *DemoScreen) handleKeys() *ScreenTransition {
	dir, enter, _ := InputState()
	switch ds.focus {
	case demoFocusList:
		switch dir {
		case DirUp:
			if ds.focused > 0 {
				ds.focused--
			}
		case DirDown:
			if ds.focused < len(ds.Cards)-1 {
				ds.focused++
			} else {
				ds.focus = demoFocusRow
				ds.row.Active = true
			}
		}
		if dir != DirNone {
			top := float64(ds.focused) * (CardHeight + CardGap)
			ds.list.EnsureVisible(top, top+CardHeight, ds.list.Rect.H)
		}
		if enter {
			ds.Select(ds.focused)
		}
	case demoFocusRow:
		switch dir {
		case DirUp:
			ds.focus = demoFocusList
			ds.row.Active = false
		case DirDown:
			return &ScreenTransition{Type: TransitionFocusNavBar}
		default:
			ds.row.Update(dir)
		}
		if item, ok := ds.row.SelectedItem(); ok && enter {
			log.Printf("Sheet: %s", item)
		}
	}
	return nil
}

// HandlePointer routes one pointer sample: horizontal drags over the
// trending row scroll it, other drags scroll the card list, and a tapped
// card opens the sheet.
func (ds *DemoScreen) HandlePointer(s PointerSample) {
	ev, action := ds.pointer.Feed(s, Now())
	switch action {
	case PointerTap:
		if _, y, ok := ds.list.ContentPoint(s.X, s.Y); ok {
			i := int(y / (CardHeight + CardGap))
			if y-float64(i)*(CardHeight+CardGap) <= CardHeight && ds.Select(i) {
				ds.focus, ds.focused, ds.row.Active = demoFocusList, i, false
			}
			return
		}
		if i := ds.row.HitTest(s.X, s.Y, SectionPadding, demoRowY); i >= 0 {
			ds.focus, ds.row.Focused, ds.row.Active = demoFocusRow, i, true
		}

	case PointerDrag:
		ox, oy := ds.pointer.Origin()
		if ev.Phase == sheet.PhaseStart {
			ds.rowDrag = math.Abs(ev.DX) > math.Abs(ev.DY) && ds.rowRect().Contains(ox, oy)
			if ds.rowDrag {
				ds.row.BeginDrag()
			}
		}
		if !ds.rowDrag {
			ds.list.Drag(ev, ox, oy)
			return
		}
		switch ev.Phase {
		case sheet.PhaseStart, sheet.PhaseMove:
			ds.row.DragTo(ev.DX)
		default:
			ds.row.EndDrag()
			ds.rowDrag = false
		}
	}
}

func (ds *DemoScreen) Draw(dst *ebiten.Image) {
	dst.Fill(ColorBackground)
	DrawText(dst, "Bottom Sheet", SectionPadding, 24, FontSizeTitle, ColorText)

	sub := ds.list.Clip(dst)
	for i, card := range ds.Cards {
		y := ds.list.Rect.Y + float64(i)*(CardHeight+CardGap) - ds.list.ScrollY
		if y+CardHeight < ds.list.Rect.Y || y > ds.list.Rect.Y+ds.list.Rect.H {
			continue
		}
		x := float32(SectionPadding)
		w := float32(ScreenWidth - SectionPadding*2)
		DrawFilledRoundRect(sub, x, float32(y), w, CardHeight, CardRadius, ColorSurface)
		if ds.focus == demoFocusList && i == ds.focused {
			vector.StrokeRect(sub, x+1, float32(y)+1, w-2, CardHeight-2, 2, ColorFocusBorder, false)
		}
		DrawText(sub, card.Title, SectionPadding*2, y+CardHeight/2-12, FontSizeHeading, ColorText)
	}

	ds.row.Draw(dst, SectionPadding, demoRowY)
}

// DrawOverlay draws the sheet above the navbar.
func (ds *DemoScreen) DrawOverlay(dst *ebiten.Image) { ds.sheet.Draw(dst) }

func (ds *DemoScreen) Modal() bool { return ds.sheet.Visible() }
