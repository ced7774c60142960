package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// NavBarAction represents the result of a navbar Update cycle.
type NavBarAction int

const (
	NavBarActionNone    NavBarAction = iota
	NavBarActionDefocus              // return focus to screen above
)

// NavTab is one entry of the tab bar. ID matches the Name of the screen the
// tab opens.
type NavTab struct {
	ID    string
	Label string
	Icon  IconFunc
}

// DefaultTabs are the app's bottom tabs.
var DefaultTabs = []NavTab{
	{ID: "Tasks", Label: "Tasks", Icon: drawListIcon},
	{ID: "Sheet", Label: "Sheet", Icon: drawSheetIcon},
	{ID: "Route", Label: "Route", Icon: drawPinIcon},
	{ID: "Tracking", Label: "Track", Icon: drawCompassIcon},
	{ID: "Profile", Label: "Profile", Icon: drawPersonIcon},
}

// NavBar is the persistent tab bar along the bottom of every screen.
type NavBar struct {
	Tabs   []NavTab
	Active bool // keyboard focus
	focus  int

	ActiveScreenName string // for visual highlight of current tab

	OnNavigate func(id string)
}

// NewNavBar creates a tab bar with DefaultTabs.
func NewNavBar() *NavBar {
	return &NavBar{Tabs: DefaultTabs}
}

// Top is the y coordinate of the bar's upper edge.
func (nb *NavBar) Top() float64 { return ScreenHeight - NavBarHeight }

// FocusFromAbove activates keyboard focus on the bar, starting at the current tab.
func (nb *NavBar) FocusFromAbove() {
	nb.Active = true
	nb.focus = 0
	for i, t := range nb.Tabs {
		if t.ID == nb.ActiveScreenName {
			nb.focus = i
		}
	}
}

// Update processes keyboard input when the navbar is active. Returns an action.
func (nb *NavBar) Update() NavBarAction {
	if !nb.Active || len(nb.Tabs) == 0 {
		return NavBarActionNone
	}

	dir, enter, back := InputState()
	if dir == DirUp || back {
		nb.Active = false
		return NavBarActionDefocus
	}
	switch dir {
	case DirLeft:
		if nb.focus > 0 {
			nb.focus--
		}
	case DirRight:
		if nb.focus < len(nb.Tabs)-1 {
			nb.focus++
		}
	}
	if enter || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		nb.navigate(nb.focus)
		nb.Active = false
		return NavBarActionDefocus
	}
	return NavBarActionNone
}

// HandleClick checks if (x, y) hits a tab and triggers navigation. Returns true if consumed.
func (nb *NavBar) HandleClick(x, y float64) bool {
	if y < nb.Top() || len(nb.Tabs) == 0 {
		return false
	}
	i := nb.TabAt(x)
	if i < 0 {
		return false
	}
	nb.navigate(i)
	return true
}

// TabAt returns the index of the tab column containing x, or -1.
func (nb *NavBar) TabAt(x float64) int {
	if len(nb.Tabs) == 0 || x < 0 || x >= ScreenWidth {
		return -1
	}
	return int(x / nb.tabWidth())
}

func (nb *NavBar) tabWidth() float64 {
	return float64(ScreenWidth) / float64(len(nb.Tabs))
}

func (nb *NavBar) navigate(i int) {
	if nb.OnNavigate != nil {
		nb.OnNavigate(nb.Tabs[i].ID)
	}
}

// Draw renders the tab bar.
func (nb *NavBar) Draw(dst *ebiten.Image) {
	top := float32(nb.Top())
	vector.DrawFilledRect(dst, 0, top, float32(ScreenWidth), float32(NavBarHeight), ColorBackground, false)
	vector.DrawFilledRect(dst, 0, top, float32(ScreenWidth), 1, ColorSurfaceHover, false)

	w := float32(nb.tabWidth())
	for i, tab := range nb.Tabs {
		x := float32(i) * w
		current := tab.ID == nb.ActiveScreenName
		focused := nb.Active && i == nb.focus

		clr := ColorTextMuted
		if current {
			clr = ColorPrimary
		}
		if focused {
			DrawFilledRoundRect(dst, x+6, top+6, w-12, NavBarHeight-12, 10, ColorSurfaceHover)
			clr = ColorText
		}
		if tab.Icon != nil {
			tab.Icon(dst, x+w/2, top+24, 9, clr)
		}
		DrawTextCentered(dst, tab.Label, float64(x+w/2), float64(top)+48, FontSizeCaption, clr)
	}
}
