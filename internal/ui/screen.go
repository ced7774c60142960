package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screen is the interface for all UI screens (Tasks, Sheet, Route, Tracking, Profile).
type Screen interface {
	// Update handles input and logic. Return a non-nil ScreenTransition to change screens.
	Update() (*ScreenTransition, error)
	// Draw renders the screen.
	Draw(dst *ebiten.Image)
	// OnEnter is called when the screen becomes active.
	OnEnter()
	// OnExit is called when another screen replaces it.
	OnExit()
	// Name returns the tab id the screen is registered under.
	Name() string
}

// Overlay is implemented by screens that present something above the
// navbar, such as a bottom sheet. While Modal reports true the navbar
// neither takes clicks nor keyboard focus.
type Overlay interface {
	DrawOverlay(dst *ebiten.Image)
	Modal() bool
}

// Unmounter is implemented by screens holding a sheet. Unmount runs once
// when the app closes, so callbacks of a half-finished sheet never fire.
type Unmounter interface {
	Unmount()
}

type TransitionType int

const (
	TransitionTab         TransitionType = iota // switch to the tab named Tab
	TransitionFocusNavBar                       // request navbar keyboard focus
)

type ScreenTransition struct {
	Type TransitionType
	Tab  string
}

// ScreenManager shows one tab screen at a time. Tab screens are created once
// and kept, so switching back finds them as they were left.
type ScreenManager struct {
	NavBar *NavBar

	tabs         map[string]Screen
	current      Screen
	navBarActive bool
}

func NewScreenManager() *ScreenManager {
	return &ScreenManager{tabs: make(map[string]Screen)}
}

// AddTab registers s under its name.
func (sm *ScreenManager) AddTab(s Screen) {
	sm.tabs[s.Name()] = s
}

// ShowTab makes the tab named id current. Showing the current tab again does
// nothing.
func (sm *ScreenManager) ShowTab(id string) bool {
	s, ok := sm.tabs[id]
	if !ok {
		log.Printf("Screens: unknown tab %q", id)
		return false
	}
	if s == sm.current {
		return true
	}
	if sm.current != nil {
		sm.current.OnExit()
	}
	sm.current = s
	s.OnEnter()
	sm.updateNavBarHighlight()
	return true
}

func (sm *ScreenManager) Current() Screen { return sm.current }

// Close exits the current screen and unmounts every tab that holds a sheet.
func (sm *ScreenManager) Close() {
	if sm.current != nil {
		sm.current.OnExit()
		sm.current = nil
	}
	for _, s := range sm.tabs {
		if u, ok := s.(Unmounter); ok {
			u.Unmount()
		}
	}
}

// modal reports whether the current screen is presenting a modal overlay.
func (sm *ScreenManager) modal() bool {
	o, ok := sm.current.(Overlay)
	return ok && o.Modal()
}

func (sm *ScreenManager) Update() error {
	s := sm.current
	if s == nil {
		return nil
	}
	modal := sm.modal()
	if modal {
		sm.navBarActive = false
		if sm.NavBar != nil {
			sm.NavBar.Active = false
		}
	}

	// Presses in the navbar area are intercepted before the screen gets them
	if sm.NavBar != nil && !modal {
		if p := PollPointer(); p.JustPressed && p.Y >= sm.NavBar.Top() {
			if sm.NavBar.HandleClick(p.X, p.Y) {
				sm.navBarActive = false
				sm.NavBar.Active = false
			}
			sm.updateNavBarHighlight()
			return nil
		}
	}

	// When navbar has keyboard focus, route input to it instead of the screen
	if sm.navBarActive && sm.NavBar != nil {
		if sm.NavBar.Update() == NavBarActionDefocus {
			sm.navBarActive = false
		}
		sm.updateNavBarHighlight()
		return nil
	}

	tr, err := s.Update()
	if err != nil {
		return err
	}
	if tr != nil {
		sm.apply(tr)
	}
	sm.updateNavBarHighlight()
	return nil
}

func (sm *ScreenManager) apply(tr *ScreenTransition) {
	switch tr.Type {
	case TransitionTab:
		sm.ShowTab(tr.Tab)
	case TransitionFocusNavBar:
		if sm.NavBar != nil && !sm.modal() {
			sm.navBarActive = true
			sm.NavBar.FocusFromAbove()
		}
	}
}

func (sm *ScreenManager) updateNavBarHighlight() {
	if sm.NavBar != nil && sm.current != nil {
		sm.NavBar.ActiveScreenName = sm.current.Name()
	}
}

// Draw renders the current screen, the navbar, then any overlay the screen
// presents above it.
func (sm *ScreenManager) Draw(dst *ebiten.Image) {
	s := sm.current
	if s == nil {
		return
	}
	s.Draw(dst)
	if sm.NavBar != nil {
		sm.NavBar.Draw(dst)
	}
	if o, ok := s.(Overlay); ok {
		o.DrawOverlay(dst)
	}
}
