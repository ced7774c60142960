package ui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScreen struct {
	name          string
	enters, exits int
	modal         bool
}

func (s *stubScreen) Update() (*ScreenTransition, error) { return nil, nil }
func (s *stubScreen) Draw(*ebiten.Image)                 {}
func (s *stubScreen) OnEnter()                           { s.enters++ }
func (s *stubScreen) OnExit()                            { s.exits++ }
func (s *stubScreen) Name() string                       { return s.name }
func (s *stubScreen) DrawOverlay(*ebiten.Image)          {}
func (s *stubScreen) Modal() bool                        { return s.modal }

type sheetHostStub struct {
	stubScreen
	unmounts int
}

func (s *sheetHostStub) Unmount() { s.unmounts++ }

var (
	_ Unmounter = (*DemoScreen)(nil)
	_ Unmounter = (*RouteScreen)(nil)
	_ Unmounter = (*TrackingScreen)(nil)
)

func TestCloseUnmountsSheetHosts(t *testing.T) {
	sm := NewScreenManager()
	sm.NavBar = NewNavBar()
	tasks := &stubScreen{name: "Tasks"}
	demo := &sheetHostStub{stubScreen: stubScreen{name: "Sheet"}}
	route := &sheetHostStub{stubScreen: stubScreen{name: "Route"}}
	sm.AddTab(tasks)
	sm.AddTab(demo)
	sm.AddTab(route)
	require.True(t, sm.ShowTab("Sheet"))

	sm.Close()
	assert.Nil(t, sm.Current())
	assert.Equal(t, 1, demo.exits)
	assert.Equal(t, 1, demo.unmounts)
	assert.Equal(t, 1, route.unmounts, "tabs in the background are unmounted too")
	assert.Zero(t, route.exits)
	assert.Zero(t, tasks.exits)
}

func TestShowTabKeepsScreens(t *testing.T) {
	sm := NewScreenManager()
	sm.NavBar = NewNavBar()
	tasks := &stubScreen{name: "Tasks"}
	route := &stubScreen{name: "Route"}
	sm.AddTab(tasks)
	sm.AddTab(route)

	require.True(t, sm.ShowTab("Tasks"))
	require.True(t, sm.ShowTab("Route"))
	assert.Same(t, route, sm.Current())
	assert.Equal(t, 1, tasks.exits)
	assert.Equal(t, "Route", sm.NavBar.ActiveScreenName)

	require.True(t, sm.ShowTab("Route"))
	assert.Equal(t, 1, route.enters, "showing the current tab again is a no-op")

	require.True(t, sm.ShowTab("Tasks"))
	assert.Equal(t, 2, tasks.enters)

	assert.False(t, sm.ShowTab("Settings"))
	assert.Same(t, tasks, sm.Current())
}

func TestTaskCardsOpenTheirTab(t *testing.T) {
	sm := NewScreenManager()
	home := NewTasksScreen()
	sm.AddTab(home)
	for _, task := range DefaultTasks {
		sm.AddTab(&stubScreen{name: task.Tab})
	}
	sm.ShowTab("Tasks")

	tr := home.open(1)
	require.NotNil(t, tr)
	assert.Equal(t, TransitionTab, tr.Type)
	sm.apply(tr)
	assert.Equal(t, "Route", sm.Current().Name())

	assert.Nil(t, home.open(len(DefaultTasks)))
}

func TestModalScreenBlocksNavBarFocus(t *testing.T) {
	sm := NewScreenManager()
	sm.NavBar = NewNavBar()
	s := &stubScreen{name: "Sheet", modal: true}
	sm.AddTab(s)
	sm.ShowTab("Sheet")

	sm.apply(&ScreenTransition{Type: TransitionFocusNavBar})
	assert.False(t, sm.NavBar.Active)

	s.modal = false
	sm.apply(&ScreenTransition{Type: TransitionFocusNavBar})
	assert.True(t, sm.NavBar.Active)
}
