// Package app ties the screens, the navbar and the background services
// together behind ebiten.Game.
package app

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/depeter/hipster/internal/cache"
	"github.com/depeter/hipster/internal/config"
	"github.com/depeter/hipster/internal/tracking"
	"github.com/depeter/hipster/internal/ui"
)

// Game implements ebiten.Game and manages the overall application.
type Game struct {
	Config  *config.Config
	Cache   *cache.ImageCache
	Tracker *tracking.Tracker
	Screens *ui.ScreenManager
}

// NewGame creates the Game with all dependencies. tracker may be nil.
func NewGame(cfg *config.Config, imgCache *cache.ImageCache, tracker *tracking.Tracker) *Game {
	return &Game{
		Config:  cfg,
		Cache:   imgCache,
		Tracker: tracker,
		Screens: ui.NewScreenManager(),
	}
}

func (g *Game) Update() error {
	// Alt+Enter toggles fullscreen
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && ebiten.IsKeyPressed(ebiten.KeyAlt) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// F12 toggles debug overlay
	ui.ToggleDebugOverlay()

	if err := g.Screens.Update(); err != nil {
		return err
	}

	ui.UpdateInputState()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ui.ColorBackground)
	g.Screens.Draw(screen)
	ui.DrawDebugOverlay(screen)
}

// Layout keeps the phone-sized logical screen; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ui.ScreenWidth, ui.ScreenHeight
}

// Close stops tracking and closes the route store.
func (g *Game) Close() error {
	g.Screens.Close()
	if g.Tracker == nil {
		return nil
	}
	if id := g.Tracker.Stop(); id != "" {
		log.Printf("Game: stopped tracking route %s", id)
	}
	return g.Tracker.Store().Close()
}
