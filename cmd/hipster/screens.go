package main

import (
	"context"

	"github.com/depeter/hipster/internal/app"
	"github.com/depeter/hipster/internal/config"
	"github.com/depeter/hipster/internal/ui"
)

// screenFactory captures the shared dependencies for creating and wiring screens.
type screenFactory struct {
	ctx    context.Context
	game   *app.Game
	cfg    *config.Config
	finder ui.PlaceFinder
}

// addTabs creates one persistent screen per navbar tab. Every sheet shares
// the configured tuning, sized to the logical screen.
func (sf *screenFactory) addTabs() {
	sheetCfg := sf.cfg.Sheet.Build(ui.ScreenHeight)
	recognize := sf.cfg.Sheet.RecognizeDistance

	screens := sf.game.Screens
	screens.AddTab(ui.NewTasksScreen())
	screens.AddTab(ui.NewDemoScreen(sheetCfg, recognize))
	screens.AddTab(ui.NewRouteScreen(sf.ctx, sf.finder, sheetCfg, recognize))
	screens.AddTab(ui.NewTrackingScreen(sf.ctx, sf.game.Tracker, sheetCfg, recognize))
	screens.AddTab(ui.NewProfileScreen(sf.cfg.Profile, sf.game.Cache))
}
