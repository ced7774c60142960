package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/depeter/hipster/assets/icon"
	"github.com/depeter/hipster/internal/app"
	"github.com/depeter/hipster/internal/cache"
	"github.com/depeter/hipster/internal/config"
	"github.com/depeter/hipster/internal/constants"
	"github.com/depeter/hipster/internal/places"
	"github.com/depeter/hipster/internal/tracking"
	"github.com/depeter/hipster/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string) error {
	var (
		configPath  string
		debug       bool
		fullscreen  bool
		clearCache  bool
		writeConfig bool
	)
	flags := pflag.NewFlagSet(constants.AppName, pflag.ContinueOnError)
	flags.StringVarP(&configPath, "config", "c", "", "path to config.toml (default: user config dir)")
	flags.BoolVar(&debug, "debug", false, "show the debug overlay at startup (toggle with F12)")
	flags.BoolVar(&fullscreen, "fullscreen", false, "start fullscreen")
	flags.BoolVar(&clearCache, "clear-cache", false, "remove downloaded images before starting")
	flags.BoolVar(&writeConfig, "write-config", false, "write the effective config to disk and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// Load config
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if writeConfig {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		log.Printf("Config: written")
		return nil
	}

	// Init fonts
	if err := ui.InitFonts(goregular.TTF); err != nil {
		return fmt.Errorf("init fonts: %w", err)
	}
	ui.SetDebugOverlay(debug)

	// Init image cache
	cacheDir := filepath.Join(os.TempDir(), constants.AppName, "images")
	if configDir, err := config.ConfigDir(); err == nil {
		cacheDir = filepath.Join(configDir, "cache", "images")
	}
	imgCache, err := cache.NewImageCache(cacheDir)
	if err != nil {
		return err
	}
	if clearCache {
		if err := imgCache.ClearDisk(); err != nil {
			log.Printf("Failed to clear image cache: %v", err)
		}
	}

	// Route store and the background location task
	storePath, err := cfg.StorePath()
	if err != nil {
		return fmt.Errorf("route store: %w", err)
	}
	store, err := tracking.OpenStore(storePath)
	if err != nil {
		return err
	}
	seed := cfg.Tracking.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	source := tracking.NewSimulatedSource(
		cfg.Tracking.StartLat, cfg.Tracking.StartLng,
		time.Duration(cfg.Tracking.IntervalMS)*time.Millisecond,
		cfg.Tracking.MinDistanceM, seed,
	)
	tracker := tracking.NewTracker(tracking.NewRegistry(), store, source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	game := app.NewGame(cfg, imgCache, tracker)
	defer func() {
		if err := game.Close(); err != nil {
			log.Printf("Failed to close: %v", err)
		}
	}()

	finder := places.NewClient(cfg.Places.SearchURL, cfg.Places.RouteURL, cfg.PlacesTimeout())
	sf := &screenFactory{ctx: ctx, game: game, cfg: cfg, finder: finder}
	sf.addTabs()

	navbar := ui.NewNavBar()
	navbar.OnNavigate = func(id string) { game.Screens.ShowTab(id) }
	game.Screens.NavBar = navbar
	game.Screens.ShowTab("Tasks")

	// Configure window
	ebiten.SetWindowSize(cfg.UI.Width, cfg.UI.Height)
	ebiten.SetWindowTitle(constants.WindowTitle)
	ebiten.SetWindowIcon(icon.Generate())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(fullscreen || cfg.UI.Fullscreen)

	log.Printf("%s: routes in %s, images in %s", constants.WindowTitle, store.Path(), imgCache.CacheDir())
	return ebiten.RunGame(game)
}
