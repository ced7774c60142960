package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/hipster/internal/sheet"
)

var (
	debugOverlayVisible bool
	debugSheet          *sheet.Sheet
)

// ToggleDebugOverlay toggles the debug overlay on F12.
func ToggleDebugOverlay() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		debugOverlayVisible = !debugOverlayVisible
	}
}

// SetDebugOverlay forces the overlay on or off, for the --debug flag.
func SetDebugOverlay(visible bool) { debugOverlayVisible = visible }

// SetDebugSheet selects the sheet whose state the overlay shows. Sheet views
// call it every frame they are visible.
func SetDebugSheet(s *sheet.Sheet) { debugSheet = s }

// DrawDebugOverlay draws the debug overlay if visible.
func DrawDebugOverlay(screen *ebiten.Image) {
	if !debugOverlayVisible {
		return
	}

	const (
		padX    = 12.0
		padY    = 10.0
		lineH   = 18.0
		marginR = 12.0
		marginT = 12.0
	)

	p := PollPointer()
	lines := []string{
		fmt.Sprintf("tps %.1f  fps %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()),
		fmt.Sprintf("pointer %.0f,%.0f pressed=%v", p.X, p.Y, p.Pressed),
	}

	s := debugSheet
	if s != nil && !s.Visible() {
		s = nil
	}
	if s == nil {
		lines = append(lines, "sheet (none)")
	} else {
		lines = append(lines,
			fmt.Sprintf("sheet %s", s.State()),
			fmt.Sprintf("offset %.1f  rest %.1f", s.Offset(), s.RestTarget()),
			fmt.Sprintf("content %.1f", s.ContentHeight()),
			fmt.Sprintf("owns scroll=%v  drag=%v  anim=%v", s.ScrollOwnership(), s.Dragging(), s.Animating()),
		)
	}

	panelW := 250.0
	panelH := float64(len(lines)+1)*lineH + padY*2
	px := float64(ScreenWidth) - panelW - marginR
	py := marginT

	vector.DrawFilledRect(screen, float32(px), float32(py), float32(panelW), float32(panelH), ColorOverlay, false)

	x := px + padX
	y := py + padY
	DrawText(screen, "Debug (F12 to close)", x, y, FontSizeSmall, ColorPrimary)
	y += lineH
	for _, line := range lines {
		DrawText(screen, line, x, y, FontSizeSmall, ColorText)
		y += lineH
	}
}
