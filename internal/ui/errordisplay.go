package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrorDisplay draws an error message with a "Retry" button.
// Store one per screen that shows errors, call Draw each frame and HandleClick in Update.
type ErrorDisplay struct {
	OnRetry func()

	retryRect ButtonRect
}

// Draw renders the error text, wrapped to width, and a Retry button below it
// when OnRetry is set. Returns the total height used.
func (ed *ErrorDisplay) Draw(dst *ebiten.Image, errText string, x, y, width, fontSize float64) float64 {
	if errText == "" {
		ed.retryRect = ButtonRect{}
		return 0
	}

	h := DrawTextWrapped(dst, errText, x, y, width, fontSize, ColorError)
	if ed.OnRetry == nil {
		ed.retryRect = ButtonRect{}
		return h
	}

	btnY := y + h + 6
	btnW := 72.0
	btnH := fontSize + 12
	ed.retryRect = ButtonRect{X: x, Y: btnY, W: btnW, H: btnH}

	DrawFilledRoundRect(dst, float32(x), float32(btnY), float32(btnW), float32(btnH), 6, ColorSurface)
	vector.StrokeRect(dst, float32(x), float32(btnY), float32(btnW), float32(btnH), 1, ColorTextMuted, false)
	DrawTextCentered(dst, "Retry", x+btnW/2, btnY+btnH/2, FontSizeSmall, ColorTextSecondary)

	return h + 6 + btnH
}

// HandleClick checks if the retry button was clicked. Call from Update with
// pointer coords. Returns true if the click was consumed.
func (ed *ErrorDisplay) HandleClick(x, y float64) bool {
	if ed.OnRetry == nil || !ed.retryRect.Contains(x, y) {
		return false
	}
	ed.retryRect = ButtonRect{}
	ed.OnRetry()
	return true
}
