package ui

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/depeter/hipster/internal/sheet"
)

// ScrollView is a vertically scrolling region of the screen driven by
// pointer drags, flings and the mouse wheel.
type ScrollView struct {
	ScrollState
	Rect ButtonRect

	pointer PointerTracker
	owned   bool
}

func NewScrollView(rect ButtonRect) *ScrollView {
	return &ScrollView{Rect: rect, pointer: PointerTracker{Threshold: 10}}
}

// SetContentHeight sets the height of everything inside the region.
func (sv *ScrollView) SetContentHeight(h float64) {
	sv.SetMax(h - sv.Rect.H)
}

// Update polls the wheel, routes one pointer sample and steps momentum. A
// tap inside the region is returned in content coordinates.
func (sv *ScrollView) Update(s PointerSample) (x, y float64, tapped bool) {
	sv.HandleMouseWheel()
	ev, action := sv.pointer.Feed(s, Now())
	switch action {
	case PointerTap:
		x, y, tapped = sv.ContentPoint(s.X, s.Y)
	case PointerDrag:
		ox, oy := sv.pointer.Origin()
		sv.Drag(ev, ox, oy)
	}
	sv.Step(FrameDuration())
	return x, y, tapped
}

// ContentPoint maps a screen point inside the region to content coordinates.
func (sv *ScrollView) ContentPoint(sx, sy float64) (x, y float64, ok bool) {
	if !sv.Rect.Contains(sx, sy) {
		return 0, 0, false
	}
	return sx - sv.Rect.X, sy - sv.Rect.Y + sv.ScrollY, true
}

// Drag feeds a drag event for a gesture that began at (ox, oy). Hosts that
// track the pointer themselves call it directly. It reports whether the
// region owns the gesture.
func (sv *ScrollView) Drag(ev sheet.DragEvent, ox, oy float64) bool {
	switch ev.Phase {
	case sheet.PhaseStart:
		sv.owned = sv.Rect.Contains(ox, oy) && math.Abs(ev.DY) >= math.Abs(ev.DX)
		if sv.owned {
			sv.BeginDrag()
			sv.DragTo(ev.DY)
		}
		return sv.owned
	case sheet.PhaseMove:
		if sv.owned {
			sv.DragTo(ev.DY)
		}
		return sv.owned
	default:
		owned := sv.owned
		if owned {
			velocity := ev.VelocityY
			if ev.Phase == sheet.PhaseCancel {
				velocity = 0
			}
			sv.EndDrag(velocity)
		}
		sv.owned = false
		return owned
	}
}

// Clip returns the part of dst covered by the region.
func (sv *ScrollView) Clip(dst *ebiten.Image) *ebiten.Image {
	r := image.Rect(int(sv.Rect.X), int(sv.Rect.Y), int(sv.Rect.X+sv.Rect.W), int(sv.Rect.Y+sv.Rect.H))
	sub, ok := dst.SubImage(r).(*ebiten.Image)
	if !ok {
		return dst
	}
	return sub
}
