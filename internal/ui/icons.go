package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// IconFunc draws an icon centered at (cx, cy) with radius r.
type IconFunc func(dst *ebiten.Image, cx, cy, r float32, clr color.Color)

// drawCompassIcon draws a compass icon at (cx, cy) with given radius.
func drawCompassIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	vector.StrokeCircle(dst, cx, cy, r, 1.5, clr, true)
	dotR := float32(1.5)
	vector.DrawFilledCircle(dst, cx, cy-r+2, dotR, clr, true) // N
	vector.DrawFilledCircle(dst, cx+r-2, cy, dotR, clr, true)
	vector.DrawFilledCircle(dst, cx, cy+r-2, dotR, clr, true)
	vector.DrawFilledCircle(dst, cx-r+2, cy, dotR, clr, true)
	// needle
	vector.StrokeLine(dst, cx, cy-r*0.5, cx+r*0.2, cy, 1.5, clr, true)
	vector.StrokeLine(dst, cx+r*0.2, cy, cx, cy+r*0.5, 1.5, clr, true)
	vector.StrokeLine(dst, cx, cy+r*0.5, cx-r*0.2, cy, 1.5, clr, true)
	vector.StrokeLine(dst, cx-r*0.2, cy, cx, cy-r*0.5, 1.5, clr, true)
}

// drawSearchIcon draws a magnifying glass icon at (cx, cy) with given radius.
func drawSearchIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	// Lens offset up-left so the handle extends down-right
	lensR := r * 0.6
	lensCX := cx - r*0.15
	lensCY := cy - r*0.15
	vector.StrokeCircle(dst, lensCX, lensCY, lensR, 1.8, clr, true)
	hx := lensCX + lensR*0.7
	hy := lensCY + lensR*0.7
	vector.StrokeLine(dst, hx, hy, hx+r*0.45, hy+r*0.45, 2, clr, true)
}

// drawListIcon draws a checklist icon at (cx, cy) with given radius.
func drawListIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	lineW := r * 1.2
	gap := r * 0.6
	for i := -1; i <= 1; i++ {
		ly := cy + float32(i)*gap
		vector.DrawFilledCircle(dst, cx-lineW*0.6, ly, 1.5, clr, true)
		vector.StrokeLine(dst, cx-lineW*0.3, ly, cx+lineW*0.7, ly, 1.8, clr, true)
	}
}

// drawSheetIcon draws a phone outline with a raised bottom sheet.
func drawSheetIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	w, h := r*1.3, r*2
	x, y := cx-w/2, cy-h/2
	vector.StrokeRect(dst, x, y, w, h, 1.5, clr, true)
	vector.DrawFilledRect(dst, x, y+h*0.55, w, h*0.45, clr, true)
}

// drawPinIcon draws a map pin.
func drawPinIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	headY := cy - r*0.3
	vector.StrokeCircle(dst, cx, headY, r*0.6, 1.8, clr, true)
	vector.DrawFilledCircle(dst, cx, headY, r*0.2, clr, true)
	vector.StrokeLine(dst, cx-r*0.45, headY+r*0.4, cx, cy+r, 1.8, clr, true)
	vector.StrokeLine(dst, cx+r*0.45, headY+r*0.4, cx, cy+r, 1.8, clr, true)
}

// drawPersonIcon draws a head and shoulders.
func drawPersonIcon(dst *ebiten.Image, cx, cy, r float32, clr color.Color) {
	vector.StrokeCircle(dst, cx, cy-r*0.4, r*0.4, 1.8, clr, true)
	vector.StrokeLine(dst, cx-r*0.8, cy+r, cx-r*0.5, cy+r*0.25, 1.8, clr, true)
	vector.StrokeLine(dst, cx-r*0.5, cy+r*0.25, cx+r*0.5, cy+r*0.25, 1.8, clr, true)
	vector.StrokeLine(dst, cx+r*0.5, cy+r*0.25, cx+r*0.8, cy+r, 1.8, clr, true)
}
