package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CardRow is a horizontally scrolling row of small cards. It scrolls by
// keyboard focus or by dragging.
type CardRow struct {
	Items   []string
	Focused int
	Active  bool // whether this row currently has keyboard focus

	OffsetX       float64
	targetOffsetX float64
	maxOffset     float64

	dragging   bool
	dragOrigin float64
}

func NewCardRow(items []string) *CardRow {
	return &CardRow{Items: items}
}

// SetWidth sets the visible width, which bounds the scroll offset.
func (r *CardRow) SetWidth(width float64) {
	n := float64(len(r.Items))
	r.maxOffset = math.Max(0, n*(ChipWidth+ChipGap)-ChipGap-width)
	r.targetOffsetX = r.clamp(r.targetOffsetX)
	r.OffsetX = r.clamp(r.OffsetX)
}

func (r *CardRow) MaxOffset() float64 { return r.maxOffset }

func (r *CardRow) Update(dir Direction) (consumed bool) {
	if len(r.Items) == 0 {
		return false
	}
	switch dir {
	case DirLeft:
		if r.Focused > 0 {
			r.Focused--
			r.ensureVisible()
			return true
		}
	case DirRight:
		if r.Focused < len(r.Items)-1 {
			r.Focused++
			r.ensureVisible()
			return true
		}
	}
	return false
}

func (r *CardRow) ensureVisible() {
	itemX := float64(r.Focused) * (ChipWidth + ChipGap)
	viewWidth := float64(ScreenWidth) - SectionPadding*2
	if itemX+ChipWidth-r.targetOffsetX > viewWidth {
		r.targetOffsetX = itemX + ChipWidth - viewWidth
	}
	if itemX-r.targetOffsetX < 0 {
		r.targetOffsetX = itemX
	}
	r.targetOffsetX = r.clamp(r.targetOffsetX)
}

func (r *CardRow) BeginDrag() {
	r.dragging = true
	r.dragOrigin = r.OffsetX
}

// DragTo follows the pointer; dx is its total movement since BeginDrag.
func (r *CardRow) DragTo(dx float64) {
	if !r.dragging {
		return
	}
	r.OffsetX = r.clamp(r.dragOrigin - dx)
	r.targetOffsetX = r.OffsetX
}

func (r *CardRow) EndDrag() { r.dragging = false }

func (r *CardRow) AnimateScroll() {
	if !r.dragging {
		r.OffsetX = Lerp(r.OffsetX, r.targetOffsetX, ScrollAnimSpeed)
	}
}

// HitTest returns the card index under (x, y) for a row drawn at
// (baseX, baseY), or -1.
func (r *CardRow) HitTest(x, y, baseX, baseY float64) int {
	if y < baseY || y > baseY+ChipHeight {
		return -1
	}
	rel := x - baseX + r.OffsetX
	if rel < 0 {
		return -1
	}
	i := int(rel / (ChipWidth + ChipGap))
	if i >= len(r.Items) || rel-float64(i)*(ChipWidth+ChipGap) > ChipWidth {
		return -1
	}
	return i
}

func (r *CardRow) Draw(dst *ebiten.Image, baseX, baseY float64) {
	r.AnimateScroll()

	for i, label := range r.Items {
		ix := baseX + float64(i)*(ChipWidth+ChipGap) - r.OffsetX
		if ix+ChipWidth < 0 || ix > float64(ScreenWidth) {
			continue
		}

		bg := color.Color(ColorAccent)
		if r.Active && i == r.Focused {
			bg = ColorPrimary
		}
		DrawFilledRoundRect(dst, float32(ix), float32(baseY), ChipWidth, ChipHeight, 10, bg)
		DrawTextCentered(dst, TruncateText(label, ChipWidth-16, FontSizeSmall),
			ix+ChipWidth/2, baseY+ChipHeight/2, FontSizeSmall, ColorBackground)
	}
}

func (r *CardRow) SelectedItem() (string, bool) {
	if len(r.Items) == 0 || r.Focused >= len(r.Items) {
		return "", false
	}
	return r.Items[r.Focused], true
}

func (r *CardRow) clamp(x float64) float64 {
	return math.Max(0, math.Min(r.maxOffset, x))
}

// DrawFilledRoundRect draws a filled rectangle with rounded corners.
func DrawFilledRoundRect(dst *ebiten.Image, x, y, w, h, radius float32, clr color.Color) {
	radius = min(radius, w/2, h/2)
	if radius <= 0 {
		vector.DrawFilledRect(dst, x, y, w, h, clr, true)
		return
	}
	vector.DrawFilledRect(dst, x+radius, y, w-2*radius, h, clr, false)
	vector.DrawFilledRect(dst, x, y+radius, radius, h-2*radius, clr, false)
	vector.DrawFilledRect(dst, x+w-radius, y+radius, radius, h-2*radius, clr, false)
	vector.DrawFilledCircle(dst, x+radius, y+radius, radius, clr, true)
	vector.DrawFilledCircle(dst, x+w-radius, y+radius, radius, clr, true)
	vector.DrawFilledCircle(dst, x+radius, y+h-radius, radius, clr, true)
	vector.DrawFilledCircle(dst, x+w-radius, y+h-radius, radius, clr, true)
}
