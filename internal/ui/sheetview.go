package ui

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/hipster/internal/sheet"
)

// SheetItem is one row of a sheet's list.
type SheetItem struct {
	Title    string
	Subtitle string
}

// SheetBody is what a bottom sheet shows, top to bottom: a title, a
// description, a horizontal card row and a list that scrolls inside the
// sheet. Every part is optional.
type SheetBody struct {
	Title       string
	Description string
	Row         []string
	Items       []SheetItem
	// Empty is shown in place of an empty list.
	Empty string

	OnItem func(index int)
	OnRow  func(index int)
}

type dragOwner int

const (
	ownerNone dragOwner = iota
	ownerSheet
	ownerList
	ownerRow
)

// sheetLayout positions the body relative to the sheet's top edge.
type sheetLayout struct {
	titleY  float64
	descY   float64
	desc    []string
	rowY    float64
	listY   float64
	listH   float64
	content float64
}

// SheetView hosts a sheet.Sheet on screen. It measures the body, routes
// pointer input between the sheet, its nested list and its card row, and
// draws everything over the screen below.
type SheetView struct {
	Sheet *sheet.Sheet

	body    SheetBody
	layout  sheetLayout
	list    ScrollState
	row     *CardRow
	pointer PointerTracker
	owner   dragOwner
}

// NewSheetView creates a closed sheet. recognize is the distance a press
// travels before it counts as a drag.
func NewSheetView(cfg sheet.Config, recognize float64) *SheetView {
	v := &SheetView{
		Sheet:   sheet.New(cfg),
		row:     NewCardRow(nil),
		pointer: PointerTracker{Threshold: recognize},
	}
	v.list.OnScroll = v.Sheet.OnScroll
	v.list.OnDragBegin = v.Sheet.OnScrollDragBegin
	v.list.OnDragEnd = v.Sheet.OnScrollDragEnd
	v.list.OnMomentumBegin = v.Sheet.OnMomentumBegin
	v.list.OnMomentumEnd = v.Sheet.OnMomentumEnd
	return v
}

// Present shows body. onDismissed runs once after the sheet has fully closed.
func (v *SheetView) Present(body SheetBody, onDismissed func()) bool {
	if v.Sheet.State() != sheet.Closed {
		return false
	}
	v.SetBody(body)
	v.owner = ownerNone
	title := body.Title
	ok := v.Sheet.Present(func() {
		log.Printf("Sheet: dismissed %q", title)
		if onDismissed != nil {
			onDismissed()
		}
	})
	if ok {
		log.Printf("Sheet: present %q", title)
	}
	return ok
}

// SetBody replaces the content. The new height is measured on the next Update.
func (v *SheetView) SetBody(body SheetBody) {
	v.body = body
	v.list.Reset()
	v.row = NewCardRow(body.Row)
	v.Sheet.SetNestedScroll(len(body.Items) > 0)
}

func (v *SheetView) Body() SheetBody { return v.body }
func (v *SheetView) Visible() bool   { return v.Sheet.Visible() }
func (v *SheetView) Dismiss()        { v.Sheet.Dismiss() }

// Unmount drops the sheet with its pending callbacks.
func (v *SheetView) Unmount() {
	v.Sheet.Unmount()
	v.owner = ownerNone
}

// Update runs one frame: measure, route input, then animate.
func (v *SheetView) Update() {
	if !v.Visible() {
		return
	}
	SetDebugSheet(v.Sheet)

	v.relayout()
	if BackJustPressed() {
		v.Sheet.Dismiss()
	}
	if v.Sheet.State() != sheet.Closing {
		v.list.HandleMouseWheel()
	}
	v.HandlePointer(PollPointer())
	v.Advance()
}

// Advance steps the sheet and the nested list by one frame.
func (v *SheetView) Advance() {
	dt := FrameDuration()
	v.Sheet.Step(dt)
	v.list.Step(dt)
}

// relayout measures the body at the sheet's width and reports the height.
func (v *SheetView) relayout() {
	width := float64(ScreenWidth) - SectionPadding*2
	l := sheetLayout{}
	y := float64(SheetHandleArea)

	l.titleY = y
	if v.body.Title != "" {
		y += SectionTitleH
	}
	l.descY = y
	if v.body.Description != "" {
		l.desc = WrapText(v.body.Description, width, FontSizeBody)
		y += float64(len(l.desc))*LineHeight(FontSizeBody) + SectionGap
	}
	l.rowY = y
	if len(v.body.Row) > 0 {
		y += ChipHeight + SectionGap
	}
	l.listY = y
	switch {
	case len(v.body.Items) > 0:
		l.listH = float64(len(v.body.Items)) * ListItemHeight
	case v.body.Empty != "":
		l.listH = ListItemHeight
	}
	l.content = y + l.listH
	v.layout = l

	v.Sheet.OnContentSize(l.content)
	v.row.SetWidth(width)
	v.list.SetMax(l.listH - v.listViewport())
}

// listViewport is the visible height of the list at the current offset.
func (v *SheetView) listViewport() float64 {
	top := math.Max(0, v.Sheet.Offset()) + v.layout.listY
	return math.Max(0, v.Sheet.Config().ContainerHeight-SectionGap-top)
}

func (v *SheetView) listRect() ButtonRect {
	top := v.Sheet.Offset() + v.layout.listY
	return ButtonRect{X: 0, Y: top, W: ScreenWidth, H: v.listViewport()}
}

func (v *SheetView) rowRect() ButtonRect {
	if len(v.body.Row) == 0 {
		return ButtonRect{}
	}
	return ButtonRect{X: 0, Y: v.Sheet.Offset() + v.layout.rowY, W: ScreenWidth, H: ChipHeight}
}

// HandlePointer routes one pointer sample.
func (v *SheetView) HandlePointer(s PointerSample) {
	ev, action := v.pointer.Feed(s, Now())
	switch action {
	case PointerTap:
		v.tap(s.X, s.Y)
	case PointerDrag:
		v.drag(ev)
	}
}

func (v *SheetView) tap(x, y float64) {
	if y < v.Sheet.Offset() {
		v.Sheet.BackdropTap()
		return
	}
	if v.Sheet.State() == sheet.Closing {
		return
	}
	if r := v.rowRect(); r.Contains(x, y) {
		if i := v.row.HitTest(x, y, SectionPadding, r.Y); i >= 0 && v.body.OnRow != nil {
			v.body.OnRow(i)
		}
		return
	}
	if r := v.listRect(); r.Contains(x, y) && len(v.body.Items) > 0 {
		i := int((y - r.Y + v.list.ScrollY) / ListItemHeight)
		if i >= 0 && i < len(v.body.Items) && v.body.OnItem != nil {
			v.body.OnItem(i)
		}
	}
}

func (v *SheetView) drag(ev sheet.DragEvent) {
	switch ev.Phase {
	case sheet.PhaseStart:
		v.owner = v.claim(ev)
		switch v.owner {
		case ownerList:
			v.list.BeginDrag()
			v.list.DragTo(ev.DY)
		case ownerRow:
			v.row.BeginDrag()
			v.row.DragTo(ev.DX)
		}

	case sheet.PhaseMove:
		switch v.owner {
		case ownerSheet:
			if !v.Sheet.HandleDrag(ev) {
				v.owner = ownerNone
			}
		case ownerList:
			v.list.DragTo(ev.DY)
		case ownerRow:
			v.row.DragTo(ev.DX)
		}

	case sheet.PhaseEnd, sheet.PhaseCancel:
		switch v.owner {
		case ownerSheet:
			v.Sheet.HandleDrag(ev)
		case ownerList:
			velocity := ev.VelocityY
			if ev.Phase == sheet.PhaseCancel {
				velocity = 0
			}
			v.list.EndDrag(velocity)
		case ownerRow:
			v.row.EndDrag()
		}
		v.owner = ownerNone
	}
}

// claim decides who owns a drag that just crossed the recognition
// threshold. Horizontal drags over the card row scroll the row. Drags over
// a scrolled list, and upward drags once the sheet is expanded, scroll the
// list. Everything else is offered to the sheet, falling back to the list.
func (v *SheetView) claim(ev sheet.DragEvent) dragOwner {
	ox, oy := v.pointer.Origin()
	if oy < v.Sheet.Offset() {
		return ownerNone
	}

	horizontal := math.Abs(ev.DX) > math.Abs(ev.DY)
	if horizontal && v.rowRect().Contains(ox, oy) && v.row.MaxOffset() > 0 {
		return ownerRow
	}

	inList := v.listRect().Contains(ox, oy) && v.list.MaxScroll > 0
	if inList && !horizontal {
		scrolled := v.list.ScrollY > 0
		upwardExpanded := ev.DY < 0 && v.Sheet.State() == sheet.Expanded
		if scrolled || upwardExpanded {
			return ownerList
		}
	}

	if v.Sheet.HandleDrag(ev) {
		return ownerSheet
	}
	if inList && !horizontal {
		return ownerList
	}
	return ownerNone
}

// Draw renders the backdrop, the sheet surface and the body.
func (v *SheetView) Draw(dst *ebiten.Image) {
	if !v.Visible() {
		return
	}
	w := float32(ScreenWidth)
	containerH := float32(v.Sheet.Config().ContainerHeight)

	alpha := uint8(math.Round(0x80 * v.Sheet.Openness()))
	vector.DrawFilledRect(dst, 0, 0, w, containerH, color.RGBA{A: alpha}, false)

	top := float32(v.Sheet.Offset())
	if top >= containerH {
		return
	}
	DrawFilledRoundRect(dst, 0, top, w, containerH-top+SheetRadius*2, SheetRadius, ColorSheet)
	DrawFilledRoundRect(dst, w/2-22, top+10, 44, 5, 2.5, ColorHandle)

	base := float64(top)
	l := v.layout
	if v.body.Title != "" {
		DrawText(dst, v.body.Title, SectionPadding, base+l.titleY, FontSizeHeading, ColorText)
	}
	for i, line := range l.desc {
		DrawText(dst, line, SectionPadding, base+l.descY+float64(i)*LineHeight(FontSizeBody), FontSizeBody, ColorTextSecondary)
	}
	if len(v.body.Row) > 0 {
		v.row.Draw(dst, SectionPadding, base+l.rowY)
	}
	v.drawList(dst)
}

func (v *SheetView) drawList(dst *ebiten.Image) {
	r := v.listRect()
	if r.H <= 0 {
		return
	}
	if len(v.body.Items) == 0 {
		if v.body.Empty != "" {
			DrawText(dst, v.body.Empty, SectionPadding, r.Y+18, FontSizeBody, ColorTextMuted)
		}
		return
	}

	clip := image.Rect(0, int(r.Y), ScreenWidth, int(r.Y+r.H))
	sub, ok := dst.SubImage(clip).(*ebiten.Image)
	if !ok {
		return
	}
	for i, item := range v.body.Items {
		iy := r.Y + float64(i)*ListItemHeight - v.list.ScrollY
		if iy+ListItemHeight < r.Y || iy > r.Y+r.H {
			continue
		}
		DrawText(sub, TruncateText(item.Title, ScreenWidth-SectionPadding*2, FontSizeBody),
			SectionPadding, iy+8, FontSizeBody, ColorText)
		if item.Subtitle != "" {
			DrawText(sub, TruncateText(item.Subtitle, ScreenWidth-SectionPadding*2, FontSizeSmall),
				SectionPadding, iy+30, FontSizeSmall, ColorTextSecondary)
		}
		vector.DrawFilledRect(sub, SectionPadding, float32(iy+ListItemHeight-1),
			ScreenWidth-SectionPadding*2, 1, ColorSurfaceHover, false)
	}
}
