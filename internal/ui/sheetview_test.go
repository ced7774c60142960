package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depeter/hipster/internal/sheet"
)

const sampleGap = 16 * time.Millisecond

func frame(v *SheetView) {
	v.relayout()
	v.Advance()
	frameClock += FrameDuration()
}

func settleView(t *testing.T, v *SheetView) {
	t.Helper()
	frame(v)
	for i := 0; i < 600 && v.Sheet.Animating(); i++ {
		frame(v)
	}
	require.False(t, v.Sheet.Animating(), "sheet never settled")
}

// dragBy presses at (x, y), moves by (dx, dy) in ten steps, holds still so
// the velocity decays, then releases.
func dragBy(v *SheetView, x, y, dx, dy float64) {
	v.HandlePointer(PointerSample{X: x, Y: y, JustPressed: true, Pressed: true})
	for i := 1; i <= 10; i++ {
		frameClock += sampleGap
		f := float64(i) / 10
		v.HandlePointer(PointerSample{X: x + dx*f, Y: y + dy*f, Pressed: true})
	}
	for range 6 {
		frameClock += sampleGap
		v.HandlePointer(PointerSample{X: x + dx, Y: y + dy, Pressed: true})
	}
	frameClock += sampleGap
	v.HandlePointer(PointerSample{X: x + dx, Y: y + dy, JustReleased: true})
}

func tapAt(v *SheetView, x, y float64) {
	v.HandlePointer(PointerSample{X: x, Y: y, JustPressed: true, Pressed: true})
	frameClock += sampleGap
	v.HandlePointer(PointerSample{X: x, Y: y, JustReleased: true})
}

func listBody(n int) SheetBody {
	items := make([]SheetItem, n)
	for i := range items {
		items[i] = SheetItem{Title: fmt.Sprintf("Item %d", i+1)}
	}
	return SheetBody{Title: "Results", Items: items}
}

func newTestView() *SheetView {
	return NewSheetView(sheet.DefaultConfig(ScreenHeight), 10)
}

func TestSheetViewRestsAtMeasuredHeight(t *testing.T) {
	v := newTestView()
	require.True(t, v.Present(listBody(30), nil))
	settleView(t, v)

	// 30 rows overflow, so the sheet stops at 80% of the container.
	assert.Equal(t, sheet.Resting, v.Sheet.State())
	assert.InDelta(t, 180, v.Sheet.Offset(), 0.5)
	assert.Greater(t, v.list.MaxScroll, 0.0)

	short := newTestView()
	require.True(t, short.Present(listBody(4), nil))
	settleView(t, short)
	// handle 28 + title 32 + 4 rows + margin 40
	assert.InDelta(t, ScreenHeight-(28+32+4*ListItemHeight+40), short.Sheet.Offset(), 0.5)
	assert.Zero(t, short.list.MaxScroll)
}

func TestSheetViewNestedListOwnership(t *testing.T) {
	v := newTestView()
	v.Present(listBody(30), nil)
	settleView(t, v)
	listY := v.listRect().Y

	// Upward drag from a resting sheet expands it even over the list.
	dragBy(v, 200, listY+100, 0, -200)
	settleView(t, v)
	require.Equal(t, sheet.Expanded, v.Sheet.State())
	assert.InDelta(t, 0, v.Sheet.Offset(), 0.5)

	// Once expanded, upward drags scroll the list.
	listY = v.listRect().Y
	dragBy(v, 200, listY+300, 0, -100)
	assert.InDelta(t, 100, v.list.ScrollY, 0.01)
	assert.Equal(t, sheet.Expanded, v.Sheet.State())
	assert.False(t, v.Sheet.ScrollOwnership())

	// A downward drag over a scrolled list scrolls it back instead of moving the sheet.
	dragBy(v, 200, listY+100, 0, 60)
	assert.InDelta(t, 40, v.list.ScrollY, 0.01)
	assert.InDelta(t, 0, v.Sheet.Offset(), 0.01)

	dragBy(v, 200, listY+100, 0, 60)
	assert.Zero(t, v.list.ScrollY)
	assert.True(t, v.Sheet.ScrollOwnership())

	// At the top, a downward drag moves the sheet again.
	dragBy(v, 200, listY+100, 0, 150)
	assert.Equal(t, sheet.Closing, v.Sheet.State())
}

func TestSheetViewDragDismiss(t *testing.T) {
	v := newTestView()
	dismissed := 0
	v.Present(listBody(3), func() { dismissed++ })
	settleView(t, v)

	top := v.Sheet.Offset()
	dragBy(v, 200, top+10, 0, 150)
	require.Equal(t, sheet.Closing, v.Sheet.State())
	settleView(t, v)

	assert.Equal(t, sheet.Closed, v.Sheet.State())
	assert.Equal(t, 1, dismissed)
	assert.False(t, v.Visible())
}

func TestSheetViewShortDragSettles(t *testing.T) {
	v := newTestView()
	v.Present(listBody(3), nil)
	settleView(t, v)
	rest := v.Sheet.Offset()

	dragBy(v, 200, rest+10, 0, 60)
	assert.Equal(t, sheet.Resting, v.Sheet.State())
	settleView(t, v)
	assert.InDelta(t, rest, v.Sheet.Offset(), 0.5)
}

func TestSheetViewTaps(t *testing.T) {
	v := newTestView()
	var picked []int
	body := listBody(5)
	body.OnItem = func(i int) { picked = append(picked, i) }
	v.Present(body, nil)
	settleView(t, v)

	r := v.listRect()
	tapAt(v, 100, r.Y+2*ListItemHeight+10)
	assert.Equal(t, []int{2}, picked)

	// A press that wobbles less than the recognition distance is still a tap.
	v.HandlePointer(PointerSample{X: 100, Y: r.Y + 5, JustPressed: true, Pressed: true})
	frameClock += sampleGap
	v.HandlePointer(PointerSample{X: 104, Y: r.Y + 9, Pressed: true})
	frameClock += sampleGap
	v.HandlePointer(PointerSample{X: 104, Y: r.Y + 9, JustReleased: true})
	assert.Equal(t, []int{2, 0}, picked)

	tapAt(v, 100, 20)
	assert.Equal(t, sheet.Closing, v.Sheet.State(), "backdrop tap closes")
}

func TestSheetViewRowTakesHorizontalDrags(t *testing.T) {
	v := newTestView()
	v.Present(SheetBody{Title: "Card", Row: []string{"1", "2", "3", "4", "5", "6", "7"}}, nil)
	settleView(t, v)
	rest := v.Sheet.Offset()
	row := v.rowRect()
	require.Positive(t, v.row.MaxOffset())

	dragBy(v, 300, row.Y+40, -120, 5)
	assert.InDelta(t, 120, v.row.OffsetX, 0.01)
	assert.Equal(t, sheet.Resting, v.Sheet.State())
	assert.InDelta(t, rest, v.Sheet.Offset(), 0.01)

	// Horizontal drags outside the row go nowhere.
	dragBy(v, 300, rest+10, 150, 5)
	assert.Equal(t, sheet.Resting, v.Sheet.State())
	assert.InDelta(t, rest, v.Sheet.Offset(), 0.01)
}

func TestSheetViewPresentOnlyWhenClosed(t *testing.T) {
	v := newTestView()
	require.True(t, v.Present(listBody(2), nil))
	assert.False(t, v.Present(listBody(2), nil))

	v.Unmount()
	assert.False(t, v.Visible())
	v.HandlePointer(PointerSample{X: 1, Y: 1, JustPressed: true, Pressed: true})
	v.HandlePointer(PointerSample{X: 1, Y: 1, JustReleased: true})
}
