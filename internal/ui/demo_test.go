package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/depeter/hipster/internal/sheet"
)

func newDemoFixture(t *testing.T) *DemoScreen {
	t.Helper()
	require.NoError(t, InitFonts(goregular.TTF))
	return NewDemoScreen(sheet.DefaultConfig(ScreenHeight), 10)
}

func demoDrag(ds *DemoScreen, x, y, dx, dy float64) {
	ds.HandlePointer(PointerSample{X: x, Y: y, JustPressed: true, Pressed: true})
	for i := 1; i <= 10; i++ {
		frameClock += sampleGap
		f := float64(i) / 10
		ds.HandlePointer(PointerSample{X: x + dx*f, Y: y + dy*f, Pressed: true})
	}
	frameClock += sampleGap
	ds.HandlePointer(PointerSample{X: x + dx, Y: y + dy, JustReleased: true})
}

func TestDemoTapOpensCardInSheet(t *testing.T) {
	ds := newDemoFixture(t)

	y := demoListTop + CardHeight + CardGap + 10
	ds.HandlePointer(PointerSample{X: 100, Y: y, JustPressed: true, Pressed: true})
	frameClock += sampleGap
	ds.HandlePointer(PointerSample{X: 100, Y: y, JustReleased: true})

	require.True(t, ds.sheet.Visible())
	assert.Equal(t, 1, ds.Selected())
	body := ds.sheet.Body()
	assert.Equal(t, "Card 2", body.Title)
	assert.Equal(t, "Detailed description for Card 2", body.Description)
	assert.Len(t, body.Row, 7)
	assert.True(t, ds.Modal())

	assert.False(t, ds.Select(4), "a sheet that is already up is not replaced")

	settleView(t, ds.sheet)
	assert.Equal(t, sheet.Resting, ds.sheet.Sheet.State())

	ds.sheet.Dismiss()
	settleView(t, ds.sheet)
	assert.False(t, ds.sheet.Visible())
	assert.Equal(t, -1, ds.Selected(), "closing clears the selection")

	require.True(t, ds.Select(4))
	assert.Equal(t, 4, ds.Selected())
}

func TestDemoUnmountDropsClosingSheet(t *testing.T) {
	ds := newDemoFixture(t)
	require.True(t, ds.Select(2))
	settleView(t, ds.sheet)

	ds.OnExit()
	require.Equal(t, sheet.Closing, ds.sheet.Sheet.State())
	ds.Unmount()

	assert.False(t, ds.sheet.Visible())
	assert.False(t, ds.Modal())
	assert.Equal(t, -1, ds.Selected())
	assert.False(t, ds.Select(3), "an unmounted sheet stays down")
	assert.Equal(t, -1, ds.Selected())
}

func TestDemoHorizontalDragScrollsRow(t *testing.T) {
	ds := newDemoFixture(t)

	demoDrag(ds, 300, demoRowY+ChipHeight/2, -120, 0)
	assert.InDelta(t, 120, ds.row.OffsetX, 0.01)
	assert.Zero(t, ds.list.ScrollY, "the card list stays put")
	assert.False(t, ds.sheet.Visible())
}

func TestDemoVerticalDragScrollsList(t *testing.T) {
	ds := newDemoFixture(t)
	require.Greater(t, ds.list.MaxScroll, 0.0)

	demoDrag(ds, 200, demoListTop+300, 0, -80)
	assert.Greater(t, ds.list.ScrollY, 0.0)
	assert.Zero(t, ds.row.OffsetX)
	assert.False(t, ds.sheet.Visible(), "a drag is not a tap")
}
