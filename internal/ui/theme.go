package ui

import "image/color"

// Colors: warm dark theme
var (
	ColorBackground    = color.RGBA{R: 0x14, G: 0x13, B: 0x1A, A: 0xFF}
	ColorSurface       = color.RGBA{R: 0x22, G: 0x20, B: 0x2B, A: 0xFF}
	ColorSurfaceHover  = color.RGBA{R: 0x2E, G: 0x2B, B: 0x3A, A: 0xFF}
	ColorPrimary       = color.RGBA{R: 0xFF, G: 0x7A, B: 0x59, A: 0xFF} // coral
	ColorPrimaryDark   = color.RGBA{R: 0xC8, G: 0x58, B: 0x3C, A: 0xFF}
	ColorAccent        = color.RGBA{R: 0x5C, G: 0xC8, B: 0xB4, A: 0xFF} // teal, route lines
	ColorText          = color.RGBA{R: 0xEE, G: 0xEA, B: 0xE4, A: 0xFF}
	ColorTextSecondary = color.RGBA{R: 0xA0, G: 0x9A, B: 0xA8, A: 0xFF}
	ColorTextMuted     = color.RGBA{R: 0x6C, G: 0x66, B: 0x76, A: 0xFF}
	ColorFocusBorder   = color.RGBA{R: 0xFF, G: 0x7A, B: 0x59, A: 0xFF}
	ColorOverlay       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xC0}
	ColorError         = color.RGBA{R: 0xE0, G: 0x50, B: 0x50, A: 0xFF}
	ColorSuccess       = color.RGBA{R: 0x50, G: 0xC0, B: 0x70, A: 0xFF}

	ColorSheet   = color.RGBA{R: 0x2A, G: 0x27, B: 0x35, A: 0xFF}
	ColorHandle  = color.RGBA{R: 0x70, G: 0x6A, B: 0x7C, A: 0xFF}
	ColorMapTile = color.RGBA{R: 0x1B, G: 0x22, B: 0x26, A: 0xFF}
)

// Layout constants. The logical screen is a portrait phone; ebiten scales
// it to the window.
const (
	ScreenWidth  = 430
	ScreenHeight = 900

	SectionPadding = 20
	SectionGap     = 16
	SectionTitleH  = 32

	NavBarHeight = 64

	CardHeight = 84
	CardGap    = 12
	CardRadius = 14

	ChipWidth  = 132
	ChipHeight = 96
	ChipGap    = 12

	ListItemHeight = 56

	SheetHandleArea = 28
	SheetRadius     = 18

	FontSizeTitle   = 26
	FontSizeHeading = 19
	FontSizeBody    = 15
	FontSizeSmall   = 13
	FontSizeCaption = 11

	ScrollAnimSpeed = 0.18

	// ScrollWheelSpeed is pixels per mouse wheel scroll unit.
	ScrollWheelSpeed = 48
)
