package ui

import (
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TextInput handles text editing with cursor navigation.
type TextInput struct {
	Text   string
	Cursor int // rune position within Text
}

// NewTextInput creates a TextInput initialized with the given text and cursor at the end.
func NewTextInput(text string) TextInput {
	return TextInput{
		Text:   text,
		Cursor: utf8.RuneCountInString(text),
	}
}

// SetText replaces the text and moves cursor to the end.
func (ti *TextInput) SetText(text string) {
	ti.Text = text
	ti.Cursor = utf8.RuneCountInString(text)
}

// Clear resets the text and cursor.
func (ti *TextInput) Clear() {
	ti.Text = ""
	ti.Cursor = 0
}

// Update processes input events. Returns true if the text changed.
func (ti *TextInput) Update() bool {
	changed := false
	runeCount := utf8.RuneCountInString(ti.Text)

	// Cursor movement
	if inputRepeating(ebiten.KeyArrowLeft) {
		if ti.Cursor > 0 {
			ti.Cursor--
		}
	}
	if inputRepeating(ebiten.KeyArrowRight) {
		if ti.Cursor < runeCount {
			ti.Cursor++
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		ti.Cursor = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		ti.Cursor = runeCount
	}

	// Ctrl+U clears the line
	if inpututil.IsKeyJustPressed(ebiten.KeyU) && ebiten.IsKeyPressed(ebiten.KeyControl) {
		if ti.Text != "" {
			ti.Clear()
			changed = true
		}
	}

	// Character input
	if ti.Insert(ebiten.AppendInputChars(nil)) {
		changed = true
	}

	// Backspace deletes before the cursor
	if inputRepeating(ebiten.KeyBackspace) && ti.Backspace() {
		changed = true
	}

	// Delete removes after the cursor
	if inputRepeating(ebiten.KeyDelete) && ti.Cursor < runeCount {
		_, after := ti.splitAtCursor()
		before := ti.Text[:len(ti.Text)-len(after)]
		_, size := utf8.DecodeRuneInString(after)
		ti.Text = before + after[size:]
		changed = true
	}

	return changed
}

// DisplayText returns the text with a cursor indicator inserted at the cursor position.
func (ti *TextInput) DisplayText() string {
	before, after := ti.splitAtCursor()
	return before + "│" + after
}

// Insert types runes at the cursor, skipping control characters. Returns
// true if anything was inserted.
func (ti *TextInput) Insert(runes []rune) bool {
	inserted := false
	for _, r := range runes {
		if !unicode.IsControl(r) {
			ti.insertAtCursor(string(r))
			inserted = true
		}
	}
	return inserted
}

// Backspace deletes the rune before the cursor.
func (ti *TextInput) Backspace() bool {
	if ti.Cursor == 0 {
		return false
	}
	before, after := ti.splitAtCursor()
	_, size := utf8.DecodeLastRuneInString(before)
	ti.Text = before[:len(before)-size] + after
	ti.Cursor--
	return true
}

func (ti *TextInput) insertAtCursor(s string) {
	before, after := ti.splitAtCursor()
	ti.Text = before + s + after
	ti.Cursor += utf8.RuneCountInString(s)
}

// splitAtCursor returns the text before and after the cursor position.
func (ti *TextInput) splitAtCursor() (before, after string) {
	bytePos := 0
	for i := 0; i < ti.Cursor; i++ {
		_, size := utf8.DecodeRuneInString(ti.Text[bytePos:])
		bytePos += size
	}
	return ti.Text[:bytePos], ti.Text[bytePos:]
}

// CursorAtEnd reports whether the cursor is at the end of the text.
func (ti *TextInput) CursorAtEnd() bool {
	return ti.Cursor >= utf8.RuneCountInString(ti.Text)
}

// DrawField draws ti as a single-line field in rect. The cursor is shown
// only when focused; placeholder fills an empty, unfocused field.
func (ti *TextInput) DrawField(dst *ebiten.Image, r ButtonRect, placeholder string, focused bool) {
	border := ColorTextMuted
	width := float32(1)
	if focused {
		border = ColorFocusBorder
		width = 2
	}
	DrawFilledRoundRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 8, ColorSurface)
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, border, false)

	ty := r.Y + (r.H-FontSizeBody)/2 - 2
	switch {
	case focused:
		DrawText(dst, TruncateText(ti.DisplayText(), r.W-24, FontSizeBody), r.X+12, ty, FontSizeBody, ColorText)
	case ti.Text == "":
		DrawText(dst, placeholder, r.X+12, ty, FontSizeBody, ColorTextMuted)
	default:
		DrawText(dst, TruncateText(ti.Text, r.W-24, FontSizeBody), r.X+12, ty, FontSizeBody, ColorText)
	}
}
