package ui

import (
	"bytes"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	fontSource *text.GoTextFaceSource
	fontFaces  map[float64]*text.GoTextFace
)

func InitFonts(ttfData []byte) error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return err
	}
	fontSource = src
	fontFaces = make(map[float64]*text.GoTextFace)
	return nil
}

func GetFace(size float64) *text.GoTextFace {
	if face, ok := fontFaces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source: fontSource,
		Size:   size,
	}
	fontFaces[size] = face
	return face
}

func DrawText(dst *ebiten.Image, txt string, x, y float64, size float64, clr color.Color) {
	face := GetFace(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, txt, face, op)
}

func DrawTextCentered(dst *ebiten.Image, txt string, cx, cy float64, size float64, clr color.Color) {
	w, h := MeasureText(txt, size)
	DrawText(dst, txt, cx-w/2, cy-h/2, size, clr)
}

func MeasureText(txt string, size float64) (float64, float64) {
	return text.Measure(txt, GetFace(size), 0)
}

// LineHeight is the advance between wrapped lines at size.
func LineHeight(size float64) float64 {
	return size * 1.4
}

// WrapText splits txt into lines no wider than maxWidth.
func WrapText(txt string, maxWidth, size float64) []string {
	words := strings.Fields(txt)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		test := line + " " + word
		if w, _ := MeasureText(test, size); w > maxWidth {
			lines = append(lines, line)
			line = word
		} else {
			line = test
		}
	}
	return append(lines, line)
}

// DrawTextWrapped draws txt wrapped to maxWidth and returns the height used.
func DrawTextWrapped(dst *ebiten.Image, txt string, x, y, maxWidth float64, size float64, clr color.Color) float64 {
	lines := WrapText(txt, maxWidth, size)
	for i, line := range lines {
		DrawText(dst, line, x, y+float64(i)*LineHeight(size), size, clr)
	}
	return float64(len(lines)) * LineHeight(size)
}

// TruncateText shortens txt with an ellipsis so it fits maxWidth.
func TruncateText(txt string, maxWidth, size float64) string {
	if w, _ := MeasureText(txt, size); w <= maxWidth {
		return txt
	}
	runes := []rune(txt)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		s := string(runes) + "…"
		if w, _ := MeasureText(s, size); w <= maxWidth {
			return s
		}
	}
	return ""
}
