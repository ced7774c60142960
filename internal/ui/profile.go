package ui

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/depeter/hipster/internal/cache"
	"github.com/depeter/hipster/internal/config"
)

const (
	avatarSize = 120
	avatarY    = 72.0
	profileRow = 44.0
)

// ProfileScreen shows the configured user with a round avatar and a card of
// detail rows.
type ProfileScreen struct {
	profile  config.ProfileConfig
	imgCache *cache.ImageCache

	mu     sync.Mutex
	avatar *ebiten.Image // masked to a circle
}

// NewProfileScreen creates the screen. imgCache may be nil, in which case
// the placeholder avatar is drawn.
func NewProfileScreen(profile config.ProfileConfig, imgCache *cache.ImageCache) *ProfileScreen {
	return &ProfileScreen{profile: profile, imgCache: imgCache}
}

func (ps *ProfileScreen) Name() string { return "Profile" }

func (ps *ProfileScreen) OnEnter() {
	ps.mu.Lock()
	loaded := ps.avatar != nil
	ps.mu.Unlock()
	if loaded || ps.imgCache == nil || ps.profile.AvatarURL == "" {
		return
	}
	ps.imgCache.LoadAsync(ps.profile.AvatarURL, func(img *ebiten.Image) {
		round := roundAvatar(img)
		ps.mu.Lock()
		ps.avatar = round
		ps.mu.Unlock()
	})
}

func (ps *ProfileScreen) OnExit() {}

// roundAvatar scales img to cover the avatar square and clips it to a circle.
func roundAvatar(img *ebiten.Image) *ebiten.Image {
	out := ebiten.NewImage(avatarSize, avatarSize)
	vector.DrawFilledCircle(out, avatarSize/2, avatarSize/2, avatarSize/2, color.White, true)

	b := img.Bounds()
	scale := max(avatarSize/float64(b.Dx()), avatarSize/float64(b.Dy()))
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendSourceIn}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((avatarSize-float64(b.Dx())*scale)/2, (avatarSize-float64(b.Dy())*scale)/2)
	out.DrawImage(img, op)
	return out
}

func (ps *ProfileScreen) Update() (*ScreenTransition, error) {
	if dir, _, _ := InputState(); dir == DirDown {
		return &ScreenTransition{Type: TransitionFocusNavBar}, nil
	}
	return nil, nil
}

func (ps *ProfileScreen) Draw(dst *ebiten.Image) {
	dst.Fill(ColorBackground)
	DrawText(dst, "Profile", SectionPadding, 24, FontSizeTitle, ColorText)

	cx := float32(ScreenWidth / 2)
	cy := float32(avatarY + avatarSize/2)
	ps.mu.Lock()
	avatar := ps.avatar
	ps.mu.Unlock()
	if avatar != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(cx)-avatarSize/2, float64(cy)-avatarSize/2)
		dst.DrawImage(avatar, op)
	} else {
		vector.DrawFilledCircle(dst, cx, cy, avatarSize/2, ColorSurface, true)
		drawPersonIcon(dst, cx, cy, avatarSize/4, ColorTextMuted)
	}
	vector.StrokeCircle(dst, cx, cy, avatarSize/2, 4, ColorAccent, true)

	y := avatarY + avatarSize + 16
	DrawTextCentered(dst, ps.profile.Name, ScreenWidth/2, y+FontSizeHeading/2+2, FontSizeHeading+3, ColorText)
	y += 48

	rows := ps.profile.Details
	if len(rows) == 0 {
		return
	}
	w := float64(ScreenWidth - SectionPadding*2)
	h := float64(len(rows))*profileRow + SectionPadding
	DrawFilledRoundRect(dst, SectionPadding, float32(y), float32(w), float32(h), 10, ColorSurface)
	y += SectionPadding / 2
	for i, row := range rows {
		ty := y + float64(i)*profileRow + (profileRow-LineHeight(FontSizeBody))/2
		DrawText(dst, row.Label, SectionPadding*2, ty, FontSizeBody, ColorTextSecondary)
		value := TruncateText(row.Value, w/2, FontSizeBody)
		vw, _ := MeasureText(value, FontSizeBody)
		DrawText(dst, value, ScreenWidth-SectionPadding*2-vw, ty, FontSizeBody, ColorText)
	}
}
