package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Direction represents a navigation direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// ButtonRect is a clickable area recorded during Draw and hit-tested in Update.
type ButtonRect struct {
	X, Y, W, H float64
}

func (r ButtonRect) Contains(x, y float64) bool {
	return r.W > 0 && x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// IsModifierPressed reports whether any modifier key (Alt, Ctrl, Shift, Meta) is held.
func IsModifierPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyAlt) ||
		ebiten.IsKeyPressed(ebiten.KeyControl) ||
		ebiten.IsKeyPressed(ebiten.KeyShift) ||
		ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// InputState returns the current navigation direction and action keys pressed this frame.
func InputState() (dir Direction, enter, back bool) {
	if inputRepeating(ebiten.KeyArrowUp) {
		dir = DirUp
	} else if inputRepeating(ebiten.KeyArrowDown) {
		dir = DirDown
	} else if inputRepeating(ebiten.KeyArrowLeft) {
		dir = DirLeft
	} else if inputRepeating(ebiten.KeyArrowRight) {
		dir = DirRight
	}
	enter = inpututil.IsKeyJustPressed(ebiten.KeyEnter) && !IsModifierPressed()
	back = BackJustPressed()
	return
}

// BackJustPressed reports Escape, the mouse back button or a hardware back
// key pressed this frame.
func BackJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButton3) ||
		hardwareBack
}

// UpdateInputState must be called at the end of each Update() to track key
// state and advance the frame clock.
func UpdateInputState() {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if ebiten.IsKeyPressed(k) {
			keyHoldFrames[k]++
		} else {
			delete(keyHoldFrames, k)
		}
	}
	pointerPolled = false
	hardwareBack = takeBackKey()
	frameClock += FrameDuration()
}

var (
	keyHoldFrames = make(map[ebiten.Key]int)
	frameClock    time.Duration
	// hardwareBack latches a back key read off-thread for one whole frame.
	hardwareBack bool
)

// FrameDuration is the simulated time one Update call covers.
func FrameDuration() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

// Now returns the frame clock. Gesture velocities and animations are measured
// against it so that a slow frame never skews them.
func Now() time.Duration { return frameClock }

const (
	repeatDelay    = 18 // frames before repeat starts (~300ms at 60fps)
	repeatInterval = 4  // frames between repeats (~67ms at 60fps)
)

func inputRepeating(key ebiten.Key) bool {
	if !ebiten.IsKeyPressed(key) {
		return false
	}
	frames, held := keyHoldFrames[key]
	if !held || frames == 0 {
		return true // just pressed this frame
	}
	if frames >= repeatDelay && (frames-repeatDelay)%repeatInterval == 0 {
		return true
	}
	return false
}

// PointerSample is the primary pointer this tick: the first touch when one
// is down, otherwise the left mouse button.
type PointerSample struct {
	X, Y         float64
	JustPressed  bool
	Pressed      bool
	JustReleased bool
}

var (
	touchIDs      []ebiten.TouchID
	trackedTouch  ebiten.TouchID = -1
	pointerPolled bool
	lastPointer   PointerSample
)

// PollPointer reads the primary pointer. Repeated calls within one tick
// return the same sample.
func PollPointer() PointerSample {
	if pointerPolled {
		return lastPointer
	}
	pointerPolled = true
	lastPointer = readPointer()
	return lastPointer
}

func readPointer() PointerSample {
	if trackedTouch >= 0 {
		if inpututil.IsTouchJustReleased(trackedTouch) {
			x, y := inpututil.TouchPositionInPreviousTick(trackedTouch)
			trackedTouch = -1
			return PointerSample{X: float64(x), Y: float64(y), JustReleased: true}
		}
		x, y := ebiten.TouchPosition(trackedTouch)
		return PointerSample{X: float64(x), Y: float64(y), Pressed: true}
	}

	touchIDs = inpututil.AppendJustPressedTouchIDs(touchIDs[:0])
	if len(touchIDs) > 0 {
		trackedTouch = touchIDs[0]
		x, y := ebiten.TouchPosition(trackedTouch)
		return PointerSample{X: float64(x), Y: float64(y), JustPressed: true, Pressed: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		X:            float64(x),
		Y:            float64(y),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// PointInRect returns true if point (px, py) is inside the rectangle (rx, ry, rw, rh).
func PointInRect(px, py float64, rx, ry, rw, rh float64) bool {
	return px >= rx && px <= rx+rw && py >= ry && py <= ry+rh
}

// MouseWheelDelta returns the mouse wheel scroll delta.
func MouseWheelDelta() (dx, dy float64) {
	return ebiten.Wheel()
}

// Lerp for smooth scrolling
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
