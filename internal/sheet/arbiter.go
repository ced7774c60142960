package sheet

// Arbiter decides whether the sheet or its nested scroll region owns vertical
// drag input. Without a nested region the sheet always owns it.
type Arbiter struct {
	nested       bool
	scrollY      float64
	dragging     bool
	decelerating bool
}

// SetNested declares whether the sheet content has a scroll region.
func (a *Arbiter) SetNested(nested bool) {
	a.nested = nested
	if !nested {
		a.scrollY = 0
		a.dragging = false
		a.decelerating = false
	}
}

// OnScroll records the nested region's content offset.
func (a *Arbiter) OnScroll(offsetY float64) { a.scrollY = offsetY }

func (a *Arbiter) OnDragBegin()     { a.dragging = true }
func (a *Arbiter) OnDragEnd()       { a.dragging = false }
func (a *Arbiter) OnMomentumBegin() { a.decelerating = true }
func (a *Arbiter) OnMomentumEnd()   { a.decelerating = false }

// Ownership reports whether the nested region sits at its top edge and so
// yields vertical movement to the sheet.
func (a *Arbiter) Ownership() bool {
	return !a.nested || a.scrollY <= 0
}

// AllowsStart reports whether a new sheet drag may begin. A region that is
// still being dragged or flung keeps the gesture even at its top edge.
func (a *Arbiter) AllowsStart() bool {
	if !a.nested {
		return true
	}
	return a.Ownership() && !a.dragging && !a.decelerating
}
