package sheet

// State is the sheet's position in its presentation cycle.
type State int

const (
	Closed State = iota
	Opening
	Resting
	Dragging
	Expanded
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Opening:
		return "Opening"
	case Resting:
		return "Resting"
	case Dragging:
		return "Dragging"
	case Expanded:
		return "Expanded"
	case Closing:
		return "Closing"
	default:
		return "Unknown"
	}
}
