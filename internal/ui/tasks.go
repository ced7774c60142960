package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Task is one card on the home screen. Tab is the screen it opens.
type Task struct {
	Tab         string
	Title       string
	Description string
	Details     string
}

// DefaultTasks lists the app's three features.
var DefaultTasks = []Task{
	{
		Tab:         "Tracking",
		Title:       "Task 1",
		Description: "Offline Location Tracking & Route Drawing",
		Details:     "Tracks movement, draws the travelled path live and saves every route locally so it survives restarts without a connection.",
	},
	{
		Tab:         "Route",
		Title:       "Task 2",
		Description: "Place Finder & Route Drawer",
		Details:     "Search a start and an end place, fetch the driving route and draw it fitted to the screen.",
	},
	{
		Tab:         "Sheet",
		Title:       "Task 3",
		Description: "BottomSheet with Dynamic Height Based on Content",
		Details:     "A reusable bottom sheet that sizes itself to what it shows and can be dragged open, expanded or dismissed.",
	},
}

const (
	tasksHeaderH = 132.0
	taskTextW    = ScreenWidth - SectionPadding*4
)

// TasksScreen is the home tab: a header and one card per task. Choosing a
// card switches to the task's tab.
type TasksScreen struct {
	Tasks []Task

	view    *ScrollView
	focused int
	cards   []ButtonRect // content coordinates
}

func NewTasksScreen() *TasksScreen {
	top := tasksHeaderH + SectionGap
	return &TasksScreen{
		Tasks: DefaultTasks,
		view:  NewScrollView(ButtonRect{X: 0, Y: top, W: ScreenWidth, H: ScreenHeight - NavBarHeight - top}),
	}
}

func (ts *TasksScreen) Name() string { return "Tasks" }
func (ts *TasksScreen) OnEnter()     { ts.view.Reset() }
func (ts *TasksScreen) OnExit()      {}

func (ts *TasksScreen) layout() {
	ts.cards = ts.cards[:0]
	y := 0.0
	for _, t := range ts.Tasks {
		h := ts.cardHeight(t)
		ts.cards = append(ts.cards, ButtonRect{X: SectionPadding, Y: y, W: ScreenWidth - SectionPadding*2, H: h})
		y += h + CardGap
	}
	ts.view.SetContentHeight(y + SectionPadding)
}

func (ts *TasksScreen) cardHeight(t Task) float64 {
	lines := len(WrapText(t.Details, taskTextW, FontSizeSmall))
	return 16 + 24 + 22 + float64(lines)*LineHeight(FontSizeSmall) + 16
}

func (ts *TasksScreen) Update() (*ScreenTransition, error) {
	ts.layout()

	dir, enter, _ := InputState()
	switch dir {
	case DirUp:
		if ts.focused > 0 {
			ts.focused--
		}
	case DirDown:
		if ts.focused >= len(ts.Tasks)-1 {
			return &ScreenTransition{Type: TransitionFocusNavBar}, nil
		}
		ts.focused++
	}
	if dir != DirNone && ts.focused < len(ts.cards) {
		c := ts.cards[ts.focused]
		ts.view.EnsureVisible(c.Y, c.Y+c.H, ts.view.Rect.H)
	}
	if enter {
		return ts.open(ts.focused), nil
	}

	if x, y, tapped := ts.view.Update(PollPointer()); tapped {
		if i := ts.cardAt(x, y); i >= 0 {
			ts.focused = i
			return ts.open(i), nil
		}
	}
	return nil, nil
}

// cardAt returns the card under content point (x, y), or -1.
func (ts *TasksScreen) cardAt(x, y float64) int {
	for i, c := range ts.cards {
		if c.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (ts *TasksScreen) open(i int) *ScreenTransition {
	if i < 0 || i >= len(ts.Tasks) {
		return nil
	}
	return &ScreenTransition{Type: TransitionTab, Tab: ts.Tasks[i].Tab}
}

func (ts *TasksScreen) Draw(dst *ebiten.Image) {
	dst.Fill(ColorBackground)

	DrawFilledRoundRect(dst, 0, -SheetRadius, ScreenWidth, tasksHeaderH+SheetRadius, SheetRadius, ColorPrimaryDark)
	vector.DrawFilledCircle(dst, SectionPadding+32, 70, 32, ColorPrimary, true)
	drawListIcon(dst, SectionPadding+32, 70, 14, ColorText)
	DrawText(dst, "Welcome to Hipster!", SectionPadding+80, 48, FontSizeTitle, ColorText)
	DrawText(dst, "Completed Tasks", SectionPadding+80, 84, FontSizeBody, ColorText)

	sub := ts.view.Clip(dst)
	base := ts.view.Rect.Y - ts.view.ScrollY
	for i, t := range ts.Tasks {
		if i >= len(ts.cards) {
			break
		}
		c := ts.cards[i]
		y := base + c.Y
		if y+c.H < ts.view.Rect.Y || y > ts.view.Rect.Y+ts.view.Rect.H {
			continue
		}
		DrawFilledRoundRect(sub, float32(c.X), float32(y), float32(c.W), float32(c.H), CardRadius, ColorSurface)
		if i == ts.focused {
			vector.StrokeRect(sub, float32(c.X)+1, float32(y)+1, float32(c.W)-2, float32(c.H)-2, 2, ColorFocusBorder, false)
		}
		x := c.X + SectionPadding
		DrawText(sub, t.Title, x, y+16, FontSizeSmall, ColorPrimary)
		DrawText(sub, t.Description, x, y+40, FontSizeBody, ColorText)
		DrawTextWrapped(sub, t.Details, x, y+62, taskTextW, FontSizeSmall, ColorTextSecondary)
	}
}
