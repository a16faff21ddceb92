package mouse

import (
	"testing"

	"github.com/dshills/multicaret/internal/input/key"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button   Button
		expected string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
		{ButtonScrollUp, "scroll-up"},
		{ButtonScrollDown, "scroll-down"},
		{Button(99), "none"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.button.String(); got != tt.expected {
				t.Errorf("Button.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestButtonIsScroll(t *testing.T) {
	for _, b := range []Button{ButtonScrollUp, ButtonScrollDown} {
		if !b.IsScroll() {
			t.Errorf("%s.IsScroll() = false, want true", b)
		}
	}
	for _, b := range []Button{ButtonNone, ButtonLeft, ButtonMiddle, ButtonRight} {
		if b.IsScroll() {
			t.Errorf("%s.IsScroll() = true, want false", b)
		}
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "none"},
		{ActionPress, "press"},
		{ActionRelease, "release"},
		{ActionMove, "move"},
		{ActionDrag, "drag"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("Action.String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestEventString(t *testing.T) {
	ev := Event{Position: Position{X: 3, Y: 4}, Button: ButtonLeft, Modifiers: key.ModCtrl, Action: ActionPress}
	if got, want := ev.String(), "Ctrl+left press (3,4)"; got != want {
		t.Errorf("Event.String() = %q, want %q", got, want)
	}
	if !ev.IsPress(ButtonLeft) || ev.IsPress(ButtonRight) {
		t.Error("IsPress mismatch")
	}
}

func TestTrackerPressDragRelease(t *testing.T) {
	var tr Tracker

	ev := tr.Update(Position{X: 2, Y: 1}, ButtonLeft, key.ModAlt)
	if ev.Action != ActionPress || ev.Button != ButtonLeft {
		t.Fatalf("first event = %v, want left press", ev)
	}
	st := tr.State()
	if !st.Active || st.Moved || st.Modifiers != key.ModAlt {
		t.Errorf("state after press = %+v", st)
	}

	ev = tr.Update(Position{X: 8, Y: 3}, ButtonLeft, key.ModNone)
	if ev.Action != ActionDrag {
		t.Fatalf("second event = %v, want drag", ev)
	}
	st = tr.State()
	if !st.Moved || st.StartPos != (Position{X: 2, Y: 1}) || st.CurrentPos != (Position{X: 8, Y: 3}) {
		t.Errorf("state after drag = %+v", st)
	}
	if st.Modifiers != key.ModAlt {
		t.Errorf("drag modifiers = %v, want press modifiers kept", st.Modifiers)
	}
	if d := tr.Delta(); d != (Position{X: 6, Y: 2}) {
		t.Errorf("Delta() = %v, want (6,2)", d)
	}

	ev = tr.Update(Position{X: 8, Y: 3}, ButtonNone, key.ModNone)
	if ev.Action != ActionRelease || ev.Button != ButtonLeft {
		t.Fatalf("third event = %v, want left release", ev)
	}
	if tr.State().Active {
		t.Error("tracker still active after release")
	}
}

func TestTrackerMoveWithoutButton(t *testing.T) {
	var tr Tracker
	ev := tr.Update(Position{X: 1, Y: 1}, ButtonNone, key.ModNone)
	if ev.Action != ActionMove {
		t.Errorf("Action = %v, want move", ev.Action)
	}
}

func TestTrackerScrollDoesNotStartDrag(t *testing.T) {
	var tr Tracker
	ev := tr.Update(Position{}, ButtonScrollDown, key.ModNone)
	if ev.Action != ActionPress || ev.Button != ButtonScrollDown {
		t.Errorf("scroll event = %v", ev)
	}
	if tr.State().Active {
		t.Error("scroll started a drag")
	}
}

func TestTrackerButtonChangeIsNewPress(t *testing.T) {
	var tr Tracker
	tr.Update(Position{X: 1}, ButtonLeft, key.ModNone)
	ev := tr.Update(Position{X: 2}, ButtonRight, key.ModCtrl)
	if ev.Action != ActionPress || ev.Button != ButtonRight {
		t.Errorf("event = %v, want right press", ev)
	}
	if st := tr.State(); st.StartPos != (Position{X: 2}) || st.Modifiers != key.ModCtrl {
		t.Errorf("state = %+v", st)
	}
	tr.Reset()
	if tr.State().Active {
		t.Error("Reset left tracker active")
	}
}
