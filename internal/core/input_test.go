package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) {
		t.Error("frame should have ActionLeft")
	}
	if f.Has(ActionRight) {
		t.Error("frame should not have ActionRight")
	}
	if f.Empty() {
		t.Error("frame with an action should not be empty")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("cleared frame should be empty")
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestFrameOf(t *testing.T) {
	f := FrameOf(ActionUp, ActionRestart)
	if !f.Has(ActionUp) || !f.Has(ActionRestart) {
		t.Errorf("FrameOf lost actions: %v", f.Actions)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionLeft:    "Left",
		ActionRestart: "Restart",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", a, got, want)
		}
	}
}
