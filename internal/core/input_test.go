package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.AddPointer(PointerEvent{X: 3, Y: 4, Kind: PointerPress})

	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Error("Has() does not reflect Set()")
	}

	clone := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear() should drop actions and pointer events")
	}
	if !clone.Has(ActionLeft) || len(clone.Pointer) != 1 {
		t.Error("Clone() should not share state with the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionHint.String() != "Hint" {
		t.Errorf("ActionHint.String() = %q", ActionHint.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown actions should stringify as Unknown")
	}
}
