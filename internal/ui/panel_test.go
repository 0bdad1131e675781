package ui

import (
	"errors"
	"testing"

	"voxelwalk/internal/physics"
)

func TestProposeAppliesValidChanges(t *testing.T) {
	p := NewPanel(physics.DefaultConfig(), false)

	draft := p.Applied()
	draft.Gravity = 9.8
	if !p.propose(draft) {
		t.Fatal("Expected a valid change to apply")
	}
	if p.Applied().Gravity != 9.8 {
		t.Errorf("Expected gravity 9.8, got %v", p.Applied().Gravity)
	}

	if p.propose(draft) {
		t.Error("Unchanged draft should not report a change")
	}
}

func TestProposeRejectsInvalidDraft(t *testing.T) {
	p := NewPanel(physics.DefaultConfig(), false)

	draft := p.Applied()
	draft.Radius = 0
	if p.propose(draft) {
		t.Fatal("Invalid draft must not apply")
	}
	if !errors.Is(p.Err(), physics.ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius, got %v", p.Err())
	}
	if p.Applied().Radius != 0.4 {
		t.Errorf("Applied radius changed to %v", p.Applied().Radius)
	}

	draft.Radius = 0.5
	if !p.propose(draft) || p.Err() != nil {
		t.Errorf("Expected recovery after a valid draft, err=%v", p.Err())
	}
}

func TestToggleDebugSurvivesHiddenDraw(t *testing.T) {
	p := NewPanel(physics.DefaultConfig(), false)

	p.ToggleDebug()
	// Hidden panels draw nothing but still report state every frame.
	res := p.Draw()
	if !res.Debug {
		t.Error("Expected the hotkey toggle to survive Draw")
	}
	if res.Changed {
		t.Error("Toggling debug must not report a config change")
	}

	p.ToggleDebug()
	if res := p.Draw(); res.Debug || p.Debug() {
		t.Errorf("Expected debug off after second toggle, got %v", res.Debug)
	}
}
