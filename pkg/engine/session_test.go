package engine

import (
	"testing"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/wheel"
)

func TestApplyAlgorithm_ResetsEverything(t *testing.T) {
	s := newTestSession(decisionAlgorithm())
	s.SelectDecisionOption(1)
	s.Advance(AdvanceOptions{Source: SourceUI, SplitConfirmed: true})
	s.TickTimer()
	s.ChecklistState["chk"] = true

	s.ApplyAlgorithm(linearAlgorithm())

	if s.CurrentID != "A" {
		t.Errorf("current = %q, want start card A", s.CurrentID)
	}
	if len(s.History) != 0 || len(s.DecisionRecords) != 0 || len(s.DecisionTrail) != 0 {
		t.Errorf("navigation state survived reload: history=%v records=%v trail=%d",
			s.History, s.DecisionRecords, len(s.DecisionTrail))
	}
	if s.TimerSeconds != 0 || s.TimerRunning {
		t.Errorf("timer survived reload: seconds=%d running=%v", s.TimerSeconds, s.TimerRunning)
	}
	if len(s.ChecklistState) != 0 {
		t.Errorf("checklist state survived reload: %v", s.ChecklistState)
	}
	if s.DecisionTapped || s.DecisionIndex != 0 || s.CarouselIndex != 0 {
		t.Errorf("decision state survived reload")
	}
}

func TestApplyAlgorithm_SyncsWheel(t *testing.T) {
	s := newTestSession(linearAlgorithm())

	if s.Wheel.Mode != wheel.ModeLinear {
		t.Errorf("mode = %v, want linear for the start card", s.Wheel.Mode)
	}
	if len(s.Anchors) != 3 {
		t.Fatalf("anchor count = %d, want 3", len(s.Anchors))
	}
	if s.AnchorIndex != 0 {
		t.Errorf("anchor index = %d, want 0", s.AnchorIndex)
	}
	if got := s.Wheel.AngleDegrees; got != s.Anchors[0].Degrees {
		t.Errorf("knob angle %v not snapped to start anchor %v", got, s.Anchors[0].Degrees)
	}
}

func TestSync_DecisionChangesPath(t *testing.T) {
	alg := &model.Algorithm{
		Meta: model.AlgorithmMeta{ID: "branch"},
		Deck: []model.Card{
			{ID: "D", Type: model.TypeDecision, Transitions: &model.Transitions{
				Options: []model.SplitOption{
					{Label: "SHORT", TargetID: "S"},
					{Label: "LONG", TargetID: "L1"},
				},
			}},
			{ID: "S", Type: model.TypeTerminal, Status: model.StatusComplete},
			{ID: "L1", Type: model.TypeStandard, Transitions: &model.Transitions{NextID: "L2"}},
			{ID: "L2", Type: model.TypeStandard, Transitions: &model.Transitions{NextID: "L3"}},
			{ID: "L3", Type: model.TypeTerminal, Status: model.StatusComplete},
		},
	}
	s := newTestSession(alg)

	// Unrecorded split estimates through the longer branch.
	if len(s.Anchors) != 4 {
		t.Fatalf("estimated anchors = %d, want 4 (D,L1,L2,L3)", len(s.Anchors))
	}

	s.SelectDecisionOption(0)
	s.Advance(AdvanceOptions{Source: SourceUI, SplitConfirmed: true})

	// Recorded choice replaces the estimate.
	if len(s.Anchors) != 2 {
		t.Fatalf("anchors after commit = %d, want 2 (D,S)", len(s.Anchors))
	}
	if s.Anchors[1].CardID != "S" {
		t.Errorf("second anchor = %q, want S", s.Anchors[1].CardID)
	}
	if s.AnchorIndex != 1 {
		t.Errorf("anchor index = %d, want 1", s.AnchorIndex)
	}
}

func TestSyncAnchors_OffPathKeepsClampedIndex(t *testing.T) {
	s := newTestSession(decisionAlgorithm())

	// F is off the estimated path (estimate runs through option 0 -> E, both
	// branches are single terminals so the tie picks E).
	if !s.GotoCard("F") {
		t.Fatalf("goto should succeed")
	}
	if s.AnchorIndex < 0 || s.AnchorIndex >= len(s.Anchors) {
		t.Fatalf("off-path anchor index %d out of range [0,%d)", s.AnchorIndex, len(s.Anchors))
	}
}

func TestSetKnobAngle_UnwrapsAcrossSeam(t *testing.T) {
	s := newTestSession(linearAlgorithm())
	s.Wheel.VisualAngle = 350

	s.SetKnobAngle(10)

	if s.Wheel.AngleDegrees != 10 {
		t.Errorf("committed angle = %v, want 10", s.Wheel.AngleDegrees)
	}
	if s.Wheel.VisualAngle != 370 {
		t.Errorf("visual angle = %v, want 370 (continuous across the seam)", s.Wheel.VisualAngle)
	}
}

func TestTickTimer_OnlyWhileRunning(t *testing.T) {
	s := newTestSession(linearAlgorithm())

	s.TickTimer()
	if s.TimerSeconds != 0 {
		t.Errorf("stopped timer must not count, got %d", s.TimerSeconds)
	}

	s.TimerRunning = true
	s.TickTimer()
	if s.TimerSeconds != 1 {
		t.Errorf("running timer counts, got %d", s.TimerSeconds)
	}
}

func TestMoveCarousel(t *testing.T) {
	alg := &model.Algorithm{
		Meta: model.AlgorithmMeta{ID: "slides"},
		Deck: []model.Card{
			{ID: "c", Type: model.TypeCarouselAction, Content: model.Content{Slides: []model.Slide{
				{Title: "one"}, {Title: "two"}, {Title: "three"},
			}}},
		},
	}
	s := newTestSession(alg)
	notifies := 0
	s.OnChange = func() { notifies++ }

	s.MoveCarousel(1)
	if s.CarouselIndex != 1 {
		t.Errorf("index = %d, want 1", s.CarouselIndex)
	}
	s.MoveCarousel(-2)
	if s.CarouselIndex != 2 {
		t.Errorf("backward wrap should land on the last slide, got %d", s.CarouselIndex)
	}
	s.MoveCarousel(1)
	if s.CarouselIndex != 0 {
		t.Errorf("forward wrap should land on the first slide, got %d", s.CarouselIndex)
	}
	if notifies != 3 {
		t.Errorf("each carousel move should notify once, got %d", notifies)
	}
}

func TestMoveCarousel_NoSlides(t *testing.T) {
	s := newTestSession(linearAlgorithm())
	notifies := 0
	s.OnChange = func() { notifies++ }

	s.MoveCarousel(1)
	if s.CarouselIndex != 0 {
		t.Errorf("slideless card must keep index 0, got %d", s.CarouselIndex)
	}
	if notifies != 0 {
		t.Errorf("ignored move must not notify, got %d", notifies)
	}
}

func TestToggleChecklistItem(t *testing.T) {
	s := newTestSession(linearAlgorithm())

	s.ToggleChecklistItem("chk_pads")
	if !s.ChecklistState["chk_pads"] {
		t.Errorf("first toggle should check the item")
	}
	s.ToggleChecklistItem("chk_pads")
	if s.ChecklistState["chk_pads"] {
		t.Errorf("second toggle should uncheck the item")
	}
}

func TestOnChange_FiresOnMutation(t *testing.T) {
	s := NewSession()
	calls := 0
	s.OnChange = func() { calls++ }

	s.ApplyAlgorithm(linearAlgorithm())
	if calls == 0 {
		t.Fatalf("ApplyAlgorithm should notify")
	}

	before := calls
	s.Advance(AdvanceOptions{Source: SourceUI})
	if calls <= before {
		t.Errorf("Advance should notify")
	}

	before = calls
	s.Advance(AdvanceOptions{Source: SourceUI}) // B -> C
	s.Advance(AdvanceOptions{Source: SourceUI}) // no-op on complete C
	if calls != before+1 {
		t.Errorf("failed advance must not notify, calls went %d -> %d", before, calls)
	}
}
