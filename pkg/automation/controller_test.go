package automation

import (
	"testing"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/engine"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

func testAlgorithm() *model.Algorithm {
	return &model.Algorithm{
		Meta: model.AlgorithmMeta{ID: "test-alg"},
		Deck: []model.Card{
			{ID: "start", Type: model.TypeStandard, Content: model.Content{Title: "Start"},
				Transitions: &model.Transitions{NextID: "fork"}},
			{ID: "fork", Type: model.TypeDecision, Content: model.Content{Title: "Fork"},
				Transitions: &model.Transitions{Options: []model.SplitOption{
					{Label: "LEFT", TargetID: "left"},
					{Label: "RIGHT", TargetID: "right"},
				}}},
			{ID: "left", Type: model.TypeTerminal, Status: model.StatusComplete},
			{ID: "right", Type: model.TypeTerminal, Status: model.StatusComplete},
		},
	}
}

func newTestController() *Controller {
	s := engine.NewSession()
	s.ApplyAlgorithm(testAlgorithm())
	return NewController(s, testAlgorithm)
}

func TestListCards(t *testing.T) {
	c := newTestController()

	cards := c.ListCards()
	if len(cards) != 4 {
		t.Fatalf("card count = %d, want 4", len(cards))
	}
	if cards[0].ID != "start" || cards[0].Title != "Start" {
		t.Errorf("first summary = %+v", cards[0])
	}
	if got := cards[1].Options; len(got) != 2 || got[0] != "LEFT" || got[1] != "RIGHT" {
		t.Errorf("decision options = %v", got)
	}
	if !cards[2].Complete {
		t.Errorf("terminal card should summarize as complete")
	}
}

func TestWalkAndBack(t *testing.T) {
	c := newTestController()

	res := c.Advance()
	if !res.OK || res.Snapshot.CurrentID != "fork" {
		t.Fatalf("advance: ok=%v current=%q", res.OK, res.Snapshot.CurrentID)
	}

	res = c.SelectDecisionOption(1)
	if !res.OK || res.Snapshot.DecisionIndex != 1 || !res.Snapshot.DecisionTapped {
		t.Fatalf("select: %+v", res.Snapshot)
	}

	res = c.Advance()
	if !res.OK || res.Snapshot.CurrentID != "right" {
		t.Fatalf("decision advance: ok=%v current=%q", res.OK, res.Snapshot.CurrentID)
	}
	if got := res.Snapshot.DecisionRecords["fork"]; got != 1 {
		t.Errorf("recorded option = %d, want 1", got)
	}
	if len(res.Snapshot.DecisionTrail) != 1 {
		t.Errorf("trail length = %d, want 1", len(res.Snapshot.DecisionTrail))
	}

	res = c.Back()
	if !res.OK || res.Snapshot.CurrentID != "fork" {
		t.Fatalf("back: ok=%v current=%q", res.OK, res.Snapshot.CurrentID)
	}
}

func TestFailuresAreValues(t *testing.T) {
	c := newTestController()

	res := c.GotoCard("nope")
	if res.OK || res.Error == "" {
		t.Errorf("unknown goto should fail with a message, got %+v", res)
	}
	if res.Snapshot.CurrentID != "start" {
		t.Errorf("failed goto must not move, current=%q", res.Snapshot.CurrentID)
	}

	res = c.SelectDecisionOption(0)
	if res.OK {
		t.Errorf("select on a non-decision card should fail")
	}

	res = c.Back()
	if res.OK {
		t.Errorf("back with empty history should fail")
	}

	c.GotoCard("left")
	res = c.Advance()
	if res.OK {
		t.Errorf("advance from a complete terminal should fail")
	}
}

func TestReset(t *testing.T) {
	c := newTestController()
	c.Advance()
	c.SelectDecisionOption(0)
	c.Advance()

	res := c.Reset()
	if !res.OK {
		t.Fatalf("reset failed: %s", res.Error)
	}
	snap := res.Snapshot
	if snap.CurrentID != "start" || len(snap.History) != 0 || len(snap.DecisionRecords) != 0 {
		t.Errorf("reset left state behind: %+v", snap)
	}
}

func TestReset_FallbackWhenEmpty(t *testing.T) {
	c := NewController(engine.NewSession(), testAlgorithm)

	res := c.Reset()
	if !res.OK || res.Snapshot.AlgorithmID != "test-alg" {
		t.Fatalf("fallback reset: ok=%v alg=%q", res.OK, res.Snapshot.AlgorithmID)
	}

	bare := NewController(engine.NewSession(), nil)
	if res := bare.Reset(); res.OK {
		t.Errorf("reset without a fallback and no load must fail")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	c := newTestController()

	snap := c.GetSnapshot()
	snap.DecisionRecords["fork"] = 9
	snap.ChecklistState["chk"] = true
	if len(snap.History) > 0 {
		snap.History[0] = "mutated"
	}

	fresh := c.GetSnapshot()
	if len(fresh.DecisionRecords) != 0 {
		t.Errorf("snapshot map writes leaked into the session: %v", fresh.DecisionRecords)
	}
	if len(fresh.ChecklistState) != 0 {
		t.Errorf("checklist writes leaked into the session: %v", fresh.ChecklistState)
	}
}

func TestSnapshotWheelFields(t *testing.T) {
	c := newTestController()

	snap := c.GetSnapshot()
	if snap.WheelMode != "linear" {
		t.Errorf("wheel mode = %q, want linear", snap.WheelMode)
	}
	if len(snap.Anchors) == 0 {
		t.Fatalf("snapshot should carry anchors")
	}
	if snap.WheelAngle != snap.Anchors[snap.AnchorIndex].Degrees {
		t.Errorf("wheel angle %v not at anchor %v", snap.WheelAngle, snap.Anchors[snap.AnchorIndex].Degrees)
	}
}
