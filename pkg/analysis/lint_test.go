package analysis

import (
	"testing"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

func algOf(cards ...model.Card) *model.Algorithm {
	return &model.Algorithm{Meta: model.AlgorithmMeta{ID: "lint"}, Deck: cards}
}

func linearCard(id, next string) model.Card {
	return model.Card{ID: id, Type: model.TypeStandard, Transitions: &model.Transitions{NextID: next}}
}

func terminalCard(id string) model.Card {
	return model.Card{ID: id, Type: model.TypeTerminal, Status: model.StatusComplete}
}

func findingsOfKind(fs []Finding, kind string) []Finding {
	var out []Finding
	for _, f := range fs {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func TestLint_CleanDeck(t *testing.T) {
	alg := algOf(
		linearCard("a", "b"),
		linearCard("b", "c"),
		terminalCard("c"),
	)
	if fs := Lint(alg); len(fs) != 0 {
		t.Errorf("clean deck produced findings: %+v", fs)
	}
}

func TestLint_Cycle(t *testing.T) {
	alg := algOf(
		linearCard("a", "b"),
		linearCard("b", "c"),
		linearCard("c", "b"),
	)
	fs := findingsOfKind(Lint(alg), FindingCycle)
	if len(fs) != 1 {
		t.Fatalf("cycle findings = %d, want 1: %+v", len(fs), fs)
	}
	got := fs[0].CardIDs
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("cycle members = %v, want [b c]", got)
	}
}

func TestLint_SelfLoopNotACycle(t *testing.T) {
	alg := algOf(
		model.Card{ID: "cpr", Type: model.TypeAction,
			Transitions: &model.Transitions{SelfLoop: true, NextID: "done"}},
		terminalCard("done"),
	)
	if fs := findingsOfKind(Lint(alg), FindingCycle); len(fs) != 0 {
		t.Errorf("self-loop flagged as a cycle: %+v", fs)
	}
}

func TestLint_Unreachable(t *testing.T) {
	alg := algOf(
		linearCard("a", "b"),
		terminalCard("b"),
		linearCard("orphan", "b"),
		terminalCard("island"),
	)
	fs := findingsOfKind(Lint(alg), FindingUnreachable)
	if len(fs) != 1 {
		t.Fatalf("unreachable findings = %d, want 1: %+v", len(fs), fs)
	}
	got := fs[0].CardIDs
	if len(got) != 2 || got[0] != "island" || got[1] != "orphan" {
		t.Errorf("unreachable = %v, want [island orphan]", got)
	}
}

func TestLint_SplitBranchesAreReachable(t *testing.T) {
	alg := algOf(
		model.Card{ID: "d", Type: model.TypeDecision, Transitions: &model.Transitions{
			Options: []model.SplitOption{
				{Label: "YES", TargetID: "y"},
				{Label: "NO", TargetID: "n"},
			},
		}},
		terminalCard("y"),
		terminalCard("n"),
	)
	if fs := Lint(alg); len(fs) != 0 {
		t.Errorf("both split branches reachable, got findings: %+v", fs)
	}
}

func TestLint_DanglingTarget(t *testing.T) {
	alg := algOf(
		linearCard("a", "ghost"),
		model.Card{ID: "d", Type: model.TypeDecision, Transitions: &model.Transitions{
			Options: []model.SplitOption{{Label: "X", TargetID: "phantom"}},
		}},
	)
	fs := findingsOfKind(Lint(alg), FindingDanglingTarget)
	if len(fs) != 2 {
		t.Fatalf("dangling findings = %d, want 2: %+v", len(fs), fs)
	}
	for _, f := range fs {
		if len(f.CardIDs) != 2 {
			t.Errorf("finding should name source and target: %+v", f)
		}
	}
}
