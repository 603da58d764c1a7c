package wheel

import (
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// Anchor assigns a card its angular position on the wheel for the current
// forward path.
type Anchor struct {
	CardID  string  `json:"card_id"`
	Degrees float64 `json:"degrees"`
}

// ForwardPath walks the graph from startID following linear transitions,
// committed decision records, and self-loops, and returns the ordered card
// ids visited. For an uncommitted split it follows the longest remaining
// branch, so the wheel always shows the most conservative journey and
// never appears to skip ahead when an estimate turns out wrong.
//
// The walk terminates on a card with no transitions, a revisit (any cycle
// other than a deliberate self-loop), a self-loop pointing at itself, or a
// target missing from the deck. Each id appears at most once.
func ForwardPath(deck map[string]*model.Card, startID string, records map[string]int) []string {
	var path []string
	visited := make(map[string]bool)

	id := startID
	for id != "" && !visited[id] {
		card := deck[id]
		if card == nil {
			break
		}
		path = append(path, id)
		visited[id] = true

		next := ""
		switch card.Transitions.Kind() {
		case model.TransitionLinear:
			next = card.Transitions.NextID
		case model.TransitionSelfLoop:
			next = card.Transitions.NextID
			if next == "" || next == id {
				next = ""
			}
		case model.TransitionSplit:
			opts := card.Transitions.Options
			idx, ok := records[id]
			if !ok {
				idx = longestBranchOption(deck, opts, visited, records)
			}
			if idx < 0 || idx >= len(opts) {
				idx = 0
			}
			next = opts[idx].TargetID
		case model.TransitionNone:
		}
		id = next
	}
	return path
}

// longestBranchOption picks the option whose branch reaches deepest. Ties
// and unreachable targets resolve to option 0. Nested uncommitted splits
// are estimated as option 0; this can misjudge chained unrecorded
// decisions, but the layout depends on the tie-break staying put.
func longestBranchOption(deck map[string]*model.Card, opts []model.SplitOption, visited map[string]bool, records map[string]int) int {
	best, bestLen := 0, -1
	for i, opt := range opts {
		if visited[opt.TargetID] {
			continue
		}
		n := estimateBranchLength(deck, opt.TargetID, visited, records)
		if n > bestLen {
			best, bestLen = i, n
		}
	}
	return best
}

// estimateBranchLength counts the cards reachable from id with the same
// walking rules, treating any unrecorded split as "pick option 0" to keep
// the estimate bounded.
func estimateBranchLength(deck map[string]*model.Card, id string, visited map[string]bool, records map[string]int) int {
	seen := make(map[string]bool, len(visited))
	for k := range visited {
		seen[k] = true
	}

	n := 0
	for id != "" && !seen[id] {
		card := deck[id]
		if card == nil {
			break
		}
		n++
		seen[id] = true

		next := ""
		switch card.Transitions.Kind() {
		case model.TransitionLinear:
			next = card.Transitions.NextID
		case model.TransitionSelfLoop:
			next = card.Transitions.NextID
			if next == id {
				next = ""
			}
		case model.TransitionSplit:
			opts := card.Transitions.Options
			idx, ok := records[id]
			if !ok || idx < 0 || idx >= len(opts) {
				idx = 0
			}
			next = opts[idx].TargetID
		case model.TransitionNone:
		}
		id = next
	}
	return n
}

// PlaceAnchors distributes the forward path evenly across the arc: card i
// of n lands at AngleOnArc(arc, i/(n-1)); a single-card path sits at the
// arc start. Explicit wheel_config positions override the derived angle,
// and runs of cards sharing a phase are fanned phase_spread degrees apart
// around their common center so they don't collide.
func PlaceAnchors(deck map[string]*model.Card, path []string, arc model.WheelArc) []Anchor {
	n := len(path)
	if n == 0 {
		return nil
	}

	anchors := make([]Anchor, n)
	for i, id := range path {
		deg := arc.StartDegrees
		if n > 1 {
			deg = AngleOnArc(arc, float64(i)/float64(n-1))
		}
		if card := deck[id]; card != nil && card.Wheel.PositionDegrees != nil {
			deg = NormalizeDegrees(*card.Wheel.PositionDegrees)
		}
		anchors[i] = Anchor{CardID: id, Degrees: deg}
	}

	if arc.PhaseSpreadDegrees > 0 {
		spreadPhaseRuns(deck, path, anchors, arc)
	}
	return anchors
}

// spreadPhaseRuns offsets consecutive same-phase cards around the run's
// center, stepping phase_spread degrees per card in the arc direction.
func spreadPhaseRuns(deck map[string]*model.Card, path []string, anchors []Anchor, arc model.WheelArc) {
	sign := 1.0
	if arc.Direction == model.DirectionClockwise {
		sign = -1
	}

	for start := 0; start < len(path); {
		phase := cardPhase(deck, path[start])
		end := start + 1
		for phase != "" && end < len(path) && cardPhase(deck, path[end]) == phase {
			end++
		}
		if run := end - start; run > 1 {
			center := anchors[start].Degrees + ShortestDelta(anchors[start].Degrees, anchors[end-1].Degrees)/2
			for j := 0; j < run; j++ {
				offset := (float64(j) - float64(run-1)/2) * arc.PhaseSpreadDegrees
				anchors[start+j].Degrees = NormalizeDegrees(center + sign*offset)
			}
		}
		start = end
	}
}

func cardPhase(deck map[string]*model.Card, id string) string {
	if card := deck[id]; card != nil {
		return card.Wheel.Phase
	}
	return ""
}
