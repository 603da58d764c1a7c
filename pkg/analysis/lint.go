// Package analysis lints a loaded algorithm deck. Lint findings are
// authoring-time warnings surfaced by the -lint mode; traversal itself
// never consults them and degrades to a no-op on bad data.
package analysis

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// Finding is one lint warning about the deck.
type Finding struct {
	Kind    string   `json:"kind"`
	Message string   `json:"message"`
	CardIDs []string `json:"card_ids,omitempty"`
}

const (
	FindingCycle          = "cycle"
	FindingUnreachable    = "unreachable"
	FindingDanglingTarget = "dangling_target"
)

// Lint checks the deck for non-self-loop cycles, cards unreachable from
// the start, and transitions pointing at missing cards.
func Lint(alg *model.Algorithm) []Finding {
	var findings []Finding

	ids := make([]string, 0, len(alg.Deck))
	nodeFor := make(map[string]int64, len(alg.Deck))
	idFor := make(map[int64]string, len(alg.Deck))
	g := simple.NewDirectedGraph()
	for i := range alg.Deck {
		id := alg.Deck[i].ID
		ids = append(ids, id)
		n := int64(i)
		nodeFor[id] = n
		idFor[n] = id
		g.AddNode(simple.Node(n))
	}

	for i := range alg.Deck {
		card := &alg.Deck[i]
		from := nodeFor[card.ID]
		for _, target := range targets(card) {
			to, ok := nodeFor[target]
			if !ok {
				findings = append(findings, Finding{
					Kind:    FindingDanglingTarget,
					Message: fmt.Sprintf("card %s points at missing card %s", card.ID, target),
					CardIDs: []string{card.ID, target},
				})
				continue
			}
			if from == to {
				// Deliberate self-loops are a supported card shape.
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	// Non-trivial strongly connected components are unintended cycles:
	// the walker breaks them at traversal time, but the wheel layout
	// degrades, so flag them for the author.
	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		cycle := make([]string, 0, len(scc))
		for _, n := range scc {
			cycle = append(cycle, idFor[n.ID()])
		}
		sort.Strings(cycle)
		findings = append(findings, Finding{
			Kind:    FindingCycle,
			Message: fmt.Sprintf("cards form a cycle: %v", cycle),
			CardIDs: cycle,
		})
	}

	if unreachable := unreachableFrom(g, nodeFor, idFor, alg.StartID(), ids); len(unreachable) > 0 {
		findings = append(findings, Finding{
			Kind:    FindingUnreachable,
			Message: fmt.Sprintf("cards unreachable from %s: %v", alg.StartID(), unreachable),
			CardIDs: unreachable,
		})
	}
	return findings
}

// unreachableFrom collects deck ids not reachable from the start card by
// any combination of transitions.
func unreachableFrom(g graph.Directed, nodeFor map[string]int64, idFor map[int64]string, startID string, ids []string) []string {
	start, ok := nodeFor[startID]
	if !ok {
		return nil
	}

	reached := map[int64]bool{start: true}
	stack := []int64{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		it := g.From(n)
		for it.Next() {
			to := it.Node().ID()
			if !reached[to] {
				reached[to] = true
				stack = append(stack, to)
			}
		}
	}

	var unreachable []string
	for _, id := range ids {
		if !reached[nodeFor[id]] {
			unreachable = append(unreachable, id)
		}
	}
	sort.Strings(unreachable)
	return unreachable
}

// targets lists every id a card can transition to.
func targets(card *model.Card) []string {
	t := card.Transitions
	switch t.Kind() {
	case model.TransitionLinear, model.TransitionSelfLoop:
		if t.NextID != "" {
			return []string{t.NextID}
		}
	case model.TransitionSplit:
		out := make([]string, 0, len(t.Options))
		for _, opt := range t.Options {
			out = append(out, opt.TargetID)
		}
		return out
	}
	return nil
}
