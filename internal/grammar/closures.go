package grammar

import "github.com/dekarrin/hulkc/internal/util"

// LR0_CLOSURE computes CLOSURE(I) (purple dragon book algorithm 4.53): for
// every item [A -> α.Bβ] in the working set where B is a non-terminal,
// add [B -> .γ] for every production B -> γ, until no more items are added.
func (g Grammar) LR0_CLOSURE(I util.SVSet[LR0Item]) util.SVSet[LR0Item] {
	closure := util.NewSVSet[LR0Item]()
	for _, k := range I.Elements() {
		closure.Set(k, I.Get(k))
	}

	changed := true
	for changed {
		changed = false
		for _, k := range closure.Elements() {
			item := closure.Get(k)
			if len(item.Right) == 0 {
				continue
			}
			B := item.Right[0]
			if !g.IsNonTerminal(B) {
				continue
			}
			for _, prod := range g.Rules[B] {
				newItem := LR0Item{NonTerminal: B, Right: append([]string(nil), prod...)}
				key := newItem.String()
				if !closure.Has(key) {
					closure.Set(key, newItem)
					changed = true
				}
			}
		}
	}
	return closure
}

// LR0_GOTO computes GOTO(I, X) (algorithm 4.54): the closure of every item
// [A -> αX.β] reachable by moving the dot of some [A -> α.Xβ] in I past X.
// Returns an empty set if no item in I has X immediately after its dot.
func (g Grammar) LR0_GOTO(I util.SVSet[LR0Item], X string) util.SVSet[LR0Item] {
	moved := util.NewSVSet[LR0Item]()
	for _, k := range I.Elements() {
		item := I.Get(k)
		if len(item.Right) == 0 || item.Right[0] != X {
			continue
		}
		newItem := LR0Item{
			NonTerminal: item.NonTerminal,
			Left:        append(append([]string(nil), item.Left...), X),
			Right:       append([]string(nil), item.Right[1:]...),
		}
		moved.Set(newItem.String(), newItem)
	}
	if moved.Empty() {
		return moved
	}
	return g.LR0_CLOSURE(moved)
}

// LR1_CLOSURE computes CLOSURE(I) for sets of LR(1) items (algorithm 4.40):
// for every item [A -> α.Bβ, a], add [B -> .γ, b] for every production
// B -> γ and every b in FIRST(βa), until no more items are added.
func (g Grammar) LR1_CLOSURE(I util.SVSet[LR1Item]) util.SVSet[LR1Item] {
	closure := util.NewSVSet[LR1Item]()
	for _, k := range I.Elements() {
		closure.Set(k, I.Get(k))
	}

	changed := true
	for changed {
		changed = false
		for _, k := range closure.Elements() {
			item := closure.Get(k)
			if len(item.Right) == 0 {
				continue
			}
			B := item.Right[0]
			if !g.IsNonTerminal(B) {
				continue
			}
			beta := item.Right[1:]
			seq := append(append([]string(nil), beta...), item.Lookahead)
			lookaheads := g.FirstOfSequence(seq)

			for _, prod := range g.Rules[B] {
				for _, b := range lookaheads.Elements() {
					if b == "" {
						continue
					}
					newItem := LR1Item{
						LR0Item:   LR0Item{NonTerminal: B, Right: append([]string(nil), prod...)},
						Lookahead: b,
					}
					key := newItem.String()
					if !closure.Has(key) {
						closure.Set(key, newItem)
						changed = true
					}
				}
			}
		}
	}
	return closure
}

// LR1_GOTO computes GOTO(I, X) for sets of LR(1) items: move the dot of
// every item with X immediately after it, carrying each item's lookahead
// along unchanged, then close the result.
func (g Grammar) LR1_GOTO(I util.SVSet[LR1Item], X string) util.SVSet[LR1Item] {
	moved := util.NewSVSet[LR1Item]()
	for _, k := range I.Elements() {
		item := I.Get(k)
		if len(item.Right) == 0 || item.Right[0] != X {
			continue
		}
		newItem := LR1Item{
			LR0Item: LR0Item{
				NonTerminal: item.NonTerminal,
				Left:        append(append([]string(nil), item.Left...), X),
				Right:       append([]string(nil), item.Right[1:]...),
			},
			Lookahead: item.Lookahead,
		}
		moved.Set(newItem.String(), newItem)
	}
	if moved.Empty() {
		return moved
	}
	return g.LR1_CLOSURE(moved)
}

// CanonicalLR0Items computes the canonical collection of sets of LR(0)
// items (algorithm 4.56's first half) for g, which must already be
// augmented: starting from CLOSURE({[S' -> .S]}), repeatedly apply GOTO
// for every symbol until no new item set is discovered. Item sets are
// keyed by their own StringOrdered() content so structurally identical
// sets merge regardless of discovery order.
func (g Grammar) CanonicalLR0Items() util.SVSet[util.SVSet[LR0Item]] {
	startProd := g.Rules[g.start][0]
	startItem := LR0Item{NonTerminal: g.start, Right: append([]string(nil), startProd...)}
	startSet := util.NewSVSet[LR0Item]()
	startSet.Set(startItem.String(), startItem)
	I0 := g.LR0_CLOSURE(startSet)

	result := util.NewSVSet[util.SVSet[LR0Item]]()
	result.Set(I0.StringOrdered(), I0)

	worklist := []util.SVSet[LR0Item]{I0}
	symbols := g.allSymbols()
	for len(worklist) > 0 {
		I := worklist[0]
		worklist = worklist[1:]
		for _, X := range symbols {
			next := g.LR0_GOTO(I, X)
			if next.Empty() {
				continue
			}
			key := next.StringOrdered()
			if !result.Has(key) {
				result.Set(key, next)
				worklist = append(worklist, next)
			}
		}
	}
	return result
}
