package parse

import (
	"fmt"

	"github.com/dekarrin/hulkc/internal/automaton"
	"github.com/dekarrin/hulkc/internal/grammar"
	"github.com/dekarrin/hulkc/internal/util"
)

// stateAndItemStr identifies one kernel item within one kernel state, used
// as the key for the lookahead-propagation tables below. Grounded on the
// teacher's internal/ictiobus/parse/lalr.go, which defines the identical
// type for the identical purpose.
type stateAndItemStr struct {
	state string
	item  string
}

// getLR0Kernels returns, for g's augmented grammar, the kernel items of
// every set in the canonical LR(0) collection — every item with a
// non-empty Left, plus the augmented start item [S' -> .S] itself, which
// is the one kernel item allowed to have an empty Left. Kernels are keyed
// by their own StringOrdered() content.
func getLR0Kernels(gPrime grammar.Grammar) util.SVSet[util.SVSet[grammar.LR0Item]] {
	itemSets := gPrime.CanonicalLR0Items()
	kernels := util.NewSVSet[util.SVSet[grammar.LR0Item]]()

	for _, s := range itemSets.Elements() {
		stateVal := itemSets.Get(s)
		kernelItems := util.NewSVSet[grammar.LR0Item]()
		for _, name := range stateVal.Elements() {
			item := stateVal.Get(name)
			isAugmentedStart := len(item.Right) == 1 && item.NonTerminal == gPrime.StartSymbol()
			if len(item.Left) > 0 || isAugmentedStart {
				kernelItems.Set(name, item)
			}
		}
		kernels.Set(kernelItems.StringOrdered(), kernelItems)
	}
	return kernels
}

// determineLookaheads finds, for kernel K of an LR(0) item set and grammar
// symbol X, which lookaheads are spontaneously generated for kernel items
// in GOTO(K, X), and which kernel items in GOTO(K, X) instead inherit
// (propagate) their lookaheads from an item in K. g must be augmented.
//
// Implementation of algorithm 4.62, "Determining lookaheads", purple
// dragon book. The teacher's version of this (same file, same algorithm
// number cited) only ever calls this with X ranging over terminals; that
// undercounts propagation edges through non-terminal GOTOs (e.g. into a
// kernel item reached after reducing a sub-expression), so this version is
// called with X ranging over every grammar symbol, terminal and
// non-terminal alike, as the algorithm itself specifies ("X is a grammar
// symbol").
func determineLookaheads(g grammar.Grammar, K util.SVSet[grammar.LR0Item], X string) (spontaneous map[stateAndItemStr]util.StringSet, propagated map[stateAndItemStr][]stateAndItemStr) {
	nonGrammarSym := g.GenerateUniqueTerminal("#")

	spontaneous = map[stateAndItemStr]util.StringSet{}
	propagated = map[stateAndItemStr][]stateAndItemStr{}

	gotoIX := g.LR0_GOTO(g.LR0_CLOSURE(K), X)
	if gotoIX.Empty() {
		return spontaneous, propagated
	}
	gotoIXKernel := kernelOf(gotoIX, g.StartSymbol())

	for _, aItemName := range K.Elements() {
		aItem := K.Get(aItemName)

		lr1Start := grammar.LR1Item{LR0Item: aItem, Lookahead: nonGrammarSym}
		lr1StartKernel := util.NewSVSet[grammar.LR1Item]()
		lr1StartKernel.Set(lr1Start.String(), lr1Start)
		J := g.LR1_CLOSURE(lr1StartKernel)

		trueGotoIX := g.LR1_GOTO(J, X)

		for _, bItemName := range J.Elements() {
			bItem := J.Get(bItemName)
			if len(bItem.Right) == 0 || bItem.Right[0] != X {
				continue
			}

			newLeft := append(append([]string(nil), bItem.Left...), X)
			newRight := append([]string(nil), bItem.Right[1:]...)
			shifted := grammar.LR0Item{NonTerminal: bItem.NonTerminal, Left: newLeft, Right: newRight}

			inGoto := false
			for _, elemName := range trueGotoIX.Elements() {
				if trueGotoIX.Get(elemName).LR0Item.Equal(shifted) {
					inGoto = true
					break
				}
			}
			if !inGoto {
				continue
			}

			if bItem.Lookahead != nonGrammarSym {
				key := stateAndItemStr{state: gotoIXKernel.StringOrdered(), item: shifted.String()}
				set, ok := spontaneous[key]
				if !ok {
					set = util.NewStringSet()
				}
				set.Add(bItem.Lookahead)
				spontaneous[key] = set
			} else {
				from := stateAndItemStr{state: K.StringOrdered(), item: aItem.String()}
				to := stateAndItemStr{state: gotoIXKernel.StringOrdered(), item: shifted.String()}
				propagated[from] = append(propagated[from], to)
			}
		}
	}

	return spontaneous, propagated
}

// kernelOf extracts the kernel items (non-empty Left, or the augmented
// start item) from a full LR(0) item set.
func kernelOf(I util.SVSet[grammar.LR0Item], gStart string) util.SVSet[grammar.LR0Item] {
	kernel := util.NewSVSet[grammar.LR0Item]()
	for _, name := range I.Elements() {
		item := I.Get(name)
		isAugmentedStart := len(item.Right) == 1 && item.NonTerminal == gStart
		if len(item.Left) > 0 || isAugmentedStart {
			kernel.Set(name, item)
		}
	}
	return kernel
}

// computeLALR1Kernels computes the LALR(1) kernels of g, which must NOT
// already be augmented (algorithm 4.63, "Efficient computation of the
// kernels of the LALR(1) collection of sets of items", purple dragon
// book). Returns, for each LR(0) kernel (keyed by its StringOrdered()
// content), the same kernel with every item's final lookahead set
// attached.
//
// The teacher's version of this function (same file name, same algorithm
// citation) computes steps 1-3 and then stops: step 4's actual
// fixed-point propagation loop is present only as a commented-out block,
// and the function returns an empty result unconditionally. This is that
// loop, finished: repeatedly walk every propagation edge recorded in step
// 2 and add the source item's current lookaheads to the destination item's
// lookaheads, until a full pass adds nothing new.
func computeLALR1Kernels(g grammar.Grammar) util.SVSet[util.SVSet[grammar.LR1Item]] {
	gPrime := g.Augmented()
	startSym := g.StartSymbol()
	startSymPrime := gPrime.StartSymbol()

	gPrimeStartItem := grammar.LR0Item{NonTerminal: startSymPrime, Right: []string{startSym}}
	gPrimeStartKernel := util.NewSVSet[grammar.LR0Item]()
	gPrimeStartKernel.Set(gPrimeStartItem.String(), gPrimeStartItem)

	lr0Kernels := getLR0Kernels(gPrime)

	calcSponts := map[stateAndItemStr]util.StringSet{}
	calcProps := map[stateAndItemStr][]stateAndItemStr{}

	// lookahead $ is always generated spontaneously for [S' -> .S].
	calcSponts[stateAndItemStr{state: gPrimeStartKernel.StringOrdered(), item: gPrimeStartItem.String()}] = util.StringSetOf([]string{"$"})

	symbols := gPrime.Terminals()
	symbols = append(symbols, gPrime.NonTerminals()...)

	for _, lr0KernelName := range lr0Kernels.Elements() {
		IKernelSet := lr0Kernels.Get(lr0KernelName)

		for _, X := range symbols {
			sponts, props := determineLookaheads(gPrime, IKernelSet, X)

			for k, sponSet := range sponts {
				existing, ok := calcSponts[k]
				if !ok {
					existing = util.NewStringSet()
				}
				existing.AddAll(sponSet)
				calcSponts[k] = existing
			}
			for k, propSlice := range props {
				calcProps[k] = append(calcProps[k], propSlice...)
			}
		}
	}

	// step 3: initialize lookahead sets from the spontaneous table.
	lookaheads := map[stateAndItemStr]util.StringSet{}
	for k, sponts := range calcSponts {
		lookaheads[k] = util.NewStringSet(sponts)
	}

	// step 4: propagate to a fixed point.
	changed := true
	for changed {
		changed = false
		for from, tos := range calcProps {
			curLookaheads, ok := lookaheads[from]
			if !ok {
				continue
			}
			for _, to := range tos {
				dest, ok := lookaheads[to]
				if !ok {
					dest = util.NewStringSet()
				}
				for _, la := range curLookaheads.Elements() {
					if !dest.Has(la) {
						dest.Add(la)
						changed = true
					}
				}
				lookaheads[to] = dest
			}
		}
	}

	// collect final result: explode each kernel's items into LR1Items
	// carrying their accumulated lookahead sets.
	lalrKernels := util.NewSVSet[util.SVSet[grammar.LR1Item]]()
	for _, lr0KernelName := range lr0Kernels.Elements() {
		IKernelSet := lr0Kernels.Get(lr0KernelName)
		lr1Kernel := util.NewSVSet[grammar.LR1Item]()

		for _, itemName := range IKernelSet.Elements() {
			item := IKernelSet.Get(itemName)
			key := stateAndItemStr{state: IKernelSet.StringOrdered(), item: itemName}
			las, ok := lookaheads[key]
			if !ok || las.Empty() {
				continue
			}
			for _, la := range las.Elements() {
				lr1Item := grammar.LR1Item{LR0Item: item, Lookahead: la}
				lr1Kernel.Set(lr1Item.String(), lr1Item)
			}
		}
		lalrKernels.Set(lr1Kernel.StringOrdered(), lr1Kernel)
	}

	return lalrKernels
}

// buildLALR1DFA builds the viable-prefix DFA underlying the LALR(1) parse
// table: one state per LALR(1) kernel, its Value the full (closed) item
// set, with GOTO transitions mirroring the grammar's LR(0) automaton
// (kernels correspond 1-1 to LR(0) states by construction). This plays the
// role the teacher's automaton.NewLALR1ViablePrefixDFA free function does
// — kept here instead of in internal/automaton so that package can stay
// generic and never import internal/grammar.
func buildLALR1DFA(g grammar.Grammar) (automaton.DFA[util.SVSet[grammar.LR1Item]], error) {
	gPrime := g.Augmented()
	lalrKernels := computeLALR1Kernels(g)

	dfa := automaton.NewDFA[util.SVSet[grammar.LR1Item]]().Copy()

	// map from LR0-kernel StringOrdered() to the corresponding LALR1
	// kernel, so GOTO edges computed over LR0 kernels can look up their
	// LALR1 state name.
	lr0ToLALR := map[string]util.SVSet[grammar.LR1Item]{}
	for _, k := range lalrKernels.Elements() {
		lr1Kernel := lalrKernels.Get(k)
		lr0Kernel := util.NewSVSet[grammar.LR0Item]()
		for _, itemName := range lr1Kernel.Elements() {
			lr1Item := lr1Kernel.Get(itemName)
			lr0Kernel.Set(lr1Item.LR0Item.String(), lr1Item.LR0Item)
		}
		lr0ToLALR[lr0Kernel.StringOrdered()] = lr1Kernel
	}

	symbols := append(append([]string(nil), gPrime.Terminals()...), gPrime.NonTerminals()...)

	var startName string
	for _, k := range lalrKernels.Elements() {
		lr1Kernel := lalrKernels.Get(k)
		closure := gPrime.LR1_CLOSURE(lr1Kernel)
		name := lr1Kernel.StringOrdered()
		dfa.AddState(name, false)
		dfa.SetValue(name, closure)

		isStart := false
		for _, itemName := range lr1Kernel.Elements() {
			item := lr1Kernel.Get(itemName)
			if item.NonTerminal == gPrime.StartSymbol() && len(item.Left) == 0 {
				isStart = true
			}
		}
		if isStart {
			startName = name
		}
	}
	if startName == "" {
		return dfa, fmt.Errorf("could not locate augmented start kernel among LALR(1) kernels")
	}
	dfa.Start = startName

	for _, k := range lalrKernels.Elements() {
		lr1Kernel := lalrKernels.Get(k)
		lr0Kernel := util.NewSVSet[grammar.LR0Item]()
		for _, itemName := range lr1Kernel.Elements() {
			lr0Kernel.Set(lr1Kernel.Get(itemName).LR0Item.String(), lr1Kernel.Get(itemName).LR0Item)
		}
		closure0 := gPrime.LR0_CLOSURE(lr0Kernel)

		for _, X := range symbols {
			gotoSet := gPrime.LR0_GOTO(closure0, X)
			if gotoSet.Empty() {
				continue
			}
			destKernel := kernelOf(gotoSet, gPrime.StartSymbol())
			dest, ok := lr0ToLALR[destKernel.StringOrdered()]
			if !ok {
				continue
			}
			dfa.AddTransition(lr1Kernel.StringOrdered(), X, dest.StringOrdered())
		}
	}

	return dfa, nil
}
