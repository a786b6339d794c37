// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

// Grounded on original_source/lzma/lzma_common.h (enum lzma_lzma_state and
// the match-length/rep constants) and lzma_encoder.c's state-transition
// calls (lzma_encoder_reset, the four update_* helpers folded into encode
// paths in symbols.go).

// lzmaState names the 12 states of LZMA's small history automaton. Each
// names the kind of symbol that produced it: a literal, or one of the four
// match kinds, split further by what preceded it.
type lzmaState uint8

const (
	stateLitLit lzmaState = iota
	stateMatchLitLit
	stateRepLitLit
	stateShortRepLitLit
	stateMatchLit
	stateRepLit
	stateShortRepLit
	stateLitMatch
	stateLitLongRep
	stateLitShortRep
	stateNonLitMatch
	stateNonLitRep
)

const numStates = 12
const numLitStates = 7 // states < numLitStates: the last symbol was a literal

const (
	numReps      = 4
	numPosSlots  = 64
	numFullDist  = 1 << 7 // kNumFullDistances
	numAlignBits = 4
	alignSize    = 1 << numAlignBits
	matchMinLen  = matchLenMin

	startPosModelIndex = 4  // kStartPosModelIndex: slots below this need no footer bits
	endPosModelIndex   = 14 // kEndPosModelIndex: slots at/above this use direct+align bits
	numSpecialPos      = numFullDist - endPosModelIndex
	// posSpecial carries one extra leading padding cell (index 0, never
	// addressed by a real symbol) so that every slot's reverse bit-tree
	// slice starts at a non-negative index; see symbols.go's encodeDistance.
	posSpecialStorage = numSpecialPos + 1

	numPosBitsMax     = 4
	numLenToPosStates = 4

	numLenLowSymbols  = 8
	numLenMidSymbols  = 8
	numLenHighSymbols = 256
)

func (s lzmaState) isLiteral() bool { return s < numLitStates }

// afterLiteral is the state that follows emitting a literal from state s.
func (s lzmaState) afterLiteral() lzmaState {
	switch {
	case s < 4:
		return stateLitLit
	case s < 10:
		return s - 3
	default:
		return s - 6
	}
}

// afterMatch is the state that follows emitting a normal (non-rep) match.
func (s lzmaState) afterMatch() lzmaState {
	if s.isLiteral() {
		return stateLitMatch
	}
	return stateNonLitMatch
}

// afterRep is the state that follows emitting any rep-match (long or short).
func (s lzmaState) afterRep() lzmaState {
	if s.isLiteral() {
		return stateLitLongRep
	}
	return stateNonLitRep
}

// afterShortRep is the state that follows emitting a length-1 rep0 match.
func (s lzmaState) afterShortRep() lzmaState {
	if s.isLiteral() {
		return stateLitShortRep
	}
	return stateNonLitRep
}

// getLenToPosState maps a raw match length (matchMinLen or more; the
// matchMinLen offset is subtracted here) to one of the four
// length-dependent position-slot probability trees.
func getLenToPosState(length uint32) uint32 {
	length -= matchMinLen
	if length < numLenToPosStates {
		return length
	}
	return numLenToPosStates - 1
}

// getPosSlot and getPosSlot2 compute the 6-bit slot identifying a match
// distance's magnitude class, exactly mirroring original_source's
// get_pos_slot/get_pos_slot2 (itself a base-fls decomposition: slot>>1 is
// the zero-based index of the distance's top set bit, selecting a
// power-of-two bracket, and slot&1 is the bit just below it, selecting the
// lower or upper half of that bracket).
func getPosSlot(dist uint32) uint32 {
	if dist < 4 {
		return dist
	}
	return getPosSlot2(dist)
}

// getPosSlot2 is getPosSlot specialized for distances known to be >= 4;
// kept as a distinct entry point to mirror the reference, which calls it
// directly from contexts that already know dist >= 4.
func getPosSlot2(dist uint32) uint32 {
	n := uint32(fls(dist)) - 1
	return (n << 1) | ((dist >> (n - 1)) & 1)
}

// probModel holds every adaptive probability cell LZMA's range coder reads
// or writes. All of it is reset to probInitValue by reset and otherwise only
// ever touched by rangeEncoder.bit/bittree/bittreeReverse.
type probModel struct {
	isMatch     [numStates][1 << numPosBitsMax]prob
	isRep       [numStates]prob
	isRepG0     [numStates]prob
	isRepG1     [numStates]prob
	isRepG2     [numStates]prob
	isRep0Long  [numStates][1 << numPosBitsMax]prob

	posSlot     [numLenToPosStates][numPosSlots]prob
	posSpecial  [posSpecialStorage]prob
	posAlign    [alignSize]prob

	lenChoice  lengthEncoderProbs
	repChoice  lengthEncoderProbs

	// literal is indexed by [(low lp bits of position)<<lc |
	// (prior byte's top lc bits)][0x300], flattened to one slice sized
	// to the currently configured lc+lp.
	literal []prob
}

// lengthEncoderProbs mirrors lzma_length_encoder's low/mid/high tables,
// replicated once per position-bit value for low/mid (so the choice of
// length symbol can depend on the low bits of the current position).
type lengthEncoderProbs struct {
	choice    prob
	choice2   prob
	low       [1 << numPosBitsMax][numLenLowSymbols]prob
	mid       [1 << numPosBitsMax][numLenMidSymbols]prob
	high      [numLenHighSymbols]prob
}

func resetProbSlice(p []prob) {
	for i := range p {
		p[i] = probInitValue
	}
}

func (m *lengthEncoderProbs) reset() {
	m.choice = probInitValue
	m.choice2 = probInitValue
	for i := range m.low {
		resetProbSlice(m.low[i][:])
	}
	for i := range m.mid {
		resetProbSlice(m.mid[i][:])
	}
	resetProbSlice(m.high[:])
}

// reset reinitializes every probability to probInitValue and resizes the
// literal table for the given lc/lp (symbols.go's literal coding depends on
// lc+lp).
func (m *probModel) reset(lc, lp uint32) {
	for i := range m.isMatch {
		resetProbSlice(m.isMatch[i][:])
	}
	resetProbSlice(m.isRep[:])
	resetProbSlice(m.isRepG0[:])
	resetProbSlice(m.isRepG1[:])
	resetProbSlice(m.isRepG2[:])
	for i := range m.isRep0Long {
		resetProbSlice(m.isRep0Long[i][:])
	}
	for i := range m.posSlot {
		resetProbSlice(m.posSlot[i][:])
	}
	resetProbSlice(m.posSpecial[:])
	resetProbSlice(m.posAlign[:])

	m.lenChoice.reset()
	m.repChoice.reset()

	n := uint32(0x300) << (lc + lp)
	if cap(m.literal) >= int(n) {
		m.literal = m.literal[:n]
	} else {
		m.literal = make([]prob, n)
	}
	resetProbSlice(m.literal)
}

// encoderState is everything the parser/symbol-emitter pair carry across
// successive symbols: the automaton state, the four most recent distances,
// and the shared probability model.
type encoderState struct {
	state lzmaState
	reps  [numReps]uint32
	probs probModel

	lc, lp, pb uint32
	pbMask     uint32
	lpMask     uint32
}

func (es *encoderState) reset(lc, lp, pb uint32) {
	es.state = stateLitLit
	for i := range es.reps {
		es.reps[i] = 0
	}
	es.lc, es.lp, es.pb = lc, lp, pb
	es.pbMask = (1 << pb) - 1
	es.lpMask = (1 << lp) - 1
	es.probs.reset(lc, lp)
}

// literalState returns the offset of the 0x300-entry literal probability
// sub-table selected by the low lp bits of position and the top lc bits of
// the previous byte.
func (es *encoderState) literalState(pos uint32, prevByte byte) uint32 {
	litState := ((pos & es.lpMask) << es.lc) | uint32(prevByte>>(8-es.lc))
	return litState * 0x300
}
