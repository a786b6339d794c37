// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

// Symbol emission: literal, matched-literal, length, match, rep-match and
// the end-of-payload marker. Grounded on original_source/lzma/lzma_encoder.c
// (literal, literal_matched, length/LenEnc_Encode, match, rep_match,
// encode_eopm) with the 0x300-wide literal bit-tree trick taken from the
// same matched-literal coding scheme used throughout the LZMA family
// (cross-checked against other_examples/eb3257d4_ulikunitz-xz__lzma-encoder.go.go's
// writeLiteral/writeMatch idiom for how Go code structures this call chain).

// endOfPayloadDist is the out-of-range distance LZMA's decoder recognizes as
// the end-of-payload marker: a normal match whose distance field decodes to
// 0xFFFFFFFF.
const endOfPayloadDist = 0xFFFFFFFF

// encodeLiteral emits curByte as a plain (non-matched) literal. Per
// DESIGN.md's resolution of spec.md's "what does the literal emitter return"
// open question, it returns nothing and acts only through side effects on
// the range-coder queue: any internal invariant violation panics rather than
// returning a sentinel.
func encodeLiteral(es *encoderState, rc *rangeEncoder, pos uint32, curByte, prevByte byte) {
	base := es.literalState(pos, prevByte)
	probs := es.probs.literal[base : base+0x300]

	symbol := uint32(curByte) | 0x100
	for symbol < 0x10000 {
		rc.bit(&probs[symbol>>8], (symbol>>7)&1)
		symbol <<= 1
	}
}

// encodeLiteralMatched emits curByte as a literal following a match, coding
// each bit relative to matchByte (the byte at the current rep0 distance) so
// that a literal matching the byte the match finder almost-but-didn't-quite
// reach costs far fewer bits.
func encodeLiteralMatched(es *encoderState, rc *rangeEncoder, pos uint32, curByte, prevByte, matchByte byte) {
	base := es.literalState(pos, prevByte)
	probs := es.probs.literal[base : base+0x300]

	symbol := uint32(curByte) | 0x100
	mb := uint32(matchByte)
	offs := uint32(0x100)
	for symbol < 0x10000 {
		mb <<= 1
		matchBit := mb & offs
		bit := (symbol >> 7) & 1
		rc.bit(&probs[offs+matchBit+(symbol>>8)], bit)
		symbol <<= 1
		offs &= ^(mb ^ symbol)
	}
}

// encodeLiteralSymbol emits the is_match=0 prefix bit and then the literal
// itself, choosing the matched-literal coder over the plain one whenever the
// previous symbol was a match (so a rep0 byte reference is available).
func encodeLiteralSymbol(es *encoderState, rc *rangeEncoder, posState, pos uint32, curByte, prevByte, matchByte byte) {
	rc.bit(&es.probs.isMatch[es.state][posState], 0)
	if es.state.isLiteral() {
		encodeLiteral(es, rc, pos, curByte, prevByte)
	} else {
		encodeLiteralMatched(es, rc, pos, curByte, prevByte, matchByte)
	}
	es.state = es.state.afterLiteral()
}

// encodeLength emits a raw match length (the matchMinLen reduction is done
// here, not by the caller) through the three-range low/mid/high coder,
// conditioned on posState so that length and alignment jointly inform the
// model.
func encodeLength(rc *rangeEncoder, lp *lengthEncoderProbs, posState, length uint32) {
	length -= matchMinLen

	if length < numLenLowSymbols {
		rc.bit(&lp.choice, 0)
		rc.bittree(lp.low[posState][:], 3, length)
		return
	}
	rc.bit(&lp.choice, 1)
	length -= numLenLowSymbols

	if length < numLenMidSymbols {
		rc.bit(&lp.choice2, 0)
		rc.bittree(lp.mid[posState][:], 3, length)
		return
	}
	rc.bit(&lp.choice2, 1)
	length -= numLenMidSymbols
	rc.bittree(lp.high[:], 8, length)
}

// encodeDistance emits a match distance (already converted to LZMA's
// zero-based wire form by the caller) via a 6-bit position-slot bit-tree,
// followed by either a handful of reverse-coded "special" bits (slots below
// endPosModelIndex) or direct bits plus a 4-bit aligned reverse tree (slots
// at or above it).
func encodeDistance(es *encoderState, rc *rangeEncoder, length, distMinusOne uint32) {
	lenState := getLenToPosState(length)
	slot := getPosSlot(distMinusOne)
	rc.bittree(es.probs.posSlot[lenState][:], 6, slot)

	if slot < startPosModelIndex {
		return
	}

	footerBits := (slot >> 1) - 1
	base := (2 | (slot & 1)) << footerBits
	reduced := distMinusOne - base

	if slot < endPosModelIndex {
		// posSpecial carries a leading padding cell so base-slot (always
		// >= 0 for slot in [startPosModelIndex, endPosModelIndex)) is a
		// valid slice start; see state.go's posSpecialStorage comment.
		rc.bittreeReverse(es.probs.posSpecial[base-slot:], footerBits, reduced)
	} else {
		rc.direct(reduced>>numAlignBits, footerBits-numAlignBits)
		rc.bittreeReverse(es.probs.posAlign[:], numAlignBits, reduced&(alignSize-1))
	}
}

// encodeMatch emits a normal (non-rep) match: is_match=1, is_rep=0, then
// length, distance, and finally rotates dist into reps[0] and advances the
// state automaton.
func encodeMatch(es *encoderState, rc *rangeEncoder, posState, length, dist uint32) {
	rc.bit(&es.probs.isMatch[es.state][posState], 1)
	rc.bit(&es.probs.isRep[es.state], 0)

	encodeLength(rc, &es.probs.lenChoice, posState, length)
	encodeDistance(es, rc, length, dist-1)

	es.reps[3] = es.reps[2]
	es.reps[2] = es.reps[1]
	es.reps[1] = es.reps[0]
	es.reps[0] = dist
	es.state = es.state.afterMatch()
}

// encodeRepMatch emits a match reusing one of the four most recent
// distances (repIdx in 0..3). length==1 (repIdx==0 only) is the short-rep
// form: is_rep0_long=0 with no length payload at all.
func encodeRepMatch(es *encoderState, rc *rangeEncoder, posState, length, repIdx uint32) {
	rc.bit(&es.probs.isMatch[es.state][posState], 1)
	rc.bit(&es.probs.isRep[es.state], 1)

	if repIdx == 0 {
		rc.bit(&es.probs.isRepG0[es.state], 0)
		if length == 1 {
			rc.bit(&es.probs.isRep0Long[es.state][posState], 0)
			es.state = es.state.afterShortRep()
			return
		}
		rc.bit(&es.probs.isRep0Long[es.state][posState], 1)
	} else {
		rc.bit(&es.probs.isRepG0[es.state], 1)
		if repIdx == 1 {
			rc.bit(&es.probs.isRepG1[es.state], 0)
		} else {
			rc.bit(&es.probs.isRepG1[es.state], 1)
			if repIdx == 2 {
				rc.bit(&es.probs.isRepG2[es.state], 0)
			} else {
				rc.bit(&es.probs.isRepG2[es.state], 1)
			}
		}

		dist := es.reps[repIdx]
		copy(es.reps[1:repIdx+1], es.reps[:repIdx])
		es.reps[0] = dist
	}

	encodeLength(rc, &es.probs.repChoice, posState, length)
	es.state = es.state.afterRep()
}

// encodeEndOfPayload emits the end-of-payload marker: a normal match whose
// distance field is 0xFFFFFFFF and whose length is the coder minimum. LZMA1
// decoders recognize this exact pattern and stop, which is how a
// dictionary-size-less stream signals its own end (spec.md section 4.6).
func encodeEndOfPayload(es *encoderState, rc *rangeEncoder, posState uint32) {
	rc.bit(&es.probs.isMatch[es.state][posState], 1)
	rc.bit(&es.probs.isRep[es.state], 0)

	encodeLength(rc, &es.probs.lenChoice, posState, matchMinLen)
	encodeDistance(es, rc, matchMinLen, endOfPayloadDist)
}
