// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

// A minimal LZMA1 reference decoder, used only by this package's own tests
// to assert round-trip correctness (spec.md section 8's bit-exactness
// invariants). Decoding a real .lzma stream is explicitly out of scope for
// the production package (spec.md Non-goals); this exists purely as a test
// oracle, grounded on the same original_source/lzma/lzma_common.h state
// machine and mirroring each symbols.go emitter bit-for-bit so the two
// sides of the range coder stay in lockstep.

type rangeDecoder struct {
	code uint32
	rng  uint32
	in   []byte
	pos  int
}

func newRangeDecoder(in []byte) *rangeDecoder {
	rd := &rangeDecoder{rng: 0xFFFFFFFF, in: in, pos: 1}
	for i := 0; i < 4; i++ {
		rd.code = (rd.code << 8) | uint32(rd.readByte())
	}
	return rd
}

func (rd *rangeDecoder) readByte() byte {
	if rd.pos >= len(rd.in) {
		rd.pos++
		return 0
	}
	b := rd.in[rd.pos]
	rd.pos++
	return b
}

func (rd *rangeDecoder) normalize() {
	if rd.rng < rcTopValue {
		rd.rng <<= rcShiftBits
		rd.code = (rd.code << rcShiftBits) | uint32(rd.readByte())
	}
}

func (rd *rangeDecoder) decodeBit(p *prob) uint32 {
	rd.normalize()
	bound := (rd.rng >> numBitModelTotalBits) * uint32(*p)
	if rd.code < bound {
		rd.rng = bound
		*p += (bitModelTotal - *p) >> numMoveBits
		return 0
	}
	rd.rng -= bound
	rd.code -= bound
	*p -= *p >> numMoveBits
	return 1
}

func (rd *rangeDecoder) decodeDirectBits(nbits uint32) uint32 {
	var res uint32
	for ; nbits > 0; nbits-- {
		rd.normalize()
		rd.rng >>= 1
		rd.code -= rd.rng
		t := uint32(0) - (rd.code >> 31)
		rd.code += rd.rng & t
		res = (res << 1) + (t + 1)
	}
	return res
}

func (rd *rangeDecoder) decodeBitTree(probs []prob, nbits uint32) uint32 {
	m := uint32(1)
	for i := uint32(0); i < nbits; i++ {
		m = (m << 1) + rd.decodeBit(&probs[m])
	}
	return m - (1 << nbits)
}

func (rd *rangeDecoder) decodeBitTreeReverse(probs []prob, nbits uint32) uint32 {
	m := uint32(1)
	var sym uint32
	for i := uint32(0); i < nbits; i++ {
		bit := rd.decodeBit(&probs[m])
		m = (m << 1) + bit
		sym |= bit << i
	}
	return sym
}

// decodeLiteralMatched mirrors encodeLiteralMatched's exact per-bit
// probability-cell sequence (modelIndex standing in for that function's
// sym>>8 accumulator).
func decodeLiteralMatched(rd *rangeDecoder, probs []prob, matchByte byte) byte {
	modelIndex := uint32(1)
	mb := uint32(matchByte)
	offs := uint32(0x100)
	for modelIndex < 0x100 {
		mb <<= 1
		matchBit := mb & offs
		bit := rd.decodeBit(&probs[offs+matchBit+modelIndex])
		modelIndex = (modelIndex << 1) | bit
		offs &= ^(mb ^ (modelIndex << 8))
	}
	return byte(modelIndex)
}

func decodeLength(rd *rangeDecoder, lp *lengthEncoderProbs, posState uint32) uint32 {
	if rd.decodeBit(&lp.choice) == 0 {
		return matchMinLen + rd.decodeBitTree(lp.low[posState][:], 3)
	}
	if rd.decodeBit(&lp.choice2) == 0 {
		return matchMinLen + numLenLowSymbols + rd.decodeBitTree(lp.mid[posState][:], 3)
	}
	return matchMinLen + numLenLowSymbols + numLenMidSymbols + rd.decodeBitTree(lp.high[:], 8)
}

// decodeDistance returns the zero-based wire distance (endOfPayloadDist for
// the end-of-payload marker); the caller adds 1 for a real match.
func decodeDistance(rd *rangeDecoder, es *encoderState, length uint32) uint32 {
	lenState := getLenToPosState(length)
	slot := rd.decodeBitTree(es.probs.posSlot[lenState][:], 6)
	if slot < startPosModelIndex {
		return slot
	}

	footerBits := (slot >> 1) - 1
	base := (2 | (slot & 1)) << footerBits

	if slot < endPosModelIndex {
		base += rd.decodeBitTreeReverse(es.probs.posSpecial[base-slot:], footerBits)
	} else {
		base += rd.decodeDirectBits(footerBits-numAlignBits) << numAlignBits
		base += rd.decodeBitTreeReverse(es.probs.posAlign[:], numAlignBits)
	}
	return base
}

// decodeLZMA1 decodes payload (an Encoder's full output, EOPM included)
// back into its original bytes, given the Properties the stream was
// produced with.
func decodeLZMA1(payload []byte, p Properties) []byte {
	es := &encoderState{}
	es.reset(p.LC, p.LP, p.PB)
	rd := newRangeDecoder(payload)

	out := make([]byte, 0, 256)
	state := stateLitLit
	var reps [numReps]uint32

	for {
		pos := uint32(len(out))
		posState := pos & es.pbMask

		if rd.decodeBit(&es.probs.isMatch[state][posState]) == 0 {
			var prevByte byte
			if pos > 0 {
				prevByte = out[pos-1]
			}
			base := es.literalState(pos, prevByte)
			probs := es.probs.literal[base : base+0x300]

			var b byte
			if state.isLiteral() {
				b = byte(rd.decodeBitTree(probs, 8))
			} else {
				b = decodeLiteralMatched(rd, probs, out[pos-reps[0]])
			}
			out = append(out, b)
			state = state.afterLiteral()
			continue
		}

		var length uint32
		if rd.decodeBit(&es.probs.isRep[state]) == 0 {
			length = decodeLength(rd, &es.probs.lenChoice, posState)
			distMinusOne := decodeDistance(rd, es, length)
			if distMinusOne == endOfPayloadDist {
				return out
			}
			reps[3], reps[2], reps[1], reps[0] = reps[2], reps[1], reps[0], distMinusOne+1
			state = state.afterMatch()
		} else {
			if rd.decodeBit(&es.probs.isRepG0[state]) == 0 {
				if rd.decodeBit(&es.probs.isRep0Long[state][posState]) == 0 {
					state = state.afterShortRep()
					out = append(out, out[pos-reps[0]])
					continue
				}
			} else {
				var idx int
				switch {
				case rd.decodeBit(&es.probs.isRepG1[state]) == 0:
					idx = 1
				case rd.decodeBit(&es.probs.isRepG2[state]) == 0:
					idx = 2
				default:
					idx = 3
				}
				dist := reps[idx]
				copy(reps[1:idx+1], reps[:idx])
				reps[0] = dist
			}
			length = decodeLength(rd, &es.probs.repChoice, posState)
			state = state.afterRep()
		}

		dist := reps[0]
		for i := uint32(0); i < length; i++ {
			out = append(out, out[uint32(len(out))-dist])
		}
	}
}
