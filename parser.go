// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

// The fast parser: one hash-chain lookup per position, a rep-distance scan
// alongside it, a handful of cheap heuristics (nice_len shortcut, change_pair
// redundant-candidate collapsing, a short-distance length-2 penalty, and a
// rep-vs-normal-match preference rule), and a one-byte lazy lookahead that
// rolls the current byte into a literal run whenever the next position
// offers a strictly better candidate. No price model, no multi-position
// lookahead tree: this is the fast/greedy-with-lookahead parser spec.md
// section 4.3 describes, not the optional price-based optimal parser it
// explicitly excludes.
//
// Grounded on original_source/lzma/lzma_encoder.c's lzma_get_optimum_fast
// (change_pair macro, the nice_len/short-distance heuristics, and the
// while(1) lazy-match loop) and mf.c's lzma_mf_find/lzma_mf_skip contract.
// DESIGN.md records one deliberate simplification: the reference's lazy loop
// has a TODO-marked early exit (an exact byte-for-byte rep check at the
// peeked position) that depends on caching the peeked match-finder result
// across separate top-level parser calls; this implementation resolves the
// whole lazy decision within a single parseNext call and has no such cache,
// so that specific shortcut is dropped — the loop's general comparison
// logic already reaches an equivalent (if occasionally one candidate later)
// decision through the ordinary per-iteration checks below. Short (length-1)
// rep0 matches are never selected by this parser (a minor ratio
// optimization, not a correctness requirement) even though symbols.go's
// encodeRepMatch supports emitting one when asked directly.

// noMatch marks a parseResult whose match carries a fresh distance rather
// than reusing one of reps[0..3].
const noMatch = -1

// parseResult is one parser decision: emit nliterals literals starting at
// the position the caller captured before calling parseNext, then, if
// length > 0, a match of that length immediately following them — either
// reusing one of the four most recent distances (repIndex >= 0) or a fresh
// distance (repIndex == noMatch, dist valid). length == 0 means the step is
// literals only.
type parseResult struct {
	nliterals uint32
	length    uint32
	repIndex  int
	dist      uint32
}

// changePair reports whether a match one byte shorter at smallDist is
// preferred over a longer one at bigDist: true once bigDist exceeds
// smallDist by more than a factor of 128 (bigDist>>7 > smallDist), so the
// extra byte of length is not worth the costlier distance.
func changePair(smallDist, bigDist uint32) bool {
	return smallDist < (bigDist >> 7)
}

// repMatchLen returns how many bytes at the current position match the
// byte stream at reps[i]'s distance (0 if fewer than 2 bytes match, since
// LZMA's minimum match length is 2).
func repMatchLen(buf []byte, cur, dist, limit uint32) uint32 {
	back := cur - dist
	if buf[cur] != buf[back] || cur+1 >= limit || buf[cur+1] != buf[back+1] {
		return 0
	}
	n := uint32(2)
	for cur+n < limit && buf[cur+n] == buf[back+n] {
		n++
	}
	return n
}

// parseNext scores the symbol at the match finder's current position,
// peeking ahead one byte at a time (the lazy step) to decide whether
// rolling the current byte into a longer literal run yields a better
// candidate later. It leaves the match finder positioned exactly
// nliterals+length bytes past where it started.
func parseNext(mf *matchFinder, reps *[numReps]uint32, finish bool) (parseResult, error) {
	start := mf.cur
	matches, err := mf.find(finish)
	if err != nil {
		return parseResult{}, err
	}

	avail := mf.iend - start
	if avail > matchLenMax {
		avail = matchLenMax
	}
	// Step 1: no candidate at all, or too little input left to encode a
	// match profitably (mirrors lzma_get_optimum_fast's
	// "mf->iend - ip <= 2" out_literal guard exactly, including the ==2 case).
	if len(matches) == 0 || avail <= 2 {
		return parseResult{nliterals: 1}, nil
	}

	buf := mf.buffer
	limit := start + avail

	// Step 2: scan the four rep distances for the best prefix match; commit
	// immediately if one reaches nice_len.
	var bestRepLen uint32
	bestRepIndex := 0
	for i := 0; i < numReps; i++ {
		dist := reps[i]
		if dist == 0 || dist > start {
			continue
		}
		n := repMatchLen(buf, start, dist, limit)
		if n >= mf.niceLen {
			mf.skip(n - 1)
			return parseResult{length: n, repIndex: i, dist: dist}, nil
		}
		if n > bestRepLen {
			bestRepLen = n
			bestRepIndex = i
		}
	}

	mainLen := matches[len(matches)-1].Len
	mainDist := matches[len(matches)-1].Dist

	// Step 3: commit the longest normal match immediately if it reaches
	// nice_len.
	if mainLen >= mf.niceLen {
		mf.skip(mainLen - 1)
		return parseResult{length: mainLen, repIndex: noMatch, dist: mainDist}, nil
	}

	// Step 4: drop the longest candidate while the next one is exactly one
	// byte shorter and changePair prefers its much smaller distance.
	for len(matches) > 1 && mainLen == matches[len(matches)-2].Len+1 {
		if !changePair(matches[len(matches)-2].Dist, mainDist) {
			break
		}
		matches = matches[:len(matches)-1]
		mainLen = matches[len(matches)-1].Len
		mainDist = matches[len(matches)-1].Dist
	}

	// Steps 5/6: provisionally choose between the normal match and the best
	// rep, favoring the normal match only when it clearly beats the rep.
	var curLen, curDist uint32
	var curIsRep bool
	var curRepIdx int

	if mainLen > bestRepLen+1 {
		if mainLen < 3 && mainDist > 0x80 {
			return parseResult{nliterals: 1}, nil
		}
		curLen, curDist, curIsRep = mainLen, mainDist, false
	} else {
		curLen, curRepIdx, curIsRep = bestRepLen, bestRepIndex, true
	}

	// Step 7: the lazy one-byte lookahead. Keep peeking one position further
	// and roll the in-between byte into the literal run whenever the new
	// position's candidate is strictly better than the one currently held.
	var rollCount uint32
	var findFailed bool

	for {
		peeked, perr := mf.find(finish)
		if perr != nil {
			findFailed = true
			break
		}
		if len(peeked) == 0 {
			break
		}
		victim := peeked[len(peeked)-1]
		if victim.Len+1 < curLen {
			break
		}

		repIdx := -1
		for i := 0; i < numReps; i++ {
			if reps[i] == victim.Dist {
				repIdx = i
				break
			}
		}

		if curIsRep {
			if repIdx < 0 || victim.Len <= curLen {
				break
			}
			curLen, curIsRep, curRepIdx = victim.Len, true, repIdx
		} else if repIdx >= 0 {
			curLen, curIsRep, curRepIdx = victim.Len, true, repIdx
		} else {
			if victim.Len+1 == curLen && !changePair(victim.Dist, curDist) {
				break
			}
			if victim.Len == curLen && getPosSlot(victim.Dist-1) >= getPosSlot(curDist) {
				break
			}
			curLen, curDist, curIsRep = victim.Len, victim.Dist, false
		}
		rollCount++
	}

	// Step 8: commit. Every accepted roll already advanced the match finder
	// by one byte via its own find() call above; skip only the remainder of
	// the committed match (minus one more byte if the breaking peek failed
	// to advance the match finder at all).
	skip := curLen - 2
	if findFailed {
		skip++
	}
	mf.skip(skip)

	if curIsRep {
		return parseResult{nliterals: rollCount, length: curLen, repIndex: curRepIdx, dist: reps[curRepIdx]}, nil
	}
	return parseResult{nliterals: rollCount, length: curLen, repIndex: noMatch, dist: curDist}, nil
}
