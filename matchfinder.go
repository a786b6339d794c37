// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import "errors"

// Grounded on sliding_window.go and compress_1x_999.go's ring-buffer /
// hash-chain idiom (teacher), and on the exact LZMA hash formulas and
// search algorithm in original_source/lzma/mf.c and mf.h.

const (
	hash2Size = 1 << 10
	hash3Size = 1 << 16
	hash3Base = hash2Size
	hash4Base = hash2Size + hash3Size

	hashGoldenRatio32 = 0x61C88647

	matchLenMin = 2
	matchLenMax = matchLenMin + lenSymbols - 1 // 2 + 272 - 1 = 273
)

// lenSymbols is the number of distinct length symbols LZMA's length coder
// can represent (8 low + 8 mid + 256 high), giving matchLenMax = 273.
const lenSymbols = (1 << 3) + (1 << 3) + (1 << 8)

func init() {
	if matchLenMin+lenSymbols-1 != 273 {
		internalError("matchLenMax constant derivation is wrong")
	}
}

// errNeedMoreInput is matchFinder.find's soft "not enough input" signal: a
// normal, expected condition (fewer than 4 bytes buffered and finish is
// false), not an InternalInvariantViolated-class bug. The driver
// (encoder.go) maps it to StatusNeedInput.
var errNeedMoreInput = errors.New("lzma: match finder needs more input")

// Match is a candidate (length, distance) pair reported by the match
// finder. dist is the raw backward distance (dist >= 1); length >= 2.
type Match struct {
	Len  uint32
	Dist uint32
}

// MatchFinderProperties configures matchFinder.reset. The properties-struct
// form, not a bare dictsize parameter, is authoritative (spec.md Open
// Questions / DESIGN.md item 5).
type MatchFinderProperties struct {
	DictSize uint32
	NiceLen  uint32
	Depth    uint32
}

// matchFinder is a hash-chain (hc4) dictionary match finder: three hash
// tables (2/3/4-byte prefixes) plus a chain of prior positions for 4+ byte
// candidates, over a single contiguous input buffer.
type matchFinder struct {
	buffer []byte // contiguous input; grows via fill
	iend   uint32 // number of valid bytes in buffer
	cur    uint32 // next byte to scan

	lookahead uint32 // bytes scanned but not yet emitted by the parser

	// offset biases positions written into hash/chain tables so that
	// "position 0" never collides with a zero-initialized (empty) slot.
	offset      uint32
	maxDistance uint32

	hashBits uint32
	hash     []uint32 // hash2Size + hash3Size + (1<<hashBits) entries
	chain    []uint32 // maxDistance+1 entries, circular

	chainCur uint32
	depth    uint32
	niceLen  uint32

	unhashedSkip uint32
	eod          bool
}

// hashBitsFor derives hashbits from dictSize: floor(log2(dictSize)) plus one
// if dictSize is not itself a power of two, clamped to 31; dictionaries
// under 64K always get 16 bits (spec.md section 4.2).
func hashBitsFor(dictSize uint32) uint32 {
	if dictSize < 65535 {
		return 16
	}
	hs := fls(dictSize)
	bits := uint32(hs)
	if uint32(1)<<(hs-1) == dictSize {
		bits--
	}
	if bits > 31 {
		bits = 31
	}
	return bits
}

// reset (re)sizes the match finder for p.DictSize, only reallocating the
// hash/chain tables when hashBits or maxDistance actually change.
func (mf *matchFinder) reset(p MatchFinderProperties) error {
	if p.DictSize == 0 {
		return ErrInvalidDictSize
	}
	if p.DictSize > (1 << 31) {
		return ErrInvalidDictSize
	}
	if p.NiceLen < 5 || p.NiceLen > 273 {
		return ErrInvalidNiceLen
	}

	newHashBits := hashBitsFor(p.DictSize)
	newMaxDistance := p.DictSize - 1

	if mf.hash == nil || newHashBits != mf.hashBits || newMaxDistance != mf.maxDistance {
		mf.hash = make([]uint32, hash4Base+(uint32(1)<<newHashBits))
		mf.chain = make([]uint32, newMaxDistance+1)
		mf.hashBits = newHashBits
	} else {
		clear(mf.hash)
		clear(mf.chain)
	}

	mf.maxDistance = newMaxDistance
	// Bias positions by maxDistance+1 so that position 0 is never
	// represented as a zero value inside the (zero-initialized) hash table.
	mf.offset = mf.maxDistance + 1

	mf.niceLen = p.NiceLen
	mf.depth = p.Depth

	mf.buffer = mf.buffer[:0]
	mf.iend = 0
	mf.cur = 0
	mf.lookahead = 0
	mf.chainCur = 0
	mf.unhashedSkip = 0
	mf.eod = false
	return nil
}

// fill appends src to the input region.
func (mf *matchFinder) fill(src []byte) {
	mf.buffer = append(mf.buffer, src...)
	mf.iend = uint32(len(mf.buffer))
}

// move advances cur by one byte and rotates chainCur through the circular
// chain of length maxDistance+1.
func (mf *matchFinder) move() {
	if mf.chainCur+1 > mf.maxDistance {
		mf.chainCur = 0
	} else {
		mf.chainCur++
	}
	mf.cur++
}

func calcDualHash(b []byte) uint32 {
	return uint32(crc32HashTable[b[0]]) ^ uint32(b[1])
}

func calcHash3(b []byte, dualHash uint32) uint32 {
	return (dualHash ^ (uint32(b[2]) << 8)) & (hash3Size - 1)
}

func calcHash4(b []byte, hashBits uint32) uint32 {
	return (loadLE32(b) * hashGoldenRatio32) >> (32 - hashBits)
}

// extend counts matching bytes between buffer[aPos:] and buffer[bPos:], up
// to (but not including) limit, starting the count already-known-equal
// prefix at `from` bytes.
func (mf *matchFinder) extend(aPos, bPos, from, limit uint32) uint32 {
	n := from
	for aPos+n < limit && mf.buffer[aPos+n] == mf.buffer[bPos+n] {
		n++
	}
	return n
}

// doHC4Find performs one hash-chain search at the current position,
// appending strictly-increasing-length candidates to dst and returning the
// number appended. Grounded on lzma_mf_do_hc4_find (original_source/lzma/mf.c);
// the chain-walk anchor check replaces that function's self-comparison bug
// (spec.md Open Questions) with a real anchor-byte check.
func (mf *matchFinder) doHC4Find(dst []Match) []Match {
	cur := mf.cur
	pos := cur + mf.offset
	niceLen := mf.niceLen

	ilimit := mf.iend
	if cur+niceLen < ilimit {
		ilimit = cur + niceLen
	}

	buf := mf.buffer
	ip := buf[cur:]

	dualHash := calcDualHash(ip)
	hash2 := dualHash & (hash2Size - 1)
	delta2 := pos - mf.hash[hash2]

	hash3 := calcHash3(ip, dualHash)
	delta3 := pos - mf.hash[hash3Base+hash3]

	hash4 := calcHash4(ip, mf.hashBits)
	curMatch := mf.hash[hash4Base+hash4]

	mf.hash[hash2] = pos
	mf.hash[hash3Base+hash3] = pos
	mf.hash[hash4Base+hash4] = pos
	mf.chain[mf.chainCur] = curMatch

	var bestLen uint32

	if delta2 <= mf.maxDistance && buf[cur-delta2] == buf[cur] && buf[cur-delta2+1] == buf[cur+1] {
		bestLen = mf.extend(cur, cur-delta2, 2, ilimit)
		dst = append(dst, Match{Len: bestLen, Dist: delta2})
		if cur+bestLen >= ilimit {
			return dst
		}
	}

	if delta3 != delta2 && delta3 <= mf.maxDistance &&
		buf[cur-delta3] == buf[cur] && buf[cur-delta3+1] == buf[cur+1] && buf[cur-delta3+2] == buf[cur+2] {
		n := mf.extend(cur, cur-delta3, 3, ilimit)
		if n > bestLen {
			bestLen = n
			dst = append(dst, Match{Len: bestLen, Dist: delta3})
			if cur+bestLen >= ilimit {
				return dst
			}
		}
	}

	for depth := mf.depth; depth > 0; depth-- {
		delta := pos - curMatch
		if delta > mf.maxDistance {
			break
		}

		var nextChainIdx uint32
		if mf.chainCur >= delta {
			nextChainIdx = mf.chainCur - delta
		} else {
			nextChainIdx = mf.maxDistance + 1 + mf.chainCur - delta
		}
		curMatch = mf.chain[nextChainIdx]

		// cur+bestLen is always < ilimit here: the delta2/delta3 checks
		// above already returned as soon as a candidate reached ilimit,
		// so this anchor-byte read is never out of bounds.
		matchPos := cur - delta
		if buf[matchPos+bestLen] == buf[cur+bestLen] &&
			loadLE32(buf[matchPos:]) == loadLE32(buf[cur:]) {
			n := mf.extend(cur, matchPos, 4, ilimit)
			if n > bestLen {
				bestLen = n
				dst = append(dst, Match{Len: bestLen, Dist: delta})
				if cur+bestLen >= ilimit {
					break
				}
			}
		}
	}

	return dst
}

// hc4Find is the eod-aware wrapper around doHC4Find: it decides whether
// enough input remains to hash the current position, advances cur/lookahead
// by one regardless, and returns errNeedMoreInput when the caller must wait
// for more input before this position can be resolved.
func (mf *matchFinder) hc4Find(dst []Match, finish bool) ([]Match, error) {
	if mf.iend-mf.cur < 4 {
		if !finish {
			return dst, errNeedMoreInput
		}
		mf.eod = true
		if mf.cur == mf.iend {
			return dst, errNeedMoreInput
		}
	}

	if !mf.eod {
		dst = mf.doHC4Find(dst)
	} else {
		mf.unhashedSkip = 0
	}
	mf.move()
	mf.lookahead++
	return dst, nil
}

// find produces the candidate match list at the current position (in
// strictly increasing length order, longest last) and advances cur by one
// byte. Matches reaching niceLen are additionally extended against the real
// end of input, not just the nice_len-bounded search limit, up to
// matchLenMax bytes.
func (mf *matchFinder) find(finish bool) ([]Match, error) {
	if mf.unhashedSkip > 0 {
		mf.skip(0)
	}

	cur := mf.cur
	matches, err := mf.hc4Find(nil, finish)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return matches, nil
	}

	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Len < mf.niceLen {
			break
		}
		limit := mf.iend
		if cur+matchLenMax < limit {
			limit = cur + matchLenMax
		}
		end := cur + matches[i].Len
		if end >= limit {
			continue
		}
		matches[i].Len = mf.extend(cur, cur-matches[i].Dist, matches[i].Len, limit)
	}
	return matches, nil
}

// skip advances n bytes, updating the hash tables as if find had been
// called for each, but without collecting matches. Bytes deferred in an
// earlier call because fewer than 4 remained are rehashed first.
func (mf *matchFinder) skip(n uint32) {
	if mf.unhashedSkip > 0 {
		n += mf.unhashedSkip
		mf.cur -= mf.unhashedSkip
		mf.lookahead -= mf.unhashedSkip
		mf.unhashedSkip = 0
	}
	if n == 0 {
		return
	}

	var done uint32
	for done < n {
		if mf.iend-mf.cur < 4 {
			mf.unhashedSkip = n - done
			mf.cur += mf.unhashedSkip
			break
		}

		cur := mf.cur
		pos := cur + mf.offset
		buf := mf.buffer
		ip := buf[cur:]

		dualHash := calcDualHash(ip)
		hash2 := dualHash & (hash2Size - 1)
		mf.hash[hash2] = pos

		hash3 := calcHash3(ip, dualHash)
		mf.hash[hash3Base+hash3] = pos

		hash4 := calcHash4(ip, mf.hashBits)
		mf.chain[mf.chainCur] = mf.hash[hash4Base+hash4]
		mf.hash[hash4Base+hash4] = pos

		mf.move()
		done++
	}

	mf.lookahead += n
}
