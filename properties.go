// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

// Grounded on original_source/lzma/lzma_encoder.c's lzma_default_properties
// and lzma_common.h's constant definitions, and on the teacher's
// options.go/level_params.go (Default*Options / fixedLevels table) for how
// to shape a Go-idiomatic properties/options layer.

// Properties are the encoder parameters a .lzma container header must also
// record (lc, lp, pb, dict size) so a decoder can reconstruct this stream's
// probability model shape. Synthesizing that header is a host
// responsibility (spec.md Non-goals); this package only consumes the values.
type Properties struct {
	// LC is the number of high bits of the previous byte folded into the
	// literal coder's context (0..8, lc+lp <= 4 by convention).
	LC uint32
	// LP is the number of low position bits folded into the literal
	// coder's context (0..4).
	LP uint32
	// PB is the number of low position bits folded into the is_match /
	// is_rep0_long / length coder context (0..4).
	PB uint32
	// DictSize bounds how far back a match distance may reach.
	DictSize uint32
	// NiceLen is the match length at which the parser stops searching
	// for something better (5..273).
	NiceLen uint32
	// Depth is the match finder's chain-walk search depth; 0 selects
	// defaultDepth(NiceLen).
	Depth uint32
}

// DefaultProperties returns LZMA's conventional default parameters:
// lc=3, lp=0, pb=2, a 64 KiB dictionary, nice_len=32, depth derived from it.
// Mirrors the teacher's DefaultCompressOptions constructor.
func DefaultProperties() Properties {
	p := Properties{LC: 3, LP: 0, PB: 2, DictSize: 1 << 16, NiceLen: 32}
	p.Depth = defaultDepth(p.NiceLen)
	return p
}

// LevelProperties maps a 0-9 compression level to concrete parameters, the
// way the teacher's level_params.go maps LZO levels to fixedLevels entries:
// dictionary size grows with level, nice_len steps up once level reaches 7,
// and search depth is derived from nice_len exactly as
// lzma_default_properties does.
func LevelProperties(level int) Properties {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}

	p := Properties{LC: 3, LP: 0, PB: 2}
	p.DictSize = levelDictSizes[level]
	if level < 7 {
		p.NiceLen = 32
	} else {
		p.NiceLen = 64
	}
	p.Depth = defaultDepth(p.NiceLen)
	return p
}

// levelDictSizes grows the dictionary (never shrinking from one level to the
// next) from 64 KiB at level 0 up to 64 MiB at level 9, matching the
// teacher's level-indexed fixedLevels table shape.
var levelDictSizes = [10]uint32{
	1 << 16, 1 << 18, 1 << 20, 1 << 20,
	1 << 22, 1 << 22, 1 << 23,
	1 << 24, 1 << 25, 1 << 26,
}

// defaultDepth reproduces lzma_default_properties' depth formula:
// (16 + nice_len/2) / 2.
func defaultDepth(niceLen uint32) uint32 {
	return (16 + niceLen/2) / 2
}

// validate checks the invariants every Reset call must enforce before
// configuring the probability model and match finder.
func (p Properties) validate() error {
	if p.LC > 8 || p.LP > 4 || p.LC+p.LP > 4 {
		return ErrInvalidProps
	}
	if p.PB > 4 {
		return ErrInvalidProps
	}
	if p.DictSize == 0 || p.DictSize > (1<<31) {
		return ErrInvalidDictSize
	}
	if p.NiceLen < 5 || p.NiceLen > matchLenMax {
		return ErrInvalidNiceLen
	}
	return nil
}

func (p Properties) matchFinderProperties() MatchFinderProperties {
	depth := p.Depth
	if depth == 0 {
		depth = defaultDepth(p.NiceLen)
	}
	return MatchFinderProperties{DictSize: p.DictSize, NiceLen: p.NiceLen, Depth: depth}
}
