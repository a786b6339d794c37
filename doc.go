// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

/*
Package lzma implements the core of an LZMA1 ("classical .lzma") stream
encoder: a hash-chain match finder, a fast greedy-with-lookahead parser, and
a range coder over the LZMA adaptive probability model. It produces a
bit-exact LZMA1 payload; it does not write the 13-byte .lzma container
header, and it does not decode.

# Basic usage

	enc, err := lzma.NewEncoder(lzma.DefaultProperties())
	if err != nil {
		// handle invalid parameters
	}
	enc.Fill(data)
	out := make([]byte, 4096)
	for {
		n, status, err := enc.Encode(out, true)
		if err != nil {
			// handle internal error
		}
		write(out[:n])
		if status == lzma.StatusOK {
			break
		}
		// status == StatusOutputFull: grow/flush out and call Encode again
	}

# Resumable output

Encode may return StatusOutputFull before the stream is complete. The
encoder's internal range-coder queue and match-finder state are left
consistent; calling Encode again with a fresh output buffer resumes exactly
where it left off, by construction (see Encoder.Encode).

# Parameters

Properties.LC, LP, PB follow the classical LZMA definitions (literal
context/position bits, position bits), with LC+LP <= 4. LevelProperties(n)
derives NiceLen/Depth from a 0-9 compression-level knob the way the
reference LZMA SDK does.
*/
package lzma
