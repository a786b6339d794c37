// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

// prob is an adaptive 11-bit probability estimating P(bit=0) for one
// context. It is updated multiplicatively after every observed bit
// (rangecoder.go), never read or written concurrently.
type prob = uint16

const (
	numBitModelTotalBits = 11
	bitModelTotal        = 1 << numBitModelTotalBits
	probInitValue        = bitModelTotal / 2
	numMoveBits           = 5
)
