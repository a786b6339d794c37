// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import (
	"encoding/binary"
	"math/bits"
)

// fls returns the index of the most significant set bit of x, one-based,
// with fls(0) == 0 and fls(1) == 1. It mirrors the C `fls` used by the
// reference match finder and length/slot math (original_source/include/ez/bitops.h).
func fls(x uint32) int {
	if x == 0 {
		return 0
	}
	return 32 - bits.LeadingZeros32(x)
}

// loadLE16 performs an unaligned little-endian 16-bit load.
func loadLE16(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// loadLE32 performs an unaligned little-endian 32-bit load.
func loadLE32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}
