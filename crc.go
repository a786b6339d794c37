// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import "hash/crc32"

// crc32HashTable is the single-byte CRC32 table the match finder mixes into
// its 2-byte "dual hash" (matchfinder.go's calcDualHash), exactly the table
// original_source/lzma/mf.c precomputes by hand. crc32.IEEETable is the same
// polynomial and contents, so there is no reason to hand-roll it.
var crc32HashTable = crc32.IEEETable
