// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import "testing"

func TestChangePair(t *testing.T) {
	if changePair(10, 100) {
		t.Fatalf("changePair(10,100) should be false: 100>>7=0, 10 is not < 0")
	}
	if !changePair(0, 1<<20) {
		t.Fatalf("changePair(0, 1<<20) should be true")
	}
}

func TestParseNextEmitsLiteralsForRandomData(t *testing.T) {
	mf := newTestMatchFinder(t, 32, 32)
	data := []byte{0x01, 0x55, 0xAB, 0x00, 0x77, 0x99, 0xDE, 0xAD}
	mf.fill(data)

	var reps [numReps]uint32
	var decoded []byte
	for mf.cur < mf.iend {
		pos := mf.cur
		r, err := parseNext(mf, &reps, true)
		if err != nil {
			break
		}
		if r.length != 0 {
			t.Fatalf("expected only literals for non-repeating data, got match at %d: %+v", pos, r)
		}
		decoded = append(decoded, mf.buffer[pos:pos+r.nliterals]...)
	}
	if string(decoded) != string(data) {
		t.Fatalf("got %x, want %x", decoded, data)
	}
}

func TestParseNextFindsRepeatedMatch(t *testing.T) {
	mf := newTestMatchFinder(t, 32, 32)
	data := []byte("The quick brown fox. The quick brown fox.")
	mf.fill(data)

	var reps [numReps]uint32
	var foundMatch bool
	for mf.cur < mf.iend {
		r, err := parseNext(mf, &reps, true)
		if err != nil {
			break
		}
		if r.length >= 8 {
			foundMatch = true
		}
	}
	if !foundMatch {
		t.Fatalf("expected a long match on the repeated sentence")
	}
}

func TestRepMatchLen(t *testing.T) {
	buf := []byte("abcXabcYYYY")
	// "abc" at position 4 (X-prefixed copy) should match 3 bytes back at
	// distance 4 against the "abc" starting at position 0.
	n := repMatchLen(buf, 4, 4, uint32(len(buf)))
	if n != 3 {
		t.Fatalf("repMatchLen = %d, want 3", n)
	}
}

func TestRepMatchLenRejectsSingleByteMatch(t *testing.T) {
	buf := []byte("aXaYcZ")
	// position 2 ('a') vs distance 2 (position 0, 'a'): the first byte
	// matches but the second ('Y' vs 'X') does not, so only one byte agrees.
	n := repMatchLen(buf, 2, 2, uint32(len(buf)))
	if n != 0 {
		t.Fatalf("repMatchLen = %d, want 0 (minimum match length is 2)", n)
	}
}
