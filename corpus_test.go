// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import (
	"bytes"
	"strings"
	"testing"
)

// Table-driven round-trip corpus across representative payload shapes and
// LevelProperties levels 0, 3, 6 and 9, in the style of the teacher's
// compat_corpus_test.go.
func TestCompatCorpus(t *testing.T) {
	corpus := map[string][]byte{
		"empty":              {},
		"single byte":        {0x00},
		"two reps":           []byte("abababababababababab"),
		"mixed literals runs": []byte("aaaa bbbb cccc dddd aaaa bbbb cccc dddd"),
		"english prose": []byte(strings.Repeat(
			"In the beginning was the word, and the word was with the code. ", 20)),
		"sparse binary": sparseBinary(2000),
		"all same byte": bytes.Repeat([]byte{0x7F}, 5000),
		"incrementing":  incrementing(1000),
	}

	for name, data := range corpus {
		data := data
		t.Run(name, func(t *testing.T) {
			for _, level := range []int{0, 3, 6, 9} {
				p := LevelProperties(level)
				payload := encodeAll(t, p, data, 4096)
				got := decodeLZMA1(payload, p)
				if !bytes.Equal(got, data) {
					t.Fatalf("level %d: mismatch (got %d bytes, want %d)", level, len(got), len(data))
				}
			}
		})
	}
}

func sparseBinary(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		if i%37 == 0 {
			b[i] = byte(i)
		}
	}
	return b
}

func incrementing(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func FuzzEncodeDecodeRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("a"))
	f.Add([]byte("aaaaaaaaaaaaaaaaaaaa"))
	f.Add([]byte("The quick brown fox jumps over the lazy dog."))
	f.Add(bytes.Repeat([]byte{0, 1, 2, 3}, 300))

	f.Fuzz(func(t *testing.T, data []byte) {
		p := DefaultProperties()
		enc, err := NewEncoder(p)
		if err != nil {
			t.Fatalf("NewEncoder: %v", err)
		}
		enc.Fill(data)

		var payload []byte
		buf := make([]byte, 37)
		for {
			n, status, err := enc.Encode(buf, true)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			payload = append(payload, buf[:n]...)
			if status == StatusOK {
				break
			}
		}

		got := decodeLZMA1(payload, p)
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch for %d-byte input", len(data))
		}
	})
}
