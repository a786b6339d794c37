// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import "errors"

// Encoder drives the match finder, parser, and symbol emitter to turn raw
// bytes into an LZMA1 payload: range-coded symbols only, no container
// header, no LZMA2/XZ framing (spec.md Non-goals). Grounded on the
// teacher's hcCompressorDict/resumable compress loop (compress_1x_999.go)
// for the Fill/Encode/resume shape, and on original_source/lzma/lzma_encoder.c's
// __lzma_encode/encode_sequence for the symbol loop itself.
type Encoder struct {
	props Properties

	mf matchFinder
	es encoderState
	rc rangeEncoder

	prevByte byte
	finished bool

	// pendingResult/pendingStart/pendingIdx/havePending let Encode resume a
	// single parser decision across multiple calls: the rc queue is drained
	// after every individual literal (so a multi-literal result can't
	// overflow it, see rangecoder.go's rcMaxSymbols), which means
	// StatusOutputFull can land mid-result. parseNext's mf.skip already
	// advanced the match finder past the whole result by the time it
	// returns, so a stalled result must be resumed from here rather than
	// re-derived by calling parseNext again.
	pendingResult parseResult
	pendingStart  uint32
	pendingIdx    uint32
	havePending   bool
}

// NewEncoder allocates an Encoder configured with p. Equivalent to
// new(Encoder) followed by Reset(p).
func NewEncoder(p Properties) (*Encoder, error) {
	e := new(Encoder)
	if err := e.Reset(p); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset reconfigures e for p and discards any in-progress stream, reusing
// the match finder's hash/chain tables when their size does not change.
func (e *Encoder) Reset(p Properties) error {
	if err := p.validate(); err != nil {
		return err
	}
	if err := e.mf.reset(p.matchFinderProperties()); err != nil {
		return err
	}
	e.props = p
	e.es.reset(p.LC, p.LP, p.PB)
	e.rc.reset()
	e.prevByte = 0
	e.finished = false
	e.havePending = false
	e.pendingResult = parseResult{}
	e.pendingStart = 0
	e.pendingIdx = 0
	return nil
}

// Fill appends more input to encode. Safe to call repeatedly as data
// becomes available; Encode consumes it incrementally.
func (e *Encoder) Fill(src []byte) {
	e.mf.fill(src)
}

// Pending returns an upper bound on bytes the encoder still owes the output
// stream from range-coder state alone (not counting unconsumed input).
func (e *Encoder) Pending() uint64 {
	return e.rc.pending()
}

// Encode drains queued range-coder output and, while room remains in out,
// decides and emits further symbols from the buffered input. Pass
// finish=true once all input has been handed to Fill, to flush the
// remaining literals, emit the end-of-payload marker, and close the range
// coder; finish must stay true on every subsequent call until Encode
// reports StatusOK.
//
// Encode never blocks: it returns StatusOutputFull as soon as out fills,
// leaving state such that calling Encode again with a fresh buffer resumes
// exactly where it left off, or StatusNeedInput when fewer than 4 bytes of
// unconsumed input remain and finish is false.
func (e *Encoder) Encode(out []byte, finish bool) (int, EncodeStatus, error) {
	pos := 0

	if e.rc.count > 0 {
		n, full := e.rc.encode(out)
		pos += n
		if full {
			return pos, StatusOutputFull, nil
		}
	}
	if e.finished {
		return pos, StatusOK, nil
	}

	for {
		if !e.havePending {
			symbolPos := e.mf.cur
			result, err := parseNext(&e.mf, &e.es.reps, finish)
			if err != nil {
				if !errors.Is(err, errNeedMoreInput) {
					return pos, StatusOK, err
				}
				if !finish {
					return pos, StatusNeedInput, nil
				}

				posState := symbolPos & e.es.pbMask
				encodeEndOfPayload(&e.es, &e.rc, posState)
				e.rc.flush()
				e.finished = true

				n, full := e.rc.encode(out[pos:])
				pos += n
				if full {
					return pos, StatusOutputFull, nil
				}
				return pos, StatusOK, nil
			}

			e.pendingResult = result
			e.pendingStart = symbolPos
			e.pendingIdx = 0
			e.havePending = true
		}

		buf := e.mf.buffer
		result := e.pendingResult

		for e.pendingIdx < result.nliterals {
			litPos := e.pendingStart + e.pendingIdx
			posState := litPos & e.es.pbMask
			curByte := buf[litPos]
			var matchByte byte
			if !e.es.state.isLiteral() {
				matchByte = buf[litPos-e.es.reps[0]]
			}
			encodeLiteralSymbol(&e.es, &e.rc, posState, litPos, curByte, e.prevByte, matchByte)
			e.prevByte = curByte
			e.pendingIdx++

			n, full := e.rc.encode(out[pos:])
			pos += n
			if full {
				return pos, StatusOutputFull, nil
			}
		}

		if result.length > 0 {
			matchPos := e.pendingStart + result.nliterals
			posState := matchPos & e.es.pbMask

			if result.repIndex != noMatch {
				encodeRepMatch(&e.es, &e.rc, posState, result.length, uint32(result.repIndex))
			} else {
				encodeMatch(&e.es, &e.rc, posState, result.length, result.dist)
			}
			e.prevByte = buf[matchPos+result.length-1]

			n, full := e.rc.encode(out[pos:])
			pos += n
			if full {
				e.havePending = false
				return pos, StatusOutputFull, nil
			}
		}

		e.havePending = false
	}
}
