// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import "errors"

// Sentinel errors returned by Properties validation and Encoder setup.
var (
	// ErrInvalidDictSize is returned when DictSize is zero or exceeds 1<<31.
	ErrInvalidDictSize = errors.New("lzma: invalid dictionary size")
	// ErrInvalidProps is returned when lc, lp, pb are out of range, or lc+lp > 4.
	ErrInvalidProps = errors.New("lzma: invalid lc/lp/pb properties")
	// ErrInvalidNiceLen is returned when NiceLen is outside 5..=273.
	ErrInvalidNiceLen = errors.New("lzma: invalid nice length")

	// ErrEncoderInternal marks an internal invariant violation: a bug in this
	// package, never a consequence of caller input. Encountering it panics
	// rather than returning; it is exposed so tests and callers recovering
	// from a panic can identify the class with errors.Is.
	ErrEncoderInternal = errors.New("lzma: internal invariant violated")
)

// EncodeStatus reports the outcome of a call to Encoder.Encode.
type EncodeStatus int

const (
	// StatusOK indicates the encoder has emitted everything requested
	// (including, on a finishing call, the end-of-payload marker and final
	// range-coder flush) and drained it into the caller's buffer.
	StatusOK EncodeStatus = iota
	// StatusOutputFull indicates the caller's output buffer filled up
	// before encoding finished. The encoder state is left consistent;
	// call Encode again with a fresh buffer to resume.
	StatusOutputFull
	// StatusNeedInput indicates fewer than 4 bytes of unconsumed input
	// remain and finish was false, so the match finder cannot safely hash
	// the current position. Call Fill to add more input, or call Encode
	// again with finish=true to flush the remaining literals and close
	// the stream.
	StatusNeedInput
)

func (s EncodeStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOutputFull:
		return "output full"
	case StatusNeedInput:
		return "need input"
	default:
		return "unknown status"
	}
}

// internalError panics with an error wrapping ErrEncoderInternal, annotated
// with what the caller observed. Reserved for conditions the spec marks
// InternalInvariantViolated: positions reachable only through a bug.
func internalError(detail string) {
	panic(internalInvariantError{detail: detail})
}

type internalInvariantError struct {
	detail string
}

func (e internalInvariantError) Error() string {
	return ErrEncoderInternal.Error() + ": " + e.detail
}

func (e internalInvariantError) Unwrap() error {
	return ErrEncoderInternal
}
