// SPDX-License-Identifier: MIT
// Copyright (c) 2026 lzma-core authors
// Source: github.com/lzma-core/lzma1enc

package lzma

import "sync"

// EncoderPool reuses Encoders (and, with them, their hash/chain tables and
// probability arrays) across short-lived compression calls, the same
// pattern the teacher's sliding_window_pool.go applies to hash-chain
// dictionaries: allocate once, Reset in place, return to the pool instead
// of letting the GC reclaim megabytes of table state per call.
type EncoderPool struct {
	props Properties
	pool  sync.Pool
}

// NewEncoderPool returns a pool whose Encoders are configured with p. All
// Encoders obtained from it share p until the pool is replaced.
func NewEncoderPool(p Properties) *EncoderPool {
	ep := &EncoderPool{props: p}
	ep.pool.New = func() any {
		e := new(Encoder)
		return e
	}
	return ep
}

// Get returns a freshly Reset Encoder ready for a new stream.
func (ep *EncoderPool) Get() (*Encoder, error) {
	e := ep.pool.Get().(*Encoder)
	if err := e.Reset(ep.props); err != nil {
		ep.pool.Put(e)
		return nil, err
	}
	return e, nil
}

// Put returns e to the pool for reuse. Callers must not use e afterward.
func (ep *EncoderPool) Put(e *Encoder) {
	ep.pool.Put(e)
}
