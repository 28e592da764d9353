// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package iterx bridges Next()-style iterators to range-over-func loops.
package iterx

import (
	"errors"
	"iter"
)

type nexter[T any] interface {
	Next() (T, error)
}

// ToSeq2 drives it until the sentinel error, yielding each value with its
// error. The sentinel marks clean exhaustion and is never yielded; any
// other error is yielded once and ends the sequence.
func ToSeq2[T any](it nexter[T], sentinel error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := it.Next()
			if errors.Is(err, sentinel) {
				return
			}
			if cont := yield(v, err); !cont || err != nil {
				return
			}
		}
	}
}
