// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package pipe chains channel transforms into lazy processing stages.
package pipe

import "sync"

// Pipe is a chain of channel stages carrying values of one type.
type Pipe[T any] struct {
	// Width is the buffer size given to every stage the chain adds.
	Width  int
	stages []<-chan T
}

// tail returns the newest stage's output.
func (p Pipe[T]) tail() <-chan T {
	return p.stages[len(p.stages)-1]
}

// From starts a chain reading from in, inheriting its buffer size.
func From[T any](in <-chan T) Pipe[T] {
	return Pipe[T]{Width: cap(in), stages: []<-chan T{in}}
}

// FromSlice starts a chain fed by the elements of s.
func FromSlice[T any](s []T) Pipe[T] {
	in := make(chan T, len(s))
	for _, t := range s {
		in <- t
	}
	close(in)
	return From(in)
}

// forEach adapts a per-item function into a stage body that drains its
// input and closes its output.
func forEach[T, S any](fn func(T, chan<- S)) func(<-chan T, chan<- S) {
	return func(in <-chan T, out chan<- S) {
		defer close(out)
		for t := range in {
			fn(t, out)
		}
	}
}

// DoFor appends a stage given the whole input channel. fn must close out.
func (p Pipe[T]) DoFor(fn func(in <-chan T, out chan<- T)) Pipe[T] {
	next := make(chan T, p.Width)
	go fn(p.tail(), next)
	p.stages = append(p.stages, next)
	return p
}

// Do appends a stage applied to each item. Items fn does not forward are
// dropped from the chain.
func (p Pipe[T]) Do(fn func(in T, out chan<- T)) Pipe[T] {
	return p.DoFor(forEach(fn))
}

// Out returns the channel the completed chain drains into.
func (p Pipe[T]) Out() <-chan T {
	return p.tail()
}

// IntoFor appends a type-changing stage given the whole input channel.
// fn must close out.
func IntoFor[T, S any](in Pipe[T], fn func(in <-chan T, out chan<- S)) Pipe[S] {
	next := make(chan S, in.Width)
	go fn(in.tail(), next)
	return From(next)
}

// Into appends a type-changing stage applied to each item.
func Into[T, S any](in Pipe[T], fn func(in T, out chan<- S)) Pipe[S] {
	return IntoFor(in, forEach(fn))
}

// ParInto is Into with fn fanned out across the given number of workers.
// Output order is not preserved.
func ParInto[T, S any](workers int, in Pipe[T], fn func(in T, out chan<- S)) Pipe[S] {
	return IntoFor(in, func(in <-chan T, out chan<- S) {
		defer close(out)
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for t := range in {
					fn(t, out)
				}
			}()
		}
		wg.Wait()
	})
}
