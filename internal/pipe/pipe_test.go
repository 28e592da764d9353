// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package pipe

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDo(t *testing.T) {
	p := FromSlice([]int{1, 2, 3, 4}).Do(func(in int, out chan<- int) {
		if in%2 == 0 {
			out <- in * 10
		}
	})
	var got []int
	for v := range p.Out() {
		got = append(got, v)
	}
	if want := []int{20, 40}; !cmp.Equal(got, want) {
		t.Errorf("Do() diff: %v", cmp.Diff(got, want))
	}
}

func TestInto(t *testing.T) {
	p := Into(FromSlice([]int{1, 2, 3}), func(in int, out chan<- string) {
		out <- string(rune('a' + in - 1))
	})
	var got []string
	for v := range p.Out() {
		got = append(got, v)
	}
	if want := []string{"a", "b", "c"}; !cmp.Equal(got, want) {
		t.Errorf("Into() diff: %v", cmp.Diff(got, want))
	}
}

func TestParInto(t *testing.T) {
	p := ParInto(4, FromSlice([]int{1, 2, 3, 4, 5}), func(in int, out chan<- int) {
		out <- in * 2
	})
	var got []int
	for v := range p.Out() {
		got = append(got, v)
	}
	slices.Sort(got)
	if want := []int{2, 4, 6, 8, 10}; !cmp.Equal(got, want) {
		t.Errorf("ParInto() diff: %v", cmp.Diff(got, want))
	}
}
