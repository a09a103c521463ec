// Copyright 2025 The go-gemmbench Authors. SPDX-License-Identifier: Apache-2.0

package dot

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-gemmbench/hwy"
)

var d4 = hwy.NewD(4)

func TestDotExample(t *testing.T) {
	a := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	b := []float32{8, 7, 6, 5, 4, 3, 2, 1}
	if got := Dot(d4, a, b); got != 120 {
		t.Errorf("Dot = %v, want 120", got)
	}
	if got := Dot(d4, a[:3], []float32{4, 5, 6}); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestDotEmpty(t *testing.T) {
	if got := Dot(d4, nil, []float32{1}); got != 0 {
		t.Errorf("Dot(d4, nil, x) = %v, want 0", got)
	}
}

func TestDotMismatchedLengths(t *testing.T) {
	a := []float32{1, 1, 1, 1, 1}
	b := []float32{2, 2, 2}
	if got := Dot(d4, a, b); got != 6 {
		t.Errorf("Dot = %v, want 6", got)
	}
}

func TestDotMatchesScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 3, 7, 8, 15, 16, 17, 31, 33, 100, 1023} {
		a := make([]float32, n)
		b := make([]float32, n)
		for i := range a {
			a[i] = rng.Float32()*2 - 1
			b[i] = rng.Float32()*2 - 1
		}
		want := DotScalar(a, b)
		for _, lanes := range []int{1, 2, 4, 8, 16} {
			t.Run(fmt.Sprintf("n=%d/lanes=%d", n, lanes), func(t *testing.T) {
				got := Dot(hwy.NewD(lanes), a, b)
				if diff := math.Abs(float64(got - want)); diff > 1e-4*float64(n) {
					t.Errorf("Dot = %v, want %v (diff %e)", got, want, diff)
				}
			})
		}
	}
}

func BenchmarkDot(b *testing.B) {
	for _, n := range []int{64, 1024} {
		x := make([]float32, n)
		y := make([]float32, n)
		for i := range x {
			x[i] = float32(i % 7)
			y[i] = float32(i % 5)
		}
		b.Run(fmt.Sprintf("Vec/%d", n), func(b *testing.B) {
			b.SetBytes(int64(8 * n))
			for i := 0; i < b.N; i++ {
				_ = Dot(hwy.NewD(hwy.DefaultLanes()), x, y)
			}
		})
		b.Run(fmt.Sprintf("Scalar/%d", n), func(b *testing.B) {
			b.SetBytes(int64(8 * n))
			for i := 0; i < b.N; i++ {
				_ = DotScalar(x, y)
			}
		})
	}
}
