// Copyright 2025 go-gemmbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hwy provides portable fixed-width float32 vectors for the GEMM
// kernels, in the style of the Highway C++ library: a descriptor D fixes the
// lane count, and Zero/Set/Load/Store/MulAdd operate on Vec values.
//
// The dispatch level detected at startup picks the default lane count
// (4 for SSE2/NEON, 8 for AVX2, 16 for AVX-512), but any count in
// [1, MaxLanes] may be requested so that kernels can be exercised with
// unusual vector widths.
//
// Basic usage:
//
//	d := hwy.NewD(hwy.DefaultLanes())
//	acc := hwy.Zero(d)
//	for p := range k {
//	    acc = hwy.MulAdd(hwy.Set(d, a[p]), hwy.Load(d, b[p*n:]), acc)
//	}
//	hwy.Store(acc, c)
package hwy

import "fmt"

// MaxLanes is the widest vector supported, in float32 lanes (512 bits).
const MaxLanes = 16

// D describes a vector of Lanes() float32 lanes.
type D struct {
	lanes int
}

// NewD returns a descriptor for vectors of the given lane count.
// It panics if lanes is outside [1, MaxLanes].
func NewD(lanes int) D {
	if lanes < 1 || lanes > MaxLanes {
		panic(fmt.Sprintf("hwy: lane count %d outside [1, %d]", lanes, MaxLanes))
	}
	return D{lanes: lanes}
}

// Lanes returns the number of lanes described by d.
func (d D) Lanes() int {
	return d.lanes
}

// Vec is a portable vector value. Only the first NumLanes() entries of
// data are meaningful.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec struct {
	data [MaxLanes]float32
	n    int
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec) NumLanes() int {
	return v.n
}

// Data returns a copy of the active lanes.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec) Data() []float32 {
	out := make([]float32, v.n)
	copy(out, v.data[:v.n])
	return out
}
