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

package hwy

// This file provides the pure Go implementations of the vector operations.
// Binary operations use the lane count of their first operand; mixing
// descriptors is a programming error.

// Zero creates a vector with all lanes set to zero.
func Zero(d D) Vec {
	return Vec{n: d.lanes}
}

// Set creates a vector with all lanes set to the same value.
func Set(d D, value float32) Vec {
	v := Vec{n: d.lanes}
	for i := range v.n {
		v.data[i] = value
	}
	return v
}

// Load creates a vector from the first d.Lanes() elements of src.
// It panics if src is shorter than that, like a slice expression would.
func Load(d D, src []float32) Vec {
	v := Vec{n: d.lanes}
	copy(v.data[:v.n], src[:v.n])
	return v
}

// Store writes the vector's lanes to the start of dst.
// It panics if dst is shorter than the vector.
func Store(v Vec, dst []float32) {
	copy(dst[:v.n], v.data[:v.n])
}

// Add performs element-wise addition.
func Add(a, b Vec) Vec {
	for i := range a.n {
		a.data[i] += b.data[i]
	}
	return a
}

// MulAdd returns a*b + c lane by lane.
func MulAdd(a, b, c Vec) Vec {
	for i := range a.n {
		c.data[i] += a.data[i] * b.data[i]
	}
	return c
}

// ReduceSum sums all lanes.
func ReduceSum(v Vec) float32 {
	var sum float32
	for i := range v.n {
		sum += v.data[i]
	}
	return sum
}
