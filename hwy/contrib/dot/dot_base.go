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

package dot

import "github.com/ajroetker/go-gemmbench/hwy"

// Dot computes the dot product of two float32 slices using d's vector width.
// The result is the sum of element-wise products: Σ(a[i] * b[i]).
//
// If the slices have different lengths, the computation uses the minimum length.
// Returns 0 if either slice is empty.
//
// Example:
//
//	a := []float32{1, 2, 3}
//	b := []float32{4, 5, 6}
//	result := Dot(hwy.NewD(4), a, b)  // 1*4 + 2*5 + 3*6 = 32
func Dot(d hwy.D, a, b []float32) float32 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	lanes := d.Lanes()
	acc0 := hwy.Zero(d)
	acc1 := hwy.Zero(d)

	var i int
	for ; i+2*lanes <= n; i += 2 * lanes {
		acc0 = hwy.MulAdd(hwy.Load(d, a[i:]), hwy.Load(d, b[i:]), acc0)
		acc1 = hwy.MulAdd(hwy.Load(d, a[i+lanes:]), hwy.Load(d, b[i+lanes:]), acc1)
	}
	if i+lanes <= n {
		acc0 = hwy.MulAdd(hwy.Load(d, a[i:]), hwy.Load(d, b[i:]), acc0)
		i += lanes
	}

	sum := hwy.ReduceSum(hwy.Add(acc0, acc1))
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
