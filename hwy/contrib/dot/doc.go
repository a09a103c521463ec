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

// Package dot provides vectorized float32 dot products.
//
// # Algorithm
//
// The implementation uses two vector multiply-accumulate chains followed by
// horizontal reduction:
//  1. Process elements in chunks of two vectors
//  2. Process one remaining full vector, if any
//  3. Reduce the accumulators to a scalar
//  4. Handle tail elements with scalar code
//
// # Example Usage
//
//	import (
//		"github.com/ajroetker/go-gemmbench/hwy"
//		"github.com/ajroetker/go-gemmbench/hwy/contrib/dot"
//	)
//
//	a := []float32{1, 2, 3, 4, 5, 6, 7, 8}
//	b := []float32{8, 7, 6, 5, 4, 3, 2, 1}
//	result := dot.Dot(hwy.NewD(hwy.DefaultLanes()), a, b)  // 120.0
//
// The summation order depends on the lane count, so Dot with different
// descriptors may differ in the last bits.
package dot
