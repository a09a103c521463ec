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

package matmul

import "github.com/samber/lo"

// Job returns a unit of work for the benchmark harness: each call allocates
// size x size operands seeded from seed and a zeroed C, then runs kern.
// Allocation or kernel errors panic.
func Job(kern Kernel, size int, seed int64) func() {
	return func() {
		a := lo.Must1(NewRandomMatrix(size, size, seed))
		b := lo.Must1(NewRandomMatrix(size, size, seed+1))
		c := lo.Must1(NewMatrix(size, size))
		lo.Must0(kern.Run(a, b, c), "kernel %s", kern.Name)
	}
}

// Verify runs kern once on seeded m x k and k x n operands and compares the
// product against the float64 reference with DefaultTolerance(k).
func Verify(kern Kernel, m, n, k int, seed int64) (Comparison, error) {
	a, err := NewRandomMatrix(m, k, seed)
	if err != nil {
		return Comparison{}, err
	}
	b, err := NewRandomMatrix(k, n, seed+1)
	if err != nil {
		return Comparison{}, err
	}
	c, err := NewMatrix(m, n)
	if err != nil {
		return Comparison{}, err
	}
	if err := kern.Run(a, b, c); err != nil {
		return Comparison{}, err
	}
	return Compare(a, b, c, DefaultTolerance(k))
}
