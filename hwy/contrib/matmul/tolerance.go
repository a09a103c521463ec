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

import "math"

// Float32Epsilon is the gap between 1 and the next larger float32.
const Float32Epsilon = 1.0 / (1 << 23)

// DefaultTolerance returns the relative tolerance for comparing a product
// with reduction length k against the reference. It grows with k because
// float32 rounding error accumulates across the reduction.
func DefaultTolerance(k int) float64 {
	return max(1e-5, float64(k)*Float32Epsilon)
}

// Comparison summarizes how far a computed product is from the reference.
type Comparison struct {
	MaxAbsErr float64
	MaxRelErr float64
	// Row and Col locate the element with the largest relative error.
	Row, Col int
}

// Compare checks got against the float64 reference product of a and b.
// Each element's error is scaled by Σ|A[i,p]·B[p,j]|, the magnitude the
// reduction actually worked with, so cancellation near zero does not
// inflate the relative error. It returns an error matching ErrMismatch when
// MaxRelErr exceeds tol.
func Compare(a, b, got *Matrix, tol float64) (Comparison, error) {
	const op = "Compare"
	m, n, k, err := checkDims(op, a, b, got)
	if err != nil {
		return Comparison{}, err
	}

	var cmp Comparison
	for i := range m {
		aRow := a.data[i*k : (i+1)*k]
		for j := range n {
			var want, scale float64
			for p, av := range aRow {
				t := float64(av) * float64(b.data[p*n+j])
				want += t
				scale += math.Abs(t)
			}
			absErr := math.Abs(float64(got.data[i*n+j]) - want)
			var relErr float64
			switch {
			case absErr == 0:
			case scale == 0, math.IsNaN(absErr):
				relErr = math.Inf(1)
			default:
				relErr = absErr / scale
			}
			cmp.MaxAbsErr = max(cmp.MaxAbsErr, absErr)
			if relErr > cmp.MaxRelErr || (i == 0 && j == 0) {
				cmp.MaxRelErr, cmp.Row, cmp.Col = relErr, i, j
			}
		}
	}
	if cmp.MaxRelErr > tol {
		return cmp, newError(KindMismatch, op,
			"relative error %.3g at (%d, %d) exceeds %.3g", cmp.MaxRelErr, cmp.Row, cmp.Col, tol)
	}
	return cmp, nil
}
