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

import (
	"github.com/ajroetker/go-gemmbench/hwy"
	"github.com/ajroetker/go-gemmbench/hwy/contrib/dot"
)

// TransposedMatMul computes C = A * B by first transposing B into a scratch
// buffer, so that every element of C becomes a contiguous dot product of a
// row of A and a row of B^T. The dot products use d's vector width; a
// single-lane d uses the sequential scalar dot product.
func TransposedMatMul(d hwy.D, a, b, c *Matrix) error {
	const op = "TransposedMatMul"
	m, n, k, err := checkDims(op, a, b, c)
	if err != nil {
		return err
	}
	bt, err := allocate(op, n, k)
	if err != nil {
		return err
	}
	transpose(b.data, bt, k, n)

	dotFn := func(x, y []float32) float32 { return dot.Dot(d, x, y) }
	if d.Lanes() == 1 {
		dotFn = dot.DotScalar
	}
	for i := range m {
		aRow := a.data[i*k : (i+1)*k]
		cRow := c.data[i*n : (i+1)*n]
		for j := range n {
			cRow[j] = dotFn(aRow, bt[j*k:(j+1)*k])
		}
	}
	return nil
}

// transpose writes the rows x cols matrix src into dst as cols x rows.
// It walks 8x8 tiles so both sides stay cache friendly.
func transpose(src, dst []float32, rows, cols int) {
	const tile = 8
	for r0 := 0; r0 < rows; r0 += tile {
		rEnd := min(r0+tile, rows)
		for c0 := 0; c0 < cols; c0 += tile {
			cEnd := min(c0+tile, cols)
			for r := r0; r < rEnd; r++ {
				for c := c0; c < cEnd; c++ {
					dst[c*rows+r] = src[r*cols+c]
				}
			}
		}
	}
}
