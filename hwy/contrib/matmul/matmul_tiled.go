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

// tiledMatMul returns a kernel computing C += A * B with the i, k and j
// loops tiled by ti, tk and tj. Tile bounds are clamped, so any matrix size
// works.
func tiledMatMul(ti, tk, tj int) func(a, b, c []float32, m, n, k int) {
	return func(a, b, c []float32, m, n, k int) {
		for i0 := 0; i0 < m; i0 += ti {
			iEnd := min(i0+ti, m)
			for p0 := 0; p0 < k; p0 += tk {
				pEnd := min(p0+tk, k)
				for j0 := 0; j0 < n; j0 += tj {
					jEnd := min(j0+tj, n)
					for i := i0; i < iEnd; i++ {
						for p := p0; p < pEnd; p++ {
							aip := a[i*k+p]
							bRow := b[p*n : (p+1)*n]
							cRow := c[i*n : (i+1)*n]
							for j := j0; j < jEnd; j++ {
								cRow[j] += aip * bRow[j]
							}
						}
					}
				}
			}
		}
	}
}

// matmulSuper1 computes C += A * B in ikj order with k unrolled by 4 and j
// unrolled by 8. The four products for one element are summed before the
// single update to C, which gives the CPU independent multiplies to overlap.
func matmulSuper1(a, b, c []float32, m, n, k int) {
	for i := range m {
		aRow := a[i*k : (i+1)*k]
		cRow := c[i*n : (i+1)*n]
		var p int
		for ; p+4 <= k; p += 4 {
			a0, a1, a2, a3 := aRow[p], aRow[p+1], aRow[p+2], aRow[p+3]
			b0 := b[p*n : (p+1)*n]
			b1 := b[(p+1)*n : (p+2)*n]
			b2 := b[(p+2)*n : (p+3)*n]
			b3 := b[(p+3)*n : (p+4)*n]
			var j int
			for ; j+8 <= n; j += 8 {
				cRow[j+0] += a0*b0[j+0] + a1*b1[j+0] + a2*b2[j+0] + a3*b3[j+0]
				cRow[j+1] += a0*b0[j+1] + a1*b1[j+1] + a2*b2[j+1] + a3*b3[j+1]
				cRow[j+2] += a0*b0[j+2] + a1*b1[j+2] + a2*b2[j+2] + a3*b3[j+2]
				cRow[j+3] += a0*b0[j+3] + a1*b1[j+3] + a2*b2[j+3] + a3*b3[j+3]
				cRow[j+4] += a0*b0[j+4] + a1*b1[j+4] + a2*b2[j+4] + a3*b3[j+4]
				cRow[j+5] += a0*b0[j+5] + a1*b1[j+5] + a2*b2[j+5] + a3*b3[j+5]
				cRow[j+6] += a0*b0[j+6] + a1*b1[j+6] + a2*b2[j+6] + a3*b3[j+6]
				cRow[j+7] += a0*b0[j+7] + a1*b1[j+7] + a2*b2[j+7] + a3*b3[j+7]
			}
			for ; j < n; j++ {
				cRow[j] += a0*b0[j] + a1*b1[j] + a2*b2[j] + a3*b3[j]
			}
		}
		// k remainder, one row of B at a time.
		for ; p < k; p++ {
			aip := aRow[p]
			bRow := b[p*n : (p+1)*n]
			for j, bv := range bRow {
				cRow[j] += aip * bv
			}
		}
	}
}

// matmulSuper2 tiles i by 1, k by 8 and j by 4.
var matmulSuper2 = tiledMatMul(1, 8, 4)
