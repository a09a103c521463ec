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

// ReferenceMatMul computes C = A * B with a clear-then-ikj triple loop,
// accumulating each element in float64. It is the ground truth the other
// kernels are compared against.
func ReferenceMatMul(a, b, c *Matrix) error {
	m, n, k, err := checkDims("ReferenceMatMul", a, b, c)
	if err != nil {
		return err
	}
	acc := make([]float64, n)
	for i := range m {
		clear(acc)
		for p := range k {
			aip := float64(a.data[i*k+p])
			bRow := b.data[p*n : (p+1)*n]
			for j, bv := range bRow {
				acc[j] += aip * float64(bv)
			}
		}
		cRow := c.data[i*n : (i+1)*n]
		for j, v := range acc {
			cRow[j] = float32(v)
		}
	}
	return nil
}

// The six loop orders below all compute C += A * B on raw row-major slices
// (A is m x k, B is k x n, C is m x n). They differ only in which index
// runs innermost, and therefore in their memory access pattern.

func matmulIJK(a, b, c []float32, m, n, k int) {
	for i := range m {
		for j := range n {
			for p := range k {
				c[i*n+j] += a[i*k+p] * b[p*n+j]
			}
		}
	}
}

func matmulIKJ(a, b, c []float32, m, n, k int) {
	for i := range m {
		for p := range k {
			for j := range n {
				c[i*n+j] += a[i*k+p] * b[p*n+j]
			}
		}
	}
}

func matmulJIK(a, b, c []float32, m, n, k int) {
	for j := range n {
		for i := range m {
			for p := range k {
				c[i*n+j] += a[i*k+p] * b[p*n+j]
			}
		}
	}
}

func matmulJKI(a, b, c []float32, m, n, k int) {
	for j := range n {
		for p := range k {
			for i := range m {
				c[i*n+j] += a[i*k+p] * b[p*n+j]
			}
		}
	}
}

func matmulKIJ(a, b, c []float32, m, n, k int) {
	for p := range k {
		for i := range m {
			for j := range n {
				c[i*n+j] += a[i*k+p] * b[p*n+j]
			}
		}
	}
}

func matmulKJI(a, b, c []float32, m, n, k int) {
	for p := range k {
		for j := range n {
			for i := range m {
				c[i*n+j] += a[i*k+p] * b[p*n+j]
			}
		}
	}
}
