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
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/mat"
)

// GonumBLAS32MatMul computes C = A * B with gonum's single-precision Sgemm.
// The matrices are handed over as row-major blas32.General views of their
// buffers; nothing is copied.
func GonumBLAS32MatMul(a, b, c *Matrix) error {
	m, n, k, err := checkDims("GonumBLAS32MatMul", a, b, c)
	if err != nil {
		return err
	}
	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas32.General{Rows: m, Cols: k, Stride: k, Data: a.data},
		blas32.General{Rows: k, Cols: n, Stride: n, Data: b.data},
		0,
		blas32.General{Rows: m, Cols: n, Stride: n, Data: c.data})
	return nil
}

// GonumDenseMatMul computes C = A * B with gonum's mat.Dense product.
// mat works in float64, so the operands are widened on the way in and the
// product is rounded back to float32 on the way out.
func GonumDenseMatMul(a, b, c *Matrix) error {
	m, n, _, err := checkDims("GonumDenseMatMul", a, b, c)
	if err != nil {
		return err
	}
	da := mat.NewDense(a.rows, a.cols, widen(a.data))
	db := mat.NewDense(b.rows, b.cols, widen(b.data))

	var dc mat.Dense
	dc.Mul(da, db)

	raw := dc.RawMatrix()
	for i := range m {
		src := raw.Data[i*raw.Stride : i*raw.Stride+n]
		dst := c.data[i*n : (i+1)*n]
		for j, v := range src {
			dst[j] = float32(v)
		}
	}
	return nil
}

func widen(src []float32) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}
