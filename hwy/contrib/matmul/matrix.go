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
	"fmt"
	"math"
	"math/rand/v2"
)

// MaxElements is the largest number of float32 values a single Matrix may
// hold (just under 8 GiB). Larger requests fail with ErrOutOfMemory without
// reaching the allocator.
const MaxElements = math.MaxInt32

// Matrix is a dense, row-major float32 matrix backed by one contiguous
// buffer. Element (i, j) lives at offset i*Cols()+j.
type Matrix struct {
	rows, cols int
	data       []float32
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	data, err := allocate("NewMatrix", rows, cols)
	if err != nil {
		return nil, err
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// NewRandomMatrix allocates a rows x cols matrix filled with values in
// [-1, 1) drawn from a PCG generator seeded with seed. The same seed always
// yields the same matrix.
func NewRandomMatrix(rows, cols int, seed int64) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	for i := range m.data {
		m.data[i] = 2*rng.Float32() - 1
	}
	return m, nil
}

// NewMatrixFrom wraps data as a rows x cols matrix without copying.
// len(data) must equal rows*cols.
func NewMatrixFrom(rows, cols int, data []float32) (*Matrix, error) {
	if err := checkShape("NewMatrixFrom", rows, cols); err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, newError(KindInvalidDimension, "NewMatrixFrom",
			"buffer holds %d values, want %dx%d=%d", len(data), rows, cols, rows*cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Data returns the backing buffer. Writes through it are visible in m.
func (m *Matrix) Data() []float32 { return m.data }

// At returns element (i, j).
func (m *Matrix) At(i, j int) float32 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v float32) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

// Row returns row i as a sub-slice of the backing buffer.
func (m *Matrix) Row(i int) []float32 {
	if uint(i) >= uint(m.rows) {
		panic(fmt.Sprintf("matmul: row %d out of range [0, %d)", i, m.rows))
	}
	return m.data[i*m.cols : (i+1)*m.cols : (i+1)*m.cols]
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float32) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() (*Matrix, error) {
	c, err := NewMatrix(m.rows, m.cols)
	if err != nil {
		return nil, err
	}
	copy(c.data, m.data)
	return c, nil
}

func (m *Matrix) check(i, j int) {
	if uint(i) >= uint(m.rows) || uint(j) >= uint(m.cols) {
		panic(fmt.Sprintf("matmul: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

func checkShape(op string, rows, cols int) error {
	if rows < 1 || cols < 1 {
		return newError(KindInvalidDimension, op, "non-positive shape %dx%d", rows, cols)
	}
	return nil
}

// allocate returns a zeroed buffer of rows*cols float32 values. Requests
// above MaxElements fail with ErrOutOfMemory. Below that limit a failed
// allocation is the runtime's fatal out-of-memory error, which crashes the
// process.
func allocate(op string, rows, cols int) ([]float32, error) {
	if err := checkShape(op, rows, cols); err != nil {
		return nil, err
	}
	if rows > MaxElements/cols {
		return nil, newError(KindOutOfMemory, op, "%dx%d exceeds %d elements", rows, cols, MaxElements)
	}
	return make([]float32, rows*cols), nil
}

// checkDims validates that C = A x B composes and returns M, N and K.
func checkDims(op string, a, b, c *Matrix) (m, n, k int, err error) {
	m, k, n = a.rows, a.cols, b.cols
	if b.rows != k {
		return 0, 0, 0, newError(KindDimensionMismatch, op,
			"A is %dx%d but B is %dx%d", a.rows, a.cols, b.rows, b.cols)
	}
	if c.rows != m || c.cols != n {
		return 0, 0, 0, newError(KindDimensionMismatch, op,
			"C is %dx%d, want %dx%d", c.rows, c.cols, m, n)
	}
	return m, n, k, nil
}
