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

import "github.com/ajroetker/go-gemmbench/hwy"

// BlockedMatMul computes C = A * B with three levels of cache blocking and
// register-tiled vector accumulation.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// The jj loop walks N by cfg.JBlock and the ii loop walks M by cfg.IBlock.
// Each (ii, jj) block of C is cleared and then accumulated over K in
// cfg.KBlock panels. Within a panel, tiles of C are loaded into vector
// accumulators, updated for the whole panel and stored once:
//
//   - 4 vectors wide: 2 rows at a time, then a single remaining row
//   - 2 vectors wide: 4 rows, then 2, then 1
//   - 1 vector wide: one row at a time
//   - scalar columns left over: one row at a time
//
// For a fixed cfg the result is bit-identical across calls.
func BlockedMatMul(cfg Config, a, b, c *Matrix) error {
	const op = "BlockedMatMul"
	if err := cfg.Validate(); err != nil {
		return err
	}
	m, n, k, err := checkDims(op, a, b, c)
	if err != nil {
		return err
	}
	blockedMatMul(cfg, a.data, b.data, c.data, m, n, k)
	return nil
}

func blockedMatMul(cfg Config, a, b, c []float32, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}

	d := hwy.NewD(cfg.Lanes)
	w1 := d.Lanes()
	w2 := 2 * w1
	w4 := 4 * w1

	for jj := 0; jj < n; jj += cfg.JBlock {
		jEnd := min(jj+cfg.JBlock, n)

		for ii := 0; ii < m; ii += cfg.IBlock {
			iEnd := min(ii+cfg.IBlock, m)

			for i := ii; i < iEnd; i++ {
				clear(c[i*n+jj : i*n+jEnd])
			}

			for kk := 0; kk < k; kk += cfg.KBlock {
				kEnd := min(kk+cfg.KBlock, k)

				j := jj
				for ; j+w4 <= jEnd; j += w4 {
					i := ii
					for ; i+2 <= iEnd; i += 2 {
						tile2x4(d, a, b, c, n, k, i, j, kk, kEnd)
					}
					if i < iEnd {
						tile1x4(d, a, b, c, n, k, i, j, kk, kEnd)
					}
				}

				for ; j+w2 <= jEnd; j += w2 {
					i := ii
					for ; i+4 <= iEnd; i += 4 {
						tile4x2(d, a, b, c, n, k, i, j, kk, kEnd)
					}
					for ; i+2 <= iEnd; i += 2 {
						tile2x2(d, a, b, c, n, k, i, j, kk, kEnd)
					}
					if i < iEnd {
						tile1x2(d, a, b, c, n, k, i, j, kk, kEnd)
					}
				}

				for ; j+w1 <= jEnd; j += w1 {
					for i := ii; i < iEnd; i++ {
						tile1x1(d, a, b, c, n, k, i, j, kk, kEnd)
					}
				}

				for ; j < jEnd; j++ {
					for i := ii; i < iEnd; i++ {
						sum := c[i*n+j]
						for p := kk; p < kEnd; p++ {
							sum += a[i*k+p] * b[p*n+j]
						}
						c[i*n+j] = sum
					}
				}
			}
		}
	}
}

// Register tiles. tileRxV updates R rows by V vectors of C starting at
// (i, j) with the products for p in [kBegin, kEnd).

func tile2x4(d hwy.D, a, b, c []float32, n, k, i, j, kBegin, kEnd int) {
	lanes := d.Lanes()
	j1, j2, j3 := j+lanes, j+2*lanes, j+3*lanes
	cRow0 := i * n
	cRow1 := (i + 1) * n

	c00 := hwy.Load(d, c[cRow0+j:])
	c01 := hwy.Load(d, c[cRow0+j1:])
	c02 := hwy.Load(d, c[cRow0+j2:])
	c03 := hwy.Load(d, c[cRow0+j3:])
	c10 := hwy.Load(d, c[cRow1+j:])
	c11 := hwy.Load(d, c[cRow1+j1:])
	c12 := hwy.Load(d, c[cRow1+j2:])
	c13 := hwy.Load(d, c[cRow1+j3:])

	for p := kBegin; p < kEnd; p++ {
		vA0 := hwy.Set(d, a[i*k+p])
		vA1 := hwy.Set(d, a[(i+1)*k+p])

		bRow := p * n
		vB0 := hwy.Load(d, b[bRow+j:])
		vB1 := hwy.Load(d, b[bRow+j1:])
		vB2 := hwy.Load(d, b[bRow+j2:])
		vB3 := hwy.Load(d, b[bRow+j3:])

		c00 = hwy.MulAdd(vA0, vB0, c00)
		c01 = hwy.MulAdd(vA0, vB1, c01)
		c02 = hwy.MulAdd(vA0, vB2, c02)
		c03 = hwy.MulAdd(vA0, vB3, c03)
		c10 = hwy.MulAdd(vA1, vB0, c10)
		c11 = hwy.MulAdd(vA1, vB1, c11)
		c12 = hwy.MulAdd(vA1, vB2, c12)
		c13 = hwy.MulAdd(vA1, vB3, c13)
	}

	hwy.Store(c00, c[cRow0+j:])
	hwy.Store(c01, c[cRow0+j1:])
	hwy.Store(c02, c[cRow0+j2:])
	hwy.Store(c03, c[cRow0+j3:])
	hwy.Store(c10, c[cRow1+j:])
	hwy.Store(c11, c[cRow1+j1:])
	hwy.Store(c12, c[cRow1+j2:])
	hwy.Store(c13, c[cRow1+j3:])
}

func tile1x4(d hwy.D, a, b, c []float32, n, k, i, j, kBegin, kEnd int) {
	lanes := d.Lanes()
	j1, j2, j3 := j+lanes, j+2*lanes, j+3*lanes
	cRow := i * n

	c0 := hwy.Load(d, c[cRow+j:])
	c1 := hwy.Load(d, c[cRow+j1:])
	c2 := hwy.Load(d, c[cRow+j2:])
	c3 := hwy.Load(d, c[cRow+j3:])

	for p := kBegin; p < kEnd; p++ {
		vA := hwy.Set(d, a[i*k+p])
		bRow := p * n
		c0 = hwy.MulAdd(vA, hwy.Load(d, b[bRow+j:]), c0)
		c1 = hwy.MulAdd(vA, hwy.Load(d, b[bRow+j1:]), c1)
		c2 = hwy.MulAdd(vA, hwy.Load(d, b[bRow+j2:]), c2)
		c3 = hwy.MulAdd(vA, hwy.Load(d, b[bRow+j3:]), c3)
	}

	hwy.Store(c0, c[cRow+j:])
	hwy.Store(c1, c[cRow+j1:])
	hwy.Store(c2, c[cRow+j2:])
	hwy.Store(c3, c[cRow+j3:])
}

func tile4x2(d hwy.D, a, b, c []float32, n, k, i, j, kBegin, kEnd int) {
	j1 := j + d.Lanes()
	cRow0 := i * n
	cRow1 := (i + 1) * n
	cRow2 := (i + 2) * n
	cRow3 := (i + 3) * n

	c00 := hwy.Load(d, c[cRow0+j:])
	c01 := hwy.Load(d, c[cRow0+j1:])
	c10 := hwy.Load(d, c[cRow1+j:])
	c11 := hwy.Load(d, c[cRow1+j1:])
	c20 := hwy.Load(d, c[cRow2+j:])
	c21 := hwy.Load(d, c[cRow2+j1:])
	c30 := hwy.Load(d, c[cRow3+j:])
	c31 := hwy.Load(d, c[cRow3+j1:])

	for p := kBegin; p < kEnd; p++ {
		vA0 := hwy.Set(d, a[i*k+p])
		vA1 := hwy.Set(d, a[(i+1)*k+p])
		vA2 := hwy.Set(d, a[(i+2)*k+p])
		vA3 := hwy.Set(d, a[(i+3)*k+p])

		bRow := p * n
		vB0 := hwy.Load(d, b[bRow+j:])
		vB1 := hwy.Load(d, b[bRow+j1:])

		c00 = hwy.MulAdd(vA0, vB0, c00)
		c01 = hwy.MulAdd(vA0, vB1, c01)
		c10 = hwy.MulAdd(vA1, vB0, c10)
		c11 = hwy.MulAdd(vA1, vB1, c11)
		c20 = hwy.MulAdd(vA2, vB0, c20)
		c21 = hwy.MulAdd(vA2, vB1, c21)
		c30 = hwy.MulAdd(vA3, vB0, c30)
		c31 = hwy.MulAdd(vA3, vB1, c31)
	}

	hwy.Store(c00, c[cRow0+j:])
	hwy.Store(c01, c[cRow0+j1:])
	hwy.Store(c10, c[cRow1+j:])
	hwy.Store(c11, c[cRow1+j1:])
	hwy.Store(c20, c[cRow2+j:])
	hwy.Store(c21, c[cRow2+j1:])
	hwy.Store(c30, c[cRow3+j:])
	hwy.Store(c31, c[cRow3+j1:])
}

func tile2x2(d hwy.D, a, b, c []float32, n, k, i, j, kBegin, kEnd int) {
	j1 := j + d.Lanes()
	cRow0 := i * n
	cRow1 := (i + 1) * n

	c00 := hwy.Load(d, c[cRow0+j:])
	c01 := hwy.Load(d, c[cRow0+j1:])
	c10 := hwy.Load(d, c[cRow1+j:])
	c11 := hwy.Load(d, c[cRow1+j1:])

	for p := kBegin; p < kEnd; p++ {
		vA0 := hwy.Set(d, a[i*k+p])
		vA1 := hwy.Set(d, a[(i+1)*k+p])

		bRow := p * n
		vB0 := hwy.Load(d, b[bRow+j:])
		vB1 := hwy.Load(d, b[bRow+j1:])

		c00 = hwy.MulAdd(vA0, vB0, c00)
		c01 = hwy.MulAdd(vA0, vB1, c01)
		c10 = hwy.MulAdd(vA1, vB0, c10)
		c11 = hwy.MulAdd(vA1, vB1, c11)
	}

	hwy.Store(c00, c[cRow0+j:])
	hwy.Store(c01, c[cRow0+j1:])
	hwy.Store(c10, c[cRow1+j:])
	hwy.Store(c11, c[cRow1+j1:])
}

func tile1x2(d hwy.D, a, b, c []float32, n, k, i, j, kBegin, kEnd int) {
	j1 := j + d.Lanes()
	cRow := i * n

	c0 := hwy.Load(d, c[cRow+j:])
	c1 := hwy.Load(d, c[cRow+j1:])

	for p := kBegin; p < kEnd; p++ {
		vA := hwy.Set(d, a[i*k+p])
		bRow := p * n
		c0 = hwy.MulAdd(vA, hwy.Load(d, b[bRow+j:]), c0)
		c1 = hwy.MulAdd(vA, hwy.Load(d, b[bRow+j1:]), c1)
	}

	hwy.Store(c0, c[cRow+j:])
	hwy.Store(c1, c[cRow+j1:])
}

func tile1x1(d hwy.D, a, b, c []float32, n, k, i, j, kBegin, kEnd int) {
	cRow := i * n
	acc := hwy.Load(d, c[cRow+j:])
	for p := kBegin; p < kEnd; p++ {
		acc = hwy.MulAdd(hwy.Set(d, a[i*k+p]), hwy.Load(d, b[p*n+j:]), acc)
	}
	hwy.Store(acc, c[cRow+j:])
}
