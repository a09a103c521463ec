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
	"testing"

	"github.com/ajroetker/go-gemmbench/hwy"
	"github.com/ajroetker/go-gemmbench/hwy/contrib/dot"
	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// operands returns seeded A (m x k) and B (k x n) plus a zeroed C.
func operands(t testing.TB, m, n, k int) (a, b, c *Matrix) {
	t.Helper()
	var err error
	a, err = NewRandomMatrix(m, k, 1)
	require.NoError(t, err)
	b, err = NewRandomMatrix(k, n, 2)
	require.NoError(t, err)
	c, err = NewMatrix(m, n)
	require.NoError(t, err)
	return a, b, c
}

func TestReferenceMatMul(t *testing.T) {
	a, err := NewMatrixFrom(2, 3, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	b, err := NewMatrixFrom(3, 2, []float32{7, 8, 9, 10, 11, 12})
	require.NoError(t, err)
	c, err := NewMatrix(2, 2)
	require.NoError(t, err)
	c.Fill(99)

	require.NoError(t, ReferenceMatMul(a, b, c))
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data())
}

func TestBlockedMatMul(t *testing.T) {
	t.Logf("Dispatch level: %s", hwy.CurrentName())

	sizes := []struct{ m, n, k int }{
		{1, 1, 1},
		{5, 5, 5},
		{7, 3, 11},
		{16, 16, 16},
		{33, 65, 17},
		{64, 100, 70},
	}
	configs := []Config{
		DefaultConfig(),
		{IBlock: 1, JBlock: 1, KBlock: 1, Lanes: 1},
		{IBlock: 4, JBlock: 4, KBlock: 4, Lanes: 1},
		{IBlock: 4, JBlock: 4, KBlock: 3, Lanes: 2},
		{IBlock: 8, JBlock: 32, KBlock: 16, Lanes: 4},
		{IBlock: 3, JBlock: 50, KBlock: 7, Lanes: 3},
		{IBlock: 64, JBlock: 64, KBlock: 64, Lanes: 16},
	}
	for _, sz := range sizes {
		for _, cfg := range configs {
			name := fmt.Sprintf("%dx%dx%d/%d-%d-%d-L%d", sz.m, sz.n, sz.k, cfg.IBlock, cfg.JBlock, cfg.KBlock, cfg.Lanes)
			t.Run(name, func(t *testing.T) {
				a, b, c := operands(t, sz.m, sz.n, sz.k)
				require.NoError(t, BlockedMatMul(cfg, a, b, c))
				_, err := Compare(a, b, c, DefaultTolerance(sz.k))
				assert.NoError(t, err)
			})
		}
	}
}

func TestBlockedMatMulSingleElement(t *testing.T) {
	a, b, c := operands(t, 1, 1, 1)
	require.NoError(t, BlockedMatMul(DefaultConfig(), a, b, c))
	assert.Equal(t, a.At(0, 0)*b.At(0, 0), c.At(0, 0))
}

// With 4x4x4 blocks and one lane, a 5x5x5 product runs the 2-row and
// 1-row paths of the 4-vector tier and the single-vector tier. With two
// lanes it runs the 4-row and 1-row paths of the 2-vector tier and the
// scalar column path.
func TestBlockedMatMulRemainders(t *testing.T) {
	for _, lanes := range []int{1, 2} {
		t.Run(fmt.Sprintf("Lanes%d", lanes), func(t *testing.T) {
			cfg := Config{IBlock: 4, JBlock: 4, KBlock: 4, Lanes: lanes}
			a, b, c := operands(t, 5, 5, 5)
			require.NoError(t, BlockedMatMul(cfg, a, b, c))

			want, err := NewMatrix(5, 5)
			require.NoError(t, err)
			require.NoError(t, ReferenceMatMul(a, b, want))

			var maxErr float32
			for i := range c.Data() {
				maxErr = max(maxErr, abs32(c.Data()[i]-want.Data()[i]))
			}
			const tolerance = 1e-5
			assert.LessOrEqual(t, maxErr, float32(tolerance))
		})
	}
}

func TestBlockedMatMulZeroA(t *testing.T) {
	a, err := NewMatrix(9, 6)
	require.NoError(t, err)
	b, err := NewRandomMatrix(6, 13, 5)
	require.NoError(t, err)
	c, err := NewMatrix(9, 13)
	require.NoError(t, err)
	c.Fill(123.5)

	cfg := Config{IBlock: 4, JBlock: 8, KBlock: 4, Lanes: 2}
	require.NoError(t, BlockedMatMul(cfg, a, b, c))
	for _, v := range c.Data() {
		require.Zero(t, v)
	}
}

func TestBlockedMatMulDeterministic(t *testing.T) {
	cfg := Config{IBlock: 8, JBlock: 16, KBlock: 8, Lanes: 4}
	a, b, c1 := operands(t, 23, 37, 19)
	c2, err := NewMatrix(23, 37)
	require.NoError(t, err)

	require.NoError(t, BlockedMatMul(cfg, a, b, c1))
	require.NoError(t, BlockedMatMul(cfg, a, b, c2))
	if diff := cmp.Diff(c1.Data(), c2.Data()); diff != "" {
		t.Errorf("repeated invocations differ (-first +second):\n%s", diff)
	}
}

func TestBlockedMatMulErrors(t *testing.T) {
	a, b, _ := operands(t, 4, 5, 6)

	badC, err := NewMatrix(5, 4)
	require.NoError(t, err)
	badC.Fill(7)
	err = BlockedMatMul(DefaultConfig(), a, b, badC)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	for _, v := range badC.Data() {
		require.Equal(t, float32(7), v, "C must be untouched on mismatch")
	}

	err = BlockedMatMul(DefaultConfig(), a, a, badC)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	c, err := NewMatrix(4, 5)
	require.NoError(t, err)
	err = BlockedMatMul(Config{IBlock: 0, JBlock: 1, KBlock: 1, Lanes: 1}, a, b, c)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParallelBlockedMatMul(t *testing.T) {
	testCases := []struct {
		name    string
		m, n, k int
		cfg     Config
	}{
		{"Strips", 200, 70, 40, Config{IBlock: 16, JBlock: 32, KBlock: 16, Lanes: 4, Workers: 4}},
		{"RaggedLastStrip", 131, 67, 33, Config{IBlock: 24, JBlock: 64, KBlock: 32, Lanes: 8, Workers: 3}},
		{"SingleWorker", 130, 65, 40, Config{IBlock: 8, JBlock: 16, KBlock: 8, Lanes: 2, Workers: 1}},
		{"BelowThreshold", 9, 9, 9, Config{IBlock: 2, JBlock: 4, KBlock: 4, Lanes: 1, Workers: 4}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, b, serial := operands(t, tc.m, tc.n, tc.k)
			parallel, err := NewMatrix(tc.m, tc.n)
			require.NoError(t, err)

			require.NoError(t, BlockedMatMul(tc.cfg, a, b, serial))
			require.NoError(t, ParallelBlockedMatMul(tc.cfg, a, b, parallel))
			if diff := cmp.Diff(serial.Data(), parallel.Data()); diff != "" {
				t.Errorf("parallel differs from serial (-serial +parallel):\n%s", diff)
			}
			_, err = Compare(a, b, parallel, DefaultTolerance(tc.k))
			assert.NoError(t, err)
		})
	}
}

func TestStripHeight(t *testing.T) {
	assert.Equal(t, 64, stripHeight(64))
	assert.Equal(t, 64, stripHeight(16))
	assert.Equal(t, 72, stripHeight(24))
	assert.Equal(t, 128, stripHeight(128))
}

func TestMatMulAuto(t *testing.T) {
	cfg := Config{IBlock: 16, JBlock: 32, KBlock: 16, Lanes: 4, Workers: 2}
	for _, sz := range []int{8, 100, 200} {
		t.Run(fmt.Sprint(sz), func(t *testing.T) {
			a, b, c := operands(t, sz, sz, 20)
			want, err := NewMatrix(sz, sz)
			require.NoError(t, err)
			require.NoError(t, BlockedMatMul(cfg, a, b, want))
			require.NoError(t, MatMulAuto(cfg, a, b, c))
			assert.Empty(t, cmp.Diff(want.Data(), c.Data()))
		})
	}
}

func TestTransposedMatMulLanes(t *testing.T) {
	a, b, c := operands(t, 13, 11, 17)
	bt, err := NewMatrix(11, 17)
	require.NoError(t, err)
	transpose(b.Data(), bt.Data(), 17, 11)

	for _, lanes := range []int{1, 2, 4, 16} {
		t.Run(fmt.Sprintf("Lanes%d", lanes), func(t *testing.T) {
			d := hwy.NewD(lanes)
			require.NoError(t, TransposedMatMul(d, a, b, c))
			for i := range 13 {
				for j := range 11 {
					want := dot.Dot(d, a.Row(i), bt.Row(j))
					if lanes == 1 {
						want = dot.DotScalar(a.Row(i), bt.Row(j))
					}
					require.Equal(t, want, c.At(i, j), "(%d, %d)", i, j)
				}
			}
			_, err := Compare(a, b, c, DefaultTolerance(17))
			assert.NoError(t, err)
		})
	}
}

func TestTranspose(t *testing.T) {
	src := make([]float32, 11*9)
	for i := range src {
		src[i] = float32(i)
	}
	dst := make([]float32, len(src))
	transpose(src, dst, 11, 9)
	for r := range 11 {
		for c := range 9 {
			require.Equal(t, src[r*9+c], dst[c*11+r])
		}
	}
}

func TestKernels(t *testing.T) {
	kernels := Kernels(Config{IBlock: 8, JBlock: 16, KBlock: 8, Lanes: 4, Workers: 2})

	names := lo.Map(kernels, func(k Kernel, _ int) string { return k.Name })
	assert.Len(t, lo.Uniq(names), len(names), "kernel names must be unique")
	for _, k := range kernels {
		assert.Contains(t, Groups(), k.Group, k.Name)
	}

	// Odd sizes hit every remainder path; 70 is large enough for the
	// parallel kernel to fan out.
	sizes := []struct{ m, n, k int }{{37, 45, 29}, {70, 70, 70}}
	for _, kern := range kernels {
		for _, sz := range sizes {
			t.Run(fmt.Sprintf("%s/%dx%dx%d", kern.Name, sz.m, sz.n, sz.k), func(t *testing.T) {
				_, err := Verify(kern, sz.m, sz.n, sz.k, 7)
				assert.NoError(t, err)
			})
		}
	}
}

func TestKernelsDimensionMismatch(t *testing.T) {
	a, b, _ := operands(t, 3, 4, 5)
	c, err := NewMatrix(4, 3)
	require.NoError(t, err)
	for _, kern := range Kernels(DefaultConfig()) {
		assert.ErrorIs(t, kern.Run(a, b, c), ErrDimensionMismatch, kern.Name)
		assert.Zero(t, c.At(0, 0), kern.Name)
	}
}

func TestSelect(t *testing.T) {
	all := Kernels(DefaultConfig())

	got, err := Select(all, nil, nil)
	require.NoError(t, err)
	assert.Len(t, got, len(all))

	got, err = Select(all, []Group{GroupSuper}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"mm_super_1", "mm_super_2"}, lo.Map(got, func(k Kernel, _ int) string { return k.Name }))

	// Registry order wins over argument order.
	got, err = Select(all, nil, []string{"gonum_mat", "mm_ijk"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mm_ijk", "gonum_mat"}, lo.Map(got, func(k Kernel, _ int) string { return k.Name }))

	_, err = Select(all, nil, []string{"mm_nope"})
	assert.ErrorContains(t, err, "mm_nope")
	_, err = Select(all, []Group{"nope"}, nil)
	assert.ErrorContains(t, err, "nope")

	groups := ByGroup(all)
	assert.Len(t, groups[GroupOrder], 6)
	assert.Len(t, groups[GroupUnroll], 4)
	assert.Len(t, groups[GroupTile], 6)
	assert.Len(t, groups[GroupLibrary], 2)
}

func TestJob(t *testing.T) {
	var calls int
	probe := Kernel{
		Name: "probe",
		Fn: func(a, b, c *Matrix) error {
			calls++
			assert.Equal(t, 6, a.Rows())
			assert.Equal(t, 6, b.Cols())
			assert.Zero(t, c.At(5, 5))
			return nil
		},
	}
	job := Job(probe, 6, 1)
	job()
	job()
	assert.Equal(t, 2, calls)

	failing := Kernel{Name: "failing", Fn: func(a, b, c *Matrix) error { return ErrInvalidConfig }}
	assert.Panics(t, Job(failing, 2, 1))
	assert.Panics(t, Job(probe, 0, 1), "allocation errors panic")
}

func TestJobRunsNamedKernel(t *testing.T) {
	for _, kern := range Kernels(DefaultConfig()) {
		t.Run(kern.Name, func(t *testing.T) {
			assert.NotPanics(t, Job(kern, 12, 3))
		})
	}
}

func TestCompare(t *testing.T) {
	a, b, c := operands(t, 4, 4, 4)
	require.NoError(t, ReferenceMatMul(a, b, c))
	res, err := Compare(a, b, c, 1e-6)
	require.NoError(t, err)
	assert.Less(t, res.MaxRelErr, 1e-6)

	c.Set(2, 3, c.At(2, 3)+1)
	res, err = Compare(a, b, c, 1e-6)
	assert.ErrorIs(t, err, ErrMismatch)
	assert.Equal(t, 2, res.Row)
	assert.Equal(t, 3, res.Col)

	assert.InDelta(t, 1e-5, DefaultTolerance(10), 1e-12)
	assert.InDelta(t, 1024*Float32Epsilon, DefaultTolerance(1024), 1e-12)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func BenchmarkKernels(b *testing.B) {
	const size = 256
	cfg := DefaultConfig()
	kernels, err := Select(Kernels(cfg), []Group{GroupSuper, GroupBlocked, GroupLibrary}, nil)
	require.NoError(b, err)
	for _, kern := range kernels {
		b.Run(kern.Name, func(b *testing.B) {
			a, bm, c := operands(b, size, size, size)
			flops := float64(2 * size * size * size)
			b.SetBytes(int64(3 * size * size * 4))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := kern.Run(a, bm, c); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(flops*float64(b.N)/b.Elapsed().Seconds()/1e9, "GFLOPS")
		})
	}
}
