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

	"github.com/ajroetker/go-gemmbench/hwy"
	"github.com/samber/lo"
)

// Group is a family of related kernels that are benchmarked together.
type Group string

const (
	GroupOrder     Group = "order"     // the six naive loop orders
	GroupUnroll    Group = "unroll"    // ikj with the j loop unrolled
	GroupTranspose Group = "transpose" // transposed-B dot products
	GroupTile      Group = "tile"      // square i/k/j tiling
	GroupSuper     Group = "super"     // hand-combined optimizations
	GroupBlocked   Group = "blocked"   // blocked vector microkernel
	GroupLibrary   Group = "library"   // gonum
)

// Groups returns every group in benchmark order.
func Groups() []Group {
	return []Group{GroupOrder, GroupUnroll, GroupTranspose, GroupTile, GroupSuper, GroupBlocked, GroupLibrary}
}

// Kernel is a named matrix-multiplication strategy.
type Kernel struct {
	Name  string
	Group Group

	// Accumulates is true for kernels that compute C += A*B; the others
	// overwrite C with A*B.
	Accumulates bool

	Fn func(a, b, c *Matrix) error
}

// Run applies the kernel to a, b and c.
func (k Kernel) Run(a, b, c *Matrix) error {
	return k.Fn(a, b, c)
}

// sliceKernel adapts a raw-slice C += A*B kernel, checking dimensions first.
func sliceKernel(name string, group Group, fn func(a, b, c []float32, m, n, k int)) Kernel {
	return Kernel{
		Name:        name,
		Group:       group,
		Accumulates: true,
		Fn: func(a, b, c *Matrix) error {
			m, n, k, err := checkDims(name, a, b, c)
			if err != nil {
				return err
			}
			fn(a.data, b.data, c.data, m, n, k)
			return nil
		},
	}
}

func configKernel(name string, cfg Config, fn func(Config, *Matrix, *Matrix, *Matrix) error) Kernel {
	return Kernel{
		Name:  name,
		Group: GroupBlocked,
		Fn: func(a, b, c *Matrix) error {
			return fn(cfg, a, b, c)
		},
	}
}

// Kernels returns every kernel in benchmark order. The blocked, transposed
// and parallel kernels use cfg.
func Kernels(cfg Config) []Kernel {
	tiled := lo.Map([]int{2, 4, 8, 16, 32, 64}, func(size, _ int) Kernel {
		return sliceKernel(fmt.Sprintf("mm_tile%d", size), GroupTile, tiledMatMul(size, size, size))
	})

	kernels := []Kernel{
		sliceKernel("mm_ijk", GroupOrder, matmulIJK),
		sliceKernel("mm_ikj", GroupOrder, matmulIKJ),
		sliceKernel("mm_jik", GroupOrder, matmulJIK),
		sliceKernel("mm_jki", GroupOrder, matmulJKI),
		sliceKernel("mm_kij", GroupOrder, matmulKIJ),
		sliceKernel("mm_kji", GroupOrder, matmulKJI),

		sliceKernel("mm_u2", GroupUnroll, matmulUnroll2),
		sliceKernel("mm_u4", GroupUnroll, matmulUnroll4),
		sliceKernel("mm_u8", GroupUnroll, matmulUnroll8),
		sliceKernel("mm_u16", GroupUnroll, matmulUnroll16),

		{
			Name:  "mm_t",
			Group: GroupTranspose,
			Fn: func(a, b, c *Matrix) error {
				return TransposedMatMul(hwy.NewD(cfg.Lanes), a, b, c)
			},
		},
	}
	kernels = append(kernels, tiled...)
	kernels = append(kernels,
		sliceKernel("mm_super_1", GroupSuper, matmulSuper1),
		sliceKernel("mm_super_2", GroupSuper, matmulSuper2),

		configKernel("mm_blocked", cfg, BlockedMatMul),
		configKernel("mm_blocked_parallel", cfg, ParallelBlockedMatMul),
		configKernel("mm_auto", cfg, MatMulAuto),

		Kernel{Name: "gonum_mat", Group: GroupLibrary, Fn: GonumDenseMatMul},
		Kernel{Name: "gonum_blas32", Group: GroupLibrary, Fn: GonumBLAS32MatMul},
	)
	return kernels
}

// Select filters kernels by group and name, keeping benchmark order. Empty
// groups or names match everything. Unknown groups or names are errors.
func Select(kernels []Kernel, groups []Group, names []string) ([]Kernel, error) {
	known := lo.Map(kernels, func(k Kernel, _ int) string { return k.Name })
	if unknown := lo.Without(names, known...); len(unknown) > 0 {
		return nil, fmt.Errorf("matmul: unknown kernel %q", unknown[0])
	}
	if unknown := lo.Without(groups, Groups()...); len(unknown) > 0 {
		return nil, fmt.Errorf("matmul: unknown group %q", unknown[0])
	}
	return lo.Filter(kernels, func(k Kernel, _ int) bool {
		return (len(groups) == 0 || lo.Contains(groups, k.Group)) &&
			(len(names) == 0 || lo.Contains(names, k.Name))
	}), nil
}

// ByGroup indexes kernels by group.
func ByGroup(kernels []Kernel) map[Group][]Kernel {
	return lo.GroupBy(kernels, func(k Kernel) Group { return k.Group })
}
