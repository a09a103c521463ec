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

// Unrolled kernels: ikj order with the innermost j loop manually unrolled.
// Each computes C += A * B and finishes the j remainder with a scalar tail.

func matmulUnroll2(a, b, c []float32, m, n, k int) {
	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			var j int
			for ; j+2 <= n; j += 2 {
				cRow[j+0] += aip * bRow[j+0]
				cRow[j+1] += aip * bRow[j+1]
			}
			for ; j < n; j++ {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}

func matmulUnroll4(a, b, c []float32, m, n, k int) {
	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			var j int
			for ; j+4 <= n; j += 4 {
				cRow[j+0] += aip * bRow[j+0]
				cRow[j+1] += aip * bRow[j+1]
				cRow[j+2] += aip * bRow[j+2]
				cRow[j+3] += aip * bRow[j+3]
			}
			for ; j < n; j++ {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}

func matmulUnroll8(a, b, c []float32, m, n, k int) {
	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			var j int
			for ; j+8 <= n; j += 8 {
				cRow[j+0] += aip * bRow[j+0]
				cRow[j+1] += aip * bRow[j+1]
				cRow[j+2] += aip * bRow[j+2]
				cRow[j+3] += aip * bRow[j+3]
				cRow[j+4] += aip * bRow[j+4]
				cRow[j+5] += aip * bRow[j+5]
				cRow[j+6] += aip * bRow[j+6]
				cRow[j+7] += aip * bRow[j+7]
			}
			for ; j < n; j++ {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}

func matmulUnroll16(a, b, c []float32, m, n, k int) {
	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			var j int
			for ; j+16 <= n; j += 16 {
				cRow[j+0] += aip * bRow[j+0]
				cRow[j+1] += aip * bRow[j+1]
				cRow[j+2] += aip * bRow[j+2]
				cRow[j+3] += aip * bRow[j+3]
				cRow[j+4] += aip * bRow[j+4]
				cRow[j+5] += aip * bRow[j+5]
				cRow[j+6] += aip * bRow[j+6]
				cRow[j+7] += aip * bRow[j+7]
				cRow[j+8] += aip * bRow[j+8]
				cRow[j+9] += aip * bRow[j+9]
				cRow[j+10] += aip * bRow[j+10]
				cRow[j+11] += aip * bRow[j+11]
				cRow[j+12] += aip * bRow[j+12]
				cRow[j+13] += aip * bRow[j+13]
				cRow[j+14] += aip * bRow[j+14]
				cRow[j+15] += aip * bRow[j+15]
			}
			for ; j < n; j++ {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}
