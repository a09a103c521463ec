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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `goos: linux
goarch: amd64
pkg: github.com/ajroetker/go-gemmbench/hwy/contrib/matmul
BenchmarkKernels/mm_super_1-8         	      45	  26051234 ns/op	   7.55 MB/s	  1.29 GFLOPS
BenchmarkKernels/mm_blocked-8         	     300	   4000000 ns/op
BenchmarkKernels/gonum_blas32-8       	    1000	   1250000 ns/op
PASS
ok  	github.com/ajroetker/go-gemmbench/hwy/contrib/matmul	4.2s
`

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, strings.NewReader(sample), &out, zerolog.Nop()))
	assert.Equal(t, strings.Join([]string{
		"Average execution time for kernel Kernels/mm_super_1 using 45 measurements: 0.0260512.",
		"Average execution time for kernel Kernels/mm_blocked using 300 measurements: 0.004.",
		"Average execution time for kernel Kernels/gonum_blas32 using 1000 measurements: 0.00125.",
		"",
	}, "\n"), out.String())
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"--keep-procs", path}, strings.NewReader(""), &out, zerolog.Nop()))
	assert.Contains(t, out.String(), "kernel Kernels/mm_blocked-8 using 300")
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"a", "b"}, nil, &out, zerolog.Nop()))
	assert.Error(t, run([]string{filepath.Join(t.TempDir(), "missing")}, nil, &out, zerolog.Nop()))
	assert.Error(t, run([]string{"--nope"}, nil, &out, zerolog.Nop()))
	assert.Empty(t, out.String())
}

func TestKernelName(t *testing.T) {
	testCases := []struct {
		in   string
		keep bool
		want string
	}{
		{"BenchmarkKernels/mm_blocked-8", false, "Kernels/mm_blocked"},
		{"BenchmarkKernels/mm_blocked-8", true, "Kernels/mm_blocked-8"},
		{"BenchmarkDot", false, "Dot"},
		{"BenchmarkMulAdd/lanes-x", false, "MulAdd/lanes-x"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, kernelName(tc.in, tc.keep), tc.in)
	}
}
