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
	"fmt"

	"github.com/ajroetker/go-gemmbench/hwy/contrib/matmul"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
)

// defaultGroups are profiled when neither --group, --kernel nor --all is
// given: the combined kernels, the blocked microkernel and the libraries.
var defaultGroups = []matmul.Group{matmul.GroupSuper, matmul.GroupBlocked, matmul.GroupLibrary}

// configFlags registers the blocked-kernel tuning flags on fs, defaulting
// to cfg's current values.
func configFlags(cfg *matmul.Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.IntVar(&cfg.IBlock, "iblock", cfg.IBlock, "row block size of C")
	fs.IntVar(&cfg.JBlock, "jblock", cfg.JBlock, "column block size of C")
	fs.IntVar(&cfg.KBlock, "kblock", cfg.KBlock, "reduction block size")
	fs.IntVar(&cfg.Lanes, "lanes", cfg.Lanes, "vector width in float32 lanes")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines for the parallel kernel (0 = GOMAXPROCS)")
	return fs
}

// checkSize rejects matrix sizes the kernels cannot allocate, so a bad
// --size is reported as an error instead of a panic inside a job.
func checkSize(size int) error {
	if size < 1 || size > matmul.MaxElements/size {
		return fmt.Errorf("--size %d out of range: need 1 <= size and size*size <= %d", size, matmul.MaxElements)
	}
	return nil
}

// selection holds the kernel-selection flags.
type selection struct {
	all    bool
	groups []string
	names  []string
}

func (s *selection) register(fs *pflag.FlagSet) {
	fs.BoolVar(&s.all, "all", false, "profile every kernel")
	fs.StringSliceVarP(&s.groups, "group", "g", nil, "kernel group to profile (repeatable)")
	fs.StringSliceVarP(&s.names, "kernel", "k", nil, "kernel name to profile (repeatable)")
}

func (s *selection) kernels(cfg matmul.Config) ([]matmul.Kernel, error) {
	groups := lo.Map(s.groups, func(g string, _ int) matmul.Group { return matmul.Group(g) })
	if !s.all && len(groups) == 0 && len(s.names) == 0 {
		groups = defaultGroups
	}
	return matmul.Select(matmul.Kernels(cfg), groups, s.names)
}
