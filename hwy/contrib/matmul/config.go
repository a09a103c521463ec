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
	"runtime"

	"github.com/ajroetker/go-gemmbench/hwy"
)

// Default cache block sizes for the blocked kernel: a 64x128 block of C with
// 128-deep panels of A and B.
const (
	DefaultIBlock = 64
	DefaultJBlock = 128
	DefaultKBlock = 128
)

// Config holds the tuning parameters of the blocked kernels. Block sizes and
// the lane count change performance only; any valid Config computes the same
// product up to floating-point reassociation.
type Config struct {
	// IBlock, JBlock and KBlock are the block sizes over the rows of C, the
	// columns of C and the reduction dimension.
	IBlock int
	JBlock int
	KBlock int

	// Lanes is the vector width in float32 lanes. The widest register tile
	// spans 4*Lanes columns.
	Lanes int

	// Workers bounds the goroutines used by ParallelBlockedMatMul.
	// Zero means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the default blocking with the lane count of the
// detected dispatch level.
func DefaultConfig() Config {
	return Config{
		IBlock: DefaultIBlock,
		JBlock: DefaultJBlock,
		KBlock: DefaultKBlock,
		Lanes:  hwy.DefaultLanes(),
	}
}

// Validate checks that every parameter is in range.
func (c Config) Validate() error {
	const op = "Config.Validate"
	switch {
	case c.IBlock < 1:
		return newError(KindInvalidConfig, op, "IBlock %d must be positive", c.IBlock)
	case c.JBlock < 1:
		return newError(KindInvalidConfig, op, "JBlock %d must be positive", c.JBlock)
	case c.KBlock < 1:
		return newError(KindInvalidConfig, op, "KBlock %d must be positive", c.KBlock)
	case c.Lanes < 1 || c.Lanes > hwy.MaxLanes:
		return newError(KindInvalidConfig, op, "Lanes %d outside [1, %d]", c.Lanes, hwy.MaxLanes)
	case c.Workers < 0:
		return newError(KindInvalidConfig, op, "Workers %d must not be negative", c.Workers)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
