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

import "fmt"

// Kind classifies matmul errors.
type Kind int

const (
	// KindOutOfMemory means a matrix buffer could not be allocated.
	KindOutOfMemory Kind = iota + 1
	// KindInvalidDimension means a matrix was requested with a non-positive
	// or overflowing shape, or wrapped around a buffer of the wrong length.
	KindInvalidDimension
	// KindDimensionMismatch means the operand shapes do not compose.
	KindDimensionMismatch
	// KindInvalidConfig means a kernel Config failed validation.
	KindInvalidConfig
	// KindMismatch means a result fell outside the comparison tolerance.
	KindMismatch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOutOfMemory:
		return "OutOfMemory"
	case KindInvalidDimension:
		return "InvalidDimension"
	case KindDimensionMismatch:
		return "DimensionMismatch"
	case KindInvalidConfig:
		return "InvalidConfig"
	case KindMismatch:
		return "Mismatch"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by this package.
type Error struct {
	Kind Kind
	Op   string // Operation that failed
	Msg  string // Human-readable message
	Err  error  // Underlying error if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := "matmul: "
	if e.Op != "" {
		s += e.Op + ": "
	}
	s += e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap allows error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind, so that
// errors.Is(err, ErrOutOfMemory) matches any out-of-memory error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Op == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrOutOfMemory       = &Error{Kind: KindOutOfMemory, Msg: "out of memory"}
	ErrInvalidDimension  = &Error{Kind: KindInvalidDimension, Msg: "invalid dimension"}
	ErrDimensionMismatch = &Error{Kind: KindDimensionMismatch, Msg: "dimension mismatch"}
	ErrInvalidConfig     = &Error{Kind: KindInvalidConfig, Msg: "invalid config"}
	ErrMismatch          = &Error{Kind: KindMismatch, Msg: "result outside tolerance"}
)

func newError(kind Kind, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}
