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

// Package bench times zero-argument units of work and reports their average
// wall-clock duration.
//
// A Harness runs a unit of work n times back to back, timing each run on the
// monotonic clock, and writes one line per profile:
//
//	Average execution time for kernel mm_blocked using 5 measurements: 0.0123457.
//
// There is no warm-up run, no outlier rejection and no variance estimate.
// A panic inside the unit of work propagates to the caller.
package bench

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMeasurements is the number of runs used by ProfileDefault.
const DefaultMeasurements = 5

// ErrMeasurements is returned when asked for fewer than one measurement.
var ErrMeasurements = errors.New("bench: measurement count must be at least 1")

// Report is the outcome of one Profile call.
type Report struct {
	Name    string
	Samples []time.Duration
	// Mean is the arithmetic mean of Samples.
	Mean time.Duration
}

// Measurements returns the number of timed runs.
func (r Report) Measurements() int { return len(r.Samples) }

// Seconds returns the mean duration in seconds.
func (r Report) Seconds() float64 {
	var total float64
	for _, s := range r.Samples {
		total += s.Seconds()
	}
	return total / float64(len(r.Samples))
}

// Rate returns ops divided by the mean duration in seconds.
func (r Report) Rate(ops float64) float64 {
	if s := r.Seconds(); s > 0 {
		return ops / s
	}
	return 0
}

// String formats the report line, without a trailing newline.
func (r Report) String() string {
	return Line(r.Name, r.Measurements(), r.Seconds())
}

// Line formats a report line for an average of seconds over n runs. Seconds
// are printed with six significant digits.
func Line(name string, n int, seconds float64) string {
	return fmt.Sprintf("Average execution time for kernel %s using %d measurements: %.6g.", name, n, seconds)
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger makes the harness log every sample at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(h *Harness) { h.log = log }
}

// WithClock replaces time.Now. Tests use it to make durations
// deterministic.
func WithClock(now func() time.Time) Option {
	return func(h *Harness) { h.now = now }
}

// Harness profiles units of work and writes report lines to a writer.
// It is not safe for concurrent use.
type Harness struct {
	w   io.Writer
	log zerolog.Logger
	now func() time.Time
}

// New returns a Harness writing report lines to w.
func New(w io.Writer, opts ...Option) *Harness {
	h := &Harness{
		w:   w,
		log: zerolog.Nop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Profile runs fn n times, timing each run, and writes the average as one
// report line. n must be at least 1; otherwise fn is never called and
// ErrMeasurements is returned. An error from the writer is returned along
// with the complete Report.
func (h *Harness) Profile(name string, fn func(), n int) (Report, error) {
	if n < 1 {
		return Report{}, fmt.Errorf("%w: got %d for kernel %s", ErrMeasurements, n, name)
	}

	r := Report{Name: name, Samples: make([]time.Duration, 0, n)}
	var total time.Duration
	for i := range n {
		start := h.now()
		fn()
		elapsed := h.now().Sub(start)

		r.Samples = append(r.Samples, elapsed)
		total += elapsed
		h.log.Debug().Str("kernel", name).Int("run", i+1).Dur("elapsed", elapsed).Msg("sample")
	}
	r.Mean = total / time.Duration(n)

	h.log.Info().Str("kernel", name).Int("measurements", n).Dur("mean", r.Mean).Msg("profiled")
	if _, err := fmt.Fprintln(h.w, r.String()); err != nil {
		return r, fmt.Errorf("bench: writing report for %s: %w", name, err)
	}
	return r, nil
}

// ProfileDefault is Profile with DefaultMeasurements runs.
func (h *Harness) ProfileDefault(name string, fn func()) (Report, error) {
	return h.Profile(name, fn, DefaultMeasurements)
}
