/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package testutil provides helpers for comparing floating-point plot
// geometry in tests.
package testutil

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ilhamster/packetplot/bounds"
)

// Tolerance is the default relative and absolute tolerance used by Approx.
const Tolerance = 1e-9

// Approx returns a cmp.Option treating float64s within the provided
// fraction and margin as equal.
func Approx(fraction, margin float64) cmp.Option {
	return cmpopts.EquateApprox(fraction, margin)
}

// DefaultApprox is Approx(Tolerance, Tolerance).
var DefaultApprox = Approx(Tolerance, Tolerance)

// Comparator compares a 'got' value against a 'want' value under a set of
// cmp options.
type Comparator struct {
	opts []cmp.Option
}

// NewComparator returns a Comparator using DefaultApprox and any additional
// provided options.
func NewComparator(opts ...cmp.Option) *Comparator {
	return &Comparator{
		opts: append([]cmp.Option{DefaultApprox}, opts...),
	}
}

// WithTolerance replaces the receiver's float tolerance.
func (c *Comparator) WithTolerance(fraction, margin float64) *Comparator {
	c.opts[0] = Approx(fraction, margin)
	return c
}

// Compare returns a difference message (empty if no difference) and a
// boolean indicating whether got and want differ.
func (c *Comparator) Compare(got, want any) (string, bool) {
	if diff := cmp.Diff(want, got, c.opts...); diff != "" {
		return fmt.Sprintf("got %v, diff (-want +got):\n%s", got, diff), true
	}
	return "", false
}

// ComparePoints fails t if got and want differ beyond DefaultApprox.
func ComparePoints(t *testing.T, got, want bounds.Point) {
	t.Helper()
	if msg, failed := NewComparator().Compare(got, want); failed {
		t.Error(msg)
	}
}

// CompareBounds fails t if got and want differ beyond DefaultApprox.
func CompareBounds(t *testing.T, got, want bounds.Bounds) {
	t.Helper()
	if msg, failed := NewComparator().Compare(got, want); failed {
		t.Error(msg)
	}
}

// RandomPoints returns n points with coordinates uniformly drawn from
// [lo, hi), deterministically seeded.
func RandomPoints(seed int64, n int, lo, hi float64) []bounds.Point {
	r := rand.New(rand.NewSource(seed))
	ret := make([]bounds.Point, n)
	for idx := range ret {
		ret[idx] = bounds.Point{
			X: lo + r.Float64()*(hi-lo),
			Y: lo + r.Float64()*(hi-lo),
		}
	}
	return ret
}

// RandomBounds returns a non-degenerate Bounds with corners drawn from
// [lo, hi), deterministically seeded.
func RandomBounds(r *rand.Rand, lo, hi float64) bounds.Bounds {
	for {
		a := bounds.Point{X: lo + r.Float64()*(hi-lo), Y: lo + r.Float64()*(hi-lo)}
		c := bounds.Point{X: lo + r.Float64()*(hi-lo), Y: lo + r.Float64()*(hi-lo)}
		b := bounds.FromCorners(a, c)
		if b.X.Span() > 1e-6*(hi-lo) && b.Y.Span() > 1e-6*(hi-lo) {
			return b
		}
	}
}
