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

// Package nearest finds the point of an x-sorted series closest, by x, to a
// query value, as needed for cursor tracking.  Lookups are O(log n).
//
// The series must be sorted ascending by x.  This is not rechecked per query;
// series.New guarantees it.
package nearest

import (
	"errors"
	"math"

	"github.com/ilhamster/packetplot/bounds"
)

var (
	// ErrEmptySeries is returned when searching an empty series.
	ErrEmptySeries = errors.New("cannot search an empty series")
	// ErrInvalidQuery is returned for NaN queries.
	ErrInvalidQuery = errors.New("query is NaN")
)

// FindNearest returns the index of the point in points whose X is closest to
// x.  On an exact tie between two neighbors, the upper index wins.
func FindNearest(points []bounds.Point, x float64) (int, error) {
	return FindNearestFunc(len(points), func(idx int) float64 {
		return points[idx].X
	}, x)
}

// FindNearestFunc is FindNearest over n x-ascending values returned by xAt.
func FindNearestFunc(n int, xAt func(idx int) float64, x float64) (int, error) {
	if n == 0 {
		return 0, ErrEmptySeries
	}
	if math.IsNaN(x) {
		return 0, ErrInvalidQuery
	}
	last := n - 1
	if x <= xAt(0) {
		return 0, nil
	}
	if x >= xAt(last) {
		return last, nil
	}
	// xAt(lo) <= x < xAt(hi) throughout.
	lo, hi := 0, last
	for lo < hi {
		mid := (lo + hi) / 2
		if xAt(mid) > x {
			if hi == mid {
				break
			}
			hi = mid
		} else {
			if lo == mid {
				break
			}
			lo = mid
		}
	}
	if math.Abs(xAt(lo)-x) < math.Abs(xAt(hi)-x) {
		return lo, nil
	}
	return hi, nil
}
