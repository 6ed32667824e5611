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

package bounds

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

var (
	// ErrNoPoints is returned when folding an empty point array.
	ErrNoPoints = errors.New("no points to bound")
	// ErrOddLength is returned when a flat x/y array has odd length.
	ErrOddLength = errors.New("flat point array has odd length")
)

// FromPoints returns the smallest Bounds containing all provided points.
func FromPoints(points []Point) (Bounds, error) {
	if len(points) == 0 {
		return Bounds{}, ErrNoPoints
	}
	var minX, maxX, minY, maxY float64 = math.MaxFloat64, -math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64
	for idx, p := range points {
		if !p.Finite() {
			return Bounds{}, fmt.Errorf("point %d (%g, %g): %w", idx, p.X, p.Y, ErrNonFinite)
		}
		if minX > p.X {
			minX = p.X
		}
		if maxX < p.X {
			maxX = p.X
		}
		if minY > p.Y {
			minY = p.Y
		}
		if maxY < p.Y {
			maxY = p.Y
		}
	}
	return Bounds{
		X: Interval{Min: minX, Max: maxX},
		Y: Interval{Min: minY, Max: maxY},
	}, nil
}

// FromFlat converts an alternating x, y, x, y... array into Points.
func FromFlat[T constraints.Integer | constraints.Float](values []T) ([]Point, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("%d values: %w", len(values), ErrOddLength)
	}
	ret := make([]Point, 0, len(values)/2)
	for idx := 0; idx < len(values); idx += 2 {
		ret = append(ret, Point{X: float64(values[idx]), Y: float64(values[idx+1])})
	}
	return ret, nil
}

// Union returns the smallest Bounds containing both a and b.  It is
// commutative and associative.
func Union(a, b Bounds) Bounds {
	return Bounds{
		X: a.X.union(b.X),
		Y: a.Y.union(b.Y),
	}
}

// Accumulator grows a containing Bounds as more Bounds are added, such as
// the "max bounds" of a plot that gains series over time.  The zero value is
// empty and ready to use.
type Accumulator struct {
	b   Bounds
	set bool
}

// Add grows the receiver to contain b.
func (a *Accumulator) Add(b Bounds) {
	if !a.set {
		a.b, a.set = b, true
		return
	}
	a.b = Union(a.b, b)
}

// AddPoints grows the receiver to contain every provided point.
func (a *Accumulator) AddPoints(points []Point) error {
	b, err := FromPoints(points)
	if err != nil {
		return err
	}
	a.Add(b)
	return nil
}

// Bounds returns the accumulated Bounds, and false if nothing was added.
func (a *Accumulator) Bounds() (Bounds, bool) {
	return a.b, a.set
}

// Reset empties the receiver.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
