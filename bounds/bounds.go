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

// Package bounds defines the value types shared by the plot engine: points,
// closed intervals, and axis-aligned bounding rectangles in data space.
//
// Bounds are plain values.  Storing a Bounds copies it, so two viewports never
// alias the same rectangle.  Helpers for folding point arrays into Bounds,
// and for unioning Bounds, live in accumulate.go.
package bounds

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvertedBounds is returned when an interval's minimum exceeds its
	// maximum.
	ErrInvertedBounds = errors.New("interval minimum exceeds maximum")
	// ErrNonFinite is returned when a coordinate is NaN or infinite.
	ErrNonFinite = errors.New("coordinate is not finite")
)

// Point is a 2D coordinate.  Which space it lives in is up to the caller.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Finite returns true if neither coordinate is NaN or infinite.
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Interval is the closed interval [Min, Max].
type Interval struct {
	Min, Max float64
}

// Span returns Max-Min.
func (iv Interval) Span() float64 {
	return iv.Max - iv.Min
}

// Mid returns the midpoint of the interval.
func (iv Interval) Mid() float64 {
	return (iv.Min + iv.Max) / 2
}

// Contains returns true if v lies within the closed interval.
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v <= iv.Max
}

// Validate returns an error if the interval is inverted or not finite.
func (iv Interval) Validate() error {
	if !finite(iv.Min) || !finite(iv.Max) {
		return fmt.Errorf("[%g, %g]: %w", iv.Min, iv.Max, ErrNonFinite)
	}
	if iv.Min > iv.Max {
		return fmt.Errorf("[%g, %g]: %w", iv.Min, iv.Max, ErrInvertedBounds)
	}
	return nil
}

func (iv Interval) union(other Interval) Interval {
	return Interval{
		Min: math.Min(iv.Min, other.Min),
		Max: math.Max(iv.Max, other.Max),
	}
}

// Bounds is an axis-aligned rectangle in data space.
type Bounds struct {
	X, Y Interval
}

// Identity is the [-1,1]x[-1,1] rectangle a fresh viewport shows.
var Identity = Bounds{
	X: Interval{Min: -1, Max: 1},
	Y: Interval{Min: -1, Max: 1},
}

// New returns a validated Bounds.
func New(xMin, xMax, yMin, yMax float64) (Bounds, error) {
	b := Bounds{
		X: Interval{Min: xMin, Max: xMax},
		Y: Interval{Min: yMin, Max: yMax},
	}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// Validate returns an error if either interval is inverted or non-finite.
// Zero-width intervals are valid; see Degenerate.
func (b Bounds) Validate() error {
	if err := b.X.Validate(); err != nil {
		return fmt.Errorf("x %w", err)
	}
	if err := b.Y.Validate(); err != nil {
		return fmt.Errorf("y %w", err)
	}
	return nil
}

// Degenerate returns true if either axis has zero span.  A scale cannot be
// derived from degenerate bounds.
func (b Bounds) Degenerate() bool {
	return b.X.Span() == 0 || b.Y.Span() == 0
}

// Contains returns true if p lies within the receiver.
func (b Bounds) Contains(p Point) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y)
}

// Center returns the center of the receiver.
func (b Bounds) Center() Point {
	return Point{X: b.X.Mid(), Y: b.Y.Mid()}
}

// Min returns the lower-left corner.
func (b Bounds) Min() Point {
	return Point{X: b.X.Min, Y: b.Y.Min}
}

// Max returns the upper-right corner.
func (b Bounds) Max() Point {
	return Point{X: b.X.Max, Y: b.Y.Max}
}

// WithX returns a copy of the receiver with its X interval replaced.
func (b Bounds) WithX(x Interval) Bounds {
	b.X = x
	return b
}

// FromCorners returns the Bounds spanned by two arbitrary corners.
func FromCorners(a, c Point) Bounds {
	return Bounds{
		X: Interval{Min: math.Min(a.X, c.X), Max: math.Max(a.X, c.X)},
		Y: Interval{Min: math.Min(a.Y, c.Y), Max: math.Max(a.Y, c.Y)},
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("x:[%g, %g] y:[%g, %g]", b.X.Min, b.X.Max, b.Y.Min, b.Y.Max)
}
