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

// Package transform converts points between the three coordinate spaces of
// a plot surface:
//
//   - Canvas space: pixels with the origin at the bottom-left of the drawing
//     surface and y increasing upward, spanning [0, width] x [0, height].
//   - Normalized device space (NDC): [-1, 1] x [-1, 1], independent of the
//     surface size.
//   - Local space: the domain the plotted values live in.  It is related to
//     NDC by a viewport's offset and scale: ndc = local*scale + offset.
//
// All functions are pure.  They are parameterized by the surface dimensions
// and the viewport's offset and scale rather than by a viewport, so that the
// viewport package can use them to derive its own bounds.
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/ilhamster/packetplot/bounds"
)

var (
	// ErrUnsupportedSpace is returned when converting from or to an unknown
	// Space.
	ErrUnsupportedSpace = errors.New("unsupported coordinate space")
	// ErrInvalidDimensions is returned for non-positive or non-finite
	// surface dimensions.
	ErrInvalidDimensions = errors.New("invalid surface dimensions")
)

// Space identifies a coordinate space.
type Space int

// Enumerated coordinate spaces.
const (
	Canvas Space = iota
	NDC
	Local
)

func (s Space) String() string {
	switch s {
	case Canvas:
		return "canvas"
	case NDC:
		return "ndc"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("space(%d)", int(s))
	}
}

// Valid returns true if s is one of the enumerated spaces.
func (s Space) Valid() bool {
	return s >= Canvas && s <= Local
}

// Dimensions is the pixel size of a drawing surface.
type Dimensions struct {
	Width, Height float64
}

// Validate returns ErrInvalidDimensions if either size is non-positive or
// not finite.
func (d Dimensions) Validate() error {
	if !(d.Width > 0) || !(d.Height > 0) || math.IsInf(d.Width, 0) || math.IsInf(d.Height, 0) {
		return fmt.Errorf("%gx%g: %w", d.Width, d.Height, ErrInvalidDimensions)
	}
	return nil
}

// CanvasToNDC maps a canvas-space point into NDC.
func CanvasToNDC(dims Dimensions, p bounds.Point) bounds.Point {
	return bounds.Point{
		X: p.X/dims.Width*2 - 1,
		Y: p.Y/dims.Height*2 - 1,
	}
}

// NDCToCanvas maps an NDC point into canvas space.
func NDCToCanvas(dims Dimensions, p bounds.Point) bounds.Point {
	return bounds.Point{
		X: (p.X + 1) / 2 * dims.Width,
		Y: (p.Y + 1) / 2 * dims.Height,
	}
}

// NDCToLocal maps an NDC point into local space.
func NDCToLocal(offset, scale, p bounds.Point) bounds.Point {
	return bounds.Point{
		X: (p.X - offset.X) / scale.X,
		Y: (p.Y - offset.Y) / scale.Y,
	}
}

// LocalToNDC maps a local-space point into NDC.
func LocalToNDC(offset, scale, p bounds.Point) bounds.Point {
	return bounds.Point{
		X: p.X*scale.X + offset.X,
		Y: p.Y*scale.Y + offset.Y,
	}
}

// CanvasToLocal maps a canvas-space point into local space.
func CanvasToLocal(dims Dimensions, offset, scale, p bounds.Point) bounds.Point {
	return NDCToLocal(offset, scale, CanvasToNDC(dims, p))
}

// LocalToCanvas maps a local-space point into canvas space.  It is the
// inverse of CanvasToLocal.
func LocalToCanvas(dims Dimensions, offset, scale, p bounds.Point) bounds.Point {
	return NDCToCanvas(dims, LocalToNDC(offset, scale, p))
}

// Convert maps p from one space into another.
func Convert(from, to Space, dims Dimensions, offset, scale, p bounds.Point) (bounds.Point, error) {
	if !from.Valid() {
		return bounds.Point{}, fmt.Errorf("from %s: %w", from, ErrUnsupportedSpace)
	}
	if !to.Valid() {
		return bounds.Point{}, fmt.Errorf("to %s: %w", to, ErrUnsupportedSpace)
	}
	// Route everything through NDC.
	ndc := p
	switch from {
	case Canvas:
		ndc = CanvasToNDC(dims, p)
	case Local:
		ndc = LocalToNDC(offset, scale, p)
	}
	switch to {
	case Canvas:
		return NDCToCanvas(dims, ndc), nil
	case Local:
		return NDCToLocal(offset, scale, ndc), nil
	}
	return ndc, nil
}

// FlipY converts between top-left-origin pixel coordinates, as delivered by
// pointer events, and bottom-left-origin canvas coordinates.  It is its own
// inverse.
func FlipY(dims Dimensions, p bounds.Point) bounds.Point {
	return bounds.Point{X: p.X, Y: dims.Height - p.Y}
}
