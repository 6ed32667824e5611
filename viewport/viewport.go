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

// Package viewport provides Viewport, the pan/zoom state of a single plot
// surface.
//
// A Viewport holds an offset and scale, which map local (data) space into
// normalized device space, and the local-space Bounds those imply.  Either
// side may be set; the other is recomputed immediately, so the two never
// disagree:
//
//	vp.SetBounds(b)     // zoom-to-fit, zoom-to-box
//	vp.SetOffset(o)     // drag-pan
//	vp.SetScale(s)      // wheel-zoom
//
// A Viewport is owned by exactly one plot surface and is not safe for
// concurrent mutation.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/transform"
)

var (
	// ErrDegenerateBounds is returned by SetBounds for bounds with a zero,
	// inverted, or non-finite span on either axis.
	ErrDegenerateBounds = errors.New("degenerate viewport bounds")
	// ErrInvalidScale is returned for non-positive or non-finite scales.
	ErrInvalidScale = errors.New("invalid viewport scale")
	// ErrInvalidOffset is returned for non-finite offsets.
	ErrInvalidOffset = errors.New("invalid viewport offset")
	// ErrInvalidZoom is returned for non-positive or non-finite zoom
	// factors.
	ErrInvalidZoom = errors.New("invalid zoom factor")
)

// MinSpan is the narrowest local-space span ZoomAt will zoom into.
const MinSpan = 1e-12

// Viewport is the pan/zoom state of one plot surface.
type Viewport struct {
	dims          transform.Dimensions
	offset, scale bounds.Point
	b             bounds.Bounds
}

// New returns an identity Viewport, with offset (0,0), scale (1,1), and
// bounds [-1,1]x[-1,1], for a surface of the provided dimensions.
func New(dims transform.Dimensions) (*Viewport, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	return &Viewport{
		dims:   dims,
		offset: bounds.Pt(0, 0),
		scale:  bounds.Pt(1, 1),
		b:      bounds.Identity,
	}, nil
}

// Bounds returns the local-space rectangle currently shown.
func (vp *Viewport) Bounds() bounds.Bounds {
	return vp.b
}

// Offset returns the local-to-NDC offset.
func (vp *Viewport) Offset() bounds.Point {
	return vp.offset
}

// Scale returns the local-to-NDC scale.
func (vp *Viewport) Scale() bounds.Point {
	return vp.scale
}

// Dimensions returns the surface's pixel dimensions.
func (vp *Viewport) Dimensions() transform.Dimensions {
	return vp.dims
}

// ScaleFor returns the offset and scale that map b onto NDC [-1,1]x[-1,1].
func ScaleFor(b bounds.Bounds) (offset, scale bounds.Point, err error) {
	if err := b.Validate(); err != nil {
		return offset, scale, fmt.Errorf("%s: %w (%s)", b, ErrDegenerateBounds, err)
	}
	if b.Degenerate() {
		return offset, scale, fmt.Errorf("%s: %w", b, ErrDegenerateBounds)
	}
	scale = bounds.Point{
		X: 2 / (b.X.Max - b.X.Min),
		Y: 2 / (b.Y.Max - b.Y.Min),
	}
	offset = bounds.Point{
		X: -1 - b.X.Min*scale.X,
		Y: -1 - b.Y.Min*scale.Y,
	}
	// A span too wide for float64 yields a zero scale.
	if err := validateScale(scale); err != nil || !offset.Finite() {
		return bounds.Point{}, bounds.Point{}, fmt.Errorf("%s: %w", b, ErrDegenerateBounds)
	}
	return offset, scale, nil
}

// SetBounds makes b the visible rectangle, recomputing offset and scale so
// that b's minima map to NDC -1 and its maxima to +1.  On error the receiver
// is unchanged.
func (vp *Viewport) SetBounds(b bounds.Bounds) error {
	offset, scale, err := ScaleFor(b)
	if err != nil {
		return err
	}
	vp.offset, vp.scale, vp.b = offset, scale, b
	return nil
}

// SetOffset sets the offset and recomputes bounds.
func (vp *Viewport) SetOffset(offset bounds.Point) error {
	if !offset.Finite() {
		return fmt.Errorf("(%g, %g): %w", offset.X, offset.Y, ErrInvalidOffset)
	}
	vp.offset = offset
	vp.updateBounds()
	return nil
}

// SetScale sets the scale and recomputes bounds.
func (vp *Viewport) SetScale(scale bounds.Point) error {
	if err := validateScale(scale); err != nil {
		return err
	}
	vp.scale = scale
	vp.updateBounds()
	return nil
}

// SetOffsetAndScale sets both at once, recomputing bounds once.
func (vp *Viewport) SetOffsetAndScale(offset, scale bounds.Point) error {
	if !offset.Finite() {
		return fmt.Errorf("(%g, %g): %w", offset.X, offset.Y, ErrInvalidOffset)
	}
	if err := validateScale(scale); err != nil {
		return err
	}
	vp.offset, vp.scale = offset, scale
	vp.updateBounds()
	return nil
}

// SetDimensions resizes the surface.  Offset, scale, and bounds are kept.
func (vp *Viewport) SetDimensions(dims transform.Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	vp.dims = dims
	return nil
}

func validateScale(scale bounds.Point) error {
	if !scale.Finite() || !(scale.X > 0) || !(scale.Y > 0) {
		return fmt.Errorf("(%g, %g): %w", scale.X, scale.Y, ErrInvalidScale)
	}
	return nil
}

// updateBounds maps the surface corners, NDC (-1,-1) and (1,1), back into
// local space.
func (vp *Viewport) updateBounds() {
	lo := transform.CanvasToLocal(vp.dims, vp.offset, vp.scale,
		transform.NDCToCanvas(vp.dims, bounds.Pt(-1, -1)))
	hi := transform.CanvasToLocal(vp.dims, vp.offset, vp.scale,
		transform.NDCToCanvas(vp.dims, bounds.Pt(1, 1)))
	vp.b = bounds.Bounds{
		X: bounds.Interval{Min: lo.X, Max: hi.X},
		Y: bounds.Interval{Min: lo.Y, Max: hi.Y},
	}
}

// ToLocal maps a canvas-space point into local space.
func (vp *Viewport) ToLocal(canvas bounds.Point) bounds.Point {
	return transform.CanvasToLocal(vp.dims, vp.offset, vp.scale, canvas)
}

// ToCanvas maps a local-space point into canvas space.
func (vp *Viewport) ToCanvas(local bounds.Point) bounds.Point {
	return transform.LocalToCanvas(vp.dims, vp.offset, vp.scale, local)
}

// Convert maps p between any two spaces under the receiver's transform.
func (vp *Viewport) Convert(from, to transform.Space, p bounds.Point) (bounds.Point, error) {
	return transform.Convert(from, to, vp.dims, vp.offset, vp.scale, p)
}

// Pan shifts the view by a canvas-space pixel delta, as when dragging: the
// local point under the pointer stays under the pointer.
func (vp *Viewport) Pan(dxPx, dyPx float64) error {
	d := bounds.Pt(dxPx/vp.dims.Width*2, dyPx/vp.dims.Height*2)
	return vp.SetOffset(vp.offset.Add(d))
}

// ZoomAt scales the view by factor around the canvas-space point at, which
// stays fixed in local space.  A factor above 1 zooms in.  Zooming in stops
// once either axis would show less than MinSpan.
func (vp *Viewport) ZoomAt(at bounds.Point, factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("%g: %w", factor, ErrInvalidZoom)
	}
	maxScale := 2 / MinSpan
	scale := bounds.Pt(
		math.Min(vp.scale.X*factor, math.Max(vp.scale.X, maxScale)),
		math.Min(vp.scale.Y*factor, math.Max(vp.scale.Y, maxScale)),
	)
	// The NDC position of 'at' must map to the same local point before and
	// after: ndc = local*scale + offset.
	ndc := transform.CanvasToNDC(vp.dims, at)
	local := transform.NDCToLocal(vp.offset, vp.scale, ndc)
	offset := bounds.Pt(ndc.X-local.X*scale.X, ndc.Y-local.Y*scale.Y)
	return vp.SetOffsetAndScale(offset, scale)
}

// ZoomToBox shows the local rectangle under the canvas-space rectangle with
// corners a and c.
func (vp *Viewport) ZoomToBox(a, c bounds.Point) error {
	return vp.SetBounds(bounds.FromCorners(vp.ToLocal(a), vp.ToLocal(c)))
}

// MatchX copies other's X interval into the receiver, keeping the
// receiver's Y interval.  Only the value is copied.
func (vp *Viewport) MatchX(other *Viewport) error {
	return vp.SetBounds(vp.b.WithX(other.b.X))
}
