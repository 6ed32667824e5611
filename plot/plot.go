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

// Package plot provides a plot surface: one viewport over a set of series,
// driven by a per-frame Update then Draw loop.
//
// A Surface is not safe for concurrent use; it is owned by the frame loop
// that drives it.
package plot

import (
	"errors"
	"fmt"

	axisticks "github.com/ilhamster/packetplot/axis_ticks"
	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/color"
	"github.com/ilhamster/packetplot/draw"
	"github.com/ilhamster/packetplot/series"
	"github.com/ilhamster/packetplot/transform"
	"github.com/ilhamster/packetplot/viewport"
)

var (
	// ErrNoSeries is returned when fitting a surface with no series.
	ErrNoSeries = errors.New("surface has no series")
	// ErrNoFrame is returned by Draw before the first successful Update.
	ErrNoFrame = errors.New("surface has not been updated")
)

// Colors used for surface decorations.
var (
	GridColor  = color.LightGray
	FrameColor = color.Black
)

// seriesColors colors series that don't name their own color, spread
// across the space by series index.
var seriesColors = color.NewSpace("series", color.Blue, color.Orange, color.Green, color.Red, color.Purple)

// zeroSpanPadding is added on either side of an axis whose data has no
// extent, so that fitting a single point still yields a usable viewport.
const zeroSpanPadding = 0.5

// Options configures a Surface.  Zero-valued fields take defaults.
type Options struct {
	XDensity, YDensity axisticks.Density
	// Colors resolves series color names.
	Colors *color.Registry
	// Units labels both axes.  Defaults to axisticks.TimeUnits.
	Units []axisticks.ScaleEntry
}

func (o Options) withDefaults() Options {
	if o.XDensity == (axisticks.Density{}) {
		o.XDensity = axisticks.HorizontalDensity
	}
	if o.YDensity == (axisticks.Density{}) {
		o.YDensity = axisticks.VerticalDensity
	}
	if o.Colors == nil {
		o.Colors = color.NewRegistry()
	}
	if o.Units == nil {
		o.Units = axisticks.TimeUnits
	}
	return o
}

// HoverHit is the point of one series nearest the pointer's x position.
type HoverHit struct {
	SeriesID string       `json:"series_id"`
	Index    int          `json:"index"`
	Point    bounds.Point `json:"point"`
	Canvas   bounds.Point `json:"canvas"` // Point in canvas space.
	Label    string       `json:"label"`
}

// Axis is the tick layout of one axis within a Frame.
type Axis struct {
	Label      string    `json:"label"`
	Ticks      []float64 `json:"ticks"`
	TickLabels []string  `json:"tick_labels"`
	Scale      float64   `json:"scale"`

	plan axisticks.AxisPlan
}

func newAxis(plan axisticks.AxisPlan) Axis {
	return Axis{
		Label:      plan.Label(),
		Ticks:      plan.Ticks,
		TickLabels: plan.TickLabels(),
		Scale:      plan.Scale,
		plan:       plan,
	}
}

// Frame is everything computed for one displayed frame.
type Frame struct {
	Bounds bounds.Bounds `json:"bounds"`
	X      Axis          `json:"x_axis"`
	Y      Axis          `json:"y_axis"`
	Hits   []HoverHit    `json:"hits,omitempty"`
}

// Surface is a single plot: a viewport, the series it shows, and the
// running bounds of all of those series.
type Surface struct {
	vp        *viewport.Viewport
	opts      Options
	series    []*series.Series
	maxBounds bounds.Accumulator
	hover     *bounds.Point
	frame     *Frame
}

// New returns a new, empty Surface of the provided dimensions.
func New(dims transform.Dimensions, opts Options) (*Surface, error) {
	opts = opts.withDefaults()
	if err := opts.XDensity.Validate(); err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	if err := opts.YDensity.Validate(); err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}
	if err := axisticks.ValidateTable(opts.Units); err != nil {
		return nil, err
	}
	vp, err := viewport.New(dims)
	if err != nil {
		return nil, err
	}
	return &Surface{
		vp:   vp,
		opts: opts,
	}, nil
}

// Viewport returns the receiver's viewport.
func (s *Surface) Viewport() *viewport.Viewport {
	return s.vp
}

// Series returns the receiver's series, in the order they were added.
func (s *Surface) Series() []*series.Series {
	return s.series
}

// MaxBounds returns the bounds of all added series.
func (s *Surface) MaxBounds() (bounds.Bounds, bool) {
	return s.maxBounds.Bounds()
}

// AddSeries adds the provided series to the receiver.  Adding the first
// series fits the view to it.  On error no series is added.
func (s *Surface) AddSeries(ss ...*series.Series) error {
	if len(ss) == 0 {
		return nil
	}
	var acc bounds.Accumulator
	for _, ser := range ss {
		if err := ser.Validate(); err != nil {
			return err
		}
		b, err := ser.Bounds()
		if err != nil {
			return err
		}
		acc.Add(b)
	}
	added, _ := acc.Bounds()
	first := len(s.series) == 0
	if first {
		// Check the fit before holding anything, so a failure leaves the
		// receiver empty.
		if _, _, err := viewport.ScaleFor(fitBounds(added)); err != nil {
			return err
		}
	}
	s.series = append(s.series, ss...)
	s.maxBounds.Add(added)
	if first {
		return s.ZoomToFit()
	}
	return nil
}

// fitBounds pads any axis of b along which the data has no extent.
func fitBounds(b bounds.Bounds) bounds.Bounds {
	pad := func(iv bounds.Interval) bounds.Interval {
		if iv.Span() == 0 {
			return bounds.Interval{Min: iv.Min - zeroSpanPadding, Max: iv.Max + zeroSpanPadding}
		}
		return iv
	}
	b.X, b.Y = pad(b.X), pad(b.Y)
	return b
}

// ZoomToFit shows the bounds of every added series.  Axes along which the
// data has no extent are padded.
func (s *Surface) ZoomToFit() error {
	b, ok := s.maxBounds.Bounds()
	if !ok {
		return ErrNoSeries
	}
	return s.vp.SetBounds(fitBounds(b))
}

// Drag pans the view by a canvas-space pixel delta.
func (s *Surface) Drag(dxPx, dyPx float64) error {
	return s.vp.Pan(dxPx, dyPx)
}

// Wheel zooms by factor around the canvas-space point at.
func (s *Surface) Wheel(at bounds.Point, factor float64) error {
	return s.vp.ZoomAt(at, factor)
}

// ZoomToBox zooms to the canvas-space rectangle with corners a and c.
func (s *Surface) ZoomToBox(a, c bounds.Point) error {
	return s.vp.ZoomToBox(a, c)
}

// MatchX shows the same X interval as other.
func (s *Surface) MatchX(other *Surface) error {
	return s.vp.MatchX(other.vp)
}

// Hover records the pointer's canvas-space position.
func (s *Surface) Hover(canvas bounds.Point) {
	s.hover = &canvas
}

// ClearHover forgets the pointer position, as when it leaves the surface.
func (s *Surface) ClearHover() {
	s.hover = nil
}

func (s *Surface) hovered() (bounds.Point, bool) {
	if s.hover == nil {
		return bounds.Point{}, false
	}
	dims := s.vp.Dimensions()
	canvas := bounds.Bounds{
		X: bounds.Interval{Min: 0, Max: dims.Width},
		Y: bounds.Interval{Min: 0, Max: dims.Height},
	}
	if !canvas.Contains(*s.hover) {
		return bounds.Point{}, false
	}
	return *s.hover, true
}

func formatValue(v float64, unit axisticks.ScaleEntry) string {
	ret := axisticks.FormatTick(v, unit)
	if unit.Unit != "" {
		ret += " " + unit.Unit
	}
	return ret
}

// Update computes the receiver's current Frame: axis ticks for the visible
// bounds and, if the pointer is over the surface, the nearest point of each
// series.
func (s *Surface) Update() (Frame, error) {
	b := s.vp.Bounds()
	xPlan, err := axisticks.PlanAxisWithUnits(b.X, s.opts.XDensity, s.opts.Units)
	if err != nil {
		return Frame{}, fmt.Errorf("x axis: %w", err)
	}
	yPlan, err := axisticks.PlanAxisWithUnits(b.Y, s.opts.YDensity, s.opts.Units)
	if err != nil {
		return Frame{}, fmt.Errorf("y axis: %w", err)
	}
	frame := Frame{
		Bounds: b,
		X:      newAxis(xPlan),
		Y:      newAxis(yPlan),
	}
	if at, ok := s.hovered(); ok {
		x := s.vp.ToLocal(at).X
		for _, ser := range s.series {
			idx, p, err := ser.Nearest(x)
			if err != nil {
				return Frame{}, err
			}
			frame.Hits = append(frame.Hits, HoverHit{
				SeriesID: ser.ID,
				Index:    idx,
				Point:    p,
				Canvas:   s.vp.ToCanvas(p),
				Label: fmt.Sprintf("%s: %s at %s", ser.DisplayName,
					formatValue(p.Y, yPlan.Unit), formatValue(p.X, xPlan.Unit)),
			})
		}
	}
	s.frame = &frame
	return frame, nil
}

func (s *Surface) seriesColor(idx int, ser *series.Series) (color.RGBA, error) {
	if ser.Color != "" {
		c, err := s.opts.Colors.Resolve(ser.Color)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("series '%s': %w", ser.ID, err)
		}
		return c, nil
	}
	if len(s.series) < 2 {
		return seriesColors.At(0), nil
	}
	return seriesColors.At(float64(idx) / float64(len(s.series)-1)), nil
}

// Draw draws the most recently updated frame onto b: grid lines at each
// tick, each series' visible points, a marker at each hover hit, and the
// surface frame.
func (s *Surface) Draw(b draw.Backend) error {
	if s.frame == nil {
		return ErrNoFrame
	}
	f := s.frame
	for _, x := range f.X.plan.Ticks {
		line := []bounds.Point{bounds.Pt(x, f.Bounds.Y.Min), bounds.Pt(x, f.Bounds.Y.Max)}
		if err := b.Lines(transform.Local, line, GridColor); err != nil {
			return fmt.Errorf("drawing x grid: %w", err)
		}
	}
	for _, y := range f.Y.plan.Ticks {
		line := []bounds.Point{bounds.Pt(f.Bounds.X.Min, y), bounds.Pt(f.Bounds.X.Max, y)}
		if err := b.Lines(transform.Local, line, GridColor); err != nil {
			return fmt.Errorf("drawing y grid: %w", err)
		}
	}
	colors := make(map[string]color.RGBA, len(s.series))
	for idx, ser := range s.series {
		c, err := s.seriesColor(idx, ser)
		if err != nil {
			return err
		}
		colors[ser.ID] = c
		if err := b.Lines(transform.Local, ser.Visible(f.Bounds.X), c); err != nil {
			return fmt.Errorf("drawing series '%s': %w", ser.ID, err)
		}
	}
	for _, hit := range f.Hits {
		if err := b.Points(transform.Canvas, []bounds.Point{hit.Canvas}, colors[hit.SeriesID]); err != nil {
			return fmt.Errorf("drawing hover marker for '%s': %w", hit.SeriesID, err)
		}
	}
	if err := b.Boxes(transform.NDC, []bounds.Bounds{bounds.Identity}, FrameColor); err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}
	return nil
}
