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

// Package axisticks plans axis ticks for a viewport.  Given the visible
// interval on one axis, PlanAxis picks a power-of-ten tick spacing yielding
// roughly a target number of ticks, lays ticks out symmetrically around a
// center that stays put under sub-tick panning, and selects a unit from a
// ScaleEntry table with which to label them.
//
// Plans are cheap and depend on the current bounds, so callers recompute
// them every frame.
package axisticks

import (
	"errors"
	"fmt"
	"math"

	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/viewport"
)

var (
	// ErrEmptySpan is returned for axes whose span is zero or not finite.
	ErrEmptySpan = errors.New("axis span is empty")
	// ErrInvalidDensity is returned for non-positive step dividers.
	ErrInvalidDensity = errors.New("invalid tick density")
)

// maxTicks bounds the number of ticks a single plan may emit.
const maxTicks = 10000

// Density configures tick spacing along one axis.
type Density struct {
	// StepDivider is the target number of ticks across the axis span.
	StepDivider float64
	// StepBreak is the tick count above which only every other tick is
	// emitted.
	StepBreak float64
}

// Default densities.
var (
	HorizontalDensity = Density{StepDivider: 10, StepBreak: 10}
	VerticalDensity   = Density{StepDivider: 8, StepBreak: 6}
)

// Validate returns ErrInvalidDensity if the receiver's divider is not a
// positive finite number.
func (d Density) Validate() error {
	if !(d.StepDivider > 0) || math.IsInf(d.StepDivider, 0) || math.IsNaN(d.StepBreak) {
		return fmt.Errorf("divider %g, break %g: %w", d.StepDivider, d.StepBreak, ErrInvalidDensity)
	}
	return nil
}

// AxisPlan is the tick layout of one axis.
type AxisPlan struct {
	// Ticks holds tick positions in local space, ascending.  It always has
	// odd length and is symmetric around Center.
	Ticks []float64
	// Center is the anchor tick.
	Center float64
	// Scale is the local-space distance between adjacent tick slots.
	Scale float64
	// StepCount is span/Scale.
	StepCount float64
	// Unit labels the ticks.
	Unit ScaleEntry
}

// Label returns the axis label.
func (ap AxisPlan) Label() string {
	return ap.Unit.Label()
}

// TickLabels returns the display label of each tick, in tick order.
func (ap AxisPlan) TickLabels() []string {
	ret := make([]string, len(ap.Ticks))
	for idx, tick := range ap.Ticks {
		ret[idx] = FormatTick(tick, ap.Unit)
	}
	return ret
}

// StepScale returns the power of ten nearest below twice span/divider.
func StepScale(span, divider float64) (float64, error) {
	rawStep := math.Abs(span) / divider
	if !(rawStep > 0) || math.IsInf(rawStep, 0) {
		return 0, fmt.Errorf("span %g over divider %g: %w", span, divider, ErrEmptySpan)
	}
	return math.Pow(10, math.Floor(math.Log10(2*rawStep))), nil
}

// Center returns the anchor tick for an axis whose viewport offset divided by
// scale is finalOffset.  The anchor is always an odd multiple of scale, so it
// only moves once the view has been panned by a whole tick step.
func Center(finalOffset, scale float64) float64 {
	amount := math.Floor(finalOffset / scale)
	if math.Mod(amount, 2) == 0 {
		amount++
	}
	return -amount * scale
}

// PlanAxis plans the ticks for the visible interval iv with the provided
// density, labelling them with units from TimeUnits.
func PlanAxis(iv bounds.Interval, d Density) (AxisPlan, error) {
	return PlanAxisWithUnits(iv, d, TimeUnits)
}

// PlanAxisWithUnits is PlanAxis with a caller-provided unit table.
func PlanAxisWithUnits(iv bounds.Interval, d Density, units []ScaleEntry) (AxisPlan, error) {
	if err := d.Validate(); err != nil {
		return AxisPlan{}, err
	}
	if err := iv.Validate(); err != nil {
		return AxisPlan{}, fmt.Errorf("%w: %s", ErrEmptySpan, err)
	}
	span := math.Abs(iv.Max - iv.Min)
	scale, err := StepScale(span, d.StepDivider)
	if err != nil {
		return AxisPlan{}, err
	}
	stepCount := span / scale
	// For a viewport showing iv, offset/scale is -(min+max)/2.
	center := Center(-iv.Mid(), scale)
	stride := 1
	if stepCount > d.StepBreak {
		stride = 2
	}
	var below, above []float64
	for i := stride; float64(i) < stepCount && 2*len(above)+1 < maxTicks; i += stride {
		above = append(above, center+float64(i)*scale)
		below = append(below, center-float64(i)*scale)
	}
	ticks := make([]float64, 0, 2*len(above)+1)
	for idx := len(below) - 1; idx >= 0; idx-- {
		ticks = append(ticks, below[idx])
	}
	ticks = append(ticks, center)
	ticks = append(ticks, above...)
	return AxisPlan{
		Ticks:     ticks,
		Center:    center,
		Scale:     scale,
		StepCount: stepCount,
		Unit:      SelectUnit(scale, units),
	}, nil
}

// PlanViewport plans both axes of vp.
func PlanViewport(vp *viewport.Viewport, xd, yd Density) (x, y AxisPlan, err error) {
	b := vp.Bounds()
	if x, err = PlanAxis(b.X, xd); err != nil {
		return AxisPlan{}, AxisPlan{}, fmt.Errorf("x axis: %w", err)
	}
	if y, err = PlanAxis(b.Y, yd); err != nil {
		return AxisPlan{}, AxisPlan{}, fmt.Errorf("y axis: %w", err)
	}
	return x, y, nil
}
