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

// Package series defines a named point series, sorted by x, along with the
// metadata used to display it.
package series

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/nearest"
)

var (
	// ErrEmpty is returned for series without points.
	ErrEmpty = errors.New("series has no points")
	// ErrUnsorted is returned for series not sorted ascending by x.
	ErrUnsorted = errors.New("series is not sorted by x")
)

// Series is a named, x-sorted sequence of points.
type Series struct {
	ID, DisplayName, Description string
	// Color names an entry in a color.Registry, or is a hex color.
	Color  string
	Points []bounds.Point
}

// New returns a new Series with the provided ID, display name, and
// description.  points are copied and stably sorted by x.
func New(id, displayName, description string, points []bounds.Point) *Series {
	pts := make([]bounds.Point, len(points))
	copy(pts, points)
	sort.SliceStable(pts, func(a, b int) bool {
		return pts[a].X < pts[b].X
	})
	if displayName == "" {
		displayName = id
	}
	return &Series{
		ID:          id,
		DisplayName: displayName,
		Description: description,
		Points:      pts,
	}
}

// WithColor sets the receiver's color and returns it.
func (s *Series) WithColor(color string) *Series {
	s.Color = color
	return s
}

// Validate returns an error if the receiver is empty, unsorted, or holds a
// non-finite point.
func (s *Series) Validate() error {
	if len(s.Points) == 0 {
		return fmt.Errorf("series '%s': %w", s.ID, ErrEmpty)
	}
	for idx, p := range s.Points {
		if !p.Finite() {
			return fmt.Errorf("series '%s' point %d: %w", s.ID, idx, bounds.ErrNonFinite)
		}
		if idx > 0 && p.X < s.Points[idx-1].X {
			return fmt.Errorf("series '%s' at point %d: %w", s.ID, idx, ErrUnsorted)
		}
	}
	return nil
}

// Bounds returns the smallest Bounds containing the receiver's points.
func (s *Series) Bounds() (bounds.Bounds, error) {
	b, err := bounds.FromPoints(s.Points)
	if err != nil {
		return bounds.Bounds{}, fmt.Errorf("series '%s': %w", s.ID, err)
	}
	return b, nil
}

// Nearest returns the index and value of the point whose x is closest to x.
func (s *Series) Nearest(x float64) (int, bounds.Point, error) {
	idx, err := nearest.FindNearest(s.Points, x)
	if err != nil {
		return 0, bounds.Point{}, fmt.Errorf("series '%s': %w", s.ID, err)
	}
	return idx, s.Points[idx], nil
}

// Visible returns the sub-slice of the receiver's points whose x lies in iv,
// widened by one point on either side so that lines leaving the view are
// still drawn.  The returned slice aliases the receiver's points.
func (s *Series) Visible(iv bounds.Interval) []bounds.Point {
	start := sort.Search(len(s.Points), func(idx int) bool {
		return s.Points[idx].X >= iv.Min
	})
	end := sort.Search(len(s.Points), func(idx int) bool {
		return s.Points[idx].X > iv.Max
	})
	if start > 0 {
		start--
	}
	if end < len(s.Points) {
		end++
	}
	return s.Points[start:end]
}
