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

// Package draw defines the boundary between the plot engine and a drawing
// backend.  The engine hands a Backend already-computed geometry, tagged with
// the coordinate space it is expressed in and a color; the Backend
// rasterizes it.  Backends only receive plain numeric values.
package draw

import (
	"errors"
	"fmt"

	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/color"
	"github.com/ilhamster/packetplot/transform"
)

// ErrUnsupportedSpace is wrapped by SpaceErrors.
var ErrUnsupportedSpace = errors.New("backend does not support coordinate space")

// SpaceError reports a draw call in a space the backend cannot handle.
type SpaceError struct {
	Op    string
	Space transform.Space
}

func (se *SpaceError) Error() string {
	return fmt.Sprintf("%s in %s space: %s", se.Op, se.Space, ErrUnsupportedSpace)
}

// Unwrap returns ErrUnsupportedSpace.
func (se *SpaceError) Unwrap() error {
	return ErrUnsupportedSpace
}

// Backend is implemented by drawing backends.
type Backend interface {
	// Points draws individual points.
	Points(space transform.Space, pts []bounds.Point, c color.RGBA) error
	// Lines draws a polyline through pts.
	Lines(space transform.Space, pts []bounds.Point, c color.RGBA) error
	// Boxes draws the outline of each box.
	Boxes(space transform.Space, boxes []bounds.Bounds, c color.RGBA) error
}

// Kind identifies a draw call.
type Kind string

// Enumerated draw calls.
const (
	PointsKind Kind = "points"
	LinesKind  Kind = "lines"
	BoxesKind  Kind = "boxes"
)

// Command is one recorded draw call.
type Command struct {
	Kind   Kind            `json:"kind"`
	Space  string          `json:"space"`
	Color  color.RGBA      `json:"color"`
	Points []bounds.Point  `json:"points,omitempty"`
	Boxes  []bounds.Bounds `json:"boxes,omitempty"`
}

// Recorder is a Backend that records the calls made on it.  It rejects
// calls in spaces it wasn't configured to accept.
type Recorder struct {
	Commands []Command
	accepts  map[transform.Space]bool
}

// NewRecorder returns a Recorder accepting the provided spaces, or every
// space if none are provided.
func NewRecorder(spaces ...transform.Space) *Recorder {
	if len(spaces) == 0 {
		spaces = []transform.Space{transform.Canvas, transform.NDC, transform.Local}
	}
	r := &Recorder{
		accepts: map[transform.Space]bool{},
	}
	for _, space := range spaces {
		r.accepts[space] = true
	}
	return r
}

func (r *Recorder) record(kind Kind, space transform.Space, c color.RGBA, pts []bounds.Point, boxes []bounds.Bounds) error {
	if !r.accepts[space] {
		return &SpaceError{Op: string(kind), Space: space}
	}
	cmd := Command{
		Kind:  kind,
		Space: space.String(),
		Color: c,
	}
	if pts != nil {
		cmd.Points = append([]bounds.Point(nil), pts...)
	}
	if boxes != nil {
		cmd.Boxes = append([]bounds.Bounds(nil), boxes...)
	}
	r.Commands = append(r.Commands, cmd)
	return nil
}

// Points is part of the Backend interface.
func (r *Recorder) Points(space transform.Space, pts []bounds.Point, c color.RGBA) error {
	return r.record(PointsKind, space, c, pts, nil)
}

// Lines is part of the Backend interface.
func (r *Recorder) Lines(space transform.Space, pts []bounds.Point, c color.RGBA) error {
	return r.record(LinesKind, space, c, pts, nil)
}

// Boxes is part of the Backend interface.
func (r *Recorder) Boxes(space transform.Space, boxes []bounds.Bounds, c color.RGBA) error {
	return r.record(BoxesKind, space, c, nil, boxes)
}

// Reset discards recorded commands, as at the start of a frame.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Count returns the number of recorded commands of the provided kind.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, cmd := range r.Commands {
		if cmd.Kind == kind {
			n++
		}
	}
	return n
}
