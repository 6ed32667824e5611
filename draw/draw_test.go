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

package draw

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/color"
	"github.com/ilhamster/packetplot/transform"
)

var _ Backend = &Recorder{}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	pts := []bounds.Point{bounds.Pt(0, 0), bounds.Pt(1, 1)}
	if err := r.Lines(transform.Local, pts, color.Blue); err != nil {
		t.Fatalf("Lines() yielded unexpected error %s", err)
	}
	if err := r.Boxes(transform.NDC, []bounds.Bounds{bounds.Identity}, color.Black); err != nil {
		t.Fatalf("Boxes() yielded unexpected error %s", err)
	}
	pts[0] = bounds.Pt(9, 9)
	want := []Command{{
		Kind:   LinesKind,
		Space:  "local",
		Color:  color.Blue,
		Points: []bounds.Point{bounds.Pt(0, 0), bounds.Pt(1, 1)},
	}, {
		Kind:  BoxesKind,
		Space: "ndc",
		Color: color.Black,
		Boxes: []bounds.Bounds{bounds.Identity},
	}}
	if diff := cmp.Diff(want, r.Commands); diff != "" {
		t.Errorf("Commands diff (-want +got):\n%s", diff)
	}
	if got := r.Count(LinesKind); got != 1 {
		t.Errorf("Count(lines) = %d, want 1", got)
	}
	r.Reset()
	if len(r.Commands) != 0 {
		t.Errorf("Reset() left %d commands", len(r.Commands))
	}
}

func TestRecorderRejectsSpace(t *testing.T) {
	r := NewRecorder(transform.Canvas)
	err := r.Points(transform.Local, []bounds.Point{bounds.Pt(0, 0)}, color.Red)
	if !errors.Is(err, ErrUnsupportedSpace) {
		t.Fatalf("Points() in local space: got error %v, want %v", err, ErrUnsupportedSpace)
	}
	var se *SpaceError
	if !errors.As(err, &se) || se.Space != transform.Local || se.Op != "points" {
		t.Errorf("Points() error = %#v, want a *SpaceError for local points", err)
	}
	if len(r.Commands) != 0 {
		t.Errorf("rejected call was recorded")
	}
	if err := r.Points(transform.Canvas, nil, color.Red); err != nil {
		t.Errorf("Points() in canvas space yielded unexpected error %s", err)
	}
}
