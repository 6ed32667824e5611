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

// Package color supports naming colors and coloring plotted items.
//
// Colors are only used for presentation; nothing in the plot engine depends
// on them.  A Registry maps color names to RGBA values.  Registries are plain
// values owned by whoever draws, and are passed to the plot surface
// explicitly:
//
//	colors := color.NewRegistry()
//	if err := colors.DefineHex("rtt", "#1f77b4"); err != nil { ... }
//	c, err := colors.Resolve("rtt")
//
// Alternatively, a color Space comprises a sequence of colors, and a value
// from 0.0 ('the leftmost color') to 1.0 ('the rightmost color') selects a
// linear interpolation along that sequence:
//
//	heat := color.NewSpace("heat", color.Blue, color.Red)
//	c := heat.At(0.25)
package color

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrUnknownColor is returned when looking up an unregistered name.
	ErrUnknownColor = errors.New("unknown color")
	// ErrMalformedHex is returned for unparseable hex color strings.
	ErrMalformedHex = errors.New("malformed hex color")
)

// RGBA is an 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
}

// Hex returns the receiver as "#rrggbbaa".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalText encodes the receiver as its Hex string.
func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Basic colors.
var (
	Black       = RGBA{0, 0, 0, 255}
	White       = RGBA{255, 255, 255, 255}
	Red         = RGBA{214, 39, 40, 255}
	Green       = RGBA{44, 160, 44, 255}
	Blue        = RGBA{31, 119, 180, 255}
	Orange      = RGBA{255, 127, 14, 255}
	Purple      = RGBA{148, 103, 189, 255}
	Gray        = RGBA{127, 127, 127, 255}
	LightGray   = RGBA{220, 220, 220, 255}
	Transparent = RGBA{}
)

var defaultPalette = map[string]RGBA{
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"orange":      Orange,
	"purple":      Purple,
	"gray":        Gray,
	"lightgray":   LightGray,
	"transparent": Transparent,
}

// ParseHex parses "#rgb", "#rrggbb", or "#rrggbbaa".  The leading '#' is
// optional.
func ParseHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return RGBA{}, fmt.Errorf("'%s': %w", s, ErrMalformedHex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("'%s': %w", s, ErrMalformedHex)
	}
	return RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Registry maps color names to colors.  It is not safe for concurrent
// mutation.
type Registry struct {
	colors map[string]RGBA
}

// NewRegistry returns a Registry populated with the default palette.
func NewRegistry() *Registry {
	r := &Registry{
		colors: make(map[string]RGBA, len(defaultPalette)),
	}
	for name, c := range defaultPalette {
		r.colors[name] = c
	}
	return r
}

// Define associates name with c, replacing any previous definition.
func (r *Registry) Define(name string, c RGBA) *Registry {
	r.colors[strings.ToLower(name)] = c
	return r
}

// DefineHex associates name with the provided hex color.
func (r *Registry) DefineHex(name, hex string) error {
	c, err := ParseHex(hex)
	if err != nil {
		return fmt.Errorf("defining '%s': %w", name, err)
	}
	r.Define(name, c)
	return nil
}

// Lookup returns the color registered under name.
func (r *Registry) Lookup(name string) (RGBA, error) {
	c, ok := r.colors[strings.ToLower(name)]
	if !ok {
		return RGBA{}, fmt.Errorf("'%s': %w", name, ErrUnknownColor)
	}
	return c, nil
}

// Resolve returns the color registered under nameOrHex, or, if it begins
// with '#', the parsed hex color.
func (r *Registry) Resolve(nameOrHex string) (RGBA, error) {
	if strings.HasPrefix(nameOrHex, "#") {
		return ParseHex(nameOrHex)
	}
	return r.Lookup(nameOrHex)
}

// Names returns the registered names in increasing order.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.colors))
	for name := range r.colors {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Space represents a color space: a color continuum that can map double
// values to colors.
type Space struct {
	name   string
	colors []RGBA
}

// NewSpace defines a new color space.  Colors in this space will be linearly
// interpolated between the specified colors.
func NewSpace(name string, colors ...RGBA) *Space {
	return &Space{
		name:   name,
		colors: colors,
	}
}

// Name returns the Space's name.
func (s *Space) Name() string {
	return s.name
}

// At returns the color at position v along the receiver, with v clamped to
// [0, 1].  An empty Space is Transparent.
func (s *Space) At(v float64) RGBA {
	switch len(s.colors) {
	case 0:
		return Transparent
	case 1:
		return s.colors[0]
	}
	if math.IsNaN(v) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	pos := v * float64(len(s.colors)-1)
	idx := int(math.Floor(pos))
	if idx >= len(s.colors)-1 {
		return s.colors[len(s.colors)-1]
	}
	frac := pos - float64(idx)
	a, b := s.colors[idx], s.colors[idx+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}
	return RGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}
