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

// Binary plotframe loads graph files, fits a plot surface to them, and
// prints one computed frame as JSON.
//
//	plotframe -root=/tmp/graphs -hover=120,40 rtt.json jitter.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/config"
	"github.com/ilhamster/packetplot/draw"
	"github.com/ilhamster/packetplot/loader"
	"github.com/ilhamster/packetplot/plot"
)

var (
	configPath = flag.String("config", "", "Optional path to a YAML plot configuration")
	root       = flag.String("root", ".", "The root path for graph files")
	width      = flag.Float64("width", 0, "Surface width in pixels; overrides the configuration")
	height     = flag.Float64("height", 0, "Surface height in pixels; overrides the configuration")
	hover      = flag.String("hover", "", "Optional 'x,y' canvas-space pointer position, origin at bottom-left")
	cache      = flag.Int("cache", 0, "Graph file cache capacity; overrides the configuration")
	drawCmds   = flag.Bool("draw", false, "Also print the frame's draw commands")
)

// output is what plotframe prints.
type output struct {
	Frame    plot.Frame     `json:"frame"`
	Commands []draw.Command `json:"commands,omitempty"`
}

// parsePoint parses an 'x,y' pair.
func parsePoint(s string) (bounds.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return bounds.Point{}, fmt.Errorf("'%s' is not an 'x,y' pair", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return bounds.Point{}, fmt.Errorf("'%s': %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return bounds.Point{}, fmt.Errorf("'%s': %w", s, err)
	}
	return bounds.Pt(x, y), nil
}

// params holds a single invocation's inputs.
type params struct {
	cfg      *config.Config
	root     string
	names    []string
	hover    *bounds.Point
	drawCmds bool
}

func run(ctx context.Context, p params, logger *log.Logger, w io.Writer) error {
	if len(p.names) == 0 {
		return fmt.Errorf("no graph files specified")
	}
	l, err := loader.New(p.cfg.CacheCapacity, loader.DirFetcher{Root: p.root})
	if err != nil {
		return fmt.Errorf("failed to create loader: %w", err)
	}
	ss, err := l.WithLogger(logger).LoadAll(ctx, p.names...)
	if err != nil {
		return fmt.Errorf("failed to load graphs: %w", err)
	}
	colors, err := p.cfg.Registry()
	if err != nil {
		return err
	}
	surface, err := plot.New(p.cfg.Dimensions(), plot.Options{
		XDensity: p.cfg.XAxis.Density(),
		YDensity: p.cfg.YAxis.Density(),
		Colors:   colors,
	})
	if err != nil {
		return fmt.Errorf("failed to create surface: %w", err)
	}
	if err := surface.AddSeries(ss...); err != nil {
		return err
	}
	if p.hover != nil {
		surface.Hover(*p.hover)
	}
	frame, err := surface.Update()
	if err != nil {
		return err
	}
	out := output{Frame: frame}
	if p.drawCmds {
		r := draw.NewRecorder()
		if err := surface.Draw(r); err != nil {
			return err
		}
		out.Commands = r.Commands
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load configuration: %s", err)
		}
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *cache > 0 {
		cfg.CacheCapacity = *cache
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
	p := params{
		cfg:      cfg,
		root:     *root,
		names:    flag.Args(),
		drawCmds: *drawCmds,
	}
	if *hover != "" {
		at, err := parsePoint(*hover)
		if err != nil {
			log.Fatalf("Bad -hover: %s", err)
		}
		p.hover = &at
	}
	if err := run(context.Background(), p, log.New(os.Stderr, "", log.LstdFlags), os.Stdout); err != nil {
		log.Fatalf("Failed to compute frame: %s", err)
	}
}
