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

// Package loader reads graph files into x-sorted series.  A graph file is
// JSON of the form
//
//	{"graphs": [
//	  {"name": "rtt", "display_name": "RTT", "color": "blue",
//	   "points": [[0, 0.012], [1, 0.013]]},
//	  {"name": "jitter", "data": [0, 0.001, 1, 0.002]},
//	  {"name": "gap", "data_ns": [0, 1500000, 1, 1250000]}
//	]}
//
// where each graph supplies exactly one of 'points', a list of
// [x, elapsed] pairs, 'data', a flat alternating x, elapsed list, or
// 'data_ns', a flat alternating list of integer x and elapsed nanoseconds.
// Elapsed values are always held in seconds.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/series"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// ErrMalformedGraph is returned for graphs that don't supply exactly one
// well-formed point list.
var ErrMalformedGraph = errors.New("malformed graph")

type graphJSON struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Description string      `json:"description"`
	Color       string      `json:"color"`
	Points      [][]float64 `json:"points"`
	Data        []float64   `json:"data"`
	DataNs      []int64     `json:"data_ns"`
}

type fileJSON struct {
	Graphs []graphJSON `json:"graphs"`
}

func flatPoints[T constraints.Integer | constraints.Float](values []T, elapsedScale float64) ([]bounds.Point, error) {
	pts, err := bounds.FromFlat(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedGraph, err)
	}
	for idx := range pts {
		pts[idx].Y *= elapsedScale
	}
	return pts, nil
}

func (g *graphJSON) points() ([]bounds.Point, error) {
	provided := 0
	for _, has := range []bool{g.Points != nil, g.Data != nil, g.DataNs != nil} {
		if has {
			provided++
		}
	}
	switch {
	case provided > 1:
		return nil, fmt.Errorf("more than one of 'points', 'data', and 'data_ns' provided: %w", ErrMalformedGraph)
	case g.Data != nil:
		return flatPoints(g.Data, 1)
	case g.DataNs != nil:
		return flatPoints(g.DataNs, 1e-9)
	case g.Points != nil:
		ret := make([]bounds.Point, len(g.Points))
		for idx, pair := range g.Points {
			if len(pair) != 2 {
				return nil, fmt.Errorf("point %d has %d values: %w", idx, len(pair), ErrMalformedGraph)
			}
			ret[idx] = bounds.Pt(pair[0], pair[1])
		}
		return ret, nil
	}
	return nil, fmt.Errorf("none of 'points', 'data', or 'data_ns' provided: %w", ErrMalformedGraph)
}

// Parse parses the graph file read from r.  name identifies the file in
// errors, and names any unnamed graph.
func Parse(name string, r io.Reader) ([]*series.Series, error) {
	var f fileJSON
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse '%s': %w", name, err)
	}
	ret := make([]*series.Series, 0, len(f.Graphs))
	for idx, g := range f.Graphs {
		id := g.Name
		if id == "" {
			id = fmt.Sprintf("%s#%d", name, idx)
		}
		pts, err := g.points()
		if err != nil {
			return nil, fmt.Errorf("'%s' graph '%s': %w", name, id, err)
		}
		s := series.New(id, g.DisplayName, g.Description, pts).WithColor(g.Color)
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("'%s': %w", name, err)
		}
		ret = append(ret, s)
	}
	return ret, nil
}

// Fetcher describes types capable of fetching graph files by name.
type Fetcher interface {
	// Fetch fetches the graph file specified by name, returning its series
	// or an error if a failure is encountered.
	Fetch(ctx context.Context, name string) ([]*series.Series, error)
}

// DirFetcher fetches graph files from a directory.
type DirFetcher struct {
	Root string
}

// Fetch is part of the Fetcher interface.
func (df DirFetcher) Fetch(ctx context.Context, name string) ([]*series.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(df.Root, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(name, file)
}

// Loader fetches graph files through a Fetcher, caching the most recently
// used.  It is safe for concurrent use.
type Loader struct {
	// An LRU cache holding the most recently-loaded files.
	lru *simplelru.LRU
	mu  sync.Mutex
	// A fetcher used to fetch uncached files.
	fetcher Fetcher
	logger  *log.Logger
}

// New returns a new Loader with the specified cache capacity, and using the
// provided fetcher.
func New(cap int, fetcher Fetcher) (*Loader, error) {
	lru, err := simplelru.NewLRU(cap, nil /* no onEvict policy */)
	if err != nil {
		return nil, err
	}
	return &Loader{
		lru:     lru,
		fetcher: fetcher,
		logger:  log.Default(),
	}, nil
}

// WithLogger directs the receiver's logging to l.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	l.logger = logger
	return l
}

func (l *Loader) cached(name string) ([]*series.Series, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	sIf, ok := l.lru.Get(name)
	if !ok {
		return nil, false, nil
	}
	s, ok := sIf.([]*series.Series)
	if !ok {
		return nil, false, fmt.Errorf("cached entry for '%s' wasn't a series list", name)
	}
	return s, true, nil
}

// Load returns the series in the named file, from the cache if present.
// Cached series are shared between callers and must not be mutated.
func (l *Loader) Load(ctx context.Context, name string) ([]*series.Series, error) {
	s, ok, err := l.cached(name)
	if err != nil || ok {
		return s, err
	}
	start := time.Now()
	s, err = l.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	l.logger.Printf("Loaded %d series from '%s' in %s", len(s), name, time.Since(start))
	l.mu.Lock()
	l.lru.Add(name, s)
	l.mu.Unlock()
	return s, nil
}

// LoadAll loads the named files concurrently, returning their series in the
// order the names were given.  Any failure cancels outstanding loads.
func (l *Loader) LoadAll(ctx context.Context, names ...string) ([]*series.Series, error) {
	perFile := make([][]*series.Series, len(names))
	errg, ctx := errgroup.WithContext(ctx)
	for idx, name := range names {
		errg.Go(func() error {
			s, err := l.Load(ctx, name)
			if err != nil {
				return err
			}
			perFile[idx] = s
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	var ret []*series.Series
	for _, s := range perFile {
		ret = append(ret, s...)
	}
	return ret, nil
}

// Len returns the number of cached files.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lru.Len()
}
