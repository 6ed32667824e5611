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

package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/series"
	testutil "github.com/ilhamster/packetplot/test_util"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		description string
		input       string
		want        []*series.Series
		wantErr     error
		wantAnyErr  bool
	}{{
		description: "points and flat data",
		input: `{"graphs": [
			{"name": "rtt", "display_name": "RTT", "description": "round trip", "color": "blue",
			 "points": [[2, 0.3], [0, 0.1], [1, 0.2]]},
			{"data": [0, 5, 1, 6]}
		]}`,
		want: []*series.Series{{
			ID:          "rtt",
			DisplayName: "RTT",
			Description: "round trip",
			Color:       "blue",
			Points:      []bounds.Point{bounds.Pt(0, 0.1), bounds.Pt(1, 0.2), bounds.Pt(2, 0.3)},
		}, {
			ID:          "trace.json#1",
			DisplayName: "trace.json#1",
			Points:      []bounds.Point{bounds.Pt(0, 5), bounds.Pt(1, 6)},
		}},
	}, {
		description: "integer nanoseconds",
		input:       `{"graphs": [{"name": "gap", "data_ns": [1, 1500000, 0, 2000000000]}]}`,
		want: []*series.Series{{
			ID:          "gap",
			DisplayName: "gap",
			Points:      []bounds.Point{bounds.Pt(0, 2), bounds.Pt(1, 0.0015)},
		}},
	}, {
		description: "data and data_ns",
		input:       `{"graphs": [{"name": "a", "data": [0, 1], "data_ns": [0, 1]}]}`,
		wantErr:     ErrMalformedGraph,
	}, {
		description: "fractional nanoseconds",
		input:       `{"graphs": [{"name": "a", "data_ns": [0, 1.5]}]}`,
		wantAnyErr:  true,
	}, {
		description: "odd nanosecond data",
		input:       `{"graphs": [{"name": "a", "data_ns": [0]}]}`,
		wantErr:     bounds.ErrOddLength,
	}, {
		description: "no graphs",
		input:       `{"graphs": []}`,
		want:        []*series.Series{},
	}, {
		description: "neither points nor data",
		input:       `{"graphs": [{"name": "a"}]}`,
		wantErr:     ErrMalformedGraph,
	}, {
		description: "both points and data",
		input:       `{"graphs": [{"name": "a", "points": [[0, 1]], "data": [0, 1]}]}`,
		wantErr:     ErrMalformedGraph,
	}, {
		description: "short point",
		input:       `{"graphs": [{"name": "a", "points": [[0, 1], [2]]}]}`,
		wantErr:     ErrMalformedGraph,
	}, {
		description: "odd flat data",
		input:       `{"graphs": [{"name": "a", "data": [0, 1, 2]}]}`,
		wantErr:     bounds.ErrOddLength,
	}, {
		description: "empty points",
		input:       `{"graphs": [{"name": "a", "points": []}]}`,
		wantErr:     series.ErrEmpty,
	}, {
		description: "not json",
		input:       `{"graphs": [`,
		wantAnyErr:  true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := Parse("trace.json", strings.NewReader(test.input))
			if test.wantErr != nil || test.wantAnyErr {
				if err == nil {
					t.Fatalf("Parse() yielded no error")
				}
				if test.wantErr != nil && !errors.Is(err, test.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() yielded unexpected error %s", err)
			}
			if diff := cmp.Diff(test.want, got, testutil.DefaultApprox); diff != "" {
				t.Errorf("Parse() diff (-want +got):\n%s", diff)
			}
		})
	}
}

// countingFetcher serves graph files from memory, counting fetches per name.
type countingFetcher struct {
	files map[string]string
	mu    sync.Mutex
	calls map[string]int
}

func newCountingFetcher(files map[string]string) *countingFetcher {
	return &countingFetcher{
		files: files,
		calls: map[string]int{},
	}
}

func (cf *countingFetcher) Fetch(ctx context.Context, name string) ([]*series.Series, error) {
	cf.mu.Lock()
	cf.calls[name]++
	cf.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, ok := cf.files[name]
	if !ok {
		return nil, fmt.Errorf("no file '%s': %w", name, os.ErrNotExist)
	}
	return Parse(name, strings.NewReader(body))
}

func (cf *countingFetcher) count(name string) int {
	cf.mu.Lock()
	defer cf.mu.Unlock()
	return cf.calls[name]
}

func graphFile(id string, x float64) string {
	return fmt.Sprintf(`{"graphs": [{"name": %q, "points": [[%g, 1]]}]}`, id, x)
}

func quietLoader(t *testing.T, cap int, f Fetcher) *Loader {
	t.Helper()
	l, err := New(cap, f)
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	return l.WithLogger(log.New(io.Discard, "", 0))
}

func ids(ss []*series.Series) []string {
	ret := make([]string, len(ss))
	for idx, s := range ss {
		ret[idx] = s.ID
	}
	return ret
}

func TestLoaderCaches(t *testing.T) {
	cf := newCountingFetcher(map[string]string{
		"a": graphFile("a", 0),
		"b": graphFile("b", 1),
		"c": graphFile("c", 2),
	})
	l := quietLoader(t, 2, cf)
	ctx := context.Background()
	for _, name := range []string{"a", "a", "b", "a", "c", "b"} {
		got, err := l.Load(ctx, name)
		if err != nil {
			t.Fatalf("Load(%s) yielded unexpected error %s", name, err)
		}
		if diff := cmp.Diff([]string{name}, ids(got)); diff != "" {
			t.Errorf("Load(%s) diff (-want +got):\n%s", name, diff)
		}
	}
	// 'b' was evicted by 'c', since 'a' was used more recently.
	for name, want := range map[string]int{"a": 1, "b": 2, "c": 1} {
		if got := cf.count(name); got != want {
			t.Errorf("fetches of '%s' = %d, want %d", name, got, want)
		}
	}
	if got := l.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestLoaderDoesntCacheFailures(t *testing.T) {
	cf := newCountingFetcher(map[string]string{})
	l := quietLoader(t, 2, cf)
	for i := 0; i < 2; i++ {
		if _, err := l.Load(context.Background(), "missing"); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("Load() error = %v, want %v", err, os.ErrNotExist)
		}
	}
	if got := cf.count("missing"); got != 2 {
		t.Errorf("fetches = %d, want 2", got)
	}
}

func TestLoadAll(t *testing.T) {
	files := map[string]string{}
	var names []string
	for idx := 0; idx < 8; idx++ {
		name := fmt.Sprintf("f%d", idx)
		files[name] = graphFile(name, float64(idx))
		names = append(names, name)
	}
	l := quietLoader(t, 4, newCountingFetcher(files))
	got, err := l.LoadAll(context.Background(), names...)
	if err != nil {
		t.Fatalf("LoadAll() yielded unexpected error %s", err)
	}
	if diff := cmp.Diff(names, ids(got)); diff != "" {
		t.Errorf("LoadAll() diff (-want +got):\n%s", diff)
	}
	if _, err := l.LoadAll(context.Background(), "f0", "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadAll() with a missing file: got error %v, want %v", err, os.ErrNotExist)
	}
}

func TestDirFetcher(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "g.json"), []byte(graphFile("g", 3)), 0o644); err != nil {
		t.Fatalf("failed to write graph file: %s", err)
	}
	var buf bytes.Buffer
	l, err := New(1, DirFetcher{Root: root})
	if err != nil {
		t.Fatalf("New() yielded unexpected error %s", err)
	}
	l.WithLogger(log.New(&buf, "", 0))
	got, err := l.Load(context.Background(), "g.json")
	if err != nil {
		t.Fatalf("Load() yielded unexpected error %s", err)
	}
	if diff := cmp.Diff([]bounds.Point{bounds.Pt(3, 1)}, got[0].Points); diff != "" {
		t.Errorf("Load() points diff (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "Loaded 1 series from 'g.json'") {
		t.Errorf("Load() logged %q", buf.String())
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (DirFetcher{Root: root}).Fetch(ctx, "g.json"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() with a canceled context: got error %v, want %v", err, context.Canceled)
	}
	if _, err := New(0, DirFetcher{Root: root}); err == nil {
		t.Errorf("New() with zero capacity yielded no error")
	}
}
