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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/packetplot/bounds"
	"github.com/ilhamster/packetplot/config"
)

func TestParsePoint(t *testing.T) {
	for _, test := range []struct {
		description string
		input       string
		want        bounds.Point
		wantErr     bool
	}{{
		description: "pair",
		input:       "120,40.5",
		want:        bounds.Pt(120, 40.5),
	}, {
		description: "spaces",
		input:       " 1 , 2 ",
		want:        bounds.Pt(1, 2),
	}, {
		description: "one value",
		input:       "12",
		wantErr:     true,
	}, {
		description: "not a number",
		input:       "a,2",
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := parsePoint(test.input)
			if (err != nil) != test.wantErr {
				t.Fatalf("parsePoint(%q) error = %v, wantErr %t", test.input, err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("parsePoint(%q) diff (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	const graphs = `{"graphs": [{"name": "rtt", "points": [[0, 1], [1, 2], [2, 3], [5, 4], [9, 5]]}]}`
	if err := os.WriteFile(filepath.Join(root, "rtt.json"), []byte(graphs), 0o644); err != nil {
		t.Fatalf("failed to write graph file: %s", err)
	}
	hover := bounds.Pt(400, 200)
	var buf bytes.Buffer
	if err := run(context.Background(), params{
		cfg:      config.Default(),
		root:     root,
		names:    []string{"rtt.json"},
		hover:    &hover,
		drawCmds: true,
	}, log.New(io.Discard, "", 0), &buf); err != nil {
		t.Fatalf("run() yielded unexpected error %s", err)
	}
	var got struct {
		Frame struct {
			Hits []struct {
				SeriesID string `json:"series_id"`
				Index    int    `json:"index"`
			} `json:"hits"`
		} `json:"frame"`
		Commands []json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode output %s: %s", buf.String(), err)
	}
	// The surface center is x=4.5, nearest to x=5.
	if len(got.Frame.Hits) != 1 || got.Frame.Hits[0].SeriesID != "rtt" || got.Frame.Hits[0].Index != 3 {
		t.Errorf("run() hits = %+v, want one hit on rtt index 3", got.Frame.Hits)
	}
	if len(got.Commands) == 0 {
		t.Errorf("run() printed no draw commands")
	}

	if err := run(context.Background(), params{cfg: config.Default(), root: root}, log.New(io.Discard, "", 0), &buf); err == nil {
		t.Errorf("run() with no graph files yielded no error")
	}
	if err := run(context.Background(), params{
		cfg:   config.Default(),
		root:  root,
		names: []string{"missing.json"},
	}, log.New(io.Discard, "", 0), &buf); err == nil {
		t.Errorf("run() with a missing graph file yielded no error")
	}
}
