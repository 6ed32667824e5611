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

// Package config loads plot configuration from YAML:
//
//	width: 800
//	height: 400
//	cache_capacity: 16
//	x_axis: {step_divider: 10, step_break: 10}
//	y_axis: {step_divider: 8, step_break: 6}
//	colors:
//	  rtt: "#1f77b4"
//
// Omitted fields keep their Default values.
package config

import (
	"fmt"
	"os"

	axisticks "github.com/ilhamster/packetplot/axis_ticks"
	"github.com/ilhamster/packetplot/color"
	"github.com/ilhamster/packetplot/transform"
	"gopkg.in/yaml.v3"
)

// Axis configures tick density along one axis.
type Axis struct {
	StepDivider float64 `yaml:"step_divider"`
	StepBreak   float64 `yaml:"step_break"`
}

// Density returns the receiver as an axisticks.Density.
func (a Axis) Density() axisticks.Density {
	return axisticks.Density{StepDivider: a.StepDivider, StepBreak: a.StepBreak}
}

// Config configures a plot surface and its loader.
type Config struct {
	Width         float64           `yaml:"width"`
	Height        float64           `yaml:"height"`
	CacheCapacity int               `yaml:"cache_capacity"`
	XAxis         Axis              `yaml:"x_axis"`
	YAxis         Axis              `yaml:"y_axis"`
	Colors        map[string]string `yaml:"colors"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Width:         800,
		Height:        400,
		CacheCapacity: 16,
		XAxis: Axis{
			StepDivider: axisticks.HorizontalDensity.StepDivider,
			StepBreak:   axisticks.HorizontalDensity.StepBreak,
		},
		YAxis: Axis{
			StepDivider: axisticks.VerticalDensity.StepDivider,
			StepBreak:   axisticks.VerticalDensity.StepBreak,
		},
		Colors: map[string]string{},
	}
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the receiver's dimensions, densities, cache capacity, and
// colors.
func (c *Config) Validate() error {
	if err := c.Dimensions().Validate(); err != nil {
		return err
	}
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("cache_capacity must be positive, got %d", c.CacheCapacity)
	}
	if err := c.XAxis.Density().Validate(); err != nil {
		return fmt.Errorf("x_axis: %w", err)
	}
	if err := c.YAxis.Density().Validate(); err != nil {
		return fmt.Errorf("y_axis: %w", err)
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Dimensions returns the configured surface size.
func (c *Config) Dimensions() transform.Dimensions {
	return transform.Dimensions{Width: c.Width, Height: c.Height}
}

// Registry returns a new color.Registry holding the default palette plus the
// configured colors.
func (c *Config) Registry() (*color.Registry, error) {
	r := color.NewRegistry()
	for name, hex := range c.Colors {
		if err := r.DefineHex(name, hex); err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
	}
	return r, nil
}
