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

package axisticks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsortedTable is returned by ValidateTable for unit tables that are not
// strictly decreasing by factor.
var ErrUnsortedTable = errors.New("unit table is not strictly decreasing by factor")

// ScaleEntry is a named unit and its conversion factor from data units.
type ScaleEntry struct {
	Factor float64
	Name   string
	Unit   string
}

// Unitless is returned by SelectUnit when no table entry qualifies.
var Unitless = ScaleEntry{}

// TimeUnits is the default unit table, for data measured in seconds.
var TimeUnits = []ScaleEntry{
	{Factor: 1, Name: "Seconds", Unit: "s"},
	{Factor: 1e-3, Name: "Milliseconds", Unit: "ms"},
	{Factor: 1e-6, Name: "Microseconds", Unit: "µs"},
	{Factor: 1e-9, Name: "Nanoseconds", Unit: "ns"},
}

// Label returns the axis label for the receiver, e.g. "Milliseconds (ms)".
// Unitless entries have an empty label.
func (se ScaleEntry) Label() string {
	if se.Name == "" {
		return ""
	}
	if se.Unit == "" {
		return se.Name
	}
	return fmt.Sprintf("%s (%s)", se.Name, se.Unit)
}

// ValidateTable checks that table is strictly decreasing by factor and that
// every factor is positive.
func ValidateTable(table []ScaleEntry) error {
	for idx, entry := range table {
		if !(entry.Factor > 0) {
			return fmt.Errorf("entry %d (%s) has non-positive factor %g", idx, entry.Name, entry.Factor)
		}
		if idx > 0 && !(entry.Factor < table[idx-1].Factor) {
			return fmt.Errorf("entry %d (%s): %w", idx, entry.Name, ErrUnsortedTable)
		}
	}
	return nil
}

// SelectUnit returns the first entry in table, which must be in descending
// factor order, whose factor does not exceed scale.  If none does, it returns
// Unitless.
func SelectUnit(scale float64, table []ScaleEntry) ScaleEntry {
	for _, entry := range table {
		if entry.Factor <= scale {
			return entry
		}
	}
	return Unitless
}

// FormatTick returns the display label of a tick at value v under unit.
// Values are printed to three decimals, and exact-thousandths values
// print as integers.
func FormatTick(v float64, unit ScaleEntry) string {
	if unit.Factor > 0 {
		v /= unit.Factor
	}
	ret := strings.TrimSuffix(fmt.Sprintf("%.3f", v), ".000")
	if ret == "-0" {
		return "0"
	}
	return ret
}
