// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package norm

import "time"

// WideTable is a sparse statement table as reported by the provider:
// rows are named line items, columns are period-end dates. Not every
// period carries every line item.
type WideTable struct {
	periods []time.Time
	rows    map[string]map[time.Time]any
}

// NewWideTable returns an empty wide table.
func NewWideTable() *WideTable {
	return &WideTable{rows: make(map[string]map[time.Time]any)}
}

// AddPeriod registers a period-end column. Registering a period with no
// values is valid; the existence of a reporting period is preserved even
// when nothing was disclosed for it.
func (t *WideTable) AddPeriod(periodEnd time.Time) {
	for _, p := range t.periods {
		if p.Equal(periodEnd) {
			return
		}
	}
	t.periods = append(t.periods, periodEnd)
}

// Set stores the raw value for one line item in one period column and
// registers the column if it is new.
func (t *WideTable) Set(lineItem string, periodEnd time.Time, raw any) {
	t.AddPeriod(periodEnd)
	series, ok := t.rows[lineItem]
	if !ok {
		series = make(map[time.Time]any)
		t.rows[lineItem] = series
	}
	series[periodEnd] = raw
}

// Periods returns the period-end columns in registration order.
func (t *WideTable) Periods() []time.Time {
	return t.periods
}

// Empty reports whether the table has no period columns.
func (t *WideTable) Empty() bool {
	return t == nil || len(t.periods) == 0
}

// PeriodValues is one reporting period's worth of resolved canonical
// fields.
type PeriodValues struct {
	PeriodEnd time.Time
	Fields    []FieldValue
}

// Normalize converts a wide statement table into one PeriodValues per
// period column, resolving every canonical field of mapping independently
// through the alias resolver. A period with zero resolvable fields still
// yields a record with all fields empty. A nil or empty table yields no
// records.
func Normalize(table *WideTable, mapping Mapping) []PeriodValues {
	if table.Empty() {
		return nil
	}

	records := make([]PeriodValues, 0, len(table.periods))
	for _, periodEnd := range table.periods {
		column := make(map[string]any, len(table.rows))
		for lineItem, series := range table.rows {
			if raw, ok := series[periodEnd]; ok {
				column[lineItem] = raw
			}
		}

		records = append(records, PeriodValues{
			PeriodEnd: periodEnd,
			Fields:    ResolveAll(column, mapping),
		})
	}

	return records
}
