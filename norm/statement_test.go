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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fieldByColumn(t *testing.T, record PeriodValues, column string) Value {
	t.Helper()
	for _, fv := range record.Fields {
		if fv.Column == column {
			return fv.Value
		}
	}
	t.Fatalf("column %s not found in record", column)
	return Value{}
}

func TestNormalizeSparsePeriodsPreserved(t *testing.T) {
	mapping := Mapping{
		{Column: "total_revenue", Aliases: []string{"Total Revenue"}},
		{Column: "net_income", Aliases: []string{"Net Income"}},
	}

	fy2022 := day(2022, time.December, 31)
	fy2023 := day(2023, time.December, 31)

	table := NewWideTable()
	table.Set("Total Revenue", fy2022, 90.0)
	table.Set("Total Revenue", fy2023, 100.0)
	table.Set("Net Income", fy2023, 10.0)

	records := Normalize(table, mapping)
	require.Len(t, records, 2)

	assert.True(t, records[0].PeriodEnd.Equal(fy2022))
	assert.False(t, fieldByColumn(t, records[0], "net_income").Valid)
	assert.Equal(t, 90.0, fieldByColumn(t, records[0], "total_revenue").Float64)

	assert.True(t, records[1].PeriodEnd.Equal(fy2023))
	assert.Equal(t, 10.0, fieldByColumn(t, records[1], "net_income").Float64)
}

func TestNormalizeEmptyPeriodStillYieldsRecord(t *testing.T) {
	mapping := Mapping{
		{Column: "total_revenue", Aliases: []string{"Total Revenue"}},
	}

	// The column exists in the source but discloses nothing resolvable;
	// the period must still be represented so its existence is queryable.
	table := NewWideTable()
	table.AddPeriod(day(2021, time.December, 31))

	records := Normalize(table, mapping)
	require.Len(t, records, 1)
	assert.False(t, fieldByColumn(t, records[0], "total_revenue").Valid)
}

func TestNormalizeEmptyTable(t *testing.T) {
	assert.Empty(t, Normalize(NewWideTable(), IncomeMapping))
	assert.Empty(t, Normalize(nil, IncomeMapping))
}

func TestNormalizeAliasPrecedencePerPeriod(t *testing.T) {
	fy2022 := day(2022, time.December, 31)
	fy2023 := day(2023, time.December, 31)

	table := NewWideTable()
	table.Set("Normalized EBITDA", fy2022, 800.0)
	table.Set("EBITDA", fy2023, 500.0)
	table.Set("Normalized EBITDA", fy2023, 1000.0)

	records := Normalize(table, IncomeMapping)
	require.Len(t, records, 2)

	// 2022 has only the fallback alias
	assert.Equal(t, 800.0, fieldByColumn(t, records[0], "ebitda").Float64)
	// 2023 has both; the first listed alias wins
	assert.Equal(t, 500.0, fieldByColumn(t, records[1], "ebitda").Float64)
}

func TestNormalizeDuplicatePeriodColumn(t *testing.T) {
	fy := day(2023, time.December, 31)

	table := NewWideTable()
	table.Set("Total Revenue", fy, 100.0)
	table.Set("Net Income", fy, 10.0)

	records := Normalize(table, IncomeMapping)
	assert.Len(t, records, 1)
}

func TestMappingColumnsAreUnique(t *testing.T) {
	for _, mapping := range []Mapping{IncomeMapping, BalanceMapping, CashflowMapping, MetricsMapping} {
		seen := make(map[string]bool, len(mapping))
		for _, field := range mapping {
			assert.False(t, seen[field.Column], "duplicate column %s", field.Column)
			assert.NotEmpty(t, field.Aliases, "column %s has no aliases", field.Column)
			seen[field.Column] = true
		}
	}
}
