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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFirstAliasWins(t *testing.T) {
	record := map[string]any{
		"EBITDA":            500.0,
		"Normalized EBITDA": 1000.0,
	}

	got := Resolve(record, []string{"EBITDA", "Normalized EBITDA"})
	require.True(t, got.Valid)
	assert.Equal(t, 500.0, got.Float64)
}

func TestResolveContinuesPastEmptyAlias(t *testing.T) {
	// The first alias is present but holds no value; resolution must
	// continue to the next alias rather than stop at present-but-empty.
	cases := []struct {
		name string
		raw  any
	}{
		{name: "NaN", raw: math.NaN()},
		{name: "nil", raw: nil},
		{name: "unparseable string", raw: "-"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := map[string]any{
				"EBITDA":            tc.raw,
				"Normalized EBITDA": 1000.0,
			}

			got := Resolve(record, []string{"EBITDA", "Normalized EBITDA"})
			require.True(t, got.Valid)
			assert.Equal(t, 1000.0, got.Float64)
		})
	}
}

func TestResolveNoAliasPresent(t *testing.T) {
	record := map[string]any{"Total Revenue": 1.0}
	got := Resolve(record, []string{"EBITDA", "Normalized EBITDA"})
	assert.False(t, got.Valid)
}

func TestResolveAllPreservesMappingOrder(t *testing.T) {
	mapping := Mapping{
		{Column: "receivables", Aliases: []string{"Receivables", "Accounts Receivable"}},
		{Column: "payables", Aliases: []string{"Payables", "Accounts Payable"}},
	}

	record := map[string]any{
		"Accounts Receivable": 250.0,
	}

	values := ResolveAll(record, mapping)
	require.Len(t, values, 2)

	assert.Equal(t, "receivables", values[0].Column)
	assert.True(t, values[0].Value.Valid)
	assert.Equal(t, 250.0, values[0].Value.Float64)

	assert.Equal(t, "payables", values[1].Column)
	assert.False(t, values[1].Value.Valid)
}
