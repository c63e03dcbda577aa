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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name  string
		raw   any
		want  float64
		valid bool
	}{
		{name: "nil", raw: nil, valid: false},
		{name: "float64", raw: 3.14, want: 3.14, valid: true},
		{name: "float64 NaN", raw: math.NaN(), valid: false},
		{name: "float64 +Inf", raw: math.Inf(1), valid: false},
		{name: "float64 -Inf", raw: math.Inf(-1), valid: false},
		{name: "float32", raw: float32(2), want: 2, valid: true},
		{name: "int", raw: 42, want: 42, valid: true},
		{name: "int64", raw: int64(-7), want: -7, valid: true},
		{name: "uint64", raw: uint64(9), want: 9, valid: true},
		{name: "json number", raw: json.Number("1250.5"), want: 1250.5, valid: true},
		{name: "bad json number", raw: json.Number("abc"), valid: false},
		{name: "numeric string", raw: "100.25", want: 100.25, valid: true},
		{name: "non-numeric string", raw: "n/a", valid: false},
		{name: "empty string", raw: "", valid: false},
		{name: "nil float pointer", raw: (*float64)(nil), valid: false},
		{name: "bool is not numeric", raw: true, valid: false},
		{name: "value passthrough", raw: Some(5), want: 5, valid: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Coerce(tc.raw)
			assert.Equal(t, tc.valid, got.Valid)
			if tc.valid {
				assert.Equal(t, tc.want, got.Float64)
			}
		})
	}
}

func TestCoerceFloatPointer(t *testing.T) {
	f := 12.5
	got := Coerce(&f)
	require.True(t, got.Valid)
	assert.Equal(t, 12.5, got.Float64)
}

func TestInt64Or(t *testing.T) {
	// NaN volume must become 0, not an error and not NULL
	assert.Equal(t, int64(0), Coerce(math.NaN()).Int64Or(0))
	assert.Equal(t, int64(0), Coerce(nil).Int64Or(0))
	assert.Equal(t, int64(1000), Some(1000.4).Int64Or(0))
	assert.Equal(t, int64(1001), Some(1000.5).Int64Or(0))
}

func TestValuer(t *testing.T) {
	v, err := Some(1.5).Value()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = Value{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 12.3457, Round4(12.34567))
	assert.Equal(t, 0.0001, Round4(0.00005))
	assert.Equal(t, -2.5, Round4(-2.5))
}
