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

// Package norm converts loosely structured provider records into the
// normalized shapes stored by findata. Provider values arrive as a mix of
// floats, integers, strings, JSON numbers and NaN placeholders; partial
// disclosures are the norm in financial filings, so an unusable value is
// represented as an explicit empty Value rather than an error.
package norm

import (
	"database/sql/driver"
	"encoding/json"
	"math"
	"strconv"
)

// Value is an optional numeric value. The zero value is empty (no value).
type Value struct {
	Float64 float64
	Valid   bool
}

// Some returns a valid Value holding v.
func Some(v float64) Value {
	return Value{Float64: v, Valid: true}
}

// Coerce converts a raw scalar of unknown origin into a Value. Missing
// values, NaN, infinities and unparseable inputs all coerce to the empty
// Value. Coerce never fails; conversion problems are too common in
// provider data to be actionable at this layer.
func Coerce(raw any) Value {
	switch v := raw.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return Some(float64(v))
	case int32:
		return Some(float64(v))
	case int64:
		return Some(float64(v))
	case uint:
		return Some(float64(v))
	case uint32:
		return Some(float64(v))
	case uint64:
		return Some(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}
		}
		return finite(f)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Value{}
		}
		return finite(f)
	case *float64:
		if v == nil {
			return Value{}
		}
		return finite(*v)
	default:
		return Value{}
	}
}

func finite(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Some(f)
}

// Int64Or returns the value rounded to the nearest integer, or def when
// the value is empty. Used for volume columns where the provider reports
// NaN for assets that do not trade in shares (currency pairs, indices).
func (v Value) Int64Or(def int64) int64 {
	if !v.Valid {
		return def
	}
	return int64(math.Round(v.Float64))
}

// Value implements driver.Valuer so that an empty Value is stored as NULL.
func (v Value) Value() (driver.Value, error) {
	if !v.Valid {
		return nil, nil
	}
	return v.Float64, nil
}

// Round4 fixes a price to four fractional digits.
func Round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
