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

// Field maps one canonical database column to the ordered list of names
// the provider may report it under. Providers rename line items across
// schema versions (e.g. "Receivables" vs "Accounts Receivable"), so a
// field can carry more than one alias.
type Field struct {
	Column  string
	Aliases []string
}

// Mapping is the ordered set of fields for one record family. Order is
// significant: it fixes the column order of generated SQL.
type Mapping []Field

// Columns returns the canonical column names in mapping order.
func (m Mapping) Columns() []string {
	cols := make([]string, len(m))
	for i, field := range m {
		cols[i] = field.Column
	}
	return cols
}

// Resolve tries aliases in listed order against record and returns the
// first alias whose coerced value is non-empty. An alias that is present
// but coerces to empty does not stop resolution; a later alias may hold
// the real figure. If no alias yields a value the result is empty.
func Resolve(record map[string]any, aliases []string) Value {
	for _, alias := range aliases {
		raw, ok := record[alias]
		if !ok {
			continue
		}
		if v := Coerce(raw); v.Valid {
			return v
		}
	}
	return Value{}
}

// FieldValue pairs a canonical column with its resolved value.
type FieldValue struct {
	Column string
	Value  Value
}

// ResolveAll resolves every field of mapping against record, in mapping
// order.
func ResolveAll(record map[string]any, mapping Mapping) []FieldValue {
	values := make([]FieldValue, len(mapping))
	for i, field := range mapping {
		values[i] = FieldValue{
			Column: field.Column,
			Value:  Resolve(record, field.Aliases),
		}
	}
	return values
}
