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

// Package provider fetches raw market data from upstream sources. The
// values returned here are deliberately loose (pointer floats, untyped
// maps, wide tables); package norm turns them into storable records.
package provider

import (
	"context"
	"time"

	"github.com/findash/findata/data"
	"github.com/findash/findata/norm"
)

// Bar is one day of raw price history. Volume is NaN when the provider
// reports none, which is routine for currency pairs and indices.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Client is the surface the ingestion pipeline needs from a market data
// provider.
type Client interface {
	// PriceHistory returns daily bars for symbol over [start, end].
	// Days without a closing price are omitted.
	PriceHistory(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error)

	// SnapshotMetrics returns the provider's current valuation and
	// profitability metrics as a flat record keyed by provider field
	// name.
	SnapshotMetrics(ctx context.Context, symbol string) (map[string]any, error)

	// Statement returns one statement family at one reporting cadence
	// as a sparse wide table of line items by period end.
	Statement(ctx context.Context, symbol string, kind data.StatementKind, period data.PeriodType) (*norm.WideTable, error)

	// AssetInfo returns the display name the provider knows the symbol
	// by, or an empty string when it has none.
	AssetInfo(ctx context.Context, symbol string) (string, error)
}
