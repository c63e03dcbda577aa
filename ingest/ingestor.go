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

// Package ingest drives the fetch-normalize-store pipeline. One
// Ingestor processes a single symbol end to end; a Batch walks a symbol
// list with pacing and fault isolation.
package ingest

import (
	"context"
	"time"

	"github.com/findash/findata/catalog"
	"github.com/findash/findata/data"
	"github.com/findash/findata/norm"
	"github.com/findash/findata/provider"
	"github.com/rs/zerolog/log"
)

// Store is the persistence surface the pipeline writes through.
// *library.Library is the production implementation.
type Store interface {
	ResolveAsset(ctx context.Context, asset *data.Asset) (int64, error)
	SavePriceBars(ctx context.Context, bars []*data.PriceBar) (int, error)
	SaveFundamentals(ctx context.Context, snap *data.FundamentalsSnapshot) error
	SaveStatements(ctx context.Context, kind data.StatementKind, periods []*data.StatementPeriod) (int, error)
}

// Status classifies how a symbol came through the pipeline.
type Status string

const (
	// Success means at least one price row was stored.
	Success Status = "success"
	// NoData means the unit ran without a hard error but stored no
	// price rows. Counted as failed in batch summaries.
	NoData Status = "no_data"
	// Failed means the unit could not run (asset registration failed
	// or the unit panicked).
	Failed Status = "failed"
)

// Outcome is the result of processing one symbol.
type Outcome struct {
	Symbol string
	Status Status
	Rows   int
	Err    error
}

// OK reports whether the symbol counts as successful.
func (outcome Outcome) OK() bool {
	return outcome.Status == Success
}

// Ingestor processes one symbol at a time: register the asset, store
// its price history, then best-effort fundamentals and financial
// statements.
type Ingestor struct {
	Provider provider.Client
	Store    Store
	Catalog  *catalog.Catalog

	// Now supplies the fundamentals snapshot date. Defaults to
	// time.Now.
	Now func() time.Time
}

// ProcessSymbol runs the full pipeline for one symbol. Asset
// registration is the only hard dependency; every later stage is
// best-effort and a failure there is logged and skipped. The outcome is
// Success only when at least one price row was stored.
func (ing *Ingestor) ProcessSymbol(ctx context.Context, symbol string, start, end time.Time) Outcome {
	entry := ing.Catalog.Resolve(symbol)
	fetchSymbol := entry.FetchSymbol()

	asset := &data.Asset{
		Symbol:    entry.Symbol,
		Name:      entry.Name,
		AssetType: entry.Type,
		Currency:  entry.Currency,
	}

	// catalog entries without a display name take the provider's
	if asset.Name == "" || asset.Name == asset.Symbol {
		if name, err := ing.Provider.AssetInfo(ctx, fetchSymbol); err == nil && name != "" {
			asset.Name = name
		} else if asset.Name == "" {
			asset.Name = asset.Symbol
		}
	}

	assetID, err := ing.Store.ResolveAsset(ctx, asset)
	if err != nil {
		log.Error().Err(err).Str("Symbol", entry.Symbol).Msg("could not register asset")
		return Outcome{Symbol: entry.Symbol, Status: Failed, Err: err}
	}

	rows := ing.ingestPrices(ctx, assetID, fetchSymbol, start, end)
	ing.ingestFundamentals(ctx, assetID, fetchSymbol)
	ing.ingestStatements(ctx, assetID, fetchSymbol)

	if rows == 0 {
		log.Warn().Str("Symbol", entry.Symbol).Msg("no price rows stored for symbol")
		return Outcome{Symbol: entry.Symbol, Status: NoData}
	}

	return Outcome{Symbol: entry.Symbol, Status: Success, Rows: rows}
}

func (ing *Ingestor) ingestPrices(ctx context.Context, assetID int64, fetchSymbol string, start, end time.Time) int {
	rawBars, err := ing.Provider.PriceHistory(ctx, fetchSymbol, start, end)
	if err != nil {
		log.Error().Err(err).Str("Symbol", fetchSymbol).Msg("could not fetch price history")
		return 0
	}

	bars := make([]*data.PriceBar, len(rawBars))
	for i, raw := range rawBars {
		bars[i] = &data.PriceBar{
			AssetID: assetID,
			Date:    raw.Date,
			Open:    norm.Round4(raw.Open),
			High:    norm.Round4(raw.High),
			Low:     norm.Round4(raw.Low),
			Close:   norm.Round4(raw.Close),
			Volume:  norm.Coerce(raw.Volume).Int64Or(0),
		}
	}

	saved, err := ing.Store.SavePriceBars(ctx, bars)
	if err != nil {
		log.Error().Err(err).Str("Symbol", fetchSymbol).Int("Saved", saved).Msg("error saving price bars")
	}

	return saved
}

func (ing *Ingestor) ingestFundamentals(ctx context.Context, assetID int64, fetchSymbol string) {
	metrics, err := ing.Provider.SnapshotMetrics(ctx, fetchSymbol)
	if err != nil {
		log.Error().Err(err).Str("Symbol", fetchSymbol).Msg("could not fetch fundamentals snapshot")
		return
	}

	if len(metrics) == 0 {
		return
	}

	now := time.Now
	if ing.Now != nil {
		now = ing.Now
	}
	asOf := now().UTC().Truncate(24 * time.Hour)

	snap := data.NewFundamentalsSnapshot(assetID, asOf, metrics)
	if err := ing.Store.SaveFundamentals(ctx, snap); err != nil {
		log.Error().Err(err).Str("Symbol", fetchSymbol).Msg("error saving fundamentals snapshot")
	}
}

func (ing *Ingestor) ingestStatements(ctx context.Context, assetID int64, fetchSymbol string) {
	for _, kind := range data.StatementKinds {
		for _, periodType := range data.PeriodTypes {
			table, err := ing.Provider.Statement(ctx, fetchSymbol, kind, periodType)
			if err != nil {
				log.Error().Err(err).Str("Symbol", fetchSymbol).Str("Kind", string(kind)).
					Str("PeriodType", string(periodType)).Msg("could not fetch statement")
				continue
			}

			records := norm.Normalize(table, kind.Mapping())
			if len(records) == 0 {
				continue
			}

			periods := data.NewStatementPeriods(assetID, periodType, records)
			if _, err := ing.Store.SaveStatements(ctx, kind, periods); err != nil {
				log.Error().Err(err).Str("Symbol", fetchSymbol).Str("Kind", string(kind)).
					Str("PeriodType", string(periodType)).Msg("error saving statement periods")
			}
		}
	}
}
