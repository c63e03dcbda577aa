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

// Package library is the persistence layer. A Library owns the database
// pool and exposes the writers the ingestion pipeline saves through.
package library

import (
	"context"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/findash/findata/data"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Library struct {
	DBUrl string

	Pool *pgxpool.Pool

	// assetIDs caches symbol to surrogate id so repeated ingestion of
	// the same symbol resolves without a round trip.
	assetIDs *haxmap.Map[string, int64]
}

// NewFromDB opens a connection pool for dbURL and verifies the database
// is reachable.
func NewFromDB(ctx context.Context, dbURL string) (*Library, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Library{
		DBUrl:    dbURL,
		Pool:     pool,
		assetIDs: haxmap.New[string, int64](),
	}, nil
}

// Close the database pool
func (myLibrary *Library) Close() {
	myLibrary.Pool.Close()
}

// ResolveAsset returns the surrogate id for asset, registering it on
// first sight. A cache hit still writes the currency so that the last
// registration always wins.
func (myLibrary *Library) ResolveAsset(ctx context.Context, asset *data.Asset) (int64, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	if id, ok := myLibrary.assetIDs.Get(asset.Symbol); ok {
		asset.ID = id
		if _, err := conn.Exec(ctx, `UPDATE assets SET currency = $1 WHERE id = $2`, asset.Currency, id); err != nil {
			log.Error().Err(err).Str("Symbol", asset.Symbol).Msg("update asset currency failed")
			return 0, err
		}
		return id, nil
	}

	if err := asset.Resolve(ctx, conn); err != nil {
		return 0, err
	}

	myLibrary.assetIDs.Set(asset.Symbol, asset.ID)
	return asset.ID, nil
}

// SavePriceBars writes bars one at a time and returns the number saved.
// A failed row does not stop the rest of the batch; the last error is
// returned alongside the count.
func (myLibrary *Library) SavePriceBars(ctx context.Context, bars []*data.PriceBar) (int, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	saved := 0
	var lastErr error
	for _, bar := range bars {
		if err := bar.SaveDB(ctx, conn); err != nil {
			lastErr = err
			continue
		}
		saved++
	}

	return saved, lastErr
}

// SaveFundamentals writes one snapshot.
func (myLibrary *Library) SaveFundamentals(ctx context.Context, snap *data.FundamentalsSnapshot) error {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return snap.SaveDB(ctx, conn)
}

// SaveStatements writes the period records of one statement family and
// returns the number saved.
func (myLibrary *Library) SaveStatements(ctx context.Context, kind data.StatementKind, periods []*data.StatementPeriod) (int, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	saved := 0
	var lastErr error
	for _, period := range periods {
		if err := period.SaveDB(ctx, kind.Table(), conn); err != nil {
			lastErr = err
			continue
		}
		saved++
	}

	return saved, lastErr
}

// SaveRun appends the durable record of one batch invocation.
func (myLibrary *Library) SaveRun(ctx context.Context, run *data.IngestRun) error {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return run.SaveDB(ctx, conn)
}

// NumAssets returns the number of registered assets
func (myLibrary *Library) NumAssets(ctx context.Context) (int, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	count := 0
	err = conn.QueryRow(ctx, "SELECT count(*) FROM assets").Scan(&count)
	return count, err
}

// NumPriceBars returns the total number of stored price bars
func (myLibrary *Library) NumPriceBars(ctx context.Context) (int, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	count := 0
	err = conn.QueryRow(ctx, "SELECT count(*) FROM price_history").Scan(&count)
	return count, err
}

// LastUpdated returns the finish time of the most recent ingestion run
func (myLibrary *Library) LastUpdated(ctx context.Context) (time.Time, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return time.Time{}, err
	}
	defer conn.Release()

	var lastUpdated time.Time
	err = conn.QueryRow(ctx, "SELECT coalesce(max(finished_at), '0001-01-01'::timestamp) FROM ingest_runs").Scan(&lastUpdated)
	if err != nil {
		return time.Time{}, err
	}

	return lastUpdated, nil
}

// AssetCountsByType returns the number of registered assets per type
func (myLibrary *Library) AssetCountsByType(ctx context.Context) (map[data.AssetType]int, error) {
	conn, err := myLibrary.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, "SELECT asset_type, count(*) FROM assets GROUP BY asset_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[data.AssetType]int)
	for rows.Next() {
		var assetType data.AssetType
		var count int
		if err := rows.Scan(&assetType, &count); err != nil {
			return nil, err
		}
		counts[assetType] = count
	}

	return counts, rows.Err()
}

// RecentRuns returns the most recent ingestion runs, newest first.
func (myLibrary *Library) RecentRuns(ctx context.Context, limit int) ([]*data.IngestRun, error) {
	var runs []*data.IngestRun
	err := pgxscan.Select(ctx, myLibrary.Pool, &runs,
		`SELECT id, market, started_at, finished_at, processed, successful, failed,
total_rows, failed_symbols FROM ingest_runs ORDER BY finished_at DESC LIMIT $1`, limit)
	return runs, err
}

// PriceBars returns the stored bars for one asset over [start, end].
func (myLibrary *Library) PriceBars(ctx context.Context, assetID int64, start, end time.Time) ([]*data.PriceBar, error) {
	var bars []*data.PriceBar
	err := pgxscan.Select(ctx, myLibrary.Pool, &bars,
		`SELECT asset_id, event_date, open, high, low, close, volume FROM price_history
WHERE asset_id = $1 AND event_date BETWEEN $2 AND $3 ORDER BY event_date`, assetID, start, end)
	return bars, err
}

// Assets returns all registered assets in symbol order.
func (myLibrary *Library) Assets(ctx context.Context) ([]*data.Asset, error) {
	var assets []*data.Asset
	err := pgxscan.Select(ctx, myLibrary.Pool, &assets,
		`SELECT id, symbol, name, asset_type, currency FROM assets ORDER BY symbol`)
	return assets, err
}
