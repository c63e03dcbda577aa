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
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// PriceBar is one trading day's OHLCV for one asset. Natural key:
// (asset_id, event_date). Prices are fixed to four fractional digits;
// volume is 0 when the provider reports none (currency pairs, indices).
type PriceBar struct {
	AssetID int64     `db:"asset_id" parquet:"name=asset_id, type=INT64"`
	Date    time.Time `db:"event_date"`
	Open    float64   `db:"open" parquet:"name=open, type=DOUBLE"`
	High    float64   `db:"high" parquet:"name=high, type=DOUBLE"`
	Low     float64   `db:"low" parquet:"name=low, type=DOUBLE"`
	Close   float64   `db:"close" parquet:"name=close, type=DOUBLE"`
	Volume  int64     `db:"volume" parquet:"name=volume, type=INT64"`
}

// SaveDB writes the price bar with insert-or-replace semantics. A prior
// bar for the same (asset, date) is fully superseded.
func (bar *PriceBar) SaveDB(ctx context.Context, conn *pgxpool.Conn) error {
	sql := fmt.Sprintf(`INSERT INTO %[1]s (
		"asset_id",
		"event_date",
		"open",
		"high",
		"low",
		"close",
		"volume"
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7
	) ON CONFLICT ON CONSTRAINT %[1]s_pkey DO UPDATE SET
		open = EXCLUDED.open,
		high = EXCLUDED.high,
		low = EXCLUDED.low,
		close = EXCLUDED.close,
		volume = EXCLUDED.volume`, PriceHistoryTable)

	_, err := conn.Exec(ctx, sql, bar.AssetID, bar.Date,
		bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	if err != nil {
		log.Error().Err(err).Int64("AssetID", bar.AssetID).Time("Date", bar.Date).
			Msg("error saving price bar to database")
	}

	return err
}
