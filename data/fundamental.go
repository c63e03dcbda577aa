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
	"time"

	"github.com/findash/findata/norm"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// FundamentalsSnapshot is a point-in-time set of named financial ratios
// and metrics for one asset. Natural key: (asset_id, event_date) where
// event_date is the date of the ingestion run; re-running the pipeline
// on the same day overwrites the day's snapshot. Absent metrics are
// stored as NULL; partial disclosure is a valid, common state.
type FundamentalsSnapshot struct {
	AssetID int64
	Date    time.Time
	Fields  []norm.FieldValue
}

// NewFundamentalsSnapshot resolves the provider's flat metrics record
// against the snapshot mapping.
func NewFundamentalsSnapshot(assetID int64, date time.Time, metrics map[string]any) *FundamentalsSnapshot {
	return &FundamentalsSnapshot{
		AssetID: assetID,
		Date:    date,
		Fields:  norm.ResolveAll(metrics, norm.MetricsMapping),
	}
}

// SaveDB writes the snapshot with insert-or-replace semantics.
func (snap *FundamentalsSnapshot) SaveDB(ctx context.Context, conn *pgxpool.Conn) error {
	cols := make([]string, len(snap.Fields))
	args := make([]any, 0, len(snap.Fields)+2)
	args = append(args, snap.AssetID, snap.Date)
	for i, field := range snap.Fields {
		cols[i] = field.Column
		args = append(args, field.Value)
	}

	sql := upsertSQL(FundamentalsTable, []string{"asset_id", "event_date"}, cols)

	_, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		log.Error().Err(err).Int64("AssetID", snap.AssetID).Time("Date", snap.Date).
			Msg("error saving fundamentals snapshot to database")
	}

	return err
}
