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
	"strings"
	"time"

	"github.com/findash/findata/norm"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// StatementPeriod is one reporting period's worth of values for one
// statement family and one asset. Natural key:
// (asset_id, event_date, period_type). Field order follows the family's
// mapping, which fixes the generated column order.
type StatementPeriod struct {
	AssetID    int64
	PeriodEnd  time.Time
	PeriodType PeriodType
	Fields     []norm.FieldValue
}

// NewStatementPeriods converts normalized period records into statement
// rows for one asset and cadence.
func NewStatementPeriods(assetID int64, periodType PeriodType, records []norm.PeriodValues) []*StatementPeriod {
	periods := make([]*StatementPeriod, len(records))
	for i, record := range records {
		periods[i] = &StatementPeriod{
			AssetID:    assetID,
			PeriodEnd:  record.PeriodEnd,
			PeriodType: periodType,
			Fields:     record.Fields,
		}
	}
	return periods
}

// SaveDB writes the period record to tbl with insert-or-replace
// semantics. All value columns are replaced, never merged.
func (period *StatementPeriod) SaveDB(ctx context.Context, tbl string, conn *pgxpool.Conn) error {
	cols := make([]string, len(period.Fields))
	args := make([]any, 0, len(period.Fields)+3)
	args = append(args, period.AssetID, period.PeriodEnd, period.PeriodType)
	for i, field := range period.Fields {
		cols[i] = field.Column
		args = append(args, field.Value)
	}

	sql := upsertSQL(tbl, []string{"asset_id", "event_date", "period_type"}, cols)

	_, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		log.Error().Err(err).Str("Table", tbl).Int64("AssetID", period.AssetID).
			Time("PeriodEnd", period.PeriodEnd).Str("PeriodType", string(period.PeriodType)).
			Msg("error saving statement period to database")
	}

	return err
}

// upsertSQL builds an insert-or-replace statement for tbl keyed on the
// table's primary key constraint. keyCols come first in placeholder
// order, then valueCols; every value column is replaced on conflict.
func upsertSQL(tbl string, keyCols []string, valueCols []string) string {
	quoted := make([]string, 0, len(keyCols)+len(valueCols))
	placeholders := make([]string, 0, cap(quoted))
	assignments := make([]string, 0, len(valueCols))

	for _, col := range keyCols {
		quoted = append(quoted, fmt.Sprintf("%q", col))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(placeholders)+1))
	}

	for _, col := range valueCols {
		quoted = append(quoted, fmt.Sprintf("%q", col))
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(placeholders)+1))
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	return fmt.Sprintf(`INSERT INTO %[1]s (%[2]s) VALUES (%[3]s) ON CONFLICT ON CONSTRAINT %[1]s_pkey DO UPDATE SET %[4]s`,
		tbl, strings.Join(quoted, ", "), strings.Join(placeholders, ", "), strings.Join(assignments, ", "))
}
