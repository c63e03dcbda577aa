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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// IngestRun is the durable record of one batch invocation.
type IngestRun struct {
	ID            uuid.UUID `db:"id"`
	Market        string    `db:"market"`
	StartedAt     time.Time `db:"started_at"`
	FinishedAt    time.Time `db:"finished_at"`
	Processed     int       `db:"processed"`
	Successful    int       `db:"successful"`
	Failed        int       `db:"failed"`
	TotalRows     int       `db:"total_rows"`
	FailedSymbols []string  `db:"failed_symbols"`
}

// SaveDB appends the run record. Runs are history, not state; there is
// no conflict handling because the UUID is generated per invocation.
func (run *IngestRun) SaveDB(ctx context.Context, conn *pgxpool.Conn) error {
	_, err := conn.Exec(ctx, `INSERT INTO ingest_runs (
		"id",
		"market",
		"started_at",
		"finished_at",
		"processed",
		"successful",
		"failed",
		"total_rows",
		"failed_symbols"
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	)`, run.ID, run.Market, run.StartedAt, run.FinishedAt,
		run.Processed, run.Successful, run.Failed, run.TotalRows, run.FailedSymbols)

	if err != nil {
		log.Error().Err(err).Str("RunID", run.ID.String()).Msg("error saving ingest run to database")
	}

	return err
}
