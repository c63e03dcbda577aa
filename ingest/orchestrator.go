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
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// DefaultDelay is the pacing interval between symbols.
const DefaultDelay = 500 * time.Millisecond

// Summary aggregates one batch invocation. Failed counts both hard
// failures and symbols that stored no rows.
type Summary struct {
	StartedAt  time.Time
	FinishedAt time.Time

	Processed     int
	Successful    int
	Failed        int
	TotalRows     int
	FailedSymbols []string
}

// Clean reports whether every processed symbol succeeded.
func (summary *Summary) Clean() bool {
	return summary.Failed == 0
}

// Batch walks a symbol list through an Ingestor, one symbol at a time.
type Batch struct {
	Ingestor *Ingestor

	// Delay paces provider calls between consecutive symbols. There is
	// no delay before the first symbol. Zero means DefaultDelay.
	Delay time.Duration
}

// Run processes symbols in input order. A failure in one symbol never
// stops the rest; a panic inside a unit is contained and recorded as a
// failure for that symbol only. Context cancellation aborts the
// remaining queue immediately and returns the context error alongside
// the partial summary.
func (batch *Batch) Run(ctx context.Context, symbols []string, start, end time.Time) (*Summary, error) {
	delay := batch.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	limiter := rate.NewLimiter(rate.Every(delay), 1)
	summary := &Summary{StartedAt: time.Now()}
	defer func() { summary.FinishedAt = time.Now() }()

	for _, symbol := range symbols {
		if err := limiter.Wait(ctx); err != nil {
			log.Warn().Err(err).Int("Remaining", len(symbols)-summary.Processed).Msg("batch aborted")
			return summary, err
		}

		outcome := batch.process(ctx, symbol, start, end)
		summary.Processed++
		summary.TotalRows += outcome.Rows

		if outcome.OK() {
			summary.Successful++
			log.Info().Str("Symbol", outcome.Symbol).Int("Rows", outcome.Rows).Msg("symbol ingested")
			continue
		}

		summary.Failed++
		summary.FailedSymbols = append(summary.FailedSymbols, outcome.Symbol)
	}

	return summary, nil
}

// process contains panics so that one misbehaving symbol cannot take
// down the batch.
func (batch *Batch) process(ctx context.Context, symbol string, start, end time.Time) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("Symbol", symbol).Any("Panic", r).Msg("panic while processing symbol")
			outcome = Outcome{Symbol: symbol, Status: Failed, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	return batch.Ingestor.ProcessSymbol(ctx, symbol, start, end)
}
