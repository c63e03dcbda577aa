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
	"errors"
	"testing"
	"time"

	"github.com/findash/findata/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBars(day time.Time) []provider.Bar {
	return []provider.Bar{{Date: day, Open: 100, High: 110, Low: 90, Close: 105, Volume: 1000}}
}

func TestBatchFaultIsolation(t *testing.T) {
	day := time.Date(2025, time.August, 28, 0, 0, 0, 0, time.UTC)
	p := &fakeProvider{
		bars: map[string][]provider.Bar{
			"AAPL": testBars(day),
			"MSFT": testBars(day),
		},
	}
	s := newFakeStore()
	s.resolveErr["BADSYM"] = errors.New("cannot register")

	batch := &Batch{Ingestor: testIngestor(p, s), Delay: time.Millisecond}
	summary, err := batch.Run(context.Background(), []string{"AAPL", "BADSYM", "MSFT"}, day, day)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, []string{"BADSYM"}, summary.FailedSymbols)
	assert.False(t, summary.Clean())
}

func TestBatchContainsPanic(t *testing.T) {
	day := time.Date(2025, time.August, 28, 0, 0, 0, 0, time.UTC)
	p := &fakeProvider{
		bars:    map[string][]provider.Bar{"MSFT": testBars(day)},
		panicOn: "AAPL",
	}
	s := newFakeStore()

	batch := &Batch{Ingestor: testIngestor(p, s), Delay: time.Millisecond}
	summary, err := batch.Run(context.Background(), []string{"AAPL", "MSFT"}, day, day)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
}

func TestBatchZeroRowSymbolCountsFailed(t *testing.T) {
	day := time.Date(2025, time.August, 28, 0, 0, 0, 0, time.UTC)
	p := &fakeProvider{
		bars: map[string][]provider.Bar{"AAPL": testBars(day)},
	}
	s := newFakeStore()

	batch := &Batch{Ingestor: testIngestor(p, s), Delay: time.Millisecond}
	summary, err := batch.Run(context.Background(), []string{"AAPL", "EMPT"}, day, day)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, []string{"EMPT"}, summary.FailedSymbols)
}

func TestBatchAbortsOnCancel(t *testing.T) {
	day := time.Date(2025, time.August, 28, 0, 0, 0, 0, time.UTC)
	ctx, cancel := context.WithCancel(context.Background())

	p := &fakeProvider{
		bars: map[string][]provider.Bar{"AAPL": testBars(day), "MSFT": testBars(day)},
		onFetch: func(symbol string) {
			if symbol == "AAPL" {
				cancel()
			}
		},
	}
	s := newFakeStore()

	batch := &Batch{Ingestor: testIngestor(p, s), Delay: time.Millisecond}
	summary, err := batch.Run(ctx, []string{"AAPL", "MSFT", "GOOG"}, day, day)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, summary.Processed)
}

func TestBatchEmptySymbolList(t *testing.T) {
	batch := &Batch{Ingestor: testIngestor(&fakeProvider{}, newFakeStore())}
	summary, err := batch.Run(context.Background(), nil, time.Now(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Processed)
	assert.True(t, summary.Clean())
}
