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

// Package export dumps stored price history to parquet files.
package export

import (
	"context"
	"time"

	"github.com/findash/findata/library"
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type priceRow struct {
	Symbol string  `parquet:"name=symbol, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date   string  `parquet:"name=event_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Open   float64 `parquet:"name=open, type=DOUBLE"`
	High   float64 `parquet:"name=high, type=DOUBLE"`
	Low    float64 `parquet:"name=low, type=DOUBLE"`
	Close  float64 `parquet:"name=close, type=DOUBLE"`
	Volume int64   `parquet:"name=volume, type=INT64"`
}

// PriceHistory writes every stored price bar to fn and returns the
// number of rows written.
func PriceHistory(ctx context.Context, myLibrary *library.Library, fn string) (int, error) {
	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot create local file")
		return 0, err
	}
	defer fh.Close()

	pw, err := writer.NewParquetWriter(fh, new(priceRow), 4)
	if err != nil {
		log.Error().Err(err).Msg("parquet writer creation failed")
		return 0, err
	}

	pw.RowGroupSize = 128 * 1024 * 1024 // 128M
	pw.PageSize = 8 * 1024              // 8k
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	assets, err := myLibrary.Assets(ctx)
	if err != nil {
		return 0, err
	}

	start := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Now().UTC()

	numRows := 0
	for _, asset := range assets {
		bars, err := myLibrary.PriceBars(ctx, asset.ID, start, end)
		if err != nil {
			log.Error().Err(err).Str("Symbol", asset.Symbol).Msg("could not load price bars")
			continue
		}

		for _, bar := range bars {
			row := priceRow{
				Symbol: asset.Symbol,
				Date:   bar.Date.Format("2006-01-02"),
				Open:   bar.Open,
				High:   bar.High,
				Low:    bar.Low,
				Close:  bar.Close,
				Volume: bar.Volume,
			}

			if err := pw.Write(row); err != nil {
				log.Error().Err(err).Str("Symbol", asset.Symbol).Str("EventDate", row.Date).
					Msg("parquet write failed for row")
				continue
			}
			numRows++
		}
	}

	if err := pw.WriteStop(); err != nil {
		log.Error().Err(err).Msg("parquet write failed")
		return numRows, err
	}

	log.Info().Int("NumRows", numRows).Str("FileName", fn).Msg("parquet write finished")
	return numRows, nil
}
