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
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/findash/findata/catalog"
	"github.com/findash/findata/data"
	"github.com/findash/findata/ingest"
	"github.com/findash/findata/library"
	"github.com/findash/findata/provider"
	"github.com/google/uuid"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	ingestMarket      string
	ingestStart       string
	ingestEnd         string
	ingestDays        int
	ingestYears       int
	ingestDelay       float64
	ingestLimit       int
	ingestListOnly    bool
	ingestSymbolsFile string
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [symbols...]",
	Short: "Fetch and store prices, fundamentals and financial statements",
	Long: `The ingest sub-command walks a symbol list, fetching daily price bars,
a fundamentals snapshot, and the six statement datasets (annual and
quarterly income, balance, cash flow) for each symbol and storing them in
the database. Symbols come from the built-in market catalogs unless given
as arguments or loaded from a CSV file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Market(ingestMarket)
		if err != nil {
			return err
		}

		if ingestSymbolsFile != "" {
			fh, err := os.Open(ingestSymbolsFile)
			if err != nil {
				return fmt.Errorf("open symbols file: %w", err)
			}
			extra, err := catalog.FromCSV(fh)
			fh.Close()
			if err != nil {
				return err
			}
			cat = catalog.New(append(cat.Entries(), extra.Entries()...))
		}

		symbols := args
		if len(symbols) == 0 {
			symbols = cat.Symbols()
		}
		if ingestLimit > 0 && ingestLimit < len(symbols) {
			symbols = symbols[:ingestLimit]
		}

		if ingestListOnly {
			for _, symbol := range symbols {
				fmt.Println(symbol)
			}
			return nil
		}

		start, end, err := ingestWindow()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			return fmt.Errorf("could not connect to library: %w", err)
		}
		defer myLibrary.Close()

		batch := &ingest.Batch{
			Ingestor: &ingest.Ingestor{
				Provider: provider.NewYahoo(viper.GetInt("provider.rate_limit")),
				Store:    myLibrary,
				Catalog:  cat,
			},
			Delay: time.Duration(ingestDelay * float64(time.Second)),
		}

		summary, runErr := batch.Run(ctx, symbols, start, end)
		saveRun(myLibrary, ingestMarket, summary)
		printSummary(ingestMarket, summary)

		if runErr != nil {
			return fmt.Errorf("batch aborted: %w", runErr)
		}
		if !summary.Clean() {
			return fmt.Errorf("%d of %d symbols failed", summary.Failed, summary.Processed)
		}

		return nil
	},
}

// ingestWindow computes the [start, end] ingestion window from the
// date flags. Explicit dates win over relative lookbacks.
func ingestWindow() (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if ingestEnd != "" {
		var err error
		end, err = time.Parse("2006-01-02", ingestEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse end date: %w", err)
		}
	}

	if ingestStart != "" {
		start, err := time.Parse("2006-01-02", ingestStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse start date: %w", err)
		}
		return start, end, nil
	}

	if ingestDays > 0 {
		return end.AddDate(0, 0, -ingestDays), end, nil
	}

	years := ingestYears
	if years <= 0 {
		years = 1
	}
	return end.AddDate(-years, 0, 0), end, nil
}

// saveRun writes the durable run record; failures here are logged but
// never change the command's outcome.
func saveRun(myLibrary *library.Library, market string, summary *ingest.Summary) {
	run := &data.IngestRun{
		ID:            uuid.New(),
		Market:        market,
		StartedAt:     summary.StartedAt,
		FinishedAt:    summary.FinishedAt,
		Processed:     summary.Processed,
		Successful:    summary.Successful,
		Failed:        summary.Failed,
		TotalRows:     summary.TotalRows,
		FailedSymbols: summary.FailedSymbols,
	}

	if err := myLibrary.SaveRun(context.Background(), run); err != nil {
		log.Error().Err(err).Msg("could not save run record")
	}
}

func printSummary(market string, summary *ingest.Summary) {
	runTime := summary.FinishedAt.Sub(summary.StartedAt)

	fmt.Printf("[%s] processed %d symbols in %s: %d ok, %d failed, %d rows\n",
		market, summary.Processed, durafmt.Parse(runTime).LimitFirstN(2).String(),
		summary.Successful, summary.Failed, summary.TotalRows)

	if len(summary.FailedSymbols) > 0 {
		fmt.Printf("[%s] failed symbols: %s\n", market, strings.Join(summary.FailedSymbols, ", "))
	}
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestMarket, "market", "idx", "symbol catalog to ingest (idx, global, all)")
	ingestCmd.Flags().StringVar(&ingestStart, "start", "", "start date (YYYY-MM-DD)")
	ingestCmd.Flags().StringVar(&ingestEnd, "end", "", "end date (YYYY-MM-DD, default today)")
	ingestCmd.Flags().IntVar(&ingestDays, "days", 0, "lookback window in days")
	ingestCmd.Flags().IntVar(&ingestYears, "years", 0, "lookback window in years (default 1)")
	ingestCmd.Flags().Float64Var(&ingestDelay, "delay", 0.5, "delay in seconds between symbols")
	ingestCmd.Flags().IntVar(&ingestLimit, "limit", 0, "only process the first N symbols")
	ingestCmd.Flags().BoolVar(&ingestListOnly, "list-only", false, "print the symbol list and exit")
	ingestCmd.Flags().StringVar(&ingestSymbolsFile, "symbols-file", "", "CSV file with additional symbols (symbol,name,type,currency,provider_symbol)")
}
