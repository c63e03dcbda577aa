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
	"syscall"
	"time"

	"github.com/findash/findata/catalog"
	"github.com/findash/findata/healthcheck"
	"github.com/findash/findata/ingest"
	"github.com/findash/findata/library"
	"github.com/findash/findata/provider"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dailyDays  int
	dailyDelay float64
)

// dailyCmd represents the daily command
var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Run the scheduled daily update over the IDX and global catalogs",
	Long: `The daily sub-command refreshes the last few days of price history plus
current fundamentals and statements for the IDX catalog followed by the
global catalog. It is intended to run from cron after market close and
optionally pings healthchecks.io with the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			reportHealth(false)
			return fmt.Errorf("could not connect to library: %w", err)
		}
		defer myLibrary.Close()

		yahoo := provider.NewYahoo(viper.GetInt("provider.rate_limit"))

		end := time.Now().UTC()
		start := end.AddDate(0, 0, -dailyDays)

		clean := true
		for _, market := range []string{"idx", "global"} {
			cat, err := catalog.Market(market)
			if err != nil {
				return err
			}

			batch := &ingest.Batch{
				Ingestor: &ingest.Ingestor{Provider: yahoo, Store: myLibrary, Catalog: cat},
				Delay:    time.Duration(dailyDelay * float64(time.Second)),
			}

			summary, runErr := batch.Run(ctx, cat.Symbols(), start, end)
			saveRun(myLibrary, market, summary)
			printSummary(market, summary)

			if runErr != nil {
				reportHealth(false)
				return fmt.Errorf("batch aborted: %w", runErr)
			}
			if !summary.Clean() {
				clean = false
			}
		}

		reportHealth(clean)
		if !clean {
			return fmt.Errorf("daily update finished with failures")
		}

		return nil
	},
}

// reportHealth pings healthchecks.io when a check is configured.
func reportHealth(ok bool) {
	checkID := viper.GetString("healthchecks.checkid")
	if checkID == "" {
		return
	}

	var err error
	if ok {
		err = healthcheck.Ping(checkID)
	} else {
		err = healthcheck.Fail(checkID)
	}
	if err != nil {
		log.Error().Err(err).Str("CheckID", checkID).Msg("could not ping healthchecks.io")
	}
}

func init() {
	rootCmd.AddCommand(dailyCmd)

	dailyCmd.Flags().IntVar(&dailyDays, "days", 3, "lookback window in days")
	dailyCmd.Flags().Float64Var(&dailyDelay, "delay", 0.5, "delay in seconds between symbols")
}
