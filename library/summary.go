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
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the library in markdown
func (myLibrary *Library) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString("# findata library\n## Details\n\n"); err != nil {
		return "", err
	}

	// Database connection string
	if _, err := builder.WriteString(fmt.Sprintf("Database: %s\n\n", myLibrary.DBUrl)); err != nil {
		return "", err
	}

	numAssets, err := myLibrary.NumAssets(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Assets Tracked: %d\n", numAssets)); err != nil {
		return "", err
	}

	numBars, err := myLibrary.NumPriceBars(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Price Bars: %d\n\n", numBars)); err != nil {
		return "", err
	}

	// Last updated time
	lastUpdated, err := myLibrary.LastUpdated(ctx)
	if err != nil {
		return "", err
	}

	if lastUpdated.Equal(time.Time{}) || lastUpdated.Year() < 2 {
		if _, err := builder.WriteString("Last Updated: Never\n\n"); err != nil {
			return "", err
		}
	} else {
		age := timeago.English.Format(lastUpdated)
		if _, err := builder.WriteString(fmt.Sprintf("Last Updated: %s (%s)\n\n", age, lastUpdated.Local().Format("01/02/2006"))); err != nil {
			return "", err
		}
	}

	// Asset counts by type
	if _, err := builder.WriteString("## Assets\n\n"); err != nil {
		return "", err
	}

	counts, err := myLibrary.AssetCountsByType(ctx)
	if err != nil {
		return "", err
	}

	for assetType, count := range counts {
		if _, err := builder.WriteString(p.Sprintf("  * %s: %d\n", string(assetType), count)); err != nil {
			return "", err
		}
	}

	// Recent runs
	if _, err := builder.WriteString("\n## Recent runs\n\n"); err != nil {
		return "", err
	}

	runs, err := myLibrary.RecentRuns(ctx, 10)
	if err != nil {
		return "", err
	}

	for _, run := range runs {
		if _, err := builder.WriteString(p.Sprintf("  * %s %s: %d processed, %d ok, %d failed, %d rows [%s]\n",
			run.FinishedAt.Local().Format("01/02/2006 15:04"), run.Market, run.Processed,
			run.Successful, run.Failed, run.TotalRows, run.ID.String()[:6])); err != nil {
			return "", err
		}

		if len(run.FailedSymbols) > 0 {
			if _, err := builder.WriteString(p.Sprintf("    * failed: %s\n", strings.Join(run.FailedSymbols, ", "))); err != nil {
				return "", err
			}
		}
	}

	return builder.String(), nil
}
