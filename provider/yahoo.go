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
package provider

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/findash/findata/data"
	"github.com/findash/findata/norm"
	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const yahooUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Yahoo fetches from the Yahoo Finance v8/v10 JSON endpoints.
type Yahoo struct {
	client  *resty.Client
	limiter *rate.Limiter
	baseURL string
}

// NewYahoo returns a Yahoo client limited to rateLimit requests per
// minute.
func NewYahoo(rateLimit int) *Yahoo {
	if rateLimit <= 0 {
		rateLimit = 120
	}

	return &Yahoo{
		client:  resty.New().SetHeader("User-Agent", yahooUserAgent),
		limiter: rate.NewLimiter(rate.Limit(float64(rateLimit)/float64(61)), 1),
		baseURL: "https://query1.finance.yahoo.com",
	}
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *yahooError) Error() string {
	return fmt.Sprintf("yahoo: %s: %s", e.Code, e.Description)
}

func (yahoo *Yahoo) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	if err := yahoo.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := yahoo.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(yahoo.baseURL + path)
	if err != nil {
		return nil, err
	}

	// 404 bodies still carry a decodable error envelope
	if resp.StatusCode() >= 300 && resp.StatusCode() != 404 {
		log.Error().Int("StatusCode", resp.StatusCode()).Str("URL", resp.Request.URL).Msg("yahoo returned an invalid HTTP response")
		return nil, fmt.Errorf("yahoo: unexpected status %d for %s", resp.StatusCode(), path)
	}

	return resp.Body(), nil
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

// PriceHistory returns daily bars for symbol over [start, end]. Bars
// without a closing price (holidays padded into the series) are
// dropped; a null volume becomes NaN so that downstream coercion can
// decide what to store.
func (yahoo *Yahoo) PriceHistory(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	body, err := yahoo.get(ctx, fmt.Sprintf("/v8/finance/chart/%s", symbol), map[string]string{
		"period1":  fmt.Sprintf("%d", start.Unix()),
		"period2":  fmt.Sprintf("%d", end.Unix()),
		"interval": "1d",
		"events":   "history",
	})
	if err != nil {
		return nil, err
	}

	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Msg("could not parse chart response")
		return nil, fmt.Errorf("parse chart response for %s: %w", symbol, err)
	}

	if payload.Chart.Error != nil {
		return nil, payload.Chart.Error
	}

	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		bar := Bar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close:  *quote.Close[i],
			Volume: math.NaN(),
		}

		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		} else {
			bar.Open = bar.Close
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		} else {
			bar.High = bar.Close
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		} else {
			bar.Low = bar.Close
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]map[string]any `json:"result"`
		Error  *yahooError                 `json:"error"`
	} `json:"quoteSummary"`
}

func (yahoo *Yahoo) quoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]map[string]any, error) {
	body, err := yahoo.get(ctx, fmt.Sprintf("/v10/finance/quoteSummary/%s", symbol), map[string]string{
		"modules": strings.Join(modules, ","),
	})
	if err != nil {
		return nil, err
	}

	var payload quoteSummaryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Msg("could not parse quoteSummary response")
		return nil, fmt.Errorf("parse quoteSummary response for %s: %w", symbol, err)
	}

	if payload.QuoteSummary.Error != nil {
		return nil, payload.QuoteSummary.Error
	}

	if len(payload.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	return payload.QuoteSummary.Result[0], nil
}

// SnapshotMetrics flattens the summaryDetail, defaultKeyStatistics and
// financialData modules into one flat record. Formatted values such as
// {"raw": 123, "fmt": "123.00"} collapse to their raw figure.
func (yahoo *Yahoo) SnapshotMetrics(ctx context.Context, symbol string) (map[string]any, error) {
	modules, err := yahoo.quoteSummary(ctx, symbol, "summaryDetail", "defaultKeyStatistics", "financialData")
	if err != nil {
		return nil, err
	}

	metrics := make(map[string]any)
	for _, fields := range modules {
		for name, raw := range fields {
			if formatted, ok := raw.(map[string]any); ok {
				raw, ok = formatted["raw"]
				if !ok {
					continue
				}
			}
			metrics[name] = raw
		}
	}

	return metrics, nil
}

type timeseriesResponse struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
		Error  *yahooError       `json:"error"`
	} `json:"timeseries"`
}

type timeseriesMeta struct {
	Meta struct {
		Type []string `json:"type"`
	} `json:"meta"`
}

type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue *struct {
		Raw float64 `json:"raw"`
	} `json:"reportedValue"`
}

// Statement fetches one statement family at one cadence from the
// fundamentals timeseries endpoint. Yahoo keys each series as cadence
// plus the line item name with spaces removed ("Total Revenue" at
// annual cadence is "annualTotalRevenue"); the reverse mapping restores
// the line item names package norm resolves against.
func (yahoo *Yahoo) Statement(ctx context.Context, symbol string, kind data.StatementKind, period data.PeriodType) (*norm.WideTable, error) {
	lineItems := make(map[string]string)
	types := make([]string, 0, len(kind.Mapping()))
	for _, field := range kind.Mapping() {
		for _, alias := range field.Aliases {
			seriesType := string(period) + strings.ReplaceAll(alias, " ", "")
			lineItems[seriesType] = alias
			types = append(types, seriesType)
		}
	}

	now := time.Now()
	body, err := yahoo.get(ctx, fmt.Sprintf("/ws/fundamentals-timeseries/v1/finance/timeseries/%s", symbol), map[string]string{
		"type":    strings.Join(types, ","),
		"period1": fmt.Sprintf("%d", now.AddDate(-5, 0, 0).Unix()),
		"period2": fmt.Sprintf("%d", now.Unix()),
		"merge":   "false",
	})
	if err != nil {
		return nil, err
	}

	var payload timeseriesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error().Err(err).Str("Symbol", symbol).Msg("could not parse timeseries response")
		return nil, fmt.Errorf("parse timeseries response for %s: %w", symbol, err)
	}

	if payload.Timeseries.Error != nil {
		return nil, payload.Timeseries.Error
	}

	table := norm.NewWideTable()
	for _, rawResult := range payload.Timeseries.Result {
		var meta timeseriesMeta
		if err := json.Unmarshal(rawResult, &meta); err != nil {
			continue
		}
		if len(meta.Meta.Type) == 0 {
			continue
		}

		seriesType := meta.Meta.Type[0]
		lineItem, ok := lineItems[seriesType]
		if !ok {
			continue
		}

		var series map[string]json.RawMessage
		if err := json.Unmarshal(rawResult, &series); err != nil {
			continue
		}

		rawPoints, ok := series[seriesType]
		if !ok {
			continue
		}

		var points []*timeseriesPoint
		if err := json.Unmarshal(rawPoints, &points); err != nil {
			log.Warn().Err(err).Str("Symbol", symbol).Str("Type", seriesType).Msg("could not parse timeseries points")
			continue
		}

		for _, point := range points {
			if point == nil {
				continue
			}

			periodEnd, err := time.Parse("2006-01-02", point.AsOfDate)
			if err != nil {
				log.Warn().Err(err).Str("AsOfDate", point.AsOfDate).Msg("could not parse period end date")
				continue
			}

			if point.ReportedValue == nil {
				table.AddPeriod(periodEnd)
				continue
			}
			table.Set(lineItem, periodEnd, point.ReportedValue.Raw)
		}
	}

	return table, nil
}

// AssetInfo returns the provider's display name for symbol, preferring
// the long name over the short one.
func (yahoo *Yahoo) AssetInfo(ctx context.Context, symbol string) (string, error) {
	modules, err := yahoo.quoteSummary(ctx, symbol, "quoteType")
	if err != nil {
		return "", err
	}

	quoteType, ok := modules["quoteType"]
	if !ok {
		return "", nil
	}

	if name, ok := quoteType["longName"].(string); ok && name != "" {
		return name, nil
	}
	if name, ok := quoteType["shortName"].(string); ok {
		return name, nil
	}

	return "", nil
}
