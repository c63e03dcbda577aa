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
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/findash/findata/data"
	"github.com/findash/findata/norm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testYahoo(t *testing.T, handler http.HandlerFunc) *Yahoo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	yahoo := NewYahoo(60000)
	yahoo.baseURL = srv.URL
	return yahoo
}

func TestPriceHistory(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/BBCA.JK", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))

		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1704067200,1704153600,1704240000],
			"indicators":{"quote":[{
				"open":[100.0,null,102.0],
				"high":[110.0,null,112.0],
				"low":[ 90.0,null, 92.0],
				"close":[105.0,null,107.0],
				"volume":[5000,null,null]
			}]}
		}],"error":null}}`))
	})

	bars, err := yahoo.PriceHistory(context.Background(), "BBCA.JK",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// the middle bar has no close and is dropped
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 105.0, bars[0].Close)
	assert.Equal(t, 5000.0, bars[0].Volume)
	assert.Equal(t, 107.0, bars[1].Close)
	assert.True(t, math.IsNaN(bars[1].Volume))
}

func TestPriceHistoryError(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})

	_, err := yahoo.PriceHistory(context.Background(), "BADSYM", time.Now().AddDate(0, 0, -7), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestSnapshotMetrics(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/BBCA.JK", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("modules"), "summaryDetail")

		w.Write([]byte(`{"quoteSummary":{"result":[{
			"summaryDetail":{
				"marketCap":{"raw":1500000000000,"fmt":"1.5T"},
				"dividendYield":{"raw":0.025,"fmt":"2.50%"},
				"currency":"IDR",
				"beta":{}
			},
			"financialData":{
				"returnOnEquity":{"raw":0.21,"fmt":"21.00%"}
			}
		}],"error":null}}`))
	})

	metrics, err := yahoo.SnapshotMetrics(context.Background(), "BBCA.JK")
	require.NoError(t, err)

	assert.Equal(t, 1.5e12, metrics["marketCap"])
	assert.Equal(t, 0.025, metrics["dividendYield"])
	assert.Equal(t, 0.21, metrics["returnOnEquity"])
	assert.Equal(t, "IDR", metrics["currency"])

	// formatted values with no raw figure are dropped entirely
	_, ok := metrics["beta"]
	assert.False(t, ok)
}

func TestStatement(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/finance/timeseries/BBCA.JK"))

		types := r.URL.Query().Get("type")
		assert.Contains(t, types, "annualTotalRevenue")
		assert.Contains(t, types, "annualEBITDA")
		assert.Contains(t, types, "annualNormalizedEBITDA")

		w.Write([]byte(`{"timeseries":{"result":[
			{"meta":{"symbol":["BBCA.JK"],"type":["annualTotalRevenue"]},
			 "annualTotalRevenue":[
				{"asOfDate":"2022-12-31","reportedValue":{"raw":850,"fmt":"850"}},
				{"asOfDate":"2023-12-31","reportedValue":{"raw":900,"fmt":"900"}}
			]},
			{"meta":{"symbol":["BBCA.JK"],"type":["annualNetIncome"]},
			 "annualNetIncome":[
				null,
				{"asOfDate":"2023-12-31","reportedValue":{"raw":400,"fmt":"400"}}
			]},
			{"meta":{"symbol":["BBCA.JK"],"type":["annualGrossProfit"]},
			 "annualGrossProfit":[
				{"asOfDate":"2022-12-31","reportedValue":null}
			]}
		],"error":null}}`))
	})

	table, err := yahoo.Statement(context.Background(), "BBCA.JK", data.IncomeStatement, data.Annual)
	require.NoError(t, err)
	require.False(t, table.Empty())
	assert.Len(t, table.Periods(), 2)

	records := norm.Normalize(table, norm.IncomeMapping)
	require.Len(t, records, 2)

	byPeriod := make(map[string]map[string]norm.Value)
	for _, record := range records {
		fields := make(map[string]norm.Value)
		for _, fv := range record.Fields {
			fields[fv.Column] = fv.Value
		}
		byPeriod[record.PeriodEnd.Format("2006-01-02")] = fields
	}

	assert.Equal(t, 850.0, byPeriod["2022-12-31"]["total_revenue"].Float64)
	assert.Equal(t, 900.0, byPeriod["2023-12-31"]["total_revenue"].Float64)
	assert.False(t, byPeriod["2022-12-31"]["net_income"].Valid)
	assert.Equal(t, 400.0, byPeriod["2023-12-31"]["net_income"].Float64)
	assert.False(t, byPeriod["2022-12-31"]["gross_profit"].Valid)
}

func TestStatementEmpty(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timeseries":{"result":[],"error":null}}`))
	})

	table, err := yahoo.Statement(context.Background(), "ZZZZ.JK", data.CashFlow, data.Quarterly)
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestAssetInfo(t *testing.T) {
	yahoo := testYahoo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "quoteType", r.URL.Query().Get("modules"))
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"quoteType":{"longName":"PT Bank Central Asia Tbk","shortName":"Bank Central Asia"}
		}],"error":null}}`))
	})

	name, err := yahoo.AssetInfo(context.Background(), "BBCA.JK")
	require.NoError(t, err)
	assert.Equal(t, "PT Bank Central Asia Tbk", name)
}
