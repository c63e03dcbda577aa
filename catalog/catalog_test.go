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
package catalog

import (
	"strings"
	"testing"

	"github.com/findash/findata/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketIDX(t *testing.T) {
	c, err := Market("idx")
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 200)

	entry, ok := c.Lookup("bbca")
	require.True(t, ok)
	assert.Equal(t, "BBCA", entry.Symbol)
	assert.Equal(t, "BBCA.JK", entry.FetchSymbol())
	assert.Equal(t, data.Stock, entry.Type)
	assert.Equal(t, "IDR", entry.Currency)
}

func TestMarketGlobal(t *testing.T) {
	c, err := Market("global")
	require.NoError(t, err)

	entry, ok := c.Lookup("USDIDR=X")
	require.True(t, ok)
	assert.Equal(t, data.Currency, entry.Type)
	assert.Equal(t, "USDIDR=X", entry.FetchSymbol())

	gold, ok := c.Lookup("GC=F")
	require.True(t, ok)
	assert.Equal(t, data.Commodity, gold.Type)
	assert.Equal(t, "USD", gold.Currency)

	ihsg, ok := c.Lookup("^JKSE")
	require.True(t, ok)
	assert.Equal(t, data.Index, ihsg.Type)
	assert.Equal(t, "IDR", ihsg.Currency)
}

func TestMarketAll(t *testing.T) {
	idxCat, err := Market("idx")
	require.NoError(t, err)
	globalCat, err := Market("global")
	require.NoError(t, err)
	all, err := Market("all")
	require.NoError(t, err)

	assert.Equal(t, idxCat.Len()+globalCat.Len(), all.Len())

	_, err = Market("nyse")
	assert.Error(t, err)
}

func TestResolveUnknownSymbol(t *testing.T) {
	c, err := Market("global")
	require.NoError(t, err)

	entry := c.Resolve("zzzz")
	assert.Equal(t, "ZZZZ", entry.Symbol)
	assert.Equal(t, data.UnknownAsset, entry.Type)
	assert.Equal(t, "USD", entry.Currency)
	assert.Equal(t, "ZZZZ", entry.FetchSymbol())
}

func TestFromCSV(t *testing.T) {
	csv := strings.NewReader(strings.Join([]string{
		"symbol,name,type,currency,provider_symbol",
		"AAPL,Apple Inc.,stock,USD,",
		"bmri,Bank Mandiri,stock,IDR,BMRI.JK",
	}, "\n"))

	c, err := FromCSV(csv)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	entry, ok := c.Lookup("BMRI")
	require.True(t, ok)
	assert.Equal(t, "BMRI.JK", entry.FetchSymbol())
	assert.Equal(t, "Bank Mandiri", entry.Name)

	apple, ok := c.Lookup("AAPL")
	require.True(t, ok)
	assert.Equal(t, "AAPL", apple.FetchSymbol())
}

func TestSymbolsSorted(t *testing.T) {
	c := New([]Entry{
		{Symbol: "msft", Currency: "USD"},
		{Symbol: "AAPL", Currency: "USD"},
	})

	assert.Equal(t, []string{"AAPL", "MSFT"}, c.Symbols())
}
