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

// Package catalog describes the universe of known symbols. Catalogs are
// plain configuration passed into the orchestrator; the built-in markets
// are embedded TOML and callers may load additional entries from CSV.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/findash/findata/data"
	"github.com/gocarina/gocsv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed catalog.toml
var rawCatalog []byte

// Entry is the descriptive metadata needed to register one symbol.
type Entry struct {
	Symbol   string         `toml:"symbol" csv:"symbol"`
	Name     string         `toml:"name" csv:"name"`
	Type     data.AssetType `toml:"type" csv:"type"`
	Currency string         `toml:"currency" csv:"currency"`

	// ProviderSymbol is the symbol used when talking to the provider
	// when it differs from the stored symbol (e.g. BBCA -> BBCA.JK).
	ProviderSymbol string `toml:"provider_symbol" csv:"provider_symbol"`
}

// FetchSymbol returns the symbol to use for provider calls.
func (entry Entry) FetchSymbol() string {
	if entry.ProviderSymbol != "" {
		return entry.ProviderSymbol
	}
	return entry.Symbol
}

// Catalog is a lookup table from case-normalized symbol to entry.
type Catalog struct {
	entries map[string]Entry
	symbols []string
}

// New builds a catalog from entries. Symbols are compared uppercase;
// later duplicates replace earlier ones.
func New(entries []Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for _, entry := range entries {
		key := strings.ToUpper(entry.Symbol)
		if _, exists := c.entries[key]; !exists {
			c.symbols = append(c.symbols, key)
		}
		entry.Symbol = key
		c.entries[key] = entry
	}
	sort.Strings(c.symbols)
	return c
}

// Lookup returns the entry for symbol, if known.
func (c *Catalog) Lookup(symbol string) (Entry, bool) {
	entry, ok := c.entries[strings.ToUpper(symbol)]
	return entry, ok
}

// Resolve returns the entry for symbol, degrading to a minimal unknown
// entry when the symbol is not in the catalog. Unknown symbols are still
// ingestible; they just carry no descriptive metadata.
func (c *Catalog) Resolve(symbol string) Entry {
	if entry, ok := c.Lookup(symbol); ok {
		return entry
	}
	upper := strings.ToUpper(symbol)
	return Entry{Symbol: upper, Name: upper, Type: data.UnknownAsset, Currency: "USD"}
}

// Symbols returns the known symbols in sorted order.
func (c *Catalog) Symbols() []string {
	return c.symbols
}

// Len returns the number of known symbols.
func (c *Catalog) Len() int {
	return len(c.symbols)
}

// Entries returns the catalog entries in symbol order.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, len(c.symbols))
	for i, symbol := range c.symbols {
		entries[i] = c.entries[symbol]
	}
	return entries
}

type catalogFile struct {
	IDXSymbols []string `toml:"idx_symbols"`
	Global     []Entry  `toml:"global"`
}

var (
	loadOnce sync.Once
	loadErr  error
	idx      *Catalog
	global   *Catalog
)

func load() {
	var file catalogFile
	if loadErr = toml.Unmarshal(rawCatalog, &file); loadErr != nil {
		return
	}

	idxEntries := make([]Entry, len(file.IDXSymbols))
	for i, symbol := range file.IDXSymbols {
		idxEntries[i] = Entry{
			Symbol:         symbol,
			Type:           data.Stock,
			Currency:       "IDR",
			ProviderSymbol: symbol + ".JK",
		}
	}

	idx = New(idxEntries)
	global = New(file.Global)
}

// Market returns a built-in catalog: "idx", "global", or "all" for the
// union of both.
func Market(name string) (*Catalog, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", loadErr)
	}

	switch strings.ToLower(name) {
	case "idx":
		return idx, nil
	case "global":
		return global, nil
	case "all":
		return New(append(idx.Entries(), global.Entries()...)), nil
	default:
		return nil, fmt.Errorf("unknown market %q", name)
	}
}

// FromCSV loads catalog entries from CSV with a symbol,name,type,
// currency,provider_symbol header.
func FromCSV(r io.Reader) (*Catalog, error) {
	var entries []Entry
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("parse symbols csv: %w", err)
	}
	return New(entries), nil
}
