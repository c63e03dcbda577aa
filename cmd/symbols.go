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
	"fmt"

	"github.com/findash/findata/catalog"
	"github.com/findash/findata/data"
	"github.com/spf13/cobra"
)

var symbolsMarket string

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the known symbol catalogs grouped by asset type",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Market(symbolsMarket)
		if err != nil {
			return err
		}

		groups := make(map[data.AssetType][]catalog.Entry)
		for _, entry := range cat.Entries() {
			groups[entry.Type] = append(groups[entry.Type], entry)
		}

		order := []data.AssetType{data.Stock, data.Index, data.Currency,
			data.Commodity, data.Crypto, data.UnknownAsset}

		for _, assetType := range order {
			entries := groups[assetType]
			if len(entries) == 0 {
				continue
			}

			fmt.Printf("%s (%d)\n", assetType, len(entries))
			for _, entry := range entries {
				if entry.Name != "" {
					fmt.Printf("  %-12s %s\n", entry.Symbol, entry.Name)
				} else {
					fmt.Printf("  %s\n", entry.Symbol)
				}
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)

	symbolsCmd.Flags().StringVar(&symbolsMarket, "market", "all", "symbol catalog to list (idx, global, all)")
}
