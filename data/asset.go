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
package data

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Asset is a tradable or trackable instrument. Symbol is the unique
// natural key; the surrogate ID is what every dependent table references.
type Asset struct {
	ID        int64     `db:"id"`
	Symbol    string    `db:"symbol"`
	Name      string    `db:"name"`
	AssetType AssetType `db:"asset_type"`
	Currency  string    `db:"currency"`
}

// Resolve looks the asset up by its case-normalized symbol, creating it
// on first sight. When the asset already exists its currency is
// unconditionally overwritten with the currency supplied here
// (last-write-wins); name and type are fixed at creation. On return
// asset.ID is set.
func (asset *Asset) Resolve(ctx context.Context, conn *pgxpool.Conn) error {
	asset.Symbol = strings.ToUpper(asset.Symbol)

	var id int64
	err := conn.QueryRow(ctx, `SELECT id FROM assets WHERE symbol = $1`, asset.Symbol).Scan(&id)
	switch {
	case err == nil:
		if _, err := conn.Exec(ctx, `UPDATE assets SET currency = $1 WHERE id = $2`, asset.Currency, id); err != nil {
			log.Error().Err(err).Str("Symbol", asset.Symbol).Msg("update asset currency failed")
			return err
		}
		asset.ID = id
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		if err := conn.QueryRow(ctx,
			`INSERT INTO assets ("symbol", "name", "asset_type", "currency") VALUES ($1, $2, $3, $4) RETURNING id`,
			asset.Symbol, asset.Name, asset.AssetType, asset.Currency).Scan(&asset.ID); err != nil {
			log.Error().Err(err).Str("Symbol", asset.Symbol).Msg("insert asset failed")
			return err
		}
		return nil
	default:
		return err
	}
}
