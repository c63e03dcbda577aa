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

// Package data holds the entities stored by findata and their
// insert-or-replace writers. Every writer keys on a natural key so that
// re-ingesting the same window replaces prior rows instead of
// duplicating them.
package data

import "github.com/findash/findata/norm"

type AssetType string

const (
	Stock        AssetType = "stock"
	Index        AssetType = "index"
	Currency     AssetType = "currency"
	Commodity    AssetType = "commodity"
	Crypto       AssetType = "crypto"
	UnknownAsset AssetType = "unknown"
)

// PeriodType tags the reporting cadence of a statement record.
type PeriodType string

const (
	Annual    PeriodType = "annual"
	Quarterly PeriodType = "quarterly"
)

// PeriodTypes lists the cadences fetched for every statement kind.
var PeriodTypes = []PeriodType{Annual, Quarterly}

// StatementKind identifies one family of periodic financial statements.
// The three families share the same key shape and normalization
// algorithm but live in separate tables with separate field mappings.
type StatementKind string

const (
	IncomeStatement StatementKind = "income"
	BalanceSheet    StatementKind = "balance"
	CashFlow        StatementKind = "cashflow"
)

// StatementKinds lists the statement families in fetch order.
var StatementKinds = []StatementKind{IncomeStatement, BalanceSheet, CashFlow}

const (
	AssetsTable       = "assets"
	PriceHistoryTable = "price_history"
	FundamentalsTable = "fundamentals"
	IngestRunsTable   = "ingest_runs"
)

var statementTables = map[StatementKind]string{
	IncomeStatement: "financials_income",
	BalanceSheet:    "financials_balance",
	CashFlow:        "financials_cashflow",
}

var statementMappings = map[StatementKind]norm.Mapping{
	IncomeStatement: norm.IncomeMapping,
	BalanceSheet:    norm.BalanceMapping,
	CashFlow:        norm.CashflowMapping,
}

// Table returns the target table for the statement kind.
func (kind StatementKind) Table() string {
	return statementTables[kind]
}

// Mapping returns the canonical field mapping for the statement kind.
func (kind StatementKind) Mapping() norm.Mapping {
	return statementMappings[kind]
}
