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
package norm

// IncomeMapping maps income statement columns to provider line items.
var IncomeMapping = Mapping{
	{Column: "total_revenue", Aliases: []string{"Total Revenue"}},
	{Column: "operating_revenue", Aliases: []string{"Operating Revenue"}},
	{Column: "cost_of_revenue", Aliases: []string{"Cost Of Revenue"}},
	{Column: "gross_profit", Aliases: []string{"Gross Profit"}},
	{Column: "operating_expense", Aliases: []string{"Operating Expense"}},
	{Column: "operating_income", Aliases: []string{"Operating Income"}},
	{Column: "net_interest_income", Aliases: []string{"Net Interest Income"}},
	{Column: "interest_expense", Aliases: []string{"Interest Expense"}},
	{Column: "interest_income", Aliases: []string{"Interest Income"}},
	{Column: "pretax_income", Aliases: []string{"Pretax Income"}},
	{Column: "tax_provision", Aliases: []string{"Tax Provision"}},
	{Column: "net_income_common_stockholders", Aliases: []string{"Net Income Common Stockholders"}},
	{Column: "net_income", Aliases: []string{"Net Income"}},
	{Column: "basic_eps", Aliases: []string{"Basic EPS"}},
	{Column: "diluted_eps", Aliases: []string{"Diluted EPS"}},
	{Column: "basic_average_shares", Aliases: []string{"Basic Average Shares"}},
	{Column: "diluted_average_shares", Aliases: []string{"Diluted Average Shares"}},
	{Column: "ebitda", Aliases: []string{"EBITDA", "Normalized EBITDA"}},
	{Column: "reconciled_depreciation", Aliases: []string{"Reconciled Depreciation"}},
}

// BalanceMapping maps balance sheet columns to provider line items.
var BalanceMapping = Mapping{
	{Column: "total_assets", Aliases: []string{"Total Assets"}},
	{Column: "current_assets", Aliases: []string{"Current Assets"}},
	{Column: "cash_and_cash_equivalents", Aliases: []string{"Cash And Cash Equivalents"}},
	{Column: "inventory", Aliases: []string{"Inventory"}},
	{Column: "receivables", Aliases: []string{"Receivables", "Accounts Receivable"}},
	{Column: "total_non_current_assets", Aliases: []string{"Total Non Current Assets"}},
	{Column: "net_ppe", Aliases: []string{"Net PPE"}},
	{Column: "goodwill_and_other_intangible_assets", Aliases: []string{"Goodwill And Other Intangible Assets"}},
	{Column: "total_liabilities_net_minority_interest", Aliases: []string{"Total Liabilities Net Minority Interest"}},
	{Column: "current_liabilities", Aliases: []string{"Current Liabilities"}},
	{Column: "payables", Aliases: []string{"Payables", "Accounts Payable"}},
	{Column: "total_non_current_liabilities_net_minority_interest", Aliases: []string{"Total Non Current Liabilities Net Minority Interest"}},
	{Column: "long_term_debt", Aliases: []string{"Long Term Debt"}},
	{Column: "total_equity_gross_minority_interest", Aliases: []string{"Total Equity Gross Minority Interest"}},
	{Column: "stockholders_equity", Aliases: []string{"Stockholders Equity"}},
	{Column: "common_stock", Aliases: []string{"Common Stock"}},
	{Column: "retained_earnings", Aliases: []string{"Retained Earnings"}},
	{Column: "ordinary_shares_number", Aliases: []string{"Ordinary Shares Number"}},
	{Column: "total_debt", Aliases: []string{"Total Debt"}},
	{Column: "net_debt", Aliases: []string{"Net Debt"}},
	{Column: "working_capital", Aliases: []string{"Working Capital"}},
	{Column: "invested_capital", Aliases: []string{"Invested Capital"}},
	{Column: "tangible_book_value", Aliases: []string{"Tangible Book Value"}},
}

// CashflowMapping maps cash flow statement columns to provider line items.
var CashflowMapping = Mapping{
	{Column: "operating_cash_flow", Aliases: []string{"Operating Cash Flow"}},
	{Column: "investing_cash_flow", Aliases: []string{"Investing Cash Flow"}},
	{Column: "financing_cash_flow", Aliases: []string{"Financing Cash Flow"}},
	{Column: "end_cash_position", Aliases: []string{"End Cash Position"}},
	{Column: "capital_expenditure", Aliases: []string{"Capital Expenditure"}},
	{Column: "issuance_of_capital_stock", Aliases: []string{"Issuance Of Capital Stock"}},
	{Column: "issuance_of_debt", Aliases: []string{"Issuance Of Debt"}},
	{Column: "repayment_of_debt", Aliases: []string{"Repayment Of Debt"}},
	{Column: "repurchase_of_capital_stock", Aliases: []string{"Repurchase Of Capital Stock"}},
	{Column: "free_cash_flow", Aliases: []string{"Free Cash Flow"}},
}

// MetricsMapping maps fundamentals snapshot columns to the keys of the
// provider's flat metrics record.
var MetricsMapping = Mapping{
	{Column: "market_cap", Aliases: []string{"marketCap"}},
	{Column: "enterprise_value", Aliases: []string{"enterpriseValue"}},
	{Column: "trailing_pe", Aliases: []string{"trailingPE"}},
	{Column: "forward_pe", Aliases: []string{"forwardPE"}},
	{Column: "peg_ratio", Aliases: []string{"pegRatio", "trailingPegRatio"}},
	{Column: "price_to_book", Aliases: []string{"priceToBook"}},
	{Column: "profit_margins", Aliases: []string{"profitMargins"}},
	{Column: "operating_margins", Aliases: []string{"operatingMargins"}},
	{Column: "return_on_assets", Aliases: []string{"returnOnAssets"}},
	{Column: "return_on_equity", Aliases: []string{"returnOnEquity"}},
	{Column: "revenue_growth", Aliases: []string{"revenueGrowth"}},
	{Column: "earnings_growth", Aliases: []string{"earningsGrowth"}},
	{Column: "debt_to_equity", Aliases: []string{"debtToEquity"}},
	{Column: "total_cash", Aliases: []string{"totalCash"}},
	{Column: "total_debt", Aliases: []string{"totalDebt"}},
	{Column: "total_revenue", Aliases: []string{"totalRevenue"}},
	{Column: "gross_profits", Aliases: []string{"grossProfits"}},
	{Column: "free_cashflow", Aliases: []string{"freeCashflow"}},
	{Column: "operating_cashflow", Aliases: []string{"operatingCashflow"}},
	{Column: "trailing_eps", Aliases: []string{"trailingEps"}},
	{Column: "forward_eps", Aliases: []string{"forwardEps"}},
	{Column: "price_to_sales", Aliases: []string{"priceToSalesTrailing12Months"}},
	{Column: "dividend_yield", Aliases: []string{"dividendYield"}},
	{Column: "dividend_rate", Aliases: []string{"dividendRate"}},
	{Column: "payout_ratio", Aliases: []string{"payoutRatio"}},
	{Column: "five_year_avg_dividend_yield", Aliases: []string{"fiveYearAvgDividendYield"}},
}
