// Package entity defines the domain models for the financials feature.
package entity

import "fmt"

// StatementKind identifies one of the financial statements served by the dashboard.
type StatementKind string

const (
	BalanceSheet    StatementKind = "balance_sheet"
	IncomeStatement StatementKind = "income_statement"
	CashFlow        StatementKind = "cash_flow"
)

// StatementKinds lists every statement kind in display order.
var StatementKinds = []StatementKind{BalanceSheet, IncomeStatement, CashFlow}

// ParseStatementKind validates a statement kind coming from a URL or a config file.
func ParseStatementKind(s string) (StatementKind, error) {
	for _, k := range StatementKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown statement kind %q", s)
}

// PeriodRow holds one fiscal period's line items of a statement.
//
// A field missing from Fields means the upstream had no data for it, which is
// not the same as a reported zero. Rows are not modified after construction.
type PeriodRow struct {
	Year    int                // Fiscal year (e.g. 2024)
	Quarter int                // Fiscal quarter, 1..4
	Fields  map[string]float64 // Line item name -> value in VND
}

// Value returns the field value and whether the row carries it.
func (r PeriodRow) Value(field string) (float64, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// Less orders rows ascending by (year, quarter).
func (r PeriodRow) Less(o PeriodRow) bool {
	if r.Year != o.Year {
		return r.Year < o.Year
	}
	return r.Quarter < o.Quarter
}
