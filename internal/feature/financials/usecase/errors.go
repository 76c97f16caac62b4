package usecase

import "errors"

var (
	// ErrUnknownStatement is returned for a statement kind outside balance_sheet, income_statement and cash_flow.
	ErrUnknownStatement = errors.New("unknown statement kind")
	// ErrNoData is returned when a symbol has no stored rows for the request.
	ErrNoData = errors.New("no financial data")
	// ErrSymbolNotFound is returned when the symbol is not listed.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrInvalidPeriod is returned for a quarter outside 1..4 or a non-positive year.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrUpstream wraps failures of the upstream data provider.
	ErrUpstream = errors.New("upstream data provider failed")
)
