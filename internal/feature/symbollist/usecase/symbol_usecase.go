// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
)

// ErrSymbolNotFound is returned when no symbol has the requested code.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrUnknownExchange is returned for an exchange filter other than HOSE, HNX or UPCOM.
var ErrUnknownExchange = errors.New("unknown exchange")

// SymbolRepository abstracts the persistence layer for listed symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	FindByCode(ctx context.Context, code string) (entity.Symbol, error)
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListByExchange returns the active symbols of one exchange. An empty
// exchange returns every active symbol.
func (u *SymbolUsecase) ListByExchange(ctx context.Context, exchange string) ([]entity.Symbol, error) {
	exchange = strings.ToUpper(strings.TrimSpace(exchange))
	if exchange == "" {
		return u.repo.ListActive(ctx)
	}
	switch exchange {
	case entity.ExchangeHOSE, entity.ExchangeHNX, entity.ExchangeUPCOM:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExchange, exchange)
	}
	all, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(all))
	for _, s := range all {
		if strings.EqualFold(s.Exchange, exchange) {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListActiveCodes returns the codes of all active symbols.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// Lookup returns a single symbol by code.
func (u *SymbolUsecase) Lookup(ctx context.Context, code string) (entity.Symbol, error) {
	return u.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}
