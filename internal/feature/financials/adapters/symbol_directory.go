package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
	symbolentity "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
	symbolusecase "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/usecase"
)

// SymbolLookup is the part of the symbollist usecase the directory needs.
type SymbolLookup interface {
	Lookup(ctx context.Context, code string) (symbolentity.Symbol, error)
}

// symbolDirectory exposes listed symbols to the financials usecases.
type symbolDirectory struct {
	symbols SymbolLookup
}

var _ usecase.SymbolDirectory = (*symbolDirectory)(nil)

// NewSymbolDirectory adapts the symbollist feature.
func NewSymbolDirectory(symbols SymbolLookup) *symbolDirectory {
	return &symbolDirectory{symbols: symbols}
}

func (d *symbolDirectory) Lookup(ctx context.Context, code string) (entity.SymbolInfo, error) {
	s, err := d.symbols.Lookup(ctx, code)
	if errors.Is(err, symbolusecase.ErrSymbolNotFound) {
		return entity.SymbolInfo{}, fmt.Errorf("%w: %s", usecase.ErrSymbolNotFound, code)
	}
	if err != nil {
		return entity.SymbolInfo{}, err
	}
	return entity.SymbolInfo{Code: s.Code, Name: s.Name, Exchange: s.Exchange}, nil
}
