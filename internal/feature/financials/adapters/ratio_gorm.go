package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
)

type ratioGorm struct {
	db *gorm.DB
}

var _ usecase.RatioRepository = (*ratioGorm)(nil)

// NewRatioRepository returns the gorm ratio repository.
func NewRatioRepository(db *gorm.DB) *ratioGorm {
	return &ratioGorm{db: db}
}

// ratioWithSymbol is a ratio row joined with its listing.
type ratioWithSymbol struct {
	RatioEntryModel `gorm:"embedded"`
	SymbolName      *string
	SymbolExchange  *string
}

// UpsertBatch stores entries. When a batch repeats a period, the last entry wins.
func (r *ratioGorm) UpsertBatch(ctx context.Context, symbol string, entries []entity.RatioEntry) error {
	if len(entries) == 0 {
		return nil
	}
	pos := make(map[periodKey]int, len(entries))
	ms := make([]RatioEntryModel, 0, len(entries))
	for _, e := range entries {
		m := RatioEntryModel{Symbol: symbol, Year: e.Year, Quarter: e.Quarter, Ratios: e.Ratios}
		if m.Ratios == nil {
			m.Ratios = map[string]float64{}
		}
		k := periodKey{e.Year, e.Quarter}
		if i, ok := pos[k]; ok {
			ms[i] = m
			continue
		}
		pos[k] = len(ms)
		ms = append(ms, m)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "year"}, {Name: "quarter"}},
		DoUpdates: clause.AssignmentColumns([]string{"ratios", "updated_at"}),
	}).Create(&ms).Error
}

// Find returns the entries of symbol descending by (year, quarter), each
// carrying the symbol's listing. Unlisted symbols keep only the code.
func (r *ratioGorm) Find(ctx context.Context, symbol string) ([]entity.RatioEntry, error) {
	var rows []ratioWithSymbol
	if err := r.db.WithContext(ctx).
		Table("ratio_entries").
		Select("ratio_entries.*, symbols.name AS symbol_name, symbols.exchange AS symbol_exchange").
		Joins("LEFT JOIN symbols ON symbols.code = ratio_entries.symbol").
		Where("ratio_entries.symbol = ?", symbol).
		Order("ratio_entries.year DESC").
		Order("ratio_entries.quarter DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.RatioEntry, 0, len(rows))
	for _, m := range rows {
		info := entity.SymbolInfo{Code: m.Symbol}
		if m.SymbolName != nil {
			info.Name = *m.SymbolName
		}
		if m.SymbolExchange != nil {
			info.Exchange = *m.SymbolExchange
		}
		out = append(out, entity.RatioEntry{
			Year:    m.Year,
			Quarter: m.Quarter,
			Ratios:  m.Ratios,
			Symbol:  info,
		})
	}
	return out, nil
}
