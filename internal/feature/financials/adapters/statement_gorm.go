package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
)

type statementGorm struct {
	db *gorm.DB
}

var _ usecase.StatementRepository = (*statementGorm)(nil)

// NewStatementRepository returns the gorm statement repository.
func NewStatementRepository(db *gorm.DB) *statementGorm {
	return &statementGorm{db: db}
}

// UpsertBatch stores rows. When a batch repeats a period, the last row wins.
func (r *statementGorm) UpsertBatch(ctx context.Context, symbol string, kind entity.StatementKind, rows []entity.PeriodRow) error {
	if len(rows) == 0 {
		return nil
	}
	pos := make(map[periodKey]int, len(rows))
	ms := make([]StatementRowModel, 0, len(rows))
	for _, e := range rows {
		m := StatementRowModel{
			Symbol:    symbol,
			Statement: string(kind),
			Year:      e.Year,
			Quarter:   e.Quarter,
			Fields:    e.Fields,
		}
		if m.Fields == nil {
			m.Fields = map[string]float64{}
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
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "statement"}, {Name: "year"}, {Name: "quarter"}},
		DoUpdates: clause.AssignmentColumns([]string{"fields", "updated_at"}),
	}).Create(&ms).Error
}

// Find returns the rows of one statement ascending by (year, quarter).
func (r *statementGorm) Find(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error) {
	var ms []StatementRowModel
	if err := r.db.WithContext(ctx).
		Where("symbol = ? AND statement = ?", symbol, string(kind)).
		Order("year ASC").
		Order("quarter ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PeriodRow, 0, len(ms))
	for _, m := range ms {
		out = append(out, entity.PeriodRow{Year: m.Year, Quarter: m.Quarter, Fields: m.Fields})
	}
	return out, nil
}
