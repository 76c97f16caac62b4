// Package adapters provides the gorm repositories of the financials feature.
package adapters

import "time"

// StatementRowModel is one stored period of one statement.
type StatementRowModel struct {
	ID        uint               `gorm:"primaryKey"`
	Symbol    string             `gorm:"size:20;not null;uniqueIndex:stmt_sym_kind_period,priority:1"`
	Statement string             `gorm:"size:32;not null;uniqueIndex:stmt_sym_kind_period,priority:2"`
	Year      int                `gorm:"not null;uniqueIndex:stmt_sym_kind_period,priority:3"`
	Quarter   int                `gorm:"not null;uniqueIndex:stmt_sym_kind_period,priority:4"`
	Fields    map[string]float64 `gorm:"serializer:json;type:text;not null"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime"`
}

func (StatementRowModel) TableName() string {
	return "statement_rows"
}

// RatioEntryModel is one stored period of precomputed ratios.
type RatioEntryModel struct {
	ID        uint               `gorm:"primaryKey"`
	Symbol    string             `gorm:"size:20;not null;uniqueIndex:ratio_sym_period,priority:1"`
	Year      int                `gorm:"not null;uniqueIndex:ratio_sym_period,priority:2"`
	Quarter   int                `gorm:"not null;uniqueIndex:ratio_sym_period,priority:3"`
	Ratios    map[string]float64 `gorm:"serializer:json;type:text;not null"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime"`
}

func (RatioEntryModel) TableName() string {
	return "ratio_entries"
}

// Models lists the tables owned by this feature, for AutoMigrate.
func Models() []any {
	return []any{&StatementRowModel{}, &RatioEntryModel{}}
}

type periodKey struct {
	year, quarter int
}
