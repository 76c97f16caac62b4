package adapters

import (
	"context"
	"testing"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&entity.Symbol{}), "failed to migrate table")

	return db
}

// seedSymbol はテスト用の銘柄データをデータベースに作成します。
func seedSymbol(t *testing.T, db *gorm.DB, code, name, exchange string, isActive bool, sortKey int) *entity.Symbol {
	t.Helper()

	symbol := &entity.Symbol{
		Code:     code,
		Name:     name,
		Exchange: exchange,
		IsActive: true,
		SortKey:  sortKey,
	}
	require.NoError(t, db.Create(symbol).Error, "failed to seed symbol")
	// gormはゼロ値のboolをINSERTで省略しdefault:trueが効くため、非アクティブは後から更新する
	if !isActive {
		require.NoError(t, db.Model(symbol).Update("is_active", false).Error)
	}
	return symbol
}

// TestSymbolGorm_ListActive はListActiveメソッドの各種シナリオをテーブル駆動テストで検証します。
func TestSymbolGorm_ListActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		setupFunc     func(t *testing.T, db *gorm.DB)
		expectedCodes []string
	}{
		{
			name: "success: returns active symbols sorted by sort_key",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "FPT", "FPT Corp", "HOSE", true, 2)
				seedSymbol(t, db, "VNM", "Vinamilk", "HOSE", true, 1)
				seedSymbol(t, db, "SHS", "SHS", "HNX", true, 3)
			},
			expectedCodes: []string{"VNM", "FPT", "SHS"},
		},
		{
			name: "success: ties on sort_key are ordered by code",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "VNM", "Vinamilk", "HOSE", true, 0)
				seedSymbol(t, db, "ACB", "ACB", "HOSE", true, 0)
			},
			expectedCodes: []string{"ACB", "VNM"},
		},
		{
			name: "success: excludes inactive symbols",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "VNM", "Vinamilk", "HOSE", true, 1)
				seedSymbol(t, db, "FPT", "FPT Corp", "HOSE", false, 2)
				seedSymbol(t, db, "SHS", "SHS", "HNX", true, 3)
			},
			expectedCodes: []string{"VNM", "SHS"},
		},
		{
			name:          "success: returns empty list when no symbols",
			setupFunc:     func(t *testing.T, db *gorm.DB) {},
			expectedCodes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			repo := NewSymbolRepository(db)
			tt.setupFunc(t, db)

			symbols, err := repo.ListActive(context.Background())
			require.NoError(t, err)

			codes := make([]string, 0, len(symbols))
			for _, s := range symbols {
				codes = append(codes, s.Code)
			}
			assert.Equal(t, tt.expectedCodes, codes)

			pluck, err := repo.ListActiveCodes(context.Background())
			require.NoError(t, err)
			if len(tt.expectedCodes) == 0 {
				assert.Empty(t, pluck)
			} else {
				assert.Equal(t, tt.expectedCodes, pluck)
			}
		})
	}
}

// TestSymbolGorm_ListActive_FieldValues はListActiveが返す銘柄の全フィールド値が正しいことを検証します。
func TestSymbolGorm_ListActive_FieldValues(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	expected := seedSymbol(t, db, "VNM", "Công ty Cổ phần Sữa Việt Nam", "HOSE", true, 42)

	symbols, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, symbols, 1)

	s := symbols[0]
	assert.Equal(t, expected.ID, s.ID)
	assert.Equal(t, "VNM", s.Code)
	assert.Equal(t, "Công ty Cổ phần Sữa Việt Nam", s.Name)
	assert.Equal(t, "HOSE", s.Exchange)
	assert.True(t, s.IsActive)
	assert.Equal(t, 42, s.SortKey)
	assert.False(t, s.UpdatedAt.IsZero(), "UpdatedAt should be set")
}

// TestSymbolGorm_FindByCode はコード検索とNotFoundを検証します。
func TestSymbolGorm_FindByCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	seedSymbol(t, db, "VNM", "Vinamilk", "HOSE", true, 1)

	s, err := repo.FindByCode(context.Background(), "vnm")
	require.NoError(t, err)
	assert.Equal(t, "Vinamilk", s.Name)

	_, err = repo.FindByCode(context.Background(), "XXX")
	assert.ErrorIs(t, err, usecase.ErrSymbolNotFound)
}
