// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/usecase"

	"gorm.io/gorm"
)

// symbolGorm はSymbolRepositoryインターフェースのgorm実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes はsort_key順にアクティブな銘柄のコードのみを返します。
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindByCode はコードで銘柄を1件取得します。見つからない場合は usecase.ErrSymbolNotFound を返します。
func (r *symbolGorm) FindByCode(ctx context.Context, code string) (entity.Symbol, error) {
	var s entity.Symbol
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Symbol{}, usecase.ErrSymbolNotFound
	}
	if err != nil {
		return entity.Symbol{}, err
	}
	return s, nil
}
