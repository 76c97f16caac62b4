package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/transport/http/dto"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/usecase"

	"github.com/gin-gonic/gin"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListByExchange(ctx context.Context, exchange string) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は有効な銘柄の一覧を返すAPIです。
// クエリ exchange (HOSE/HNX/UPCOM) で取引所を絞り込めます。
// 不明な取引所は400、その他のエラーは500を返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListByExchange(c.Request.Context(), c.Query("exchange"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrUnknownExchange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name, Exchange: s.Exchange})
	}
	c.JSON(http.StatusOK, out)
}
