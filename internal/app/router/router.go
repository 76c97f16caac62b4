// Package router assembles the gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	financialshandler "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/transport/handler"
	symbollisthandler "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/transport/handler"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/http/handler"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/metrics"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/middleware"
)

// NewRouter はルーティングを設定したginエンジンを返します。m が nil の場合 /metrics は登録されません。
func NewRouter(symbol *symbollisthandler.SymbolHandler, financials *financialshandler.FinancialsHandler,
	m *metrics.Metrics, checks ...handler.Check) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", m.Handler())
	}

	// 導通確認用
	health := handler.NewHealth(checks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// 銘柄一覧
	r.GET("/symbols", symbol.List)
	// 財務諸表・財務比率
	financials.Register(r)

	return r
}
