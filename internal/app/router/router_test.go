package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	financialshandler "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/transport/handler"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
	symbolentity "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/domain/entity"
	symbollisthandler "github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/symbollist/transport/handler"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/metrics"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/platform/middleware"
)

type stubSymbols struct{}

func (stubSymbols) ListByExchange(ctx context.Context, exchange string) ([]symbolentity.Symbol, error) {
	return []symbolentity.Symbol{{Code: "VNM", Name: "Vinamilk", Exchange: "HOSE"}}, nil
}

type stubFinancials struct{}

func (stubFinancials) GetStatement(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error) {
	return nil, usecase.ErrNoData
}

func (stubFinancials) GetPeriods(ctx context.Context, symbol string, kind entity.StatementKind) (usecase.PeriodsView, error) {
	return usecase.PeriodsView{Symbol: symbol, Kind: kind}, nil
}

func (stubFinancials) GetSummary(ctx context.Context, q usecase.SummaryQuery) (usecase.Summary, error) {
	return usecase.Summary{}, nil
}

func (stubFinancials) GetRatios(ctx context.Context, symbol string, sel entity.PeriodSelection, locale string) (usecase.RatioView, error) {
	return usecase.RatioView{}, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := metrics.New(prometheus.NewRegistry())
	return NewRouter(
		symbollisthandler.NewSymbolHandler(stubSymbols{}),
		financialshandler.NewFinancialsHandler(stubFinancials{}, nil),
		m,
	)
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodHead, "/healthz", http.StatusOK},
		{http.MethodGet, "/symbols", http.StatusOK},
		{http.MethodGet, "/symbols/VNM/statements/income_statement", http.StatusNotFound},
		{http.MethodGet, "/symbols/VNM/statements/income_statement/periods", http.StatusOK},
		{http.MethodGet, "/symbols/VNM/ratios", http.StatusOK},
		{http.MethodPost, "/symbols/VNM/refresh", http.StatusServiceUnavailable},
		{http.MethodGet, "/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
		})
	}
}

func TestNewRouter_MetricsRecordsRequests(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/symbols", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "stock_analysis_http_requests_total")
}
