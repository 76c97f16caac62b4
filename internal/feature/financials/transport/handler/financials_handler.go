// Package handler はfinancialsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/domain/entity"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/transport/http/dto"
	"github.com/vutruonggiang2468/NewTogogo-sub000/internal/feature/financials/usecase"
)

// FinancialsUsecase は財務諸表と財務比率の参照ユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FinancialsUsecase interface {
	GetStatement(ctx context.Context, symbol string, kind entity.StatementKind) ([]entity.PeriodRow, error)
	GetPeriods(ctx context.Context, symbol string, kind entity.StatementKind) (usecase.PeriodsView, error)
	GetSummary(ctx context.Context, q usecase.SummaryQuery) (usecase.Summary, error)
	GetRatios(ctx context.Context, symbol string, sel entity.PeriodSelection, locale string) (usecase.RatioView, error)
}

// Refresher は1銘柄の財務データを再取得します。
type Refresher interface {
	Refresh(ctx context.Context, symbol string) (usecase.RefreshResult, error)
}

// FinancialsHandler は財務データのHTTPリクエストを処理します。
type FinancialsHandler struct {
	uc     FinancialsUsecase
	ingest Refresher
}

// NewFinancialsHandler は新しい FinancialsHandler を作成します。ingest が nil の場合、refresh は 503 を返します。
func NewFinancialsHandler(uc FinancialsUsecase, ingest Refresher) *FinancialsHandler {
	return &FinancialsHandler{uc: uc, ingest: ingest}
}

// Register mounts the financials routes under /symbols/:code.
func (h *FinancialsHandler) Register(r gin.IRouter) {
	g := r.Group("/symbols/:code")
	g.GET("/statements/:kind", h.GetStatement)
	g.GET("/statements/:kind/periods", h.GetPeriods)
	g.GET("/statements/:kind/summary", h.GetSummary)
	g.GET("/ratios", h.GetRatios)
	g.POST("/refresh", h.Refresh)
}

// GetStatement は財務諸表の全期間を返します。
//
// エンドポイント例:
// GET /symbols/VNM/statements/income_statement
func (h *FinancialsHandler) GetStatement(c *gin.Context) {
	code, kind := c.Param("code"), entity.StatementKind(c.Param("kind"))
	rows, err := h.uc.GetStatement(c.Request.Context(), code, kind)
	if err != nil {
		writeError(c, err)
		return
	}
	out := dto.StatementResponse{
		Symbol: strings.ToUpper(code),
		Kind:   string(kind),
		Rows:   make([]dto.PeriodRowResponse, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.PeriodRowResponse{Year: r.Year, Quarter: r.Quarter, Fields: r.Fields})
	}
	c.JSON(http.StatusOK, out)
}

// GetPeriods は年（降順）と各年の四半期を返します。
func (h *FinancialsHandler) GetPeriods(c *gin.Context) {
	view, err := h.uc.GetPeriods(c.Request.Context(), c.Param("code"), entity.StatementKind(c.Param("kind")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PeriodsResponse{
		Symbol: view.Symbol,
		Kind:   string(view.Kind),
		Years:  yearPeriodsResponse(view.Years),
	})
}

// GetSummary は選択期間の通年合計・四半期値・前年比を整形済みで返します。
//
// エンドポイント例:
// GET /symbols/VNM/statements/income_statement/summary?year=2024&quarter=2&fields=revenue,net_income&lang=en
func (h *FinancialsHandler) GetSummary(c *gin.Context) {
	year, err := optionalInt(c, "year")
	if err != nil {
		writeError(c, err)
		return
	}
	quarter, err := optionalInt(c, "quarter")
	if err != nil {
		writeError(c, err)
		return
	}
	q := usecase.SummaryQuery{
		Symbol:  c.Param("code"),
		Kind:    entity.StatementKind(c.Param("kind")),
		Year:    year,
		Quarter: quarter,
		Fields:  splitList(c.Query("fields")),
		Locale:  locale(c),
	}
	s, err := h.uc.GetSummary(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	out := dto.SummaryResponse{
		Symbol:  s.Symbol,
		Kind:    string(s.Kind),
		Year:    s.Year,
		Quarter: s.Quarter,
		Years:   s.Years,
		Lines:   make([]dto.SummaryLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SummaryLineResponse{
			Field:           l.Field,
			Label:           l.Label,
			Section:         l.Section,
			Annual:          l.Annual,
			Quarter:         l.Quarter,
			YoYAnnual:       l.YoYAnnual,
			YoYQuarter:      l.YoYQuarter,
			AnnualText:      l.AnnualText,
			AnnualScaled:    l.AnnualScaled,
			QuarterText:     l.QuarterText,
			YoYAnnualText:   l.YoYAnnualText,
			YoYQuarterText:  l.YoYQuarterText,
			AnnualClass:     l.AnnualClass,
			QuarterClass:    l.QuarterClass,
			YoYAnnualClass:  l.YoYAnnualClass,
			YoYQuarterClass: l.YoYQuarterClass,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetRatios は要求された期間を補正した上で財務比率を返します。
// 存在しない期間が指定された場合は最新期間に置き換えられます。
func (h *FinancialsHandler) GetRatios(c *gin.Context) {
	year, err := optionalInt(c, "year")
	if err != nil {
		writeError(c, err)
		return
	}
	quarter, err := optionalInt(c, "quarter")
	if err != nil {
		writeError(c, err)
		return
	}
	sel := entity.PeriodSelection{Year: year, Quarter: quarter}
	v, err := h.uc.GetRatios(c.Request.Context(), c.Param("code"), sel, locale(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := dto.RatiosResponse{
		Symbol:  v.Symbol,
		Year:    v.Entry.Year,
		Quarter: v.Entry.Quarter,
		Company: dto.SymbolInfoResponse{
			Code:     v.Entry.Symbol.Code,
			Name:     v.Entry.Symbol.Name,
			Exchange: v.Entry.Symbol.Exchange,
		},
		Periods: yearPeriodsResponse(v.Periods),
		Lines:   make([]dto.RatioLineResponse, 0, len(v.Lines)),
	}
	for _, l := range v.Lines {
		out.Lines = append(out.Lines, dto.RatioLineResponse{
			Field: l.Field, Label: l.Label, Section: l.Section,
			Value: l.Value, Text: l.Text, Class: l.Class,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Refresh は銘柄の財務データを上流APIから再取得して保存します。
func (h *FinancialsHandler) Refresh(c *gin.Context) {
	if h.ingest == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "refresh is disabled"})
		return
	}
	res, err := h.ingest.Refresh(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	rows := make(map[string]int, len(res.Rows))
	for k, n := range res.Rows {
		rows[string(k)] = n
	}
	status := http.StatusOK
	if res.Stale {
		// a newer refresh of the same symbol is storing its own result
		status = http.StatusAccepted
	}
	c.JSON(status, dto.RefreshResponse{
		Symbol:     res.Symbol,
		Generation: res.Generation,
		Rows:       rows,
		Ratios:     res.Ratios,
		Stale:      res.Stale,
	})
}

// errBadQuery marks unparsable query parameters.
var errBadQuery = errors.New("invalid query parameter")

func optionalInt(c *gin.Context, key string) (*int, error) {
	s, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", errBadQuery, key, s)
	}
	return &v, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// locale picks the display language from ?lang= or the Accept-Language header.
// An empty result selects Vietnamese.
func locale(c *gin.Context) string {
	if l := c.Query("lang"); l != "" {
		return l
	}
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}

func yearPeriodsResponse(years []usecase.YearPeriods) []dto.YearPeriodsResponse {
	out := make([]dto.YearPeriodsResponse, 0, len(years))
	for _, y := range years {
		out = append(out, dto.YearPeriodsResponse{Year: y.Year, Quarters: y.Quarters, LatestQuarter: y.LatestQuarter})
	}
	return out
}

// writeError maps usecase errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadQuery),
		errors.Is(err, usecase.ErrUnknownStatement),
		errors.Is(err, usecase.ErrInvalidPeriod):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrNoData),
		errors.Is(err, usecase.ErrSymbolNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrUpstream):
		status = http.StatusBadGateway
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
