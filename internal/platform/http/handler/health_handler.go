// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout bounds each dependency ping.
const checkTimeout = 2 * time.Second

// Check is a named dependency check (database, cache).
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Health は依存関係チェックなしの /healthz ハンドラーです。
var Health = NewHealth()

// NewHealth は /healthz エンドポイントのハンドラーを返します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
// いずれかのチェックが失敗した場合は 503 と各チェックの結果を返します。
func NewHealth(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status, results := http.StatusOK, make(map[string]string, len(checks))
		for _, chk := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := chk.Ping(ctx)
			cancel()
			if err != nil {
				slog.Warn("health check failed", "check", chk.Name, "error", err)
				results[chk.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[chk.Name] = "ok"
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}
		body := gin.H{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(checks) > 0 {
			body["checks"] = results
		}
		c.JSON(status, body)
	}
}
