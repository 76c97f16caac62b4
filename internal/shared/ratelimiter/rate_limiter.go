// Package ratelimiter throttles calls to the upstream data provider.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は固定ウィンドウ内の呼び出し回数を limit 以下に抑えます。
// 複数のgoroutineから同時に使用できます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // ウィンドウの長さ
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Wait は上限に達している場合、次のウィンドウまで待機します。
// 待機中にctxがキャンセルされるとctx.Err()を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count <= rl.limit {
		return nil
	}

	wait := rl.interval - now.Sub(rl.lastReset)
	if wait > 0 {
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
		if err := rl.sleep(ctx, wait); err != nil {
			rl.count--
			return err
		}
	}
	rl.count = 1
	rl.lastReset = rl.now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
