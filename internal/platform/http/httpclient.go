// Package http builds the outbound HTTP client used for the market data API.
package http

import (
	"net"
	"net/http"
	"time"
)

// ClientConfig tunes the outbound client. Zero fields take the defaults below.
type ClientConfig struct {
	Timeout             time.Duration // リクエスト全体のタイムアウト
	DialTimeout         time.Duration // TCP接続タイムアウト
	TLSHandshakeTimeout time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// DefaultClientConfig は取り込み用の既定値です。取り込みは単一ホストに集中するため
// MaxIdleConnsPerHost を net/http の既定値 2 より多く保持します。
var DefaultClientConfig = ClientConfig{
	Timeout:             10 * time.Second,
	DialTimeout:         5 * time.Second,
	TLSHandshakeTimeout: 5 * time.Second,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

// withDefaults fills zero fields from DefaultClientConfig.
func (c ClientConfig) withDefaults() ClientConfig {
	d := DefaultClientConfig
	if c.Timeout > 0 {
		d.Timeout = c.Timeout
	}
	if c.DialTimeout > 0 {
		d.DialTimeout = c.DialTimeout
	}
	if c.TLSHandshakeTimeout > 0 {
		d.TLSHandshakeTimeout = c.TLSHandshakeTimeout
	}
	if c.MaxIdleConns > 0 {
		d.MaxIdleConns = c.MaxIdleConns
	}
	if c.MaxIdleConnsPerHost > 0 {
		d.MaxIdleConnsPerHost = c.MaxIdleConnsPerHost
	}
	if c.IdleConnTimeout > 0 {
		d.IdleConnTimeout = c.IdleConnTimeout
	}
	return d
}

// NewHTTPClient は財務データAPI呼び出し用に設定されたHTTPクライアントを作成します。
// プロキシは環境変数（HTTP_PROXYなど）に従います。
// http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること。
func NewHTTPClient(cfg ClientConfig) *http.Client {
	cfg = cfg.withDefaults()
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
	}
	return &http.Client{Timeout: cfg.Timeout, Transport: t}
}
