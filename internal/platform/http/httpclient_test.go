package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         ClientConfig
		wantTimeout time.Duration
		wantPerHost int
		wantIdle    int
	}{
		{"zero config uses defaults", ClientConfig{}, 10 * time.Second, 10, 100},
		{"overrides kept", ClientConfig{Timeout: 7 * time.Second, MaxIdleConnsPerHost: 4}, 7 * time.Second, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewHTTPClient(tt.cfg)

			assert.Equal(t, tt.wantTimeout, c.Timeout)
			tr, ok := c.Transport.(*http.Transport)
			require.True(t, ok)
			assert.Equal(t, tt.wantIdle, tr.MaxIdleConns)
			assert.Equal(t, tt.wantPerHost, tr.MaxIdleConnsPerHost)
			assert.Equal(t, 5*time.Second, tr.TLSHandshakeTimeout)
			assert.NotNil(t, tr.Proxy)
		})
	}
}
