package http

import (
	"net/http"
	"testing"
	"time"
)

func TestDefaultTransportConfig(t *testing.T) {
	cfg := DefaultTransportConfig()

	if cfg.MaxIdleConns != 10 {
		t.Errorf("MaxIdleConns = %d, want 10", cfg.MaxIdleConns)
	}
	if cfg.MaxIdleConnsPerHost != 2 {
		t.Errorf("MaxIdleConnsPerHost = %d, want 2", cfg.MaxIdleConnsPerHost)
	}
	if cfg.IdleConnTimeout != 90*time.Second {
		t.Errorf("IdleConnTimeout = %v, want 90s", cfg.IdleConnTimeout)
	}
	if !cfg.ForceAttemptHTTP2 {
		t.Error("ForceAttemptHTTP2 should be true")
	}
}

func TestTransportConfiguration(t *testing.T) {
	cfg := &Config{
		Timeout:   15 * time.Second,
		UserAgent: "test/1.0",
		Transport: TransportConfig{
			MaxIdleConns:        15,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     60 * time.Second,
			ForceAttemptHTTP2:   false,
		},
	}

	client := New(cfg)
	defer client.Close()

	base := client.HTTPClient()
	if base.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", base.Timeout)
	}

	api, ok := base.Transport.(*apiTransport)
	if !ok {
		t.Fatalf("transport is %T, want *apiTransport", base.Transport)
	}
	if api.userAgent != "test/1.0" {
		t.Errorf("userAgent = %q, want test/1.0", api.userAgent)
	}

	transport, ok := api.base.(*http.Transport)
	if !ok {
		t.Fatal("inner transport is not *http.Transport")
	}
	if transport.MaxIdleConns != 15 {
		t.Errorf("MaxIdleConns = %d, want 15", transport.MaxIdleConns)
	}
	if transport.MaxIdleConnsPerHost != 8 {
		t.Errorf("MaxIdleConnsPerHost = %d, want 8", transport.MaxIdleConnsPerHost)
	}
	if transport.IdleConnTimeout != 60*time.Second {
		t.Errorf("IdleConnTimeout = %v, want 60s", transport.IdleConnTimeout)
	}
	if transport.ForceAttemptHTTP2 {
		t.Error("ForceAttemptHTTP2 should be false")
	}

	if got := client.GetTransportConfig(); got.MaxIdleConns != 15 {
		t.Errorf("GetTransportConfig().MaxIdleConns = %d, want 15", got.MaxIdleConns)
	}
}
