package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/iho/cashflow/internal/infrastructure/config"
)

func TestServerAddr(t *testing.T) {
	if got := serverAddr("8080"); got != ":8080" {
		t.Fatalf("expected :8080, got %s", got)
	}
}

func TestNewHTTPServer(t *testing.T) {
	h := http.NewServeMux()
	srv := newHTTPServer(config.HTTP{
		Port:         "9000",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 6 * time.Second,
		IdleTimeout:  7 * time.Second,
	}, h)

	if srv.Addr != ":9000" || srv.Handler != h {
		t.Fatalf("unexpected server: %+v", srv)
	}
	if srv.ReadTimeout != 5*time.Second || srv.WriteTimeout != 6*time.Second || srv.IdleTimeout != 7*time.Second {
		t.Fatalf("timeouts not applied: %+v", srv)
	}
}
