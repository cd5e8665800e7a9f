package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/iho/payflow/internal/adapter/http"
	"github.com/iho/payflow/internal/adapter/http/handler"
	"github.com/iho/payflow/internal/adapter/repository/memory"
	"github.com/iho/payflow/internal/domain"
)

func TestRouter(t *testing.T) {
	store := memory.NewClientStore()
	require.NoError(t, store.Insert(context.Background(), domain.NewClient(1, decimal.NewFromInt(5))))

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		ClientHandler: handler.NewClientHandler(store),
		HealthHandler: handler.NewHealthHandler(),
		Logger:        zerolog.Nop(),
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "health", path: "/health", wantStatus: nethttp.StatusOK},
		{name: "metrics", path: "/metrics", wantStatus: nethttp.StatusOK},
		{name: "list clients", path: "/api/v1/clients", wantStatus: nethttp.StatusOK},
		{name: "get client", path: "/api/v1/clients/1", wantStatus: nethttp.StatusOK},
		{name: "unknown client", path: "/api/v1/clients/2", wantStatus: nethttp.StatusNotFound},
		{name: "unknown route", path: "/nope", wantStatus: nethttp.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
