package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/payflow/internal/adapter/http/dto"
	"github.com/iho/payflow/internal/adapter/http/handler"
	"github.com/iho/payflow/internal/adapter/repository/memory"
	"github.com/iho/payflow/internal/domain"
)

func newTestRouter(t *testing.T) (*chi.Mux, *memory.ClientStore) {
	t.Helper()

	store := memory.NewClientStore()
	h := handler.NewClientHandler(store)

	r := chi.NewRouter()
	r.Get("/clients", h.List)
	r.Get("/clients/{id}", h.Get)
	return r, store
}

func TestClientHandler_List(t *testing.T) {
	r, store := newTestRouter(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &domain.Client{ID: 2, Total: decimal.NewFromInt(3), Held: decimal.Zero, Locked: true}))
	require.NoError(t, store.Insert(ctx, domain.NewClient(1, decimal.RequireFromString("1.5"))))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.ClientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, dto.ClientResponse{Client: 1, Available: "1.5000", Held: "0.0000", Total: "1.5000"}, got[0])
	assert.Equal(t, dto.ClientResponse{Client: 2, Available: "3.0000", Held: "0.0000", Total: "3.0000", Locked: true}, got[1])
}

func TestClientHandler_Get(t *testing.T) {
	r, store := newTestRouter(t)
	require.NoError(t, store.Insert(context.Background(), domain.NewClient(7, decimal.NewFromInt(10))))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.ClientResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint16(7), got.Client)
	assert.Equal(t, "10.0000", got.Total)
}

func TestClientHandler_GetNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientHandler_GetBadID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{name: "not a number", id: "abc"},
		{name: "out of u16 range", id: "70000"},
		{name: "negative", id: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clients/"+tt.id, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
