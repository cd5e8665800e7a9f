package handler

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/payflow/internal/adapter/http/dto"
	"github.com/iho/payflow/internal/domain"
)

// ClientReader provides read access to the folded ledger.
type ClientReader interface {
	Get(ctx context.Context, id uint16) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
}

// ClientHandler serves the client report.
type ClientHandler struct {
	clients ClientReader
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clients ClientReader) *ClientHandler {
	return &ClientHandler{clients: clients}
}

// List returns every client account, sorted by id.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list clients", err.Error())
		return
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })

	writeJSON(w, http.StatusOK, dto.ClientsFromDomain(clients))
}

// Get returns one client account by id.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", raw)
		return
	}

	client, err := h.clients.Get(r.Context(), uint16(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}
