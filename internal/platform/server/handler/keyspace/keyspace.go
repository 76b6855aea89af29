package keyspace

import (
	"encoding/json"
	"net/http"

	"blockdir/internal/platform/config"
)

// KeyspaceHandler answers EnsureKeyspace requests. The storage engine has
// no schema to create ahead of time, so ensuring a keyspace only confirms
// the node is configured to serve it.
type KeyspaceHandler struct {
	config config.Config
}

func NewKeyspaceHandler(cfg config.Config) *KeyspaceHandler {
	return &KeyspaceHandler{config: cfg}
}

type EnsureKeyspaceRequest struct {
	Keyspace     string `json:"keyspace"`
	ColumnFamily string `json:"column_family"`
}

type EnsureKeyspaceResponse struct {
	Ready bool `json:"ready"`
}

func (h *KeyspaceHandler) EnsureKeyspace(w http.ResponseWriter, r *http.Request) {
	var req EnsureKeyspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ready := req.Keyspace == h.config.Keyspace && req.ColumnFamily == h.config.ColumnFamily
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EnsureKeyspaceResponse{Ready: ready})
}
