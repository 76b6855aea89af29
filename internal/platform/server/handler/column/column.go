package column

import (
	"encoding/json"
	"io"
	"net/http"

	"blockdir/internal/application/service"

	"github.com/go-chi/chi/v5"
)

// ColumnHandler exposes the store node's column operations over HTTP: the
// primary REST transport a Store Client (C1) uses to read and write
// individual blocks and descriptors.
type ColumnHandler struct {
	getColumnService   *service.GetColumnService
	getColumnsService  *service.GetColumnsService
	saveColumnsService *service.SaveColumnsService
	listRowsService    *service.ListRowsService
	deleteRowService   *service.DeleteRowService
}

func NewColumnHandler(getColumnService *service.GetColumnService,
	getColumnsService *service.GetColumnsService,
	saveColumnsService *service.SaveColumnsService,
	listRowsService *service.ListRowsService,
	deleteRowService *service.DeleteRowService) *ColumnHandler {
	return &ColumnHandler{
		getColumnService:   getColumnService,
		getColumnsService:  getColumnsService,
		saveColumnsService: saveColumnsService,
		listRowsService:    listRowsService,
		deleteRowService:   deleteRowService,
	}
}

type ColumnResponse struct {
	RowKey    string `json:"row_key"`
	Column    string `json:"column"`
	Value     []byte `json:"value"`
	Tombstone bool   `json:"tombstone"`
	Timestamp int64  `json:"timestamp"`
}

type SaveColumnsRequest struct {
	Columns map[string][]byte `json:"columns"`
}

type RowsResponse struct {
	RowKeys []string `json:"row_keys"`
}

func (h *ColumnHandler) GetColumn(w http.ResponseWriter, r *http.Request) {
	row := chi.URLParam(r, "row")
	col := chi.URLParam(r, "column")

	result := h.getColumnService.Execute(service.GetColumnQuery{RowKey: row, Column: col})
	if !result.Found {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	resp := ColumnResponse{
		RowKey:    result.Entry.RowKey(),
		Column:    result.Entry.Column(),
		Value:     result.Entry.Value(),
		Tombstone: result.Entry.Tombstone(),
		Timestamp: result.Entry.Timestamp(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetColumns returns every requested column for a row in one call, the
// shape opening a file's descriptor-plus-blocks needs.
func (h *ColumnHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	row := chi.URLParam(r, "row")
	columns := r.URL.Query()["column"]

	result := h.getColumnsService.Execute(service.GetColumnsQuery{RowKey: row, Columns: columns})
	resp := make(map[string]ColumnResponse, len(result.Entries))
	for col, entry := range result.Entries {
		resp[col] = ColumnResponse{
			RowKey:    entry.RowKey(),
			Column:    entry.Column(),
			Value:     entry.Value(),
			Tombstone: entry.Tombstone(),
			Timestamp: entry.Timestamp(),
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ColumnHandler) SaveColumnsBatch(w http.ResponseWriter, r *http.Request) {
	row := chi.URLParam(r, "row")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request SaveColumnsRequest
	if err := json.Unmarshal(body, &request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result := h.saveColumnsService.Execute(service.SaveColumnsCommand{RowKey: row, Columns: request.Columns})
	if !result.Success {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ColumnHandler) ListRows(w http.ResponseWriter, r *http.Request) {
	col := r.URL.Query().Get("has_column")
	if col == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result := h.listRowsService.Execute(service.ListRowsQuery{Column: col})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RowsResponse{RowKeys: result.RowKeys})
}

// DeleteRow tombstones a row's descriptor. It always reports success even
// when the row was already gone, since the end state the caller wants is
// the same either way.
func (h *ColumnHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	row := chi.URLParam(r, "row")
	h.deleteRowService.Execute(service.DeleteRowCommand{RowKey: row})
	w.WriteHeader(http.StatusOK)
}
