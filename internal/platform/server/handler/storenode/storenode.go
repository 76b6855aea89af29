package storenode

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"blockdir/internal/application/service"
	"blockdir/internal/domain"
)

type StoreNodeHandler struct {
	updateStoreNodesService *service.UpdateStoreNodesService
}

func NewStoreNodeHandler(updateStoreNodesService *service.UpdateStoreNodesService) *StoreNodeHandler {
	return &StoreNodeHandler{
		updateStoreNodesService: updateStoreNodesService,
	}
}

func (h *StoreNodeHandler) UpdateStoreNodes(w http.ResponseWriter, r *http.Request) {
	var nodes []domain.StoreNode
	body, err := io.ReadAll(r.Body)
	if err == nil {
		err = json.Unmarshal(body, &nodes)
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, err.Error())
		return
	}
	h.updateStoreNodesService.Execute(nodes)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Store nodes updated successfully")
}
