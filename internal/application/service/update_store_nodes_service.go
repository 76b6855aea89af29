package service

import (
	"log"

	"blockdir/internal/domain"
)

type UpdateStoreNodesService struct {
	manager *domain.StoreNodeManager
}

func NewUpdateStoreNodesService(manager *domain.StoreNodeManager) *UpdateStoreNodesService {
	return &UpdateStoreNodesService{manager: manager}
}

func (u UpdateStoreNodesService) Execute(nodes []domain.StoreNode) {
	u.manager.SetReplicas(&nodes)
	log.Println("Updated store node replicas, total replicas:", len(nodes))
}
