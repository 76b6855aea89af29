package service

import (
	"log"

	"blockdir/internal/domain"
	"blockdir/internal/platform/client"
)

type GetAllStoreNodesService struct {
	configServer *client.ConfigServerClient
	nodeManager  *domain.StoreNodeManager
}

func NewGetAllStoreNodesService(configServer *client.ConfigServerClient,
	nodeManager *domain.StoreNodeManager) *GetAllStoreNodesService {
	return &GetAllStoreNodesService{
		configServer: configServer,
		nodeManager:  nodeManager,
	}
}

func (g *GetAllStoreNodesService) Execute() error {
	nodes, err := g.configServer.FindAllInstances()
	if err != nil {
		return err
	}

	g.nodeManager.SetReplicas(nodes)
	log.Println("Retrieved", len(*nodes), "replica store nodes from cluster config")
	return nil
}
