package service

import (
	"log"
	"net"
	"time"

	"blockdir/internal/domain"
	"blockdir/internal/platform/client"
	"blockdir/internal/platform/config"
)

// StoreNodeAutoRegisterService registers this process with the cluster's
// config server on startup, retrying every 60 seconds until it succeeds,
// and records the node the config server returns as the node manager's
// current node.
type StoreNodeAutoRegisterService struct {
	configServer *client.ConfigServerClient
	nodeManager  *domain.StoreNodeManager
	config       config.Config
}

func NewStoreNodeAutoRegisterService(configServer *client.ConfigServerClient, nodeManager *domain.StoreNodeManager,
	cfg config.Config) *StoreNodeAutoRegisterService {
	return &StoreNodeAutoRegisterService{
		configServer: configServer,
		nodeManager:  nodeManager,
		config:       cfg,
	}
}

func (i *StoreNodeAutoRegisterService) Execute() {
	ip := i.getOutboundIP()
	node := domain.StoreNode{
		Host: ip,
		Port: i.config.ServerPort,
	}

	ticker := time.NewTicker(time.Second * 60)
	defer ticker.Stop()

	for {
		registeredNode, err := i.configServer.RegisterInstance(node)
		if err == nil {
			i.nodeManager.SetCurrentNode(registeredNode)
			log.Printf("Registered current store node with id %d\n", registeredNode.Id)
			break
		}
		log.Printf("Failed to register store node: %v. Retrying in 60s...\n", err)
		<-ticker.C
	}
}

func (i *StoreNodeAutoRegisterService) getOutboundIP() string {
	if i.config.DeploymentMode == "devel" {
		return "localhost"
	}
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	return localAddr.IP.String()
}
