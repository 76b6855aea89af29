package client

import (
	"blockdir/internal/domain"

	"github.com/go-resty/resty/v2"
)

const (
	instances_endpoint = "/api/v1/instances"
)

// RegisterInstanceRequest is the body sent when a store node registers
// itself with the cluster's config server.
type RegisterInstanceRequest struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// ConfigServerClient talks to the cluster config server that tracks which
// store nodes currently make up the replica set.
type ConfigServerClient struct {
	client    *resty.Client
	serverUrl string
}

func NewConfigServerClient(configServerUrl string) *ConfigServerClient {
	return &ConfigServerClient{
		client:    resty.New(),
		serverUrl: configServerUrl,
	}
}

func (c *ConfigServerClient) RegisterInstance(node domain.StoreNode) (*domain.StoreNode, error) {
	var resp domain.StoreNode
	uri := c.serverUrl + instances_endpoint
	body := RegisterInstanceRequest{
		Host: node.Host,
		Port: node.Port,
	}
	_, err := c.client.R().SetResult(&resp).SetBody(&body).Post(uri)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *ConfigServerClient) FindAllInstances() (*[]domain.StoreNode, error) {
	var resp []domain.StoreNode
	uri := c.serverUrl + instances_endpoint

	_, err := c.client.R().SetResult(&resp).Get(uri)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
