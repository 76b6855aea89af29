package domain

import "sync"

// StoreNodeManager tracks which node in the cluster is this process and
// which other nodes currently hold the replica set, publishing both to
// whatever has subscribed through Subscribe or SubscribeToGetCurrentNode.
type StoreNodeManager struct {
	CurrentNode   *StoreNode
	Replicas      *[]StoreNode
	mu            sync.RWMutex
	subscribers   []chan []StoreNode
	cnSubscribers []chan StoreNode
}

func NewStoreNodeManager() *StoreNodeManager {
	return &StoreNodeManager{
		subscribers: []chan []StoreNode{},
	}
}

func (m *StoreNodeManager) SetCurrentNode(node *StoreNode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentNode = node
	for _, ch := range m.cnSubscribers {
		ch <- *node
	}
}

func (m *StoreNodeManager) SetReplicas(replicas *[]StoreNode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer m.updateSubscribers()
	m.Replicas = replicas
}

func (m *StoreNodeManager) updateSubscribers() {
	for _, ch := range m.subscribers {
		go func(c chan []StoreNode) {
			c <- *m.Replicas
		}(ch)
	}
}

func (m *StoreNodeManager) GetById(id uint64) *StoreNode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.CurrentNode != nil && m.CurrentNode.Id == id {
		return m.CurrentNode
	}
	if m.Replicas != nil {
		for _, replica := range *m.Replicas {
			if replica.Id == id {
				return &replica
			}
		}
	}
	return nil
}

func (m *StoreNodeManager) Subscribe() <-chan []StoreNode {
	ch := make(chan []StoreNode)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

func (m *StoreNodeManager) SubscribeToGetCurrentNode() <-chan StoreNode {
	ch := make(chan StoreNode)
	m.cnSubscribers = append(m.cnSubscribers, ch)
	return ch
}
