package bootstrap

import (
	"blockdir/internal/application/service"
	"blockdir/internal/domain"
	"blockdir/internal/platform/api/zmq"
	"blockdir/internal/platform/client"
	"blockdir/internal/platform/config"
	"blockdir/internal/platform/messaging/zeromq/listener"
	"blockdir/internal/platform/messaging/zeromq/publisher"
	"blockdir/internal/platform/repository"
	"blockdir/internal/platform/repository/lsm_tree"
	"blockdir/internal/platform/server"
	"blockdir/internal/platform/server/handler/column"
	"blockdir/internal/platform/server/handler/keyspace"
	"blockdir/internal/platform/server/handler/storenode"

	"go.uber.org/dig"
)

func Run() (bool, error) {
	container := dig.New()
	serviceConstructors := []interface{}{
		wal,
		config.LoadConfig,
		domain.NewStoreNodeManager,
		lsm_tree.NewMemtable,
		columnEntryRepository,
		columnBatchBroadcaster,
		domain.NewColumnBatchManager,
		service.NewGetColumnService,
		service.NewGetColumnsService,
		service.NewSaveColumnsService,
		service.NewListRowsService,
		service.NewDeleteRowService,
		service.NewStoreNodeAutoRegisterService,
		service.NewUpdateStoreNodesService,
		service.NewGetAllStoreNodesService,
		column.NewColumnHandler,
		storenode.NewStoreNodeHandler,
		keyspace.NewKeyspaceHandler,
		server.NewServer,
		zmq.NewZmqApi,
		configServerClient,
		columnBatchListener,
	}
	for _, ctor := range serviceConstructors {
		if err := container.Provide(ctor); err != nil {
			return false, err
		}
	}
	err := container.Invoke(func(s server.Server,
		zmqApi *zmq.HighPerformanceZmqApi,
		ar *service.StoreNodeAutoRegisterService,
		g *service.GetAllStoreNodesService,
		broadcaster *publisher.ColumnBatchBroadcaster,
		l *listener.ColumnBatchListener) {
		ar.Execute()
		if err := g.Execute(); err != nil {
			return
		}
		broadcaster.Initialize()
		go l.Listen()
		go zmqApi.Listen()
		s.Run()
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func wal() (*lsm_tree.WAL, error) {
	dir := config.LoadConfig().WalDirectory
	return lsm_tree.NewWal(dir)
}

func columnEntryRepository(mt *lsm_tree.Memtable) domain.ColumnEntryRepository {
	return repository.NewLSMTreeColumnRepository(mt)
}

func columnBatchBroadcaster(cfg config.Config) (domain.ColumnBatchBroadcaster, *publisher.ColumnBatchBroadcaster) {
	b := publisher.NewColumnBatchBroadcaster(cfg)
	return b, b
}

func columnBatchListener(bm *domain.ColumnBatchManager, cfg config.Config) *listener.ColumnBatchListener {
	return listener.NewColumnBatchListener(bm, cfg)
}

func configServerClient() *client.ConfigServerClient {
	url := config.LoadConfig().ConfigServerUrl
	return client.NewConfigServerClient(url)
}
