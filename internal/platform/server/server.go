package server

import (
	"fmt"
	"log"
	"net/http"

	"blockdir/internal/platform/config"
	"blockdir/internal/platform/server/handler/column"
	"blockdir/internal/platform/server/handler/health"
	"blockdir/internal/platform/server/handler/keyspace"
	"blockdir/internal/platform/server/handler/storenode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	httpAddr string
	engine   *chi.Mux
}

func NewServer(cfg config.Config, columnHandler *column.ColumnHandler,
	storeNodeHandler *storenode.StoreNodeHandler, keyspaceHandler *keyspace.KeyspaceHandler) Server {
	url := fmt.Sprintf("%s:%d", cfg.Host, cfg.ServerPort)
	srv := Server{
		engine:   chi.NewRouter(),
		httpAddr: url,
	}
	srv.engine.Use(middleware.Logger)
	srv.registerRoutes(columnHandler, storeNodeHandler, keyspaceHandler)
	return srv
}

func (s *Server) Run() error {
	log.Println("Store node listening on:", s.httpAddr)
	return http.ListenAndServe(s.httpAddr, s.engine)
}

func (s *Server) registerRoutes(columnHandler *column.ColumnHandler,
	storeNodeHandler *storenode.StoreNodeHandler, keyspaceHandler *keyspace.KeyspaceHandler) {
	s.engine.Get("/healthz", health.CheckHandler)
	s.engine.Get("/api/v1/columns/{row}/{column}", columnHandler.GetColumn)
	s.engine.Get("/api/v1/columns/{row}", columnHandler.GetColumns)
	s.engine.Post("/api/v1/columns/{row}/batch", columnHandler.SaveColumnsBatch)
	s.engine.Get("/api/v1/rows", columnHandler.ListRows)
	s.engine.Delete("/api/v1/rows/{row}", columnHandler.DeleteRow)
	s.engine.Post("/api/v1/instances", storeNodeHandler.UpdateStoreNodes)
	s.engine.Post("/api/v1/keyspace", keyspaceHandler.EnsureKeyspace)
}
