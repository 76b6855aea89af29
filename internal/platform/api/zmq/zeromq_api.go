package zmq

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"

	"blockdir/internal/application/service"
	"blockdir/internal/domain"
	"blockdir/internal/platform/config"

	"github.com/go-zeromq/zmq4"
	json "github.com/json-iterator/go"
)

// HighPerformanceZmqApi is the zmq REQ/REP alternate transport for the
// column store, offered alongside the REST API for clients that need
// lower per-call overhead than HTTP. It multiplexes many REP sockets over
// a shared worker pool so one slow request never head-of-line blocks the
// rest.
type HighPerformanceZmqApi struct {
	sockets    []zmq4.Socket
	config     config.Config
	services   *Services
	ctx        context.Context
	cancel     context.CancelFunc
	workerPool chan Job
}

type Job struct {
	Request  *ApiRequest
	Response chan<- ApiResponse
	SocketID int
}

type Services struct {
	getColumn   *service.GetColumnService
	getColumns  *service.GetColumnsService
	saveColumns *service.SaveColumnsService
	listRows    *service.ListRowsService
	deleteRow   *service.DeleteRowService
}

const (
	GetColumn     = "GET_COLUMN"
	GetColumns    = "GET_COLUMNS"
	SetColumns    = "SET_COLUMNS"
	ListRows      = "LIST_ROWS"
	DeleteRow     = "DELETE_ROW"
	EnsureKeyspace = "ENSURE_KEYSPACE"
)

func NewZmqApi(getColumn *service.GetColumnService, getColumns *service.GetColumnsService,
	saveColumns *service.SaveColumnsService, listRows *service.ListRowsService,
	deleteRow *service.DeleteRowService, conf config.Config) *HighPerformanceZmqApi {

	ctx, cancel := context.WithCancel(context.Background())

	numSockets := runtime.NumCPU()
	if numSockets > 16 {
		numSockets = 16
	}

	sockets := make([]zmq4.Socket, numSockets)
	for i := range sockets {
		sockets[i] = zmq4.NewRep(ctx)
	}

	return &HighPerformanceZmqApi{
		sockets: sockets,
		config:  conf,
		services: &Services{
			getColumn:   getColumn,
			getColumns:  getColumns,
			saveColumns: saveColumns,
			listRows:    listRows,
			deleteRow:   deleteRow,
		},
		ctx:        ctx,
		cancel:     cancel,
		workerPool: make(chan Job, 50000),
	}
}

func (z *HighPerformanceZmqApi) Listen() {
	address := fmt.Sprintf("tcp://*:%d", z.config.ZmqApiPort)

	for i, socket := range z.sockets {
		if err := socket.Listen(address); err != nil {
			log.Printf("Error binding socket %d: %v", i, err)
			continue
		}
	}

	numWorkers := runtime.NumCPU() * 4
	for i := 0; i < numWorkers; i++ {
		go z.workerRoutine(i)
	}

	log.Printf("High-performance ZMQ API listening on %s with %d sockets and %d workers",
		address, len(z.sockets), numWorkers)

	for i, socket := range z.sockets {
		go z.socketListener(i, socket)
	}

	<-z.ctx.Done()
	log.Println("Shutting down high-performance ZMQ API...")
}

func (z *HighPerformanceZmqApi) socketListener(socketID int, socket zmq4.Socket) {
	defer log.Printf("Socket listener %d shutdown", socketID)

	for {
		select {
		case <-z.ctx.Done():
			return
		default:
			msg, err := socket.Recv()
			if err != nil {
				if errors.Is(err, zmq4.ErrClosedConn) {
					return
				}
				log.Printf("Socket %d recv error: %v", socketID, err)
				continue
			}

			var req ApiRequest
			if err := json.Unmarshal(msg.Bytes(), &req); err != nil {
				log.Printf("Socket %d unmarshal error: %v", socketID, err)
				z.sendErrorResponse(socket)
				continue
			}

			respChan := make(chan ApiResponse, 1)
			job := Job{
				Request:  &req,
				Response: respChan,
				SocketID: socketID,
			}

			select {
			case z.workerPool <- job:
				response := <-respChan
				responseMsg := z.marshal(response)
				if err := socket.Send(responseMsg); err != nil {
					log.Printf("Socket %d send error: %v", socketID, err)
				}
			case <-z.ctx.Done():
				return
			default:
				response := z.processRequest(&req)
				responseMsg := z.marshal(response)
				if err := socket.Send(responseMsg); err != nil {
					log.Printf("Socket %d send error: %v", socketID, err)
				}
			}
		}
	}
}

func (z *HighPerformanceZmqApi) workerRoutine(id int) {
	defer log.Printf("Worker %d shutdown complete", id)
	log.Printf("Worker %d started", id)

	for {
		select {
		case job := <-z.workerPool:
			response := z.processRequest(job.Request)

			select {
			case job.Response <- response:
			default:
				log.Printf("Worker %d: failed to send response", id)
			}

		case <-z.ctx.Done():
			return
		}
	}
}

func (z *HighPerformanceZmqApi) processRequest(req *ApiRequest) ApiResponse {
	switch req.Action {
	case GetColumn:
		result := z.services.getColumn.Execute(service.GetColumnQuery{RowKey: req.RowKey, Column: req.Column})
		if !result.Found {
			return ApiResponse{Success: false}
		}
		return ApiResponse{
			Entry:   toEntryResponse(result.Entry),
			Success: true,
		}

	case GetColumns:
		result := z.services.getColumns.Execute(service.GetColumnsQuery{RowKey: req.RowKey, Columns: req.Columns})
		entries := make(map[string]EntryResponse, len(result.Entries))
		for col, e := range result.Entries {
			entries[col] = toEntryResponse(e)
		}
		return ApiResponse{Entries: entries, Success: true}

	case SetColumns:
		result := z.services.saveColumns.Execute(service.SaveColumnsCommand{RowKey: req.RowKey, Columns: req.Values})
		return ApiResponse{Success: result.Success}

	case ListRows:
		result := z.services.listRows.Execute(service.ListRowsQuery{Column: req.Column})
		return ApiResponse{RowKeys: result.RowKeys, Success: true}

	case DeleteRow:
		result := z.services.deleteRow.Execute(service.DeleteRowCommand{RowKey: req.RowKey})
		return ApiResponse{Success: result.Err == nil}

	case EnsureKeyspace:
		// Keyspace/column family already exist by the time the memtable is
		// serving requests; this is an idempotent no-op acknowledgement.
		return ApiResponse{Success: true}

	default:
		log.Printf("Unknown action: %s", req.Action)
		return ApiResponse{Success: false}
	}
}

func toEntryResponse(e domain.ColumnEntry) EntryResponse {
	return EntryResponse{
		RowKey:    e.RowKey(),
		Column:    e.Column(),
		Value:     e.Value(),
		Tombstone: e.Tombstone(),
		Timestamp: e.Timestamp(),
	}
}

func (z *HighPerformanceZmqApi) sendErrorResponse(socket zmq4.Socket) {
	errorResponse := ApiResponse{
		Success: false,
	}
	errorMsg := z.marshal(errorResponse)
	if err := socket.Send(errorMsg); err != nil {
		log.Printf("Error sending error response: %v", err)
	}
}

func (z *HighPerformanceZmqApi) marshal(response ApiResponse) zmq4.Msg {
	payload, err := json.Marshal(response)
	if err != nil {
		log.Printf("Error marshalling response: %v", err)
		payload = []byte(`{"success":false}`)
	}
	return zmq4.NewMsg(payload)
}

func (z *HighPerformanceZmqApi) Close() error {
	log.Println("Initiating high-performance ZMQ API shutdown...")

	z.cancel()

	var lastErr error

	for i, socket := range z.sockets {
		if socket != nil {
			if err := socket.Close(); err != nil {
				log.Printf("Error closing socket %d: %v", i, err)
				lastErr = err
			}
		}
	}

	log.Println("High-performance ZMQ API shutdown complete")
	return lastErr
}

func (z *HighPerformanceZmqApi) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"sockets":     len(z.sockets),
		"workers":     runtime.NumCPU() * 4,
		"socket_type": "REP",
		"pattern":     "Multiple REP sockets with worker pool",
		"buffer_size": 50000,
	}
}
