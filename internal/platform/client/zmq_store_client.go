package client

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"
	json "github.com/json-iterator/go"
)

// these mirror internal/platform/api/zmq's wire shapes; duplicated here
// rather than imported so the client package never depends on the store
// node's server-side package.
type zmqApiRequest struct {
	Action  string            `json:"action,omitempty"`
	RowKey  string            `json:"row_key,omitempty"`
	Column  string            `json:"column,omitempty"`
	Columns []string          `json:"columns,omitempty"`
	Values  map[string][]byte `json:"values,omitempty"`
}

type zmqEntryResponse struct {
	RowKey    string `json:"row_key,omitempty"`
	Column    string `json:"column,omitempty"`
	Value     []byte `json:"value,omitempty"`
	Tombstone bool   `json:"tombstone,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type zmqApiResponse struct {
	Entry   zmqEntryResponse            `json:"entry,omitempty"`
	Entries map[string]zmqEntryResponse `json:"entries,omitempty"`
	RowKeys []string                    `json:"row_keys,omitempty"`
	Success bool                        `json:"success,omitempty"`
}

const (
	actionGetColumn     = "GET_COLUMN"
	actionGetColumns    = "GET_COLUMNS"
	actionSetColumns    = "SET_COLUMNS"
	actionListRows      = "LIST_ROWS"
	actionDeleteRow     = "DELETE_ROW"
	actionEnsureKeyspace = "ENSURE_KEYSPACE"
)

// ZmqStoreClient is the high-throughput StoreClient transport: one
// synchronous REQ socket sending a tagged request/reply pair per
// operation, matching the store node's HighPerformanceZmqApi.
type ZmqStoreClient struct {
	socket zmq4.Socket
}

func NewZmqStoreClient(ctx context.Context, address string) (*ZmqStoreClient, error) {
	socket := zmq4.NewReq(ctx)
	if err := socket.Dial(address); err != nil {
		return nil, fmt.Errorf("dial zmq store at %s: %w", address, err)
	}
	return &ZmqStoreClient{socket: socket}, nil
}

func (c *ZmqStoreClient) roundTrip(ctx context.Context, req zmqApiRequest) (zmqApiResponse, error) {
	var resp zmqApiResponse
	payload, err := json.Marshal(req)
	if err != nil {
		return resp, err
	}
	if err := c.socket.Send(zmq4.NewMsg(payload)); err != nil {
		return resp, fmt.Errorf("zmq send: %w", err)
	}
	msg, err := c.socket.Recv()
	if err != nil {
		return resp, fmt.Errorf("zmq recv: %w", err)
	}
	if err := json.Unmarshal(msg.Bytes(), &resp); err != nil {
		return resp, fmt.Errorf("zmq unmarshal response: %w", err)
	}
	return resp, nil
}

func (c *ZmqStoreClient) EnsureKeyspace(ctx context.Context) error {
	resp, err := c.roundTrip(ctx, zmqApiRequest{Action: actionEnsureKeyspace})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("ensure keyspace: store reported failure")
	}
	return nil
}

func (c *ZmqStoreClient) ListRowsWithColumn(ctx context.Context, column string) ([]string, error) {
	resp, err := c.roundTrip(ctx, zmqApiRequest{Action: actionListRows, Column: column})
	if err != nil {
		return nil, err
	}
	return resp.RowKeys, nil
}

func (c *ZmqStoreClient) GetColumn(ctx context.Context, rowKey, column string) ([]byte, bool, error) {
	resp, err := c.roundTrip(ctx, zmqApiRequest{Action: actionGetColumn, RowKey: rowKey, Column: column})
	if err != nil {
		return nil, false, err
	}
	if !resp.Success {
		return nil, false, nil
	}
	return resp.Entry.Value, true, nil
}

func (c *ZmqStoreClient) GetColumns(ctx context.Context, rowKey string, columns []string) (map[string][]byte, error) {
	resp, err := c.roundTrip(ctx, zmqApiRequest{Action: actionGetColumns, RowKey: rowKey, Columns: columns})
	if err != nil {
		return nil, err
	}
	result := make(map[string][]byte, len(resp.Entries))
	for col, entry := range resp.Entries {
		if entry.Tombstone {
			continue
		}
		result[col] = entry.Value
	}
	return result, nil
}

func (c *ZmqStoreClient) SetColumns(ctx context.Context, rowKey string, columns map[string][]byte) error {
	resp, err := c.roundTrip(ctx, zmqApiRequest{Action: actionSetColumns, RowKey: rowKey, Values: columns})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("set columns for row %s: store reported failure", rowKey)
	}
	return nil
}

func (c *ZmqStoreClient) DeleteRow(ctx context.Context, rowKey string) error {
	resp, err := c.roundTrip(ctx, zmqApiRequest{Action: actionDeleteRow, RowKey: rowKey})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("delete row %s: store reported failure", rowKey)
	}
	return nil
}

func (c *ZmqStoreClient) Close() error {
	return c.socket.Close()
}

var _ StoreClient = (*ZmqStoreClient)(nil)
