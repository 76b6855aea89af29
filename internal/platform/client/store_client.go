package client

import "context"

// StoreClient is the thin facade the virtual directory layer uses to talk
// to a store node: get one column, get many columns, list row keys having
// a given column, write a batch of columns under one row, and the
// idempotent keyspace bootstrap. Two transports implement it — RestStoreClient
// (resty, the default) and ZmqStoreClient (zmq4 REQ/REP, for deployments
// that want the high-throughput socket path instead of HTTP) — selected by
// the directory layer's caller via the `transport` config knob.
//
// columns[name] == nil denotes a column tombstone in SetColumns.
type StoreClient interface {
	EnsureKeyspace(ctx context.Context) error
	ListRowsWithColumn(ctx context.Context, column string) ([]string, error)
	GetColumn(ctx context.Context, rowKey, column string) ([]byte, bool, error)
	GetColumns(ctx context.Context, rowKey string, columns []string) (map[string][]byte, error)
	SetColumns(ctx context.Context, rowKey string, columns map[string][]byte) error
	DeleteRow(ctx context.Context, rowKey string) error
}
