package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"
)

// RestStoreClient is the default StoreClient transport: it issues
// GET/POST/DELETE against a store node's chi-routed column API.
type RestStoreClient struct {
	client  *resty.Client
	baseURL string
}

func NewRestStoreClient(baseURL string) *RestStoreClient {
	return &RestStoreClient{
		client:  resty.New(),
		baseURL: baseURL,
	}
}

type ensureKeyspaceRequest struct {
	Keyspace     string `json:"keyspace"`
	ColumnFamily string `json:"column_family"`
}

type ensureKeyspaceResponse struct {
	Ready bool `json:"ready"`
}

func (c *RestStoreClient) EnsureKeyspace(ctx context.Context) error {
	var resp ensureKeyspaceResponse
	_, err := c.client.R().
		SetContext(ctx).
		SetBody(ensureKeyspaceRequest{}).
		SetResult(&resp).
		Post(c.baseURL + "/api/v1/keyspace")
	return err
}

type rowsResponse struct {
	RowKeys []string `json:"row_keys"`
}

func (c *RestStoreClient) ListRowsWithColumn(ctx context.Context, column string) ([]string, error) {
	var resp rowsResponse
	r, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("has_column", column).
		SetResult(&resp).
		Get(c.baseURL + "/api/v1/rows")
	if err != nil {
		return nil, fmt.Errorf("list rows with column %q: %w", column, err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("list rows with column %q: store returned %s", column, r.Status())
	}
	return resp.RowKeys, nil
}

type columnResponse struct {
	RowKey    string `json:"row_key"`
	Column    string `json:"column"`
	Value     []byte `json:"value"`
	Tombstone bool   `json:"tombstone"`
	Timestamp int64  `json:"timestamp"`
}

func (c *RestStoreClient) GetColumn(ctx context.Context, rowKey, column string) ([]byte, bool, error) {
	var resp columnResponse
	r, err := c.client.R().
		SetContext(ctx).
		SetResult(&resp).
		Get(fmt.Sprintf("%s/api/v1/columns/%s/%s", c.baseURL, url.PathEscape(rowKey), url.PathEscape(column)))
	if err != nil {
		return nil, false, fmt.Errorf("get column %s/%s: %w", rowKey, column, err)
	}
	if r.StatusCode() == http.StatusNotFound {
		return nil, false, nil
	}
	if r.IsError() {
		return nil, false, fmt.Errorf("get column %s/%s: store returned %s", rowKey, column, r.Status())
	}
	if resp.Tombstone {
		return nil, false, nil
	}
	return resp.Value, true, nil
}

func (c *RestStoreClient) GetColumns(ctx context.Context, rowKey string, columns []string) (map[string][]byte, error) {
	var resp map[string]columnResponse
	req := c.client.R().SetContext(ctx).SetResult(&resp)
	q := url.Values{}
	for _, col := range columns {
		q.Add("column", col)
	}
	req.SetQueryParamsFromValues(q)

	r, err := req.Get(fmt.Sprintf("%s/api/v1/columns/%s", c.baseURL, url.PathEscape(rowKey)))
	if err != nil {
		return nil, fmt.Errorf("get columns for row %s: %w", rowKey, err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("get columns for row %s: store returned %s", rowKey, r.Status())
	}

	result := make(map[string][]byte, len(resp))
	for col, entry := range resp {
		if entry.Tombstone {
			continue
		}
		result[col] = entry.Value
	}
	return result, nil
}

type saveColumnsRequest struct {
	Columns map[string][]byte `json:"columns"`
}

func (c *RestStoreClient) SetColumns(ctx context.Context, rowKey string, columns map[string][]byte) error {
	r, err := c.client.R().
		SetContext(ctx).
		SetBody(saveColumnsRequest{Columns: columns}).
		Post(fmt.Sprintf("%s/api/v1/columns/%s/batch", c.baseURL, url.PathEscape(rowKey)))
	if err != nil {
		return fmt.Errorf("set columns for row %s: %w", rowKey, err)
	}
	if r.IsError() {
		return fmt.Errorf("set columns for row %s: store returned %s", rowKey, r.Status())
	}
	return nil
}

// DeleteRow is preserved for API completeness; the store layer always
// degrades row-level deletion to a logical descriptor tombstone rather
// than reclaiming any column.
func (c *RestStoreClient) DeleteRow(ctx context.Context, rowKey string) error {
	r, err := c.client.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("%s/api/v1/rows/%s", c.baseURL, url.PathEscape(rowKey)))
	if err != nil {
		return fmt.Errorf("delete row %s: %w", rowKey, err)
	}
	if r.IsError() {
		return fmt.Errorf("delete row %s: store returned %s", rowKey, r.Status())
	}
	return nil
}

var _ StoreClient = (*RestStoreClient)(nil)
