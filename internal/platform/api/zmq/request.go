package zmq

type ApiRequest struct {
	Action  string            `json:"action,omitempty"`
	RowKey  string            `json:"row_key,omitempty"`
	Column  string            `json:"column,omitempty"`
	Columns []string          `json:"columns,omitempty"`
	Values  map[string][]byte `json:"values,omitempty"`
}

type ApiResponse struct {
	Entry   EntryResponse            `json:"entry,omitempty"`
	Entries map[string]EntryResponse `json:"entries,omitempty"`
	RowKeys []string                 `json:"row_keys,omitempty"`
	Success bool                     `json:"success,omitempty"`
}

type EntryResponse struct {
	RowKey    string `json:"row_key,omitempty"`
	Column    string `json:"column,omitempty"`
	Value     []byte `json:"value,omitempty"`
	Tombstone bool   `json:"tombstone,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}
