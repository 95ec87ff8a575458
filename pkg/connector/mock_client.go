package connector

import (
	"context"
	"fmt"
	"sync"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
)

// MockData seeds deterministic connector responses for tests or local demos.
type MockData struct {
	Datasets []string
	Tables   map[string][]Table
	Records  []chartboard.Record
	Chat     ChatResponse
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock connector client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

var _ Client = (*MockClient)(nil)

// ListDatasets returns the configured dataset list.
func (c *MockClient) ListDatasets(context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string{}, c.data.Datasets...), nil
}

// ListTables returns the configured table list for the dataset.
func (c *MockClient) ListTables(_ context.Context, dataset string) ([]Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tables, ok := c.data.Tables[dataset]
	if !ok {
		return nil, fmt.Errorf("connector: unknown dataset %s", dataset)
	}
	return append([]Table{}, tables...), nil
}

// ConnectDatabase acknowledges the connection and hands back the fixture
// records without talking to anything.
func (c *MockClient) ConnectDatabase(_ context.Context, req DBConnectionRequest) (DBConnectionResult, error) {
	if req.Datasource == "" {
		return DBConnectionResult{}, fmt.Errorf("connector: datasource is required")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return DBConnectionResult{
		DBConnectionID: "mock-" + req.Datasource,
		Data:           append([]chartboard.Record{}, c.data.Records...),
	}, nil
}

// Chat returns the configured response ignoring the prompt.
func (c *MockClient) Chat(_ context.Context, sessionID string, _ ChatRequest) (ChatResponse, error) {
	if sessionID == "" {
		return ChatResponse{}, fmt.Errorf("connector: session id is required")
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Chat, nil
}
