package connector

import "context"

// DatasetClient lists the datasets and tables the upstream data service
// exposes.
type DatasetClient interface {
	ListDatasets(ctx context.Context) ([]string, error)
	ListTables(ctx context.Context, dataset string) ([]Table, error)
}

// ConnectionClient registers external database connections with the data
// service.
type ConnectionClient interface {
	ConnectDatabase(ctx context.Context, req DBConnectionRequest) (DBConnectionResult, error)
}

// ChatClient sends natural-language prompts to the analytics chat backend.
type ChatClient interface {
	Chat(ctx context.Context, sessionID string, req ChatRequest) (ChatResponse, error)
}

// Client is a convenience union for services that implement the full
// connector surface.
type Client interface {
	DatasetClient
	ConnectionClient
	ChatClient
}
