package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPConfig configures the HTTP connector client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the remote data/chat service via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client capable of hitting the live data service.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("connector: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

var _ Client = (*HTTPClient)(nil)

// ListDatasets implements DatasetClient via GET /datasets.
func (c *HTTPClient) ListDatasets(ctx context.Context) ([]string, error) {
	var resp struct {
		Datasets []string `json:"datasets"`
	}
	if err := c.do(ctx, http.MethodGet, "/datasets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Datasets, nil
}

// ListTables implements DatasetClient via GET /datasets/{name}/tables.
func (c *HTTPClient) ListTables(ctx context.Context, dataset string) ([]Table, error) {
	if dataset == "" {
		return nil, fmt.Errorf("connector: dataset name is required")
	}
	var resp struct {
		Tables []Table `json:"tables"`
	}
	path := "/datasets/" + url.PathEscape(dataset) + "/tables"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// ConnectDatabase implements ConnectionClient via POST /db_connections.
func (c *HTTPClient) ConnectDatabase(ctx context.Context, req DBConnectionRequest) (DBConnectionResult, error) {
	var resp DBConnectionResult
	if err := c.do(ctx, http.MethodPost, "/db_connections", req, &resp); err != nil {
		return DBConnectionResult{}, err
	}
	return resp, nil
}

// Chat implements ChatClient via POST /chat/{sessionId}.
func (c *HTTPClient) Chat(ctx context.Context, sessionID string, req ChatRequest) (ChatResponse, error) {
	if sessionID == "" {
		return ChatResponse{}, fmt.Errorf("connector: session id is required")
	}
	var resp ChatResponse
	path := "/chat/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return ChatResponse{}, err
	}
	return resp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	var body *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("connector: encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("connector: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("connector: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("connector: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("connector: decode response: %w", err)
	}
	return nil
}
