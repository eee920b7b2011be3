package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/lwmacct/251207-go-pkg-varsub/internal/command/server"
)

// Client 替换服务的 HTTP 客户端，5xx 与连接错误按指数退避重试。
type Client struct {
	baseURL string
	http    *http.Client
}

// New 创建 Client。
func New(baseURL string, timeout time.Duration, retries int) *Client {
	rc := retryablehttp.Client{
		HTTPClient:   &http.Client{Timeout: timeout},
		Logger:       slog.Default(),
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 2 * time.Second,
		RetryMax:     retries,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    rc.StandardClient(),
	}
}

// StatusError 服务端返回的非 2xx 响应。
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}

	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Health 调用 GET /health，返回响应体。
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(body)), nil
}

// Substitute 调用 POST /v1/substitute。
func (c *Client) Substitute(ctx context.Context, req server.SubstituteRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/substitute", payload)
	if err != nil {
		return "", err
	}

	var resp server.SubstituteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return resp.Output, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var e server.ErrorResponse
		_ = json.Unmarshal(body, &e)

		return nil, &StatusError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	return body, nil
}
