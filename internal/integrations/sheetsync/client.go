package sheetsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-GradShootBooking/internal/domain"
)

// Client клиент таблицы, принимающей строки броней
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient создает клиента; url - адрес веб-приложения таблицы
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Push отправляет одну строку
func (c *Client) Push(ctx context.Context, payload domain.SyncPayload) error {
	resp, err := c.post(ctx, payload)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("%w: id=%s %s", ErrRejected, payload.ID, resp.Error)
	}
	return nil
}

// PushBatch отправляет пачку строк и возвращает id, которые таблица приняла.
// Если таблица не вернула syncedIds, при success=true принятыми считаются все строки.
func (c *Client) PushBatch(ctx context.Context, payloads []domain.SyncPayload) ([]string, error) {
	if len(payloads) == 0 {
		return nil, nil
	}

	resp, err := c.post(ctx, BatchRequest{Rows: payloads})
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: batch of %d %s", ErrRejected, len(payloads), resp.Error)
	}

	if resp.SyncedIDs != nil {
		return resp.SyncedIDs, nil
	}

	ids := make([]string, 0, len(payloads))
	for _, p := range payloads {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (c *Client) post(ctx context.Context, body interface{}) (*Response, error) {
	if c.url == "" {
		return nil, fmt.Errorf("%w: target url is not configured", ErrRequest)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode payload: %v", ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrRequest, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 256))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, httpResp.StatusCode, string(snippet))
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return &resp, nil
}
