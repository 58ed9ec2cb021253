package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/daykeep/daykeep/store"
)

// HTTPHandler returns a Handler that POSTs queue items as JSON to
// endpoint. A 2xx response counts as synced; any other status is a
// retryable rejection. Transport errors are returned so the caller can
// tell connectivity failures from rejections.
func HTTPHandler(client *http.Client, endpoint string) Handler {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, item store.QueueItem) (bool, error) {
		body, err := json.Marshal(item)
		if err != nil {
			return false, fmt.Errorf("encode sync item: %w", err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return false, fmt.Errorf("build sync request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return false, fmt.Errorf("post sync item: %w", err)
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
	}
}
