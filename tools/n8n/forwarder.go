package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/w-h-a/ragserver/tools"
)

const defaultAcknowledgment = "Workflow triggered successfully!"

type n8nForwarder struct {
	options tools.Options
}

func (f *n8nForwarder) Name() string { return "n8n" }

func (f *n8nForwarder) Description() string {
	return "Triggers an n8n workflow with a free-form instruction."
}

// Forward posts {"instruction": ...} to the webhook URL and returns the
// upstream message field, or a default acknowledgment when the response has
// none.
func (f *n8nForwarder) Forward(ctx context.Context, req tools.Request) (string, error) {
	body, err := json.Marshal(map[string]string{"instruction": req.Payload})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Target, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	rsp, err := f.options.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(rsp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("failed to read webhook response: %w", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		return "", fmt.Errorf("webhook returned %s: %s", rsp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &parsed); err == nil && len(parsed.Message) > 0 {
		return parsed.Message, nil
	}

	return defaultAcknowledgment, nil
}

func NewForwarder(opts ...tools.Option) tools.Forwarder {
	options := tools.NewOptions(opts...)

	return &n8nForwarder{
		options: options,
	}
}
