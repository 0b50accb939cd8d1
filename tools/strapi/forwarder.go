package strapi

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

type strapiForwarder struct {
	options tools.Options
}

func (f *strapiForwarder) Name() string { return "strapi" }

func (f *strapiForwarder) Description() string {
	return "Saves a note to a Strapi CMS collection."
}

// Forward posts {"data": {"content": ...}} with bearer auth and returns the
// created record's identifier.
func (f *strapiForwarder) Forward(ctx context.Context, req tools.Request) (string, error) {
	body, err := json.Marshal(map[string]any{
		"data": map[string]string{"content": req.Payload},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Target, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.Token)

	rsp, err := f.options.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer rsp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(rsp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("failed to read strapi response: %w", err)
	}

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		return "", fmt.Errorf("strapi returned %s: %s", rsp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed struct {
		Data struct {
			Id json.Number `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("unexpected strapi response: %w", err)
	}

	return parsed.Data.Id.String(), nil
}

func NewForwarder(opts ...tools.Option) tools.Forwarder {
	options := tools.NewOptions(opts...)

	return &strapiForwarder{
		options: options,
	}
}
