package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBytes caps how much of a backend response is read. Responses
// are a single small JSON object; anything larger is a protocol violation.
const maxResponseBytes = 1 << 20

// --- Backend JSON wire types ---

type denoiseRequestBody struct {
	Filename         string `json:"filename"`
	FilenameDenoised string `json:"filename_denoised"`
	Model            string `json:"model,omitempty"`
}

type denoiseResponseBody struct {
	FilenameDenoised string `json:"filename_denoised"`
}

// Remote dispatches every request to one fixed HTTP endpoint.
type Remote struct {
	url    string
	model  string
	client *http.Client
}

// NewRemote returns a dispatcher POSTing to url. model, when non-empty, is
// forwarded in every request body.
func NewRemote(url, model string) *Remote {
	return &Remote{url: url, model: model, client: http.DefaultClient}
}

// Dispatch implements [Dispatcher] over a single endpoint.
func (r *Remote) Dispatch(ctx context.Context, req Request) (Outcome, error) {
	return postDenoise(ctx, r.client, r.url, r.model, req)
}

// postDenoise performs one blocking request/response exchange with a
// backend. Shared by the single-endpoint and pool dispatchers.
func postDenoise(ctx context.Context, client *http.Client, url, model string, req Request) (Outcome, error) {
	body, err := json.Marshal(denoiseRequestBody{
		Filename:         req.Input,
		FilenameDenoised: req.Output,
		Model:            model,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("encode request for %q: %w", req.Input, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("build request for %s: %w", url, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return Outcome{}, fmt.Errorf("POST %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{}, fmt.Errorf("POST %s: unexpected status %s", url, resp.Status)
	}

	var recv denoiseResponseBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&recv); err != nil {
		return Outcome{}, fmt.Errorf("decode response from %s: %w", url, err)
	}

	if recv.FilenameDenoised == "" {
		return Outcome{OK: false, Reason: "backend returned empty filename_denoised"}, nil
	}
	return Outcome{OK: true}, nil
}
