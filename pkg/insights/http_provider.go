package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const prompt = "Analyze these restaurant sales records and provide 3 brief bullet points of business advice " +
	"(focus on popular items, stock warnings, and revenue trends)."

// HTTPProvider posts the snapshot to a text generation endpoint.
type HTTPProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

type generateRequest struct {
	Prompt string   `json:"prompt"`
	Data   Snapshot `json:"data"`
}

type generateResponse struct {
	Text string `json:"text"`
}

func NewHTTPProvider(endpoint, apiKey string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{endpoint: endpoint, apiKey: apiKey, client: client}
}

func (p *HTTPProvider) Generate(ctx context.Context, snap Snapshot) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt, Data: snap})
	if err != nil {
		return "", fmt.Errorf("encode insights request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build insights request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call insights endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("insights endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode insights response: %w", err)
	}
	return out.Text, nil
}

// NewProviderFromConfig returns an HTTPProvider for endpoint, or the local
// heuristic provider when endpoint is empty.
func NewProviderFromConfig(endpoint, apiKey string) Provider {
	if endpoint == "" {
		return HeuristicProvider{}
	}
	return NewHTTPProvider(endpoint, apiKey, nil)
}
