package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
)

// DefaultK is the number of sources requested from the endpoint.
const DefaultK = 3

// RemoteHTTPResolver implements ports.QueryResolver against the RAG query endpoint.
type RemoteHTTPResolver struct {
	endpoint string
	k        int
	client   *http.Client
}

// NewRemoteHTTPResolver creates a resolver posting to endpoint.
func NewRemoteHTTPResolver(endpoint string, k int, timeout time.Duration) *RemoteHTTPResolver {
	if k <= 0 {
		k = DefaultK
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteHTTPResolver{
		endpoint: endpoint,
		k:        k,
		client:   &http.Client{Timeout: timeout},
	}
}

// queryRequest is the endpoint request body.
type queryRequest struct {
	Action string `json:"action"`
	Query  string `json:"query"`
	K      int    `json:"k"`
}

// queryResponse is the endpoint response body.
type queryResponse struct {
	Response string                    `json:"response"`
	Sources  []entities.SourceCitation `json:"sources"`
}

// Resolve performs a single round trip to the endpoint.
func (r *RemoteHTTPResolver) Resolve(ctx context.Context, query string) (*entities.QueryResult, error) {
	jsonData, err := json.Marshal(queryRequest{Action: "query", Query: query, K: r.k})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}

	var body queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	for i, src := range body.Sources {
		if !src.ScoreInRange() {
			return nil, fmt.Errorf("decoding response: sources[%d].score %v is outside [0, 1]", i, src.Score)
		}
	}

	return &entities.QueryResult{
		Query:      query,
		AnswerText: body.Response,
		Sources:    body.Sources,
	}, nil
}
