package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"symptom-chatbot-backend/models"
)

// AnalysisClient talks to the external symptom-analysis service over
// HTTP. It implements AnalysisBackend.
type AnalysisClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAnalysisClient(baseURL, apiKey string) *AnalysisClient {
	return &AnalysisClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *AnalysisClient) CreateSession(ctx context.Context, req models.CreateSessionRequest) error {
	_, err := c.post(ctx, models.EndpointCreateSession, req)
	return err
}

func (c *AnalysisClient) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error) {
	body, err := c.post(ctx, models.EndpointAnalyze, req)
	if err != nil {
		return nil, err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	return &result, nil
}

func (c *AnalysisClient) post(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis API error (%d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
