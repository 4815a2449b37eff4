package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPScorer gọi một model server ngoài qua HTTP JSON.
type HTTPScorer struct {
	name     string
	endpoint string
	client   *http.Client
}

// NewHTTPScorer tạo scorer trỏ vào endpoint của model server.
func NewHTTPScorer(name, endpoint string) *HTTPScorer {
	return &HTTPScorer{
		name:     name,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type scoreRequest struct {
	Model    string             `json:"model"`
	Features map[string]float64 `json:"features"`
}

type scoreResponse struct {
	Prediction float64 `json:"prediction"`
}

func (s *HTTPScorer) Name() string { return s.name }

// Predict gửi feature map lên model server và đọc giá dự đoán.
func (s *HTTPScorer) Predict(ctx context.Context, features map[string]float64) (float64, error) {
	body, err := json.Marshal(scoreRequest{Model: s.name, Features: features})
	if err != nil {
		return 0, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model server %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model server %s: status %d", s.name, resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode score response: %w", err)
	}
	return out.Prediction, nil
}
