package mlclient

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/ridge.json
var ridgeJSON []byte

// RidgeScorer model tuyến tính nội bộ: bias + tích vô hướng trọng số.
// Dùng làm fallback khi binding không có endpoint, để service chạy
// standalone; độ chính xác thấp hơn model cây thật.
type RidgeScorer struct {
	name    string
	bias    float64
	weights map[string]float64
}

type ridgeFile struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// NewRidgeScorer tạo scorer từ trọng số cho sẵn.
func NewRidgeScorer(name string, bias float64, weights map[string]float64) *RidgeScorer {
	return &RidgeScorer{name: name, bias: bias, weights: weights}
}

// LoadEmbeddedRidge load trọng số ridge đóng gói sẵn trong binary.
func LoadEmbeddedRidge(name string) (*RidgeScorer, error) {
	var f ridgeFile
	if err := json.Unmarshal(ridgeJSON, &f); err != nil {
		return nil, fmt.Errorf("parse ridge.json: %w", err)
	}
	if len(f.Weights) == 0 {
		return nil, fmt.Errorf("ridge.json: không có trọng số")
	}
	return NewRidgeScorer(name, f.Bias, f.Weights), nil
}

func (r *RidgeScorer) Name() string { return r.name }

// Predict tính bias + Σ w_i * x_i. Feature không có trọng số bị bỏ
// qua; giá âm clamp về 0.
func (r *RidgeScorer) Predict(_ context.Context, features map[string]float64) (float64, error) {
	price := r.bias
	for name, w := range r.weights {
		price += w * features[name]
	}
	if price < 0 {
		price = 0
	}
	return price, nil
}
