package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PredictionResult kết quả định giá của một model.
type PredictionResult struct {
	ModelName      string  `json:"model_name" bson:"model_name"`
	PriceTyVND     float64 `json:"price_ty_vnd" bson:"price_ty_vnd"`
	PriceFormatted string  `json:"price_formatted" bson:"price_formatted"`
	Confidence     float64 `json:"confidence" bson:"confidence"`

	// Vị trí đã resolve, phục vụ debug phía client
	City            string `json:"city" bson:"city"`
	District        string `json:"district,omitempty" bson:"district,omitempty"`
	DistrictMatched bool   `json:"district_matched" bson:"district_matched"`
}

// EnsembleResult định giá tổng hợp từ nhiều model.
type EnsembleResult struct {
	PriceTyVND     float64            `json:"price_ty_vnd" bson:"price_ty_vnd"`
	PriceFormatted string             `json:"price_formatted" bson:"price_formatted"`
	PriceStd       float64            `json:"price_std" bson:"price_std"`
	Confidence     float64            `json:"confidence" bson:"confidence"`
	PerModel       []PredictionResult `json:"per_model" bson:"per_model"`
}

// ModelInfo metadata một model đang serve.
type ModelInfo struct {
	Name     string  `json:"name"`
	R2       float64 `json:"r2"`
	Endpoint string  `json:"endpoint,omitempty"`
	Local    bool    `json:"local"` // true = ridge fallback nội bộ
}

// ParsedListing kết quả trích field từ mô tả tự do.
type ParsedListing struct {
	Fields map[string]any `json:"fields"`
	Parser string         `json:"parser"` // "llm" | "regex"
}

// PredictionRecord một dòng lịch sử định giá lưu MongoDB.
type PredictionRecord struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Fingerprint string             `json:"fingerprint" bson:"fingerprint"`
	Input       map[string]any     `json:"input" bson:"input"`
	ModelName   string             `json:"model_name" bson:"model_name"`
	PriceTyVND  float64            `json:"price_ty_vnd" bson:"price_ty_vnd"`
	Confidence  float64            `json:"confidence" bson:"confidence"`
	City        string             `json:"city" bson:"city"`
	District    string             `json:"district,omitempty" bson:"district,omitempty"`
	CacheHit    bool               `json:"cache_hit" bson:"cache_hit"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
