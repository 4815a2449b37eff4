package responses

import (
	"github.com/housing-pricer/app/models"
)

// PredictionResponse response định giá một model
type PredictionResponse struct {
	RequestID        string                  `json:"request_id"`         // ID request để trace
	Result           models.PredictionResult `json:"result"`             // Kết quả định giá
	CacheHit         bool                    `json:"cache_hit"`          // Có hit cache không
	ProcessingTimeMs int64                   `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// EnsemblePredictionResponse response định giá tổng hợp
type EnsemblePredictionResponse struct {
	RequestID        string                `json:"request_id"`         // ID request để trace
	Result           models.EnsembleResult `json:"result"`             // Kết quả tổng hợp
	ProcessingTimeMs int64                 `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// ParseResponse response trích field từ mô tả
type ParseResponse struct {
	Fields           map[string]any `json:"fields"`             // Field đã trích
	Parser           string         `json:"parser"`             // Parser đã chạy (llm/regex)
	ProcessingTimeMs int64          `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// ParseAndPredictResponse response parse rồi định giá
type ParseAndPredictResponse struct {
	Fields           map[string]any           `json:"fields"`             // Field đã trích
	Parser           string                   `json:"parser"`             // Parser đã chạy
	Result           *models.PredictionResult `json:"result,omitempty"`   // Kết quả một model
	Ensemble         *models.EnsembleResult   `json:"ensemble,omitempty"` // Kết quả ensemble
	ProcessingTimeMs int64                    `json:"processing_time_ms"` // Thời gian xử lý (ms)
}

// AvailableModelsResponse danh sách model đang serve
type AvailableModelsResponse struct {
	Models       []models.ModelInfo `json:"models"`        // Metadata các model
	DefaultModel string             `json:"default_model"` // Model mặc định
}

// ModelInfoResponse metadata một model
type ModelInfoResponse struct {
	Model models.ModelInfo `json:"model"`
}

// HealthResponse response health check
type HealthResponse struct {
	Status   string   `json:"status"`   // "ok"
	Models   []string `json:"models"`   // Tên các model đang serve
	Features int      `json:"features"` // Số feature của schema
}

// HistoryResponse danh sách lịch sử định giá
type HistoryResponse struct {
	Records []models.PredictionRecord `json:"records"`
	Total   int64                     `json:"total"`
}

// AdminStatsResponse thống kê admin
type AdminStatsResponse struct {
	Cache         *CacheStatsPayload `json:"cache"`          // Thống kê cache
	HistoryCount  int64              `json:"history_count"`  // Số dòng lịch sử
	UptimeSeconds int64              `json:"uptime_seconds"` // Uptime
}

// CacheStatsPayload thống kê cache cho admin response
type CacheStatsPayload struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ErrorResponse response lỗi chuẩn
type ErrorResponse struct {
	Error   string `json:"error"`   // Mã lỗi máy đọc
	Message string `json:"message"` // Mô tả cho người đọc
}
