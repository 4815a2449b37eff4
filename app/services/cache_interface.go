package services

import (
	"context"

	"github.com/housing-pricer/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService interface định nghĩa các method cần thiết cho
// prediction cache. Key là fingerprint của (input, model).
type ICacheService interface {
	// Get lấy kết quả định giá từ cache
	Get(ctx context.Context, key string) (*models.PredictionResult, bool, error)

	// Set lưu kết quả định giá vào cache
	Set(ctx context.Context, key string, result *models.PredictionResult) error

	// Delete xóa một entry khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}
