package services

import (
	"context"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/housing-pricer/app/models"
	"go.uber.org/zap"
)

// MemoryCacheService cache in-memory LRU (L1), luôn có mặt kể cả khi
// không cấu hình Redis.
type MemoryCacheService struct {
	cache  *lru.Cache[string, *models.PredictionResult]
	logger *zap.Logger

	hits   int64
	misses int64
}

// NewMemoryCacheService tạo LRU cache với sức chứa cho trước.
func NewMemoryCacheService(size int, logger *zap.Logger) (*MemoryCacheService, error) {
	cache, err := lru.New[string, *models.PredictionResult](size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}
	return &MemoryCacheService{cache: cache, logger: logger}, nil
}

// Get lấy kết quả định giá từ cache
func (mcs *MemoryCacheService) Get(ctx context.Context, key string) (*models.PredictionResult, bool, error) {
	if result, found := mcs.cache.Get(key); found {
		atomic.AddInt64(&mcs.hits, 1)
		mcs.logger.Debug("L1 cache hit", zap.String("key", key))
		return result, true, nil
	}
	atomic.AddInt64(&mcs.misses, 1)
	return nil, false, nil
}

// Set lưu kết quả định giá vào cache
func (mcs *MemoryCacheService) Set(ctx context.Context, key string, result *models.PredictionResult) error {
	mcs.cache.Add(key, result)
	return nil
}

// Delete xóa một entry khỏi cache
func (mcs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	mcs.cache.Remove(key)
	return nil
}

// Clear xóa tất cả cache
func (mcs *MemoryCacheService) Clear(ctx context.Context) error {
	mcs.cache.Purge()
	mcs.logger.Info("Đã clear L1 cache")
	return nil
}

// GetStats lấy thống kê cache
func (mcs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits := atomic.LoadInt64(&mcs.hits)
	misses := atomic.LoadInt64(&mcs.misses)
	stats := &CacheStats{
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(mcs.cache.Len()),
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats, nil
}

// Close không có kết nối để đóng
func (mcs *MemoryCacheService) Close() error { return nil }
