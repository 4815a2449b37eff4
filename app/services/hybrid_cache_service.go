package services

import (
	"context"
	"fmt"
	"time"

	"github.com/housing-pricer/app/models"
	"go.uber.org/zap"
)

// HybridCacheService cache service kết hợp LRU in-memory (L1) + Redis
// (L2). L1 nhanh, L2 chia sẻ giữa các instance.
type HybridCacheService struct {
	l1     *MemoryCacheService
	l2     ICacheService // nil nếu không cấu hình Redis
	logger *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service. l2 cho phép nil.
func NewHybridCacheService(l1 *MemoryCacheService, l2 ICacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

// Get lấy kết quả từ cache (L1 trước, L2 sau)
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.PredictionResult, bool, error) {
	result, found, err := hcs.l1.Get(ctx, key)
	if err == nil && found {
		return result, true, nil
	}

	if hcs.l2 == nil {
		return nil, false, nil
	}

	result, found, err = hcs.l2.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("Lỗi L2 cache, coi như miss", zap.Error(err))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	// Có trong L2, đồng bộ lên L1 cho lần sau
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.l1.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("Lỗi sync L2->L1", zap.Error(err), zap.String("key", key))
		}
	}()

	hcs.logger.Debug("L2 cache hit", zap.String("key", key))
	return result, true, nil
}

// Set lưu kết quả vào cả hai tầng
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.PredictionResult) error {
	if err := hcs.l1.Set(ctx, key, result); err != nil {
		return err
	}
	if hcs.l2 == nil {
		return nil
	}
	if err := hcs.l2.Set(ctx, key, result); err != nil {
		// L2 hỏng không chặn response, chỉ log
		hcs.logger.Warn("Lỗi lưu vào L2 cache", zap.Error(err), zap.String("key", key))
	}
	return nil
}

// Delete xóa key khỏi cả hai tầng
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	err1 := hcs.l1.Delete(ctx, key)
	var err2 error
	if hcs.l2 != nil {
		err2 = hcs.l2.Delete(ctx, key)
	}
	if err1 != nil || err2 != nil {
		return fmt.Errorf("delete errors: %v, %v", err1, err2)
	}
	return nil
}

// Clear xóa toàn bộ cache cả hai tầng
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.l1.Clear(ctx); err != nil {
		return err
	}
	if hcs.l2 != nil {
		if err := hcs.l2.Clear(ctx); err != nil {
			return err
		}
	}
	hcs.logger.Info("Đã clear hybrid cache")
	return nil
}

// GetStats gộp thống kê từ cả hai tầng
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1Stats, err := hcs.l1.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	if hcs.l2 == nil {
		return l1Stats, nil
	}

	l2Stats, err := hcs.l2.GetStats(ctx)
	if err != nil {
		hcs.logger.Warn("Lỗi lấy stats L2, chỉ trả L1", zap.Error(err))
		return l1Stats, nil
	}

	combined := &CacheStats{
		TotalHits:  l1Stats.TotalHits + l2Stats.TotalHits,
		TotalMiss:  l1Stats.TotalMiss + l2Stats.TotalMiss,
		TotalItems: l1Stats.TotalItems + l2Stats.TotalItems,
	}
	if total := combined.TotalHits + combined.TotalMiss; total > 0 {
		combined.HitRate = float64(combined.TotalHits) / float64(total)
	}
	return combined, nil
}

// Close đóng kết nối cả hai tầng
func (hcs *HybridCacheService) Close() error {
	err1 := hcs.l1.Close()
	var err2 error
	if hcs.l2 != nil {
		err2 = hcs.l2.Close()
	}
	if err1 != nil || err2 != nil {
		return fmt.Errorf("close errors: %v, %v", err1, err2)
	}
	return nil
}
