package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/housing-pricer/app/responses"
	"github.com/housing-pricer/app/services"
	"go.uber.org/zap"
)

// AdminController controller cho các thao tác vận hành
type AdminController struct {
	cacheService   services.ICacheService
	historyService *services.HistoryService
	startedAt      time.Time
	logger         *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(cacheService services.ICacheService, historyService *services.HistoryService, logger *zap.Logger) *AdminController {
	return &AdminController{
		cacheService:   cacheService,
		historyService: historyService,
		startedAt:      time.Now(),
		logger:         logger,
	}
}

// GetStats thống kê cache + history + uptime
func (ac *AdminController) GetStats(c *gin.Context) {
	resp := responses.AdminStatsResponse{
		UptimeSeconds: int64(time.Since(ac.startedAt).Seconds()),
	}

	if stats, err := ac.cacheService.GetStats(c.Request.Context()); err == nil {
		resp.Cache = &responses.CacheStatsPayload{
			HitRate:    stats.HitRate,
			TotalHits:  stats.TotalHits,
			TotalMiss:  stats.TotalMiss,
			TotalItems: stats.TotalItems,
		}
	} else {
		ac.logger.Warn("Lỗi lấy cache stats", zap.Error(err))
	}

	if count, err := ac.historyService.Count(c.Request.Context()); err == nil {
		resp.HistoryCount = count
	}

	c.JSON(http.StatusOK, resp)
}

// InvalidateCache xóa toàn bộ prediction cache
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if err := ac.cacheService.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "CACHE_ERROR",
			Message: "Lỗi clear cache: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Đã clear prediction cache"})
}

// GetHistory danh sách lịch sử định giá mới nhất
func (ac *AdminController) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := ac.historyService.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "HISTORY_ERROR",
			Message: "Lỗi lấy lịch sử: " + err.Error(),
		})
		return
	}

	total, err := ac.historyService.Count(c.Request.Context())
	if err != nil {
		ac.logger.Warn("Lỗi đếm lịch sử", zap.Error(err))
	}

	c.JSON(http.StatusOK, responses.HistoryResponse{
		Records: records,
		Total:   total,
	})
}
