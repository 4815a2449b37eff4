package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/housing-pricer/app/config"
	"github.com/housing-pricer/app/models"
	"github.com/housing-pricer/helpers/utils"
	"github.com/housing-pricer/internal/features"
	"github.com/housing-pricer/internal/mlclient"
	"go.uber.org/zap"
)

// ErrModelNotFound model không có trong registry.
var ErrModelNotFound = errors.New("model không tồn tại")

// modelBinding một model đã đăng ký: scorer + metadata.
type modelBinding struct {
	cfg    config.ModelBinding
	scorer mlclient.Scorer
	local  bool
}

// ModelService registry các model giá nhà và logic ensemble.
// Inference chạy qua mlclient.Scorer: HTTP scorer khi binding có
// endpoint, ridge fallback nội bộ khi không.
type ModelService struct {
	bindings   map[string]*modelBinding
	order      []string
	confidence config.ConfidenceCfg
	logger     *zap.Logger
}

// NewModelService build registry từ config. Các binding không có
// endpoint dùng chung một ridge scorer embedded.
func NewModelService(bindings []config.ModelBinding, confidence config.ConfidenceCfg, logger *zap.Logger) (*ModelService, error) {
	if len(bindings) == 0 {
		return nil, fmt.Errorf("không có model binding nào")
	}

	var ridge *mlclient.RidgeScorer
	ms := &ModelService{
		bindings:   make(map[string]*modelBinding, len(bindings)),
		confidence: confidence,
		logger:     logger,
	}

	for _, b := range bindings {
		binding := &modelBinding{cfg: b}
		if b.Endpoint != "" {
			binding.scorer = mlclient.NewHTTPScorer(b.Name, b.Endpoint)
		} else {
			if ridge == nil {
				var err error
				ridge, err = mlclient.LoadEmbeddedRidge("ridge")
				if err != nil {
					return nil, fmt.Errorf("load ridge fallback: %w", err)
				}
			}
			binding.scorer = ridge
			binding.local = true
			logger.Info("Model dùng ridge fallback nội bộ", zap.String("model", b.Name))
		}
		ms.bindings[b.Name] = binding
		ms.order = append(ms.order, b.Name)
	}
	return ms, nil
}

// ListModels trả metadata mọi model theo thứ tự đăng ký.
func (ms *ModelService) ListModels() []models.ModelInfo {
	out := make([]models.ModelInfo, 0, len(ms.order))
	for _, name := range ms.order {
		b := ms.bindings[name]
		out = append(out, models.ModelInfo{
			Name:     b.cfg.Name,
			R2:       b.cfg.R2,
			Endpoint: b.cfg.Endpoint,
			Local:    b.local,
		})
	}
	return out
}

// GetModel trả metadata một model.
func (ms *ModelService) GetModel(name string) (models.ModelInfo, error) {
	b, ok := ms.bindings[name]
	if !ok {
		return models.ModelInfo{}, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	return models.ModelInfo{
		Name:     b.cfg.Name,
		R2:       b.cfg.R2,
		Endpoint: b.cfg.Endpoint,
		Local:    b.local,
	}, nil
}

// HasModel kiểm tra model có trong registry không.
func (ms *ModelService) HasModel(name string) bool {
	_, ok := ms.bindings[name]
	return ok
}

// Predict chạy inference một model trên vector đã assemble.
func (ms *ModelService) Predict(ctx context.Context, name string, vec *features.FeatureVector, resolved features.Resolved) (*models.PredictionResult, error) {
	b, ok := ms.bindings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}

	// LightGBM lưu feature name dạng underscore; ridge nội bộ dùng
	// tên gốc nên chỉ rename khi gọi scorer ngoài.
	featureMap := vec.AsMap(b.cfg.RenameUnderscore && !b.local)

	price, err := b.scorer.Predict(ctx, featureMap)
	if err != nil {
		return nil, fmt.Errorf("inference %s: %w", name, err)
	}

	result := &models.PredictionResult{
		ModelName:       name,
		PriceTyVND:      price,
		PriceFormatted:  utils.FormatPrice(price),
		Confidence:      ms.confidenceFor(b.cfg.R2),
		City:            resolved.City,
		District:        resolved.District,
		DistrictMatched: resolved.DistrictMatched,
	}

	ms.logger.Debug("Predicted",
		zap.String("model", name),
		zap.Float64("price_ty_vnd", price),
		zap.Float64("confidence", result.Confidence))
	return result, nil
}

// EnsemblePredict chạy mọi model và tổng hợp: giá = mean, độ phân
// tán = std, confidence = mean confidence các model thành công.
// Model lỗi bị bỏ qua; mọi model đều lỗi mới trả error.
func (ms *ModelService) EnsemblePredict(ctx context.Context, vec *features.FeatureVector, resolved features.Resolved) (*models.EnsembleResult, error) {
	perModel := make([]models.PredictionResult, 0, len(ms.order))
	var lastErr error

	for _, name := range ms.order {
		r, err := ms.Predict(ctx, name, vec, resolved)
		if err != nil {
			ms.logger.Warn("Model lỗi trong ensemble, bỏ qua",
				zap.String("model", name), zap.Error(err))
			lastErr = err
			continue
		}
		perModel = append(perModel, *r)
	}

	if len(perModel) == 0 {
		return nil, fmt.Errorf("ensemble: mọi model đều lỗi: %w", lastErr)
	}

	var sum, confSum float64
	for _, r := range perModel {
		sum += r.PriceTyVND
		confSum += r.Confidence
	}
	mean := sum / float64(len(perModel))

	var variance float64
	for _, r := range perModel {
		d := r.PriceTyVND - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(perModel)))

	return &models.EnsembleResult{
		PriceTyVND:     mean,
		PriceFormatted: utils.FormatPrice(mean),
		PriceStd:       std,
		Confidence:     confSum / float64(len(perModel)),
		PerModel:       perModel,
	}, nil
}

// confidenceFor heuristic r2*100 clamp vào [min, max] cấu hình.
func (ms *ModelService) confidenceFor(r2 float64) float64 {
	c := r2 * 100
	if c < ms.confidence.Min {
		return ms.confidence.Min
	}
	if c > ms.confidence.Max {
		return ms.confidence.Max
	}
	return c
}

// ModelNames danh sách tên model đã sort, phục vụ logging/response.
func (ms *ModelService) ModelNames() []string {
	names := make([]string, len(ms.order))
	copy(names, ms.order)
	sort.Strings(names)
	return names
}
