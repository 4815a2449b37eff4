package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/housing-pricer/app/models"
	"github.com/housing-pricer/internal/features"
	"go.uber.org/zap"
)

// ValidationError lỗi input trả về 400 cho client, có mã máy đọc.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Code + ": " + e.Message }

// Giới hạn input. Pipeline tự nó chấp nhận mọi giá trị (degrade về
// default), nhưng API chặn các giá trị vô nghĩa trước khi định giá.
const (
	maxArea      = 10000.0
	maxBedrooms  = 20.0
	maxBathrooms = 20.0
)

// PredictService orchestrate một request định giá: validate input,
// tra cache, chạy pipeline + model, ghi history.
type PredictService struct {
	pipeline *features.Pipeline
	modelSvc *ModelService
	cache    ICacheService
	history  *HistoryService
	logger   *zap.Logger
}

// NewPredictService wire các collaborator.
func NewPredictService(pipeline *features.Pipeline, modelSvc *ModelService, cache ICacheService, history *HistoryService, logger *zap.Logger) *PredictService {
	return &PredictService{
		pipeline: pipeline,
		modelSvc: modelSvc,
		cache:    cache,
		history:  history,
		logger:   logger,
	}
}

// Validate kiểm tra input trước khi định giá. Area là field bắt buộc
// duy nhất; các field khác pipeline tự áp default.
func (ps *PredictService) Validate(in features.RawInput) error {
	if !in.Has("Area") {
		return &ValidationError{Code: "AREA_REQUIRED", Message: "Thiếu diện tích (Area)"}
	}
	area := in.Float(-1, "Area")
	if area <= 0 {
		return &ValidationError{Code: "AREA_REQUIRED", Message: "Diện tích phải là số dương"}
	}
	if area > maxArea {
		return &ValidationError{Code: "AREA_OUT_OF_RANGE", Message: fmt.Sprintf("Diện tích vượt giới hạn %.0f m2", maxArea)}
	}
	if in.Float(0, "Bedrooms") > maxBedrooms {
		return &ValidationError{Code: "BEDROOMS_OUT_OF_RANGE", Message: "Số phòng ngủ vượt giới hạn 20"}
	}
	if in.Float(0, "Bathrooms") > maxBathrooms {
		return &ValidationError{Code: "BATHROOMS_OUT_OF_RANGE", Message: "Số phòng tắm vượt giới hạn 20"}
	}
	return nil
}

// Predict định giá bằng một model. Trả kèm cờ cache hit.
func (ps *PredictService) Predict(ctx context.Context, in features.RawInput, modelName string, useCache bool) (*models.PredictionResult, bool, error) {
	if err := ps.Validate(in); err != nil {
		return nil, false, err
	}
	if !ps.modelSvc.HasModel(modelName) {
		return nil, false, fmt.Errorf("%w: %s", ErrModelNotFound, modelName)
	}

	key := Fingerprint(in, modelName)

	if useCache {
		if cached, found, err := ps.cache.Get(ctx, key); err == nil && found {
			ps.recordHistory(in, cached, key, true)
			return cached, true, nil
		}
	}

	vec, resolved := ps.pipeline.Transform(in)
	result, err := ps.modelSvc.Predict(ctx, modelName, vec, resolved)
	if err != nil {
		return nil, false, err
	}

	if useCache {
		if err := ps.cache.Set(ctx, key, result); err != nil {
			ps.logger.Warn("Lỗi lưu cache", zap.Error(err), zap.String("key", key))
		}
	}
	ps.recordHistory(in, result, key, false)
	return result, false, nil
}

// PredictEnsemble định giá bằng mọi model và tổng hợp. Ensemble không
// cache (key cache gắn với từng model).
func (ps *PredictService) PredictEnsemble(ctx context.Context, in features.RawInput) (*models.EnsembleResult, error) {
	if err := ps.Validate(in); err != nil {
		return nil, err
	}

	vec, resolved := ps.pipeline.Transform(in)
	result, err := ps.modelSvc.EnsemblePredict(ctx, vec, resolved)
	if err != nil {
		return nil, err
	}

	for i := range result.PerModel {
		r := &result.PerModel[i]
		ps.recordHistory(in, r, Fingerprint(in, r.ModelName), false)
	}
	return result, nil
}

func (ps *PredictService) recordHistory(in features.RawInput, result *models.PredictionResult, key string, cacheHit bool) {
	if !ps.history.Enabled() {
		return
	}
	record := &models.PredictionRecord{
		Fingerprint: key,
		Input:       map[string]any(in),
		ModelName:   result.ModelName,
		PriceTyVND:  result.PriceTyVND,
		Confidence:  result.Confidence,
		City:        result.City,
		District:    result.District,
		CacheHit:    cacheHit,
	}
	// Ghi nền, không chặn response
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ps.history.Record(bgCtx, record)
	}()
}

// Fingerprint key cache ổn định cho (input, model): sha256 trên JSON
// với key đã sort.
func Fingerprint(in features.RawInput, modelName string) string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(modelName))
	for _, k := range keys {
		v, _ := json.Marshal(in[k])
		fmt.Fprintf(h, "|%s=%s", k, v)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
