package services

import (
	"context"
	"testing"

	"github.com/housing-pricer/app/config"
	"github.com/housing-pricer/internal/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPredictService(t *testing.T) *PredictService {
	t.Helper()
	logger := zap.NewNop()

	tables, err := features.LoadTables()
	require.NoError(t, err)
	pipeline := features.NewPipeline(tables, logger)

	modelSvc, err := NewModelService(config.Default().Models, defaultConfidence(), logger)
	require.NoError(t, err)

	l1, err := NewMemoryCacheService(128, logger)
	require.NoError(t, err)
	cache := NewHybridCacheService(l1, nil, logger)

	return NewPredictService(pipeline, modelSvc, cache, NewNopHistoryService(logger), logger)
}

func TestPredictService_Validate(t *testing.T) {
	ps := newTestPredictService(t)

	cases := []struct {
		name string
		in   features.RawInput
		code string
	}{
		{"thiếu Area", features.RawInput{"Bedrooms": 3}, "AREA_REQUIRED"},
		{"Area không parse được", features.RawInput{"Area": "không rõ"}, "AREA_REQUIRED"},
		{"Area âm", features.RawInput{"Area": -5.0}, "AREA_REQUIRED"},
		{"Area bằng 0", features.RawInput{"Area": 0.0}, "AREA_REQUIRED"},
		{"Area quá lớn", features.RawInput{"Area": 20000.0}, "AREA_OUT_OF_RANGE"},
		{"quá nhiều phòng ngủ", features.RawInput{"Area": 80.0, "Bedrooms": 25}, "BEDROOMS_OUT_OF_RANGE"},
		{"quá nhiều phòng tắm", features.RawInput{"Area": 80.0, "Bathrooms": 30}, "BATHROOMS_OUT_OF_RANGE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ps.Validate(tc.in)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.code, verr.Code)
		})
	}

	assert.NoError(t, ps.Validate(features.RawInput{"Area": 80.0}))
	assert.NoError(t, ps.Validate(features.RawInput{"Area": "85.5", "Bedrooms": 3}))
}

func TestPredictService_PredictAndCache(t *testing.T) {
	ps := newTestPredictService(t)
	in := features.RawInput{"Area": 100.0, "City": "Hà Nội", "District": "Ba Đình"}

	first, hit, err := ps.Predict(context.Background(), in, "lightgbm", true)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Greater(t, first.PriceTyVND, 0.0)

	second, hit, err := ps.Predict(context.Background(), in, "lightgbm", true)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first.PriceTyVND, second.PriceTyVND)
}

func TestPredictService_CacheDisabled(t *testing.T) {
	ps := newTestPredictService(t)
	in := features.RawInput{"Area": 100.0}

	_, hit, err := ps.Predict(context.Background(), in, "lightgbm", false)
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = ps.Predict(context.Background(), in, "lightgbm", false)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestPredictService_UnknownModel(t *testing.T) {
	ps := newTestPredictService(t)

	_, _, err := ps.Predict(context.Background(), features.RawInput{"Area": 100.0}, "catboost", false)
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestPredictService_Ensemble(t *testing.T) {
	ps := newTestPredictService(t)

	result, err := ps.PredictEnsemble(context.Background(), features.RawInput{"Area": 100.0, "City": "hcm"})
	require.NoError(t, err)
	assert.Len(t, result.PerModel, 3)
	assert.Greater(t, result.PriceTyVND, 0.0)
	// 3 binding cùng dùng một ridge fallback nên std = 0
	assert.Equal(t, 0.0, result.PriceStd)
}

func TestFingerprint(t *testing.T) {
	a := features.RawInput{"Area": 100.0, "City": "Hà Nội"}
	b := features.RawInput{"City": "Hà Nội", "Area": 100.0}
	c := features.RawInput{"Area": 101.0, "City": "Hà Nội"}

	// Ổn định theo nội dung, không theo thứ tự key
	assert.Equal(t, Fingerprint(a, "lightgbm"), Fingerprint(b, "lightgbm"))
	assert.NotEqual(t, Fingerprint(a, "lightgbm"), Fingerprint(c, "lightgbm"))
	assert.NotEqual(t, Fingerprint(a, "lightgbm"), Fingerprint(a, "xgboost"))
}
