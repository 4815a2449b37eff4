package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/housing-pricer/app/config"
	"github.com/housing-pricer/app/controllers"
	"github.com/housing-pricer/app/services"
	"github.com/housing-pricer/internal/features"
	"github.com/housing-pricer/internal/textparse"
	"github.com/housing-pricer/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	tables, err := features.LoadTables()
	require.NoError(t, err)
	pipeline := features.NewPipeline(tables, logger)

	modelSvc, err := services.NewModelService(config.Default().Models, config.Default().Confidence, logger)
	require.NoError(t, err)

	l1, err := services.NewMemoryCacheService(128, logger)
	require.NoError(t, err)
	cache := services.NewHybridCacheService(l1, nil, logger)
	history := services.NewNopHistoryService(logger)

	predictSvc := services.NewPredictService(pipeline, modelSvc, cache, history, logger)

	extractor := textparse.NewExtractor([]string{"Quận 7", "Ba Đình"}, tables.Cities.Aliases())
	parseSvc := services.NewParseService(nil, extractor, logger)

	predictController := controllers.NewPredictController(predictSvc, parseSvc, modelSvc, "lightgbm", logger)
	adminController := controllers.NewAdminController(cache, history, logger)

	router := gin.New()
	routes.SetupAllRoutes(router, predictController, adminController)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPredictEndpoint_OK(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/predict", gin.H{
		"features": gin.H{"Area": 100, "City": "Hà Nội", "District": "Ba Đình"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RequestID string `json:"request_id"`
		Result    struct {
			ModelName      string  `json:"model_name"`
			PriceTyVND     float64 `json:"price_ty_vnd"`
			PriceFormatted string  `json:"price_formatted"`
			City           string  `json:"city"`
		} `json:"result"`
		CacheHit bool `json:"cache_hit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "lightgbm", resp.Result.ModelName)
	assert.Greater(t, resp.Result.PriceTyVND, 0.0)
	assert.Contains(t, resp.Result.PriceFormatted, "VND")
	assert.Equal(t, "Hà Nội", resp.Result.City)
	assert.False(t, resp.CacheHit)
	assert.Len(t, resp.RequestID, 36)
	firstRequestID := resp.RequestID

	// Lần hai cùng input phải hit cache
	w = doJSON(t, router, http.MethodPost, "/v1/predict", gin.H{
		"features": gin.H{"Area": 100, "City": "Hà Nội", "District": "Ba Đình"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.CacheHit)
	// Cache hit vẫn phải ra request ID mới
	assert.NotEqual(t, firstRequestID, resp.RequestID)
}

func TestPredictEndpoint_AreaRequired(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/predict", gin.H{
		"features": gin.H{"Bedrooms": 3},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AREA_REQUIRED", resp.Error)
}

func TestPredictEndpoint_UnknownModel(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/predict", gin.H{
		"features":   gin.H{"Area": 80},
		"model_name": "catboost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPredictEndpoint_Ensemble(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/predict", gin.H{
		"features":     gin.H{"Area": 120, "City": "hcm"},
		"use_ensemble": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result struct {
			PerModel []json.RawMessage `json:"per_model"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Result.PerModel, 3)
}

func TestParseEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/parse", gin.H{
		"text": "Nhà 100m2, 3PN, quận 7, sổ hồng",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fields map[string]any `json:"fields"`
		Parser string         `json:"parser"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "regex", resp.Parser)
	assert.Equal(t, 100.0, resp.Fields["Area"])
	assert.Equal(t, "Quận 7", resp.Fields["District"])
}

func TestParseAndPredictEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/parse-and-predict", gin.H{
		"text": "Bán nhà 100m2 3PN 2WC quận 7",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Parser string `json:"parser"`
		Result *struct {
			PriceTyVND float64 `json:"price_ty_vnd"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "regex", resp.Parser)
	require.NotNil(t, resp.Result)
	assert.Greater(t, resp.Result.PriceTyVND, 0.0)
}

func TestModelsEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/v1/models", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Models       []struct{ Name string } `json:"models"`
		DefaultModel string                  `json:"default_model"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Models, 3)
	assert.Equal(t, "lightgbm", list.DefaultModel)

	w = doJSON(t, router, http.MethodGet, "/v1/models/xgboost", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/v1/models/catboost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndStats(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/ready", "/live", "/v1/health"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := doJSON(t, router, http.MethodGet, "/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/admin/cache/invalidate", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/unknown/route", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
