package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/housing-pricer/app/requests"
	"github.com/housing-pricer/app/responses"
	"github.com/housing-pricer/app/services"
	"github.com/housing-pricer/helpers/utils"
	"github.com/housing-pricer/internal/features"
	"go.uber.org/zap"
)

// PredictController controller xử lý các request định giá và parse
type PredictController struct {
	predictService *services.PredictService
	parseService   *services.ParseService
	modelService   *services.ModelService
	defaultModel   string
	logger         *zap.Logger
}

// NewPredictController tạo mới PredictController
func NewPredictController(predictService *services.PredictService, parseService *services.ParseService, modelService *services.ModelService, defaultModel string, logger *zap.Logger) *PredictController {
	return &PredictController{
		predictService: predictService,
		parseService:   parseService,
		modelService:   modelService,
		defaultModel:   defaultModel,
		logger:         logger,
	}
}

// Predict định giá một căn nhà
func (pc *PredictController) Predict(c *gin.Context) {
	var req requests.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()
	requestID := utils.GenerateUUID()
	input := features.RawInput(req.Features)

	if req.UseEnsemble {
		result, err := pc.predictService.PredictEnsemble(c.Request.Context(), input)
		if err != nil {
			pc.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, responses.EnsemblePredictionResponse{
			RequestID:        requestID,
			Result:           *result,
			ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		})
		return
	}

	modelName := req.ModelName
	if modelName == "" {
		modelName = pc.defaultModel
	}

	result, cacheHit, err := pc.predictService.Predict(c.Request.Context(), input, modelName, req.CacheEnabled())
	if err != nil {
		pc.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.PredictionResponse{
		RequestID:        requestID,
		Result:           *result,
		CacheHit:         cacheHit,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// ParseText trích field từ mô tả tự do
func (pc *PredictController) ParseText(c *gin.Context) {
	var req requests.ParseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	parsed, err := pc.parseService.Parse(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "PARSE_ERROR",
			Message: "Lỗi parse mô tả: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ParseResponse{
		Fields:           parsed.Fields,
		Parser:           parsed.Parser,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// ParseAndPredict parse mô tả rồi định giá luôn
func (pc *PredictController) ParseAndPredict(c *gin.Context) {
	var req requests.ParseAndPredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	parsed, err := pc.parseService.Parse(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "PARSE_ERROR",
			Message: "Lỗi parse mô tả: " + err.Error(),
		})
		return
	}

	input := features.RawInput(parsed.Fields)
	resp := responses.ParseAndPredictResponse{
		Fields: parsed.Fields,
		Parser: parsed.Parser,
	}

	if req.UseEnsemble {
		ensemble, err := pc.predictService.PredictEnsemble(c.Request.Context(), input)
		if err != nil {
			pc.writeError(c, err)
			return
		}
		resp.Ensemble = ensemble
	} else {
		modelName := req.ModelName
		if modelName == "" {
			modelName = pc.defaultModel
		}
		result, _, err := pc.predictService.Predict(c.Request.Context(), input, modelName, true)
		if err != nil {
			pc.writeError(c, err)
			return
		}
		resp.Result = result
	}

	resp.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	c.JSON(http.StatusOK, resp)
}

// ListModels danh sách model đang serve
func (pc *PredictController) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, responses.AvailableModelsResponse{
		Models:       pc.modelService.ListModels(),
		DefaultModel: pc.defaultModel,
	})
}

// GetModel metadata một model
func (pc *PredictController) GetModel(c *gin.Context) {
	info, err := pc.modelService.GetModel(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "MODEL_NOT_FOUND",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, responses.ModelInfoResponse{Model: info})
}

// HealthCheck health check endpoint
func (pc *PredictController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:   "ok",
		Models:   pc.modelService.ModelNames(),
		Features: features.NumFeatures,
	})
}

// writeError dịch lỗi service sang JSON response đúng status.
func (pc *PredictController) writeError(c *gin.Context, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   verr.Code,
			Message: verr.Message,
		})
		return
	}
	if errors.Is(err, services.ErrModelNotFound) {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "MODEL_NOT_FOUND",
			Message: err.Error(),
		})
		return
	}

	pc.logger.Error("Lỗi định giá", zap.Error(err))
	c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
		Error:   "PREDICT_ERROR",
		Message: "Lỗi định giá: " + err.Error(),
	})
}
