package requests

// PredictRequest request định giá một căn nhà. Features là field map
// thô (~13 field), pipeline tự áp default cho field thiếu.
type PredictRequest struct {
	Features    map[string]any `json:"features" binding:"required"` // Field thô của căn nhà
	ModelName   string         `json:"model_name,omitempty"`        // Model sử dụng (mặc định theo config)
	UseEnsemble bool           `json:"use_ensemble,omitempty"`      // Chạy mọi model và tổng hợp
	UseCache    *bool          `json:"use_cache,omitempty"`         // Mặc định true
}

// CacheEnabled trả giá trị use_cache, mặc định true khi vắng mặt.
func (r *PredictRequest) CacheEnabled() bool {
	if r.UseCache == nil {
		return true
	}
	return *r.UseCache
}

// ParseTextRequest request trích field từ mô tả tự do.
type ParseTextRequest struct {
	Text string `json:"text" binding:"required"` // Mô tả rao bán
}

// ParseAndPredictRequest request parse mô tả rồi định giá luôn.
type ParseAndPredictRequest struct {
	Text        string `json:"text" binding:"required"` // Mô tả rao bán
	ModelName   string `json:"model_name,omitempty"`    // Model sử dụng
	UseEnsemble bool   `json:"use_ensemble,omitempty"`  // Chạy ensemble
}
