package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/housing-pricer/app/models"
	"github.com/housing-pricer/internal/textparse"
	"go.uber.org/zap"
)

// ParseService biến mô tả rao bán tự do thành field map cho pipeline.
// Đường chính là LLM (nếu cấu hình), fallback là regex extractor
// deterministic; extractor luôn chạy được nên /parse không bao giờ
// chết vì thiếu LLM.
type ParseService struct {
	llm       *LLMClient // nil = chỉ regex
	extractor *textparse.Extractor
	logger    *zap.Logger
}

// NewParseService tạo parse service. llm cho phép nil.
func NewParseService(llm *LLMClient, extractor *textparse.Extractor, logger *zap.Logger) *ParseService {
	return &ParseService{llm: llm, extractor: extractor, logger: logger}
}

// Parse trích field từ mô tả. Kết quả ghi rõ parser nào đã chạy.
func (ps *ParseService) Parse(ctx context.Context, text string) (*models.ParsedListing, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("mô tả rỗng")
	}

	if ps.llm != nil {
		fields, err := ps.llm.ExtractFields(ctx, text)
		if err == nil && len(fields) > 0 {
			return &models.ParsedListing{Fields: fields, Parser: "llm"}, nil
		}
		if err != nil {
			ps.logger.Warn("LLM parse lỗi, fallback regex", zap.Error(err))
		}
	}

	fields := ps.extractor.Extract(text)
	return &models.ParsedListing{Fields: fields, Parser: "regex"}, nil
}
