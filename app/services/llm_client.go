package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/housing-pricer/app/config"
	"go.uber.org/zap"
)

// LLMClient gọi một chat endpoint OpenAI-compatible để trích field từ
// mô tả tự do. Optional: không có endpoint/key thì parse service chỉ
// chạy đường regex.
type LLMClient struct {
	cfg    config.LLMCfg
	apiKey string
	client *http.Client
	logger *zap.Logger
}

// NewLLMClient tạo client; trả nil nếu thiếu endpoint hoặc key.
func NewLLMClient(cfg config.LLMCfg, apiKey string, logger *zap.Logger) *LLMClient {
	if cfg.Endpoint == "" || apiKey == "" {
		return nil
	}
	return &LLMClient{
		cfg:    cfg,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
		logger: logger,
	}
}

const extractPrompt = `Trích xuất thông tin bất động sản từ câu tiếng Việt sau thành JSON.

Câu: "%s"

Các trường cần trích xuất (chỉ trả về những trường có trong câu):
- Area: diện tích (số, m2)
- Bedrooms: số phòng ngủ
- Bathrooms: số toilet/WC
- Floors: số tầng
- Frontage: mặt tiền (m)
- AccessRoad: đường trước nhà (m)
- Direction: hướng nhà
- BalconyDirection: hướng ban công
- District: quận/huyện
- Ward: phường/xã
- City: thành phố
- LegalStatus: pháp lý (sổ đỏ, sổ hồng...)
- Furniture: nội thất

CHỈ TRẢ VỀ JSON THUẦN TÚY, KHÔNG GIẢI THÍCH.
Ví dụ: {"Area": 100, "Bedrooms": 3, "District": "Quận 7"}`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractFields gửi mô tả lên LLM và parse JSON trả về.
func (lc *LLMClient) ExtractFields(ctx context.Context, text string) (map[string]any, error) {
	body, err := json.Marshal(chatRequest{
		Model: lc.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(extractPrompt, text)},
		},
		MaxTokens:   300,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lc.cfg.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+lc.apiKey)

	resp, err := lc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat endpoint: status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("chat endpoint: không có choice nào")
	}

	fields, err := extractJSON(out.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	lc.logger.Debug("LLM extract OK", zap.Int("fields", len(fields)))
	return fields, nil
}

var reJSONFence = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// extractJSON parse JSON object từ nội dung model trả về, chấp nhận
// cả dạng bọc trong code fence.
func extractJSON(content string) (map[string]any, error) {
	content = strings.TrimSpace(content)

	var fields map[string]any
	if err := json.Unmarshal([]byte(content), &fields); err == nil {
		return fields, nil
	}

	if m := reJSONFence.FindStringSubmatch(content); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &fields); err == nil {
			return fields, nil
		}
	}

	// Cứu vãn: cắt từ { đầu tiên đến } cuối cùng
	if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(content[start:end+1]), &fields); err == nil {
			return fields, nil
		}
	}

	return nil, fmt.Errorf("không tìm thấy JSON trong response LLM")
}
