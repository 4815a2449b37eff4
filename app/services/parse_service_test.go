package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/housing-pricer/app/config"
	"github.com/housing-pricer/internal/textparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testExtractor() *textparse.Extractor {
	return textparse.NewExtractor(
		[]string{"Quận 7", "Bình Thạnh"},
		map[string]string{"hcm": "Hồ Chí Minh"},
	)
}

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
}

func TestParseService_LLMPath(t *testing.T) {
	srv := chatServer(t, `{"Area": 100, "Bedrooms": 3, "District": "Quận 7"}`, http.StatusOK)
	defer srv.Close()

	llm := NewLLMClient(config.LLMCfg{Endpoint: srv.URL, Model: "test", TimeoutMs: 2000}, "test-key", zap.NewNop())
	require.NotNil(t, llm)

	ps := NewParseService(llm, testExtractor(), zap.NewNop())
	result, err := ps.Parse(context.Background(), "Nhà 100m2, 3PN, quận 7")
	require.NoError(t, err)

	assert.Equal(t, "llm", result.Parser)
	assert.Equal(t, 100.0, result.Fields["Area"])
	assert.Equal(t, "Quận 7", result.Fields["District"])
}

func TestParseService_LLMFenceAndFallback(t *testing.T) {
	// Model bọc JSON trong code fence vẫn parse được
	srv := chatServer(t, "```json\n{\"Area\": 65}\n```", http.StatusOK)
	defer srv.Close()

	llm := NewLLMClient(config.LLMCfg{Endpoint: srv.URL, Model: "test", TimeoutMs: 2000}, "test-key", zap.NewNop())
	ps := NewParseService(llm, testExtractor(), zap.NewNop())

	result, err := ps.Parse(context.Background(), "nhà 65m2")
	require.NoError(t, err)
	assert.Equal(t, "llm", result.Parser)
	assert.Equal(t, 65.0, result.Fields["Area"])
}

func TestParseService_RegexFallbackOnLLMError(t *testing.T) {
	srv := chatServer(t, "", http.StatusInternalServerError)
	defer srv.Close()

	llm := NewLLMClient(config.LLMCfg{Endpoint: srv.URL, Model: "test", TimeoutMs: 2000}, "test-key", zap.NewNop())
	ps := NewParseService(llm, testExtractor(), zap.NewNop())

	result, err := ps.Parse(context.Background(), "Bán nhà 80m2 2PN Bình Thạnh HCM")
	require.NoError(t, err)
	assert.Equal(t, "regex", result.Parser)
	assert.Equal(t, 80.0, result.Fields["Area"])
	assert.Equal(t, "Bình Thạnh", result.Fields["District"])
}

func TestParseService_NoLLMConfigured(t *testing.T) {
	// Không endpoint/key → NewLLMClient trả nil, chỉ chạy regex
	assert.Nil(t, NewLLMClient(config.LLMCfg{}, "", zap.NewNop()))

	ps := NewParseService(nil, testExtractor(), zap.NewNop())
	result, err := ps.Parse(context.Background(), "nhà 90m2 3 tầng hcm")
	require.NoError(t, err)
	assert.Equal(t, "regex", result.Parser)
	assert.Equal(t, 90.0, result.Fields["Area"])
	assert.Equal(t, 3.0, result.Fields["Floors"])
	assert.Equal(t, "Hồ Chí Minh", result.Fields["City"])
}

func TestParseService_EmptyText(t *testing.T) {
	ps := NewParseService(nil, testExtractor(), zap.NewNop())
	_, err := ps.Parse(context.Background(), "   ")
	assert.Error(t, err)
}

func TestExtractJSON_Salvage(t *testing.T) {
	fields, err := extractJSON(`Kết quả: {"Area": 70} xong.`)
	require.NoError(t, err)
	assert.Equal(t, 70.0, fields["Area"])

	_, err = extractJSON("không có json nào")
	assert.Error(t, err)
}
