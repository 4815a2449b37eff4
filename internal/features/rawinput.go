package features

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawInput là field map thô từ API layer. Giá trị loosely typed:
// số có thể đến dưới dạng string, text có thể sai hoa thường/dấu.
type RawInput map[string]any

// Float lấy giá trị numeric theo key, trả default nếu thiếu hoặc
// không parse được. Không bao giờ lỗi.
func (in RawInput) Float(def float64, keys ...string) float64 {
	for _, key := range keys {
		v, ok := in[key]
		if !ok || v == nil {
			continue
		}
		if f, ok := toFloat(v); ok {
			return f
		}
		return def
	}
	return def
}

// String lấy giá trị text đầu tiên không rỗng trong danh sách key.
func (in RawInput) String(keys ...string) string {
	for _, key := range keys {
		if v, ok := in[key]; ok && v != nil {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// Number lấy giá trị đã là số (không parse string), dùng cho các
// field categorical cho phép truyền thẳng code.
func (in RawInput) Number(keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := in[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		}
		return 0, false
	}
	return 0, false
}

// Has kiểm tra field có mặt và không rỗng.
func (in RawInput) Has(keys ...string) bool {
	for _, key := range keys {
		v, ok := in[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr {
			if strings.TrimSpace(s) != "" {
				return true
			}
			continue
		}
		return true
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", "."))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}
