// Package textparse trích field có cấu trúc từ mô tả rao bán nhà
// tiếng Việt tự do, bằng regex trên text đã bỏ dấu. Đây là đường
// fallback deterministic khi không có LLM.
package textparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/housing-pricer/internal/normalizer"
)

var (
	reArea       = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*m\s*2`)
	reBedrooms   = regexp.MustCompile(`(\d+)\s*(?:pn\b|phong ngu)`)
	reBathrooms  = regexp.MustCompile(`(\d+)\s*(?:wc\b|toilet|phong tam|nha ve sinh)`)
	reFloors     = regexp.MustCompile(`(\d+)\s*(?:tang|lau|tret)`)
	reFrontage   = regexp.MustCompile(`mat tien\s*(?:rong)?\s*(\d+(?:[.,]\d+)?)\s*m`)
	reAccessRoad = regexp.MustCompile(`(?:duong|hem)\s*(?:truoc nha|vao|rong)\s*(\d+(?:[.,]\d+)?)\s*m`)
	reDirection  = regexp.MustCompile(`huong\s+(dong nam|dong bac|tay nam|tay bac|dong|tay|nam|bac)`)
	reDistrictNo = regexp.MustCompile(`(?:quan|q\.?)\s*(\d{1,2})\b`)
)

// Từ khóa pháp lý / nội thất theo thứ tự ưu tiên (cụm dài trước).
var legalKeywords = []struct{ key, value string }{
	{"so hong", "Sổ hồng"},
	{"so do", "Sổ đỏ"},
	{"hop dong mua ban", "Hợp đồng mua bán"},
	{"hdmb", "Hợp đồng mua bán"},
	{"dang cho so", "Đang chờ sổ"},
	{"vi bang", "Vi bằng"},
}

var furnitureKeywords = []struct{ key, value string }{
	{"noi that cao cap", "Cao cấp"},
	{"full noi that", "Đầy đủ"},
	{"day du noi that", "Đầy đủ"},
	{"noi that co ban", "Cơ bản"},
	{"nha trong", "Trống"},
	{"ban giao tho", "Bàn giao thô"},
}

// Extractor quét mô tả tự do và trả field map cho pipeline. Gazetteer
// quận/thành phố inject lúc khởi tạo để scan tên riêng.
type Extractor struct {
	districts map[string]string // key bỏ dấu → tên chuẩn
	cities    map[string]string
}

// NewExtractor tạo extractor với danh sách tên quận chuẩn và bảng
// alias thành phố (key đã bỏ dấu → tên chuẩn).
func NewExtractor(districtNames []string, cityAliases map[string]string) *Extractor {
	districts := make(map[string]string, len(districtNames))
	for _, name := range districtNames {
		districts[normalizer.Key(name)] = name
	}
	cities := make(map[string]string, len(cityAliases))
	for alias, canon := range cityAliases {
		cities[normalizer.Key(alias)] = canon
	}
	return &Extractor{districts: districts, cities: cities}
}

// Extract quét text và trả các field nhận ra được. Field không xuất
// hiện trong text thì vắng mặt trong map (pipeline tự áp default).
func (e *Extractor) Extract(text string) map[string]any {
	t := " " + normalizer.Key(text) + " "
	out := map[string]any{}

	if v, ok := firstNumber(reArea, t); ok {
		out["Area"] = v
	}
	if v, ok := firstNumber(reBedrooms, t); ok {
		out["Bedrooms"] = v
	}
	if v, ok := firstNumber(reBathrooms, t); ok {
		out["Bathrooms"] = v
	}
	if v, ok := firstNumber(reFloors, t); ok {
		out["Floors"] = v
	}
	if v, ok := firstNumber(reFrontage, t); ok {
		out["Frontage"] = v
	}
	if v, ok := firstNumber(reAccessRoad, t); ok {
		out["AccessRoad"] = v
	}

	if m := reDirection.FindStringSubmatch(t); m != nil {
		out["Direction"] = m[1]
	}
	for _, kw := range legalKeywords {
		if strings.Contains(t, kw.key) {
			out["LegalStatus"] = kw.value
			break
		}
	}
	for _, kw := range furnitureKeywords {
		if strings.Contains(t, kw.key) {
			out["Furniture"] = kw.value
			break
		}
	}

	if district := e.findDistrict(t); district != "" {
		out["District"] = district
	}
	if city := e.findCity(t); city != "" {
		out["City"] = city
	}

	return out
}

// findDistrict ưu tiên quận số ("quận 7"), sau đó scan tên riêng.
// Tên dài match trước để "Bắc Từ Liêm" không bị "Từ Liêm" nuốt.
func (e *Extractor) findDistrict(t string) string {
	if m := reDistrictNo.FindStringSubmatch(t); m != nil {
		return "Quận " + m[1]
	}
	best := ""
	bestLen := 0
	for key, canon := range e.districts {
		if len(key) > bestLen && strings.Contains(t, key) {
			best = canon
			bestLen = len(key)
		}
	}
	return best
}

func (e *Extractor) findCity(t string) string {
	best := ""
	bestLen := 0
	for key, canon := range e.cities {
		if len(key) > bestLen && containsWord(t, key) {
			best = canon
			bestLen = len(key)
		}
	}
	return best
}

// containsWord match theo ranh giới khoảng trắng, tránh alias ngắn
// ("sg", "hn") match giữa từ khác.
func containsWord(t, key string) bool {
	return strings.Contains(t, " "+key+" ") || strings.Contains(t, " "+key+",") || strings.Contains(t, " "+key+".")
}

func firstNumber(re *regexp.Regexp, t string) (float64, bool) {
	m := re.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
