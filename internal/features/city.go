package features

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/housing-pricer/internal/normalizer"
	"github.com/xrash/smetrics"
)

// defaultFuzzyThreshold ngưỡng điểm để chấp nhận fuzzy match tên
// quận. Đặt cao: near-miss chính tả ("Binh Thanh") phải vào, quận
// ngoài gazetteer ("Ninh Kiều") phải rớt về default.
const defaultFuzzyThreshold = 0.92

// districtIndex resolve tên quận thô về tên chuẩn trong gazetteer:
// exact theo normalized key trước, fuzzy (Jaro-Winkler / Levenshtein)
// sau. Dùng chung cho CityResolver và StatsTable để hai đường không
// lệch nhau.
type districtIndex struct {
	keys      []string
	canon     map[string]string
	threshold float64
}

func newDistrictIndex(districts []District, threshold float64) *districtIndex {
	canon := make(map[string]string, len(districts))
	keys := make([]string, 0, len(districts))
	for _, d := range districts {
		key := normalizer.DistrictKey(d.Name)
		if _, dup := canon[key]; !dup {
			keys = append(keys, key)
		}
		canon[key] = d.Name
	}
	sort.Strings(keys)
	return &districtIndex{keys: keys, canon: canon, threshold: threshold}
}

// Match trả tên quận chuẩn cho input thô, false nếu không resolve
// được.
func (ix *districtIndex) Match(raw string) (string, bool) {
	query := normalizer.DistrictKey(raw)
	if query == "" {
		return "", false
	}
	if name, ok := ix.canon[query]; ok {
		return name, true
	}
	if ix.threshold > 1.0 {
		return "", false
	}

	bestScore := 0.0
	bestKey := ""
	for _, key := range ix.keys {
		score := fuzzyScore(query, key)
		if score > bestScore {
			bestScore = score
			bestKey = key
		}
	}
	if bestScore >= ix.threshold {
		return ix.canon[bestKey], true
	}
	return "", false
}

// fuzzyScore blend Jaro-Winkler với Levenshtein similarity, lấy max.
func fuzzyScore(query, candidate string) float64 {
	jw := smetrics.JaroWinkler(query, candidate, 0.7, 4)

	levDist := levenshtein.ComputeDistance(query, candidate)
	maxLen := math.Max(float64(len(query)), float64(len(candidate)))
	lev := 0.0
	if maxLen > 0 {
		lev = 1.0 - float64(levDist)/maxLen
	}

	return math.Max(jw, lev)
}

// CityResolver resolve tên thành phố chuẩn từ input, theo thứ tự ưu
// tiên: city alias → suy từ district → default city. Luôn trả về một
// string; city lạ được pass-through nguyên trạng.
type CityResolver struct {
	aliases      map[string]string
	districtCity map[string]string // canonical district name → city
	defaultCity  string
	index        *districtIndex
}

func newCityResolver(aliases map[string]string, defaultCity string, districts []District, index *districtIndex) *CityResolver {
	normAliases := make(map[string]string, len(aliases))
	for alias, canon := range aliases {
		normAliases[normalizer.Key(alias)] = canon
	}
	districtCity := make(map[string]string, len(districts))
	for _, d := range districts {
		districtCity[d.Name] = d.City
	}
	return &CityResolver{
		aliases:      normAliases,
		districtCity: districtCity,
		defaultCity:  defaultCity,
		index:        index,
	}
}

// Resolve trả tên thành phố. Không có nhánh lỗi.
func (r *CityResolver) Resolve(city, district string) string {
	if c := strings.TrimSpace(city); c != "" {
		if canon, ok := r.aliases[normalizer.Key(c)]; ok {
			return canon
		}
		return c
	}
	if strings.TrimSpace(district) != "" {
		if name, ok := r.index.Match(district); ok {
			return r.districtCity[name]
		}
	}
	return r.defaultCity
}

// DefaultCity thành phố mặc định khi không có tín hiệu vị trí.
func (r *CityResolver) DefaultCity() string { return r.defaultCity }

// Aliases trả bản copy bảng alias đã normalize (key bỏ dấu → tên
// chuẩn), cho các consumer ngoài pipeline như text extractor.
func (r *CityResolver) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}
