package features

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/housing-pricer/internal/normalizer"
	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml
var tablesYAML []byte

//go:embed data/districts.yaml
var districtsYAML []byte

// EncodingTable bảng mã hóa categorical đóng: key chuẩn hóa → code,
// kèm một fallback code cho giá trị rỗng hoặc không thuộc nhóm
// synonym nào. Encode không bao giờ lỗi.
type EncodingTable struct {
	name     string
	codes    map[string]int
	fallback int
}

// Encode chuẩn hóa raw value và tra code. Rỗng hoặc không match →
// fallback code của bảng.
func (t *EncodingTable) Encode(raw string) int {
	key := normalizer.Key(raw)
	if key == "" {
		return t.fallback
	}
	if code, ok := t.codes[key]; ok {
		return code
	}
	return t.fallback
}

// Fallback trả về fallback code của bảng.
func (t *EncodingTable) Fallback() int { return t.fallback }

// Name tên bảng, dùng cho logging.
func (t *EncodingTable) Name() string { return t.name }

// LocationStats thống kê diện tích theo quận, tính offline từ tập
// train. DefaultLocationStats dùng khi quận không có trong bảng.
type LocationStats struct {
	AreaMean    float64 `yaml:"area_mean" json:"area_mean"`
	AreaMedian  float64 `yaml:"area_median" json:"area_median"`
	AreaStd     float64 `yaml:"area_std" json:"area_std"`
	SampleCount float64 `yaml:"sample_count" json:"sample_count"`
	Tier        float64 `yaml:"tier" json:"tier"`
}

// DefaultLocationStats xấp xỉ median toàn tập train: thiếu tín hiệu
// vị trí thì không nghiêng về cực nào.
func DefaultLocationStats() LocationStats {
	return LocationStats{
		AreaMean:    70.0,
		AreaMedian:  65.0,
		AreaStd:     30.0,
		SampleCount: 100,
		Tier:        2,
	}
}

// District một entry gazetteer: tên chuẩn, thành phố cha, thống kê.
type District struct {
	Name  string        `yaml:"name"`
	City  string        `yaml:"city"`
	Stats LocationStats `yaml:"stats"`
}

// TableSet toàn bộ bảng tĩnh của pipeline, load một lần lúc startup
// và inject vào Pipeline. Immutable sau khi tạo.
type TableSet struct {
	Direction   *EncodingTable
	LegalStatus *EncodingTable
	Furniture   *EncodingTable
	Cities      *CityResolver
	Categories  *CategoryEncoder
	Stats       *StatsTable
	Districts   []District
}

type encodingTableYAML struct {
	Fallback int              `yaml:"fallback"`
	Codes    map[int][]string `yaml:"codes"`
}

type tablesFile struct {
	Direction   encodingTableYAML `yaml:"direction"`
	LegalStatus encodingTableYAML `yaml:"legal_status"`
	Furniture   encodingTableYAML `yaml:"furniture"`
	CityAliases map[string]string `yaml:"city_aliases"`
	DefaultCity string            `yaml:"default_city"`
}

type districtsFile struct {
	Districts []District `yaml:"districts"`
}

// LoadTables parse các bảng embedded và build TableSet.
func LoadTables() (*TableSet, error) {
	return LoadTablesWithThreshold(defaultFuzzyThreshold)
}

// LoadTablesWithThreshold như LoadTables nhưng cho phép chỉnh ngưỡng
// fuzzy match tên quận (test dùng để tắt fuzzy).
func LoadTablesWithThreshold(fuzzyThreshold float64) (*TableSet, error) {
	var tf tablesFile
	if err := yaml.Unmarshal(tablesYAML, &tf); err != nil {
		return nil, fmt.Errorf("parse tables.yaml: %w", err)
	}

	var df districtsFile
	if err := yaml.Unmarshal(districtsYAML, &df); err != nil {
		return nil, fmt.Errorf("parse districts.yaml: %w", err)
	}
	if len(df.Districts) == 0 {
		return nil, fmt.Errorf("districts.yaml: gazetteer rỗng")
	}

	index := newDistrictIndex(df.Districts, fuzzyThreshold)

	ts := &TableSet{
		Direction:   buildEncodingTable("direction", tf.Direction),
		LegalStatus: buildEncodingTable("legal_status", tf.LegalStatus),
		Furniture:   buildEncodingTable("furniture", tf.Furniture),
		Cities:      newCityResolver(tf.CityAliases, tf.DefaultCity, df.Districts, index),
		Categories:  newCategoryEncoder(df.Districts),
		Stats:       newStatsTable(df.Districts, index),
		Districts:   df.Districts,
	}
	return ts, nil
}

func buildEncodingTable(name string, y encodingTableYAML) *EncodingTable {
	codes := make(map[string]int)
	for code, synonyms := range y.Codes {
		for _, syn := range synonyms {
			codes[normalizer.Key(syn)] = code
		}
	}
	return &EncodingTable{name: name, codes: codes, fallback: y.Fallback}
}

// sortedUnique trả danh sách đã sort tăng dần (byte order, khớp thứ
// tự LabelEncoder fit lúc training) và loại trùng.
func sortedUnique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
