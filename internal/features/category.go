package features

import (
	"hash/fnv"
	"strings"
)

// Cột categorical label-encoded trong feature vector.
const (
	ColCity     = "new_city"
	ColDistrict = "new_district"
	ColWard     = "new_street_ward"
)

// SentinelUnknown code cho giá trị ngoài tập class đã fit. Tree
// model route -1 như một nhánh riêng.
const SentinelUnknown = -1

// hashModulus không gian mã cho đường hash fallback.
const hashModulus = 1000

// CategoryEncoder encode categorical theo hai đường:
//   - cột có bảng class đã fit lúc training: tra code, ngoài tập → SentinelUnknown
//   - cột không có bảng (ward): FNV-1a hash mod 1000, rỗng → 0
//
// Cả hai đường đều total, không có nhánh lỗi.
type CategoryEncoder struct {
	classes map[string]map[string]int
}

func newCategoryEncoder(districts []District) *CategoryEncoder {
	cityNames := make([]string, 0, 4)
	districtNames := make([]string, 0, len(districts))
	for _, d := range districts {
		cityNames = append(cityNames, d.City)
		districtNames = append(districtNames, d.Name)
	}

	// Thứ tự class = sort tăng dần, khớp LabelEncoder lúc fit.
	classes := map[string]map[string]int{
		ColCity:     indexClasses(sortedUnique(cityNames)),
		ColDistrict: indexClasses(sortedUnique(districtNames)),
		// ColWard không có encoder đã fit → đường hash
	}
	return &CategoryEncoder{classes: classes}
}

func indexClasses(sorted []string) map[string]int {
	m := make(map[string]int, len(sorted))
	for i, c := range sorted {
		m[c] = i
	}
	return m
}

// Encode trả integer code cho (column, value).
func (e *CategoryEncoder) Encode(column, value string) int {
	fitted, ok := e.classes[column]
	if !ok {
		return hashEncode(value)
	}
	if code, found := fitted[strings.TrimSpace(value)]; found {
		return code
	}
	return SentinelUnknown
}

// HasFittedTable cho biết cột có bảng class đã fit hay không.
func (e *CategoryEncoder) HasFittedTable(column string) bool {
	_, ok := e.classes[column]
	return ok
}

// hashEncode mã hóa ổn định cho cột không có encoder: FNV-1a 32-bit
// mod 1000. Python dùng hash() builtin vốn đổi theo process; FNV giữ
// tính deterministic giữa các lần chạy.
func hashEncode(value string) int {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(v))
	return int(h.Sum32() % hashModulus)
}
