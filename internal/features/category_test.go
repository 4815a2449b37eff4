package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryEncoder_FittedCityClasses(t *testing.T) {
	ts := loadTestTables(t)
	enc := ts.Categories

	// Thứ tự class = sort byte tăng dần của 4 tên thành phố,
	// khớp LabelEncoder lúc fit.
	assert.Equal(t, 0, enc.Encode(ColCity, "Bình Dương"))
	assert.Equal(t, 1, enc.Encode(ColCity, "Hà Nội"))
	assert.Equal(t, 2, enc.Encode(ColCity, "Hồ Chí Minh"))
	assert.Equal(t, 3, enc.Encode(ColCity, "Đà Nẵng"))

	// Thành phố ngoài tập train → sentinel
	assert.Equal(t, SentinelUnknown, enc.Encode(ColCity, "Cần Thơ"))
	assert.Equal(t, SentinelUnknown, enc.Encode(ColCity, ""))
}

func TestCategoryEncoder_FittedDistrictClasses(t *testing.T) {
	ts := loadTestTables(t)
	enc := ts.Categories

	codes := map[int]bool{}
	for _, d := range ts.Districts {
		code := enc.Encode(ColDistrict, d.Name)
		assert.GreaterOrEqual(t, code, 0, "district %q phải có code fit", d.Name)
		assert.Less(t, code, 47)
		assert.False(t, codes[code], "code %d bị trùng", code)
		codes[code] = true
	}

	assert.Equal(t, SentinelUnknown, enc.Encode(ColDistrict, "Ninh Kiều"))
	assert.Equal(t, SentinelUnknown, enc.Encode(ColDistrict, "???"))
}

func TestCategoryEncoder_WardHashFallback(t *testing.T) {
	ts := loadTestTables(t)
	enc := ts.Categories

	// Ward không có encoder fit → đường hash
	assert.False(t, enc.HasFittedTable(ColWard))

	code := enc.Encode(ColWard, "Phường Bến Nghé")
	assert.GreaterOrEqual(t, code, 0)
	assert.Less(t, code, hashModulus)

	// Deterministic giữa các lần gọi
	assert.Equal(t, code, enc.Encode(ColWard, "Phường Bến Nghé"))

	// Rỗng → 0
	assert.Equal(t, 0, enc.Encode(ColWard, ""))
	assert.Equal(t, 0, enc.Encode(ColWard, "   "))
}
