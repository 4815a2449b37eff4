package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestTables(t *testing.T) *TableSet {
	t.Helper()
	ts, err := LoadTables()
	require.NoError(t, err)
	return ts
}

func TestEncodingTable_Direction(t *testing.T) {
	ts := loadTestTables(t)

	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{"Vietnamese_With_Diacritics", "Đông Nam", 4},
		{"Vietnamese_No_Diacritics", "dong nam", 4},
		{"English", "Southeast", 4},
		{"English_Abbreviation", "se", 4},
		{"Uppercase", "ĐÔNG NAM", 4},
		{"Extra_Whitespace", "  đông nam  ", 4},
		{"North", "Bắc", 3},
		{"West", "tây", 1},
		{"Empty_Fallback", "", 1},
		{"Garbled_Fallback", "InvalidDir", 1},
		{"Novel_Synonym_Fallback", "huong mat troi moc", 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ts.Direction.Encode(tc.input))
		})
	}
}

func TestEncodingTable_LegalStatus(t *testing.T) {
	ts := loadTestTables(t)

	assert.Equal(t, 0, ts.LegalStatus.Encode("Sổ đỏ"))
	assert.Equal(t, 0, ts.LegalStatus.Encode("so do"))
	assert.Equal(t, 1, ts.LegalStatus.Encode("Sổ hồng"))
	assert.Equal(t, 2, ts.LegalStatus.Encode("Hợp đồng"))
	assert.Equal(t, 3, ts.LegalStatus.Encode("Đang chờ sổ"))
	assert.Equal(t, 4, ts.LegalStatus.Encode("Không rõ"))

	// Fallback = "Sổ đỏ"
	assert.Equal(t, 0, ts.LegalStatus.Encode(""))
	assert.Equal(t, 0, ts.LegalStatus.Encode("giay viet tay"))
}

func TestEncodingTable_Furniture(t *testing.T) {
	ts := loadTestTables(t)

	assert.Equal(t, 0, ts.Furniture.Encode("Cao cấp"))
	assert.Equal(t, 0, ts.Furniture.Encode("full"))
	assert.Equal(t, 1, ts.Furniture.Encode("Đầy đủ"))
	assert.Equal(t, 2, ts.Furniture.Encode("cơ bản"))
	assert.Equal(t, 3, ts.Furniture.Encode("Không nội thất"))
	assert.Equal(t, 3, ts.Furniture.Encode("Trống"))

	// Fallback = "Đầy đủ"
	assert.Equal(t, 1, ts.Furniture.Encode(""))
	assert.Equal(t, 1, ts.Furniture.Encode("noi that nhap khau"))
}

func TestLoadTables_Gazetteer(t *testing.T) {
	ts := loadTestTables(t)

	// 47 quận, 4 thành phố
	assert.Len(t, ts.Districts, 47)

	cities := map[string]int{}
	for _, d := range ts.Districts {
		cities[d.City]++
	}
	assert.Len(t, cities, 4)
	for _, city := range []string{CityHoChiMinh, CityHaNoi, CityBinhDuong, CityDaNang} {
		assert.Contains(t, cities, city)
	}
}
