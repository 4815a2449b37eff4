package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return NewPipeline(loadTestTables(t), nil)
}

func TestPipeline_FullListing(t *testing.T) {
	p := newTestPipeline(t)

	vec, resolved := p.Transform(RawInput{
		"Area":      100.0,
		"Bedrooms":  3,
		"Bathrooms": 2,
		"City":      "Hà Nội",
		"District":  "Ba Đình",
		"Direction": "Đông Nam",
	})

	assert.Equal(t, "Hà Nội", resolved.City)
	assert.Equal(t, "Ba Đình", resolved.District)
	assert.True(t, resolved.DistrictMatched)

	get := func(name string) float64 {
		v, ok := vec.Get(name)
		require.True(t, ok, "feature %q", name)
		return v
	}

	assert.Equal(t, 100.0, get("Area"))
	assert.Equal(t, 4.0, get("House direction"))
	// Field vắng mặt nhận default
	assert.Equal(t, 1.0, get("Balcony direction"))
	assert.Equal(t, 0.0, get("Legal status"))
	assert.Equal(t, 1.0, get("Furniture state"))
	assert.Equal(t, 1.0, get("Floors"))

	assert.Equal(t, 1.0, get("new_has_house_direction"))
	assert.Equal(t, 0.0, get("new_has_balcony_direction"))
	assert.InDelta(t, 2.0/3.0, get("new_bathroom_bedroom_ratio"), 1e-9)
	assert.Equal(t, 5.0, get("new_total_rooms"))
	assert.InDelta(t, 20.0, get("new_avg_room_size"), 1e-9)
	assert.Equal(t, 3.0, get("Area_binned"))

	assert.Equal(t, 100.0, get("area_in_hà_nội"))
	assert.Equal(t, 0.0, get("area_in_hồ_chí_minh"))
	assert.Equal(t, 0.0, get("area_in_bình_dương"))
	assert.Equal(t, 0.0, get("area_in_đà_nẵng"))
	assert.InDelta(t, 0.05, get("room_density"), 1e-9)

	// Thống kê quận Ba Đình đổ vào 5 cột cuối
	assert.InDelta(t, 53.2, get("new_district_area_mean"), 1e-9)
	assert.InDelta(t, 48.0, get("new_district_area_median"), 1e-9)
	assert.Equal(t, 534.0, get("new_district_sample_count"))
	assert.Equal(t, 4.0, get("new_district_tier"))
}

func TestPipeline_UnknownEverything(t *testing.T) {
	p := newTestPipeline(t)

	vec, resolved := p.Transform(RawInput{
		"Area":      100.0,
		"City":      "Cần Thơ",
		"District":  "Ninh Kiều",
		"Direction": "InvalidDir",
	})

	// City lạ đi thẳng qua, không reject
	assert.Equal(t, "Cần Thơ", resolved.City)
	assert.False(t, resolved.DistrictMatched)

	get := func(name string) float64 {
		v, _ := vec.Get(name)
		return v
	}

	assert.Equal(t, 1.0, get("House direction")) // hướng lạ → fallback
	assert.Equal(t, -1.0, get("new_city"))
	assert.Equal(t, -1.0, get("new_district"))

	// Không indicator thành phố nào bật
	assert.Equal(t, 0.0, get("area_in_hồ_chí_minh"))
	assert.Equal(t, 0.0, get("area_in_hà_nội"))
	assert.Equal(t, 0.0, get("area_in_bình_dương"))
	assert.Equal(t, 0.0, get("area_in_đà_nẵng"))

	// Quận ngoài gazetteer → thống kê default
	assert.Equal(t, 70.0, get("new_district_area_mean"))
	assert.Equal(t, 2.0, get("new_district_tier"))
}

func TestPipeline_EmptyInputDefaults(t *testing.T) {
	p := newTestPipeline(t)

	vec, resolved := p.Transform(RawInput{})

	// Thiếu toàn bộ vẫn ra đủ 41 giá trị hữu hạn
	vals := vec.Values()
	require.Len(t, vals, NumFeatures)

	get := func(name string) float64 {
		v, _ := vec.Get(name)
		return v
	}

	assert.Equal(t, DefaultArea, get("Area"))
	assert.Equal(t, DefaultFloors, get("Floors"))
	assert.Equal(t, DefaultBedrooms, get("Bedrooms"))
	assert.Equal(t, DefaultBathrooms, get("Bathrooms"))
	assert.Equal(t, 0.0, get("new_has_house_direction"))
	assert.Equal(t, 0.0, get("new_has_balcony_direction"))

	// Không city → default city của bảng
	assert.Equal(t, "Hồ Chí Minh", resolved.City)
	assert.Equal(t, DefaultArea, get("area_in_hồ_chí_minh"))
}

func TestPipeline_StringTypedNumerics(t *testing.T) {
	p := newTestPipeline(t)

	vec, _ := p.Transform(RawInput{
		"Area":     "85.5",
		"Bedrooms": "3",
		"Floors":   "không rõ", // parse fail → default
	})

	get := func(name string) float64 {
		v, _ := vec.Get(name)
		return v
	}
	assert.InDelta(t, 85.5, get("Area"), 1e-9)
	assert.Equal(t, 3.0, get("Bedrooms"))
	assert.Equal(t, DefaultFloors, get("Floors"))
}

func TestPipeline_NumericDirectionPassthrough(t *testing.T) {
	p := newTestPipeline(t)

	vec, _ := p.Transform(RawInput{"Direction": 6})
	v, _ := vec.Get("House direction")
	assert.Equal(t, 6.0, v)
	hv, _ := vec.Get("new_has_house_direction")
	assert.Equal(t, 1.0, hv)
}

func TestPipeline_AliasKeysAccepted(t *testing.T) {
	p := newTestPipeline(t)

	// Nhận cả tên cột gốc của model lẫn tên field API
	vec, _ := p.Transform(RawInput{
		"Access Road":     4.0,
		"House direction": "Tây",
		"Legal status":    "Sổ hồng",
	})

	get := func(name string) float64 {
		v, _ := vec.Get(name)
		return v
	}
	assert.Equal(t, 4.0, get("Access Road"))
	assert.Equal(t, 1.0, get("new_has_access_road"))
	assert.Equal(t, 1.0, get("access_quality"))
	assert.Equal(t, 1.0, get("Legal status"))
}

func TestPipeline_DistrictInfersCity(t *testing.T) {
	p := newTestPipeline(t)

	_, resolved := p.Transform(RawInput{"District": "Ba Đình"})
	assert.Equal(t, "Hà Nội", resolved.City)
}

func TestPipeline_Deterministic(t *testing.T) {
	p := newTestPipeline(t)
	in := RawInput{
		"Area":     120.0,
		"City":     "hcm",
		"District": "q7",
		"Ward":     "Phường Tân Phong",
	}

	first, _ := p.Transform(in)
	for i := 0; i < 5; i++ {
		again, _ := p.Transform(in)
		assert.Equal(t, first.Values(), again.Values())
	}
}

func TestColumns_RenameForLightGBM(t *testing.T) {
	plain := Columns(false)
	renamed := Columns(true)
	require.Len(t, plain, NumFeatures)
	require.Len(t, renamed, NumFeatures)

	idx := map[string]int{}
	for i, n := range plain {
		idx[n] = i
	}
	assert.Equal(t, "Access_Road", renamed[idx["Access Road"]])
	assert.Equal(t, "House_direction", renamed[idx["House direction"]])
	assert.Equal(t, "Furniture_state", renamed[idx["Furniture state"]])
	// Cột không nằm trong bảng rename giữ nguyên
	assert.Equal(t, "Area", renamed[idx["Area"]])
	assert.Equal(t, "new_city", renamed[idx["new_city"]])
}
