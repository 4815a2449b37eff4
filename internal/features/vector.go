package features

// NumFeatures số feature cố định mà model đã train mong đợi.
const NumFeatures = 41

// FeatureNames tên và thứ tự 41 feature. Đây là contract cứng với
// model đã train: thêm/bớt/đổi chỗ một feature đồng nghĩa retrain và
// release model mới theo cặp.
var FeatureNames = [NumFeatures]string{
	"Area",
	"Frontage",
	"Access Road",
	"House direction",
	"Balcony direction",
	"Floors",
	"Bedrooms",
	"Bathrooms",
	"Legal status",
	"Furniture state",
	"new_has_balcony_direction",
	"new_has_house_direction",
	"new_city",
	"new_district",
	"new_street_ward",
	"new_has_access_road",
	"has_frontage",
	"new_bathroom_bedroom_ratio",
	"new_total_rooms",
	"new_is_large_house",
	"new_avg_room_size",
	"new_is_luxury",
	"new_is_multi_story",
	"Area_binned",
	"area_x_bathrooms",
	"area_x_bedrooms",
	"area_x_floors",
	"bedrooms_x_bathrooms",
	"bedrooms_x_floors",
	"luxury_score",
	"area_in_hồ_chí_minh",
	"area_in_hà_nội",
	"area_in_bình_dương",
	"area_in_đà_nẵng",
	"room_density",
	"access_quality",
	"new_district_area_mean",
	"new_district_area_median",
	"new_district_area_std",
	"new_district_sample_count",
	"new_district_tier",
}

// underscoreRenames LightGBM lưu feature name với underscore thay vì
// space; binding nào cần thì apply qua Columns(true).
var underscoreRenames = map[string]string{
	"Access Road":       "Access_Road",
	"House direction":   "House_direction",
	"Balcony direction": "Balcony_direction",
	"Legal status":      "Legal_status",
	"Furniture state":   "Furniture_state",
}

// FeatureVector record 41 giá trị theo đúng thứ tự FeatureNames.
// Immutable sau khi assemble, tạo mới cho từng request.
type FeatureVector struct {
	values [NumFeatures]float64
}

// Values trả bản copy slice 41 giá trị theo thứ tự schema.
func (v *FeatureVector) Values() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v.values[:])
	return out
}

// At giá trị tại vị trí i.
func (v *FeatureVector) At(i int) float64 { return v.values[i] }

// Get giá trị theo tên feature; false nếu tên ngoài schema.
func (v *FeatureVector) Get(name string) (float64, bool) {
	for i, n := range FeatureNames {
		if n == name {
			return v.values[i], true
		}
	}
	return 0, false
}

// Columns trả danh sách tên cột theo thứ tự schema; renamed=true áp
// bảng rename underscore cho binding LightGBM.
func Columns(renamed bool) []string {
	out := make([]string, NumFeatures)
	for i, name := range FeatureNames {
		if renamed {
			if r, ok := underscoreRenames[name]; ok {
				name = r
			}
		}
		out[i] = name
	}
	return out
}

// AsMap trả map tên → giá trị (mất thứ tự, chỉ dùng cho JSON debug).
func (v *FeatureVector) AsMap(renamed bool) map[string]float64 {
	cols := Columns(renamed)
	out := make(map[string]float64, NumFeatures)
	for i, c := range cols {
		out[c] = v.values[i]
	}
	return out
}

// Assemble điểm chốt duy nhất ghép mọi giá trị đã tính vào record 41
// feature đúng tên, đúng thứ tự. Mọi field đều được gán — không có
// giá trị thiếu nào lọt xuống model.
func Assemble(b Basic, e Encoded, d Derived, s LocationStats) *FeatureVector {
	var v FeatureVector
	v.values = [NumFeatures]float64{
		b.Area,
		b.Frontage,
		b.AccessRoad,
		float64(e.HouseDirection),
		float64(e.BalconyDirection),
		b.Floors,
		b.Bedrooms,
		b.Bathrooms,
		float64(e.LegalStatus),
		float64(e.Furniture),
		float64(d.HasBalconyDirection),
		float64(d.HasHouseDirection),
		float64(e.City),
		float64(e.District),
		float64(e.Ward),
		float64(d.HasAccessRoad),
		float64(d.HasFrontage),
		d.BathroomBedroomRatio,
		d.TotalRooms,
		float64(d.IsLargeHouse),
		d.AvgRoomSize,
		float64(d.IsLuxury),
		float64(d.IsMultiStory),
		float64(d.AreaBinned),
		d.AreaXBathrooms,
		d.AreaXBedrooms,
		d.AreaXFloors,
		d.BedroomsXBathrooms,
		d.BedroomsXFloors,
		float64(d.LuxuryScore),
		d.AreaInHoChiMinh,
		d.AreaInHaNoi,
		d.AreaInBinhDuong,
		d.AreaInDaNang,
		d.RoomDensity,
		float64(d.AccessQuality),
		s.AreaMean,
		s.AreaMedian,
		s.AreaStd,
		s.SampleCount,
		s.Tier,
	}
	return &v
}
