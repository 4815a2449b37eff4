package features

import (
	"go.uber.org/zap"
)

// Default numeric khi field thiếu hoặc không parse được.
const (
	DefaultArea       = 70.0
	DefaultFrontage   = 0.0
	DefaultAccessRoad = 0.0
	DefaultFloors     = 1.0
	DefaultBedrooms   = 2.0
	DefaultBathrooms  = 2.0
)

// Resolved thông tin vị trí đã resolve, trả kèm vector để phục vụ
// logging/diagnostics (city lạ không bị reject, chỉ ghi nhận).
type Resolved struct {
	City            string
	District        string
	Ward            string
	DistrictMatched bool
}

// Pipeline biến RawInput (~13 field thô) thành FeatureVector 41
// feature. Thuần, không state ẩn: chỉ đọc TableSet immutable, an
// toàn cho request song song.
type Pipeline struct {
	tables *TableSet
	logger *zap.Logger
}

// NewPipeline tạo Pipeline với bảng tĩnh đã load và logger inject.
func NewPipeline(tables *TableSet, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{tables: tables, logger: logger}
}

// Tables trả TableSet đang dùng (đọc-only).
func (p *Pipeline) Tables() *TableSet { return p.tables }

// Transform chạy toàn bộ pipeline cho một request. Mọi stage degrade
// về default thay vì lỗi; hàm không có nhánh error.
func (p *Pipeline) Transform(in RawInput) (*FeatureVector, Resolved) {
	basic := Basic{
		Area:       in.Float(DefaultArea, "Area"),
		Frontage:   in.Float(DefaultFrontage, "Frontage"),
		AccessRoad: in.Float(DefaultAccessRoad, "AccessRoad", "Access Road"),
		Floors:     in.Float(DefaultFloors, "Floors"),
		Bedrooms:   in.Float(DefaultBedrooms, "Bedrooms"),
		Bathrooms:  in.Float(DefaultBathrooms, "Bathrooms"),
	}

	direction := in.String("Direction", "House direction")
	balconyDir := in.String("BalconyDirection", "Balcony direction")

	encoded := Encoded{
		HouseDirection:   p.encodeWithTable(p.tables.Direction, in, "Direction", "House direction"),
		BalconyDirection: p.encodeWithTable(p.tables.Direction, in, "BalconyDirection", "Balcony direction"),
		LegalStatus:      p.encodeWithTable(p.tables.LegalStatus, in, "LegalStatus", "Legal status"),
		Furniture:        p.encodeWithTable(p.tables.Furniture, in, "Furniture", "Furniture state"),
	}

	rawCity := in.String("City", "new_city")
	rawDistrict := in.String("District", "new_district")
	ward := in.String("Ward", "new_street_ward", "Street")

	resolved := Resolved{
		City: p.tables.Cities.Resolve(rawCity, rawDistrict),
		Ward: ward,
	}

	// Canonical hóa district trước khi encode: bảng class fit trên
	// tên chuẩn có dấu, input thường sai dấu/viết tắt.
	resolved.District = rawDistrict
	if rawDistrict != "" {
		if name, ok := p.tables.Stats.Resolve(rawDistrict); ok {
			resolved.District = name
			resolved.DistrictMatched = true
		}
	}

	encoded.City = p.tables.Categories.Encode(ColCity, resolved.City)
	encoded.District = p.encodeDistrict(rawDistrict, resolved)
	encoded.Ward = p.tables.Categories.Encode(ColWard, ward)

	hasHouseDir := direction != "" || hasNumeric(in, "Direction", "House direction")
	hasBalconyDir := balconyDir != "" || hasNumeric(in, "BalconyDirection", "Balcony direction")

	derived := Derive(basic, hasHouseDir, hasBalconyDir, encoded.Furniture, resolved.City)
	stats := p.lookupStats(rawDistrict, resolved)

	return Assemble(basic, encoded, derived, stats), resolved
}

// encodeWithTable encode field categorical qua EncodingTable, chấp
// nhận code numeric truyền thẳng.
func (p *Pipeline) encodeWithTable(table *EncodingTable, in RawInput, keys ...string) int {
	if n, ok := in.Number(keys...); ok {
		return int(n)
	}
	return table.Encode(in.String(keys...))
}

func (p *Pipeline) encodeDistrict(rawDistrict string, resolved Resolved) int {
	if rawDistrict == "" {
		return p.tables.Categories.Encode(ColDistrict, "")
	}
	if resolved.DistrictMatched {
		return p.tables.Categories.Encode(ColDistrict, resolved.District)
	}
	return p.tables.Categories.Encode(ColDistrict, rawDistrict)
}

func (p *Pipeline) lookupStats(rawDistrict string, resolved Resolved) LocationStats {
	if rawDistrict == "" {
		return DefaultLocationStats()
	}
	return p.tables.Stats.Lookup(rawDistrict)
}

func hasNumeric(in RawInput, keys ...string) bool {
	_, ok := in.Number(keys...)
	return ok
}
