package features

// Basic các field numeric sau khi coerce + default.
type Basic struct {
	Area       float64
	Frontage   float64
	AccessRoad float64
	Floors     float64
	Bedrooms   float64
	Bathrooms  float64
}

// Encoded các code categorical sau khi qua bảng mã hóa.
type Encoded struct {
	HouseDirection   int
	BalconyDirection int
	LegalStatus      int
	Furniture        int
	City             int
	District         int
	Ward             int
}

// Derived feature dẫn xuất, tính thuần từ field đã resolve. Mọi phép
// chia đều guard divisor 0 → kết quả 0, không để NaN lọt vào model.
type Derived struct {
	HasBalconyDirection int
	HasHouseDirection   int
	HasAccessRoad       int
	HasFrontage         int

	BathroomBedroomRatio float64
	TotalRooms           float64
	IsLargeHouse         int
	AvgRoomSize          float64
	IsLuxury             int
	IsMultiStory         int
	AreaBinned           int

	AreaXBathrooms     float64
	AreaXBedrooms      float64
	AreaXFloors        float64
	BedroomsXBathrooms float64
	BedroomsXFloors    float64
	LuxuryScore        int

	AreaInHoChiMinh float64
	AreaInHaNoi     float64
	AreaInBinhDuong float64
	AreaInDaNang    float64

	RoomDensity   float64
	AccessQuality int
}

// 4 thành phố có indicator riêng trong feature vector.
const (
	CityHoChiMinh = "Hồ Chí Minh"
	CityHaNoi     = "Hà Nội"
	CityBinhDuong = "Bình Dương"
	CityDaNang    = "Đà Nẵng"
)

// Derive tính toàn bộ feature dẫn xuất. Pure function: cùng input
// luôn cùng output.
func Derive(b Basic, hasHouseDir, hasBalconyDir bool, furnitureCode int, city string) Derived {
	d := Derived{}

	if hasBalconyDir {
		d.HasBalconyDirection = 1
	}
	if hasHouseDir {
		d.HasHouseDirection = 1
	}
	if b.AccessRoad > 0 {
		d.HasAccessRoad = 1
	}
	if b.Frontage > 0 {
		d.HasFrontage = 1
	}

	if b.Bedrooms > 0 {
		d.BathroomBedroomRatio = b.Bathrooms / b.Bedrooms
	}
	d.TotalRooms = b.Bedrooms + b.Bathrooms
	if b.Area > 140 {
		d.IsLargeHouse = 1
	}
	if d.TotalRooms > 0 {
		d.AvgRoomSize = b.Area / d.TotalRooms
	}
	if b.Bathrooms >= 4 {
		d.IsLuxury = 1
	}
	if b.Floors > 2 {
		d.IsMultiStory = 1
	}
	d.AreaBinned = binArea(b.Area)

	d.AreaXBathrooms = b.Area * b.Bathrooms
	d.AreaXBedrooms = b.Area * b.Bedrooms
	d.AreaXFloors = b.Area * b.Floors
	d.BedroomsXBathrooms = b.Bedrooms * b.Bathrooms
	d.BedroomsXFloors = b.Bedrooms * b.Floors

	if b.Bathrooms >= 3 {
		d.LuxuryScore++
	}
	if b.Area > 100 {
		d.LuxuryScore++
	}
	if furnitureCode == 0 || furnitureCode == 1 { // cao cấp hoặc đầy đủ
		d.LuxuryScore++
	}

	// Đúng một indicator khác 0, hoặc cả 4 bằng 0 nếu city ngoài 4
	// thành phố hỗ trợ.
	switch city {
	case CityHoChiMinh:
		d.AreaInHoChiMinh = b.Area
	case CityHaNoi:
		d.AreaInHaNoi = b.Area
	case CityBinhDuong:
		d.AreaInBinhDuong = b.Area
	case CityDaNang:
		d.AreaInDaNang = b.Area
	}

	if b.Area > 0 {
		d.RoomDensity = d.TotalRooms / b.Area
	}
	d.AccessQuality = accessQuality(b.AccessRoad)

	return d
}

// binArea 5 bucket cố định, khớp pipeline training. Đổi breakpoint
// đồng nghĩa retrain model.
func binArea(area float64) int {
	switch {
	case area < 30:
		return 0 // rất nhỏ
	case area < 60:
		return 1 // nhỏ
	case area < 100:
		return 2 // trung bình
	case area < 150:
		return 3 // lớn
	default:
		return 4 // rất lớn
	}
}

// accessQuality thang 3 mức theo bề rộng đường vào, nhất quán với
// HasAccessRoad (0 ⟺ không có đường vào ghi nhận).
func accessQuality(accessRoad float64) int {
	switch {
	case accessRoad <= 0:
		return 0
	case accessRoad < 5:
		return 1
	default:
		return 2
	}
}
