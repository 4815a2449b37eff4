// Package mlclient cung cấp các scorer chạy inference cho model giá
// nhà: HTTP scorer gọi model server ngoài, và ridge model nội bộ làm
// fallback khi không cấu hình endpoint.
package mlclient

import "context"

// Scorer chạy inference trên một feature map đã assemble. Giá trả về
// theo đơn vị tỷ VND.
type Scorer interface {
	Predict(ctx context.Context, features map[string]float64) (float64, error)
	Name() string
}
