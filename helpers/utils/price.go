package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FormatPrice format giá nhà cho response. Model trả giá theo đơn vị
// tỷ VND; dưới 1 tỷ chuyển sang triệu cho dễ đọc.
func FormatPrice(priceTyVND float64) string {
	if priceTyVND < 0 {
		priceTyVND = 0
	}
	if priceTyVND < 1 {
		return fmt.Sprintf("%.0f triệu VND", priceTyVND*1000)
	}
	return fmt.Sprintf("%.2f tỷ VND", priceTyVND)
}

var rePrice = regexp.MustCompile(`(?i)([\d]+(?:[.,]\d+)?)\s*(tỷ|ty|tỉ|ti|billion|b|triệu|trieu|million|tr)?`)

// ParsePriceInput parse chuỗi giá kiểu "5.2 tỷ", "950 triệu", "5,2 ty"
// về đơn vị tỷ VND. Trả false nếu không nhận ra số.
func ParsePriceInput(s string) (float64, bool) {
	m := rePrice.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || m[1] == "" {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "triệu", "trieu", "million", "tr":
		return num / 1000, true
	default:
		// Không có đơn vị coi như tỷ
		return num, true
	}
}
