package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var reSpaces = regexp.MustCompile(`\s+`)
var reDistrictAbbr = regexp.MustCompile(`^q\.?\s*(\d{1,2})$`)
var rePrefix = regexp.MustCompile(`^(quan|huyen|thi xa|thanh pho|phuong|xa|thi tran|tinh|tp|q|p|h)\.?\s+`)

// Key chuẩn hóa một giá trị categorical về dạng lookup key:
// bỏ dấu, lowercase, gọn khoảng trắng. "Đông Nam" và "dong nam"
// cùng ra một key. Bỏ dấu qua NFD trước để input dạng decomposed
// (dấu tách rời) cũng ra cùng key, rồi unidecode xử lý phần
// non-ASCII còn lại ("²" → "2").
func Key(s string) string {
	k := strings.ToLower(unidecode.Unidecode(StripDiacritics(s)))
	k = reSpaces.ReplaceAllString(strings.TrimSpace(k), " ")
	return k
}

// DistrictKey chuẩn hóa tên quận/huyện về lookup key, mở rộng các
// cách viết tắt thường gặp ("Q.7", "q7" → "quan 7") và cắt tiền tố
// hành chính ("Quận Bình Thạnh" → "binh thanh", riêng quận số giữ
// nguyên "quan 7").
func DistrictKey(s string) string {
	k := Key(s)
	if m := reDistrictAbbr.FindStringSubmatch(k); m != nil {
		return "quan " + m[1]
	}
	// "quan <số>" là tên đầy đủ, không cắt tiền tố
	if strings.HasPrefix(k, "quan ") {
		rest := strings.TrimPrefix(k, "quan ")
		if _, isNum := numeric(rest); isNum {
			return k
		}
	}
	for rePrefix.MatchString(k) {
		k = rePrefix.ReplaceAllString(k, "")
	}
	return k
}

func numeric(s string) (string, bool) {
	if s == "" {
		return s, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s, false
		}
	}
	return s, true
}
