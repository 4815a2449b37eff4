package features

// StatsTable lookup thống kê diện tích theo quận. Quận vắng mặt hoặc
// không resolve được → record default (xấp xỉ median toàn tập).
type StatsTable struct {
	byName map[string]LocationStats
	index  *districtIndex
}

func newStatsTable(districts []District, index *districtIndex) *StatsTable {
	byName := make(map[string]LocationStats, len(districts))
	for _, d := range districts {
		byName[d.Name] = d.Stats
	}
	return &StatsTable{byName: byName, index: index}
}

// Lookup trả thống kê cho tên quận thô (chấp nhận sai dấu/viết tắt
// qua districtIndex). Không có nhánh lỗi.
func (st *StatsTable) Lookup(district string) LocationStats {
	if name, ok := st.index.Match(district); ok {
		if stats, found := st.byName[name]; found {
			return stats
		}
	}
	return DefaultLocationStats()
}

// Resolve trả tên quận chuẩn cho input thô, false nếu ngoài gazetteer.
func (st *StatsTable) Resolve(district string) (string, bool) {
	return st.index.Match(district)
}
