package engine

import (
	"sort"
	"time"
)

// SynthesizeWindow 合成日期轴：名义日历范围 ∪ 实际记录日期
//
// 名义范围为 [from, to] 的连续日历天（任一侧为 nil 则名义范围为空侧不展开），
// recordDates 为范围内人员实际存在记录的日期。实际记录日期一律保留，
// 即使落在名义范围之外——迟录的记录不能因为窗口没罩住就从图表/列表里消失，
// 代价是坐标轴偶尔比请求的更宽。
//
// 返回严格升序、无重复的日期列表；两侧都为空时返回空列表（合法结果）。
func SynthesizeWindow(from, to *time.Time, recordDates []time.Time) []time.Time {
	seen := map[time.Time]struct{}{}

	if from != nil && to != nil {
		for d := Day(*from); !d.After(Day(*to)); d = d.AddDate(0, 0, 1) {
			seen[d] = struct{}{}
		}
	}
	for _, d := range recordDates {
		seen[Day(d)] = struct{}{}
	}

	window := make([]time.Time, 0, len(seen))
	for d := range seen {
		window = append(window, d)
	}
	sort.Slice(window, func(i, j int) bool { return window[i].Before(window[j]) })
	return window
}
