package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange 调用方输入错误：起始日期晚于结束日期，或预设名不认识
// 出现时立即返回，不做部分计算
var ErrInvalidRange = errors.New("invalid date range")

// 时间范围预设，相对"当前时间"解析（带连字符的写法按别名接受）
const (
	PresetToday     = "today"
	Preset3Day      = "3day"
	Preset7Day      = "7day"
	PresetHalfMonth = "halfmonth"
	PresetMonth     = "month"
	PresetAll       = "all"
)

// TimeScope 时间范围：预设名或显式起止（闭区间），二者取其一
// Preset 非空时优先；都为空等价于 all
type TimeScope struct {
	Preset string
	Start  *time.Time
	End    *time.Time
}

// Resolve 解析为具体的起止界（nil 表示该侧不限）
func (s TimeScope) Resolve(now time.Time) (from, to *time.Time, err error) {
	if s.Preset != "" {
		today := Day(now)
		switch s.Preset {
		case PresetToday:
			return &today, &today, nil
		case Preset3Day, "3-day":
			start := today.AddDate(0, 0, -2)
			return &start, &today, nil
		case Preset7Day, "7-day":
			start := today.AddDate(0, 0, -6)
			return &start, &today, nil
		case PresetHalfMonth, "half-month":
			start := today.AddDate(0, 0, -14)
			return &start, &today, nil
		case PresetMonth:
			start := today.AddDate(0, 0, -29)
			return &start, &today, nil
		case PresetAll:
			return nil, nil, nil
		default:
			return nil, nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidRange, s.Preset)
		}
	}

	if s.Start == nil && s.End == nil {
		return nil, nil, nil
	}
	if s.Start == nil || s.End == nil {
		return nil, nil, fmt.Errorf("%w: explicit scope requires both start and end", ErrInvalidRange)
	}

	start := Day(*s.Start)
	end := Day(*s.End)
	if start.After(end) {
		return nil, nil, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return &start, &end, nil
}

// Day 截断到当日零点（本地时区），日期轴上的所有比较都以此为准
// 按年月日重建、丢弃入参自带的时区：lib/pq 把 date 列扫回成 UTC 零点，
// 名义范围却在本地时区，同一历法日必须落到同一个键上
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
