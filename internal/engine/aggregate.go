package engine

import (
	"time"

	"recruit-data/internal/domain"
)

// PersonRecords 一名人员的六类来源记录查找表：来源 -> 日期键(2006-01-02) -> 记录
type PersonRecords map[domain.SourceKey]map[string]domain.SourceRecord

// HasAny 该日期是否至少有一类来源存在记录
func (pr PersonRecords) HasAny(date time.Time) bool {
	key := Day(date).Format(domain.DateLayout)
	for _, byDate := range pr {
		if _, ok := byDate[key]; ok {
			return true
		}
	}
	return false
}

// Aggregate 单人单日聚合：六类来源各跑一次分类，逻辑或得出总异常标志
// 某来源当日无记录时该来源标志为 false（视为正常，不是错误）。
// 纯函数，无副作用。
func Aggregate(idCard string, date time.Time, lookup PersonRecords, lex *domain.Lexicon) domain.DailyExceptionStatus {
	day := Day(date)
	key := day.Format(domain.DateLayout)

	flags := make(map[domain.SourceKey]bool, len(domain.SourceKeys))
	total := false
	for _, src := range domain.SourceKeys {
		flag := false
		if rec, ok := lookup[src][key]; ok && rec != nil {
			flag = rec.Abnormal(lex)
		}
		flags[src] = flag
		total = total || flag
	}

	return domain.DailyExceptionStatus{
		IDCard: idCard,
		Date:   day,
		Flags:  flags,
		Total:  total,
	}
}
