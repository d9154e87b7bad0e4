package repository

import (
	"context"
	"time"

	"recruit-data/internal/domain"
)

// RecordsRepository 六类来源记录的访问接口
// upsert约定归store所有：每个 (id_card, record_date) 每类来源至多一条记录，
// 后写覆盖先写；本引擎只依赖这一约定，不自行去重。
type RecordsRepository interface {
	// ListRecords 查询某类来源的记录
	// idCards 为空表示不限人员；from/to 为 nil 表示不限日期（窗口合成需要
	// 保留名义范围之外的迟录记录，引擎侧通常不传日期界）
	ListRecords(ctx context.Context, source domain.SourceKey, idCards []string, from, to *time.Time) ([]domain.SourceRecord, error)

	// UpsertDailyStat 写入/覆盖一条日常统计记录（批量导入工作器使用）
	UpsertDailyStat(ctx context.Context, rec *domain.DailyStat) error
}
