package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"recruit-data/internal/domain"
	"recruit-data/internal/repository"

	"go.uber.org/zap"
)

// ErrImportBusy 同一时刻只允许一个批量导入任务
var ErrImportBusy = errors.New("an import is already running")

// BulkImporter 日常统计批量导入工作器
// 在后台 goroutine 上逐条 upsert，每写一条推进一次计数；
// 支持尽力而为的取消（取消后正在写的那条仍会完成）。
// 它只是来源记录的生产者——聚合引擎不感知导入，导入完成后由前端重新拉取视图。
type BulkImporter struct {
	records repository.RecordsRepository
	logger  *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	total   int64

	done   atomic.Int64
	failed atomic.Int64
}

// ImportProgress 导入进度快照
type ImportProgress struct {
	Running bool  `json:"running"`
	Total   int64 `json:"total"`
	Done    int64 `json:"done"`
	Failed  int64 `json:"failed"`
}

func NewBulkImporter(records repository.RecordsRepository, logger *zap.Logger) *BulkImporter {
	return &BulkImporter{records: records, logger: logger}
}

// Start 启动后台导入任务
// onProgress 每处理一条记录后回调一次（可为 nil）
func (b *BulkImporter) Start(recs []domain.DailyStat, onProgress func(done, total int64)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return ErrImportBusy
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.running = true
	b.total = int64(len(recs))
	b.done.Store(0)
	b.failed.Store(0)

	go b.run(ctx, recs, onProgress)
	return nil
}

func (b *BulkImporter) run(ctx context.Context, recs []domain.DailyStat, onProgress func(done, total int64)) {
	total := int64(len(recs))
	b.logger.Info("starting daily stat bulk import", zap.Int64("total", total))

	defer func() {
		b.mu.Lock()
		b.running = false
		b.cancel = nil
		b.mu.Unlock()
	}()

	for i := range recs {
		select {
		case <-ctx.Done():
			b.logger.Info("bulk import cancelled",
				zap.Int64("done", b.done.Load()),
				zap.Int64("total", total),
			)
			return
		default:
		}

		rec := recs[i]
		if err := b.records.UpsertDailyStat(ctx, &rec); err != nil {
			b.failed.Add(1)
			b.logger.Error("failed to upsert daily stat",
				zap.String("id_card", rec.IDCard),
				zap.Time("record_date", rec.Date),
				zap.Error(err),
			)
		}
		done := b.done.Add(1)
		if onProgress != nil {
			onProgress(done, total)
		}
	}

	b.logger.Info("bulk import completed",
		zap.Int64("done", b.done.Load()),
		zap.Int64("failed", b.failed.Load()),
	)
}

// Progress 当前进度快照
func (b *BulkImporter) Progress() ImportProgress {
	b.mu.Lock()
	running := b.running
	total := b.total
	b.mu.Unlock()

	return ImportProgress{
		Running: running,
		Total:   total,
		Done:    b.done.Load(),
		Failed:  b.failed.Load(),
	}
}

// Cancel 取消正在运行的导入（无任务时为空操作）
func (b *BulkImporter) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
}
