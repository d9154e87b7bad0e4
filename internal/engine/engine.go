package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruit-data/internal/domain"
	"recruit-data/internal/repository"

	"go.uber.org/zap"
)

// ErrUnknownSource series/classify 请求了不存在的来源键
var ErrUnknownSource = errors.New("unknown source key")

// Engine 异常状态聚合引擎
// 每次调用从 store 拉取原始记录、现算现用，不缓存派生结果。
// 自身无共享可变状态，多调用方并发调用的安全性等同于底层 store 的读安全性。
type Engine struct {
	persons repository.PersonsRepository
	records repository.RecordsRepository
	lexicon *domain.Lexicon
	now     func() time.Time
	logger  *zap.Logger
}

// New 创建聚合引擎
func New(persons repository.PersonsRepository, records repository.RecordsRepository, logger *zap.Logger) *Engine {
	return NewWithClock(persons, records, logger, time.Now)
}

// NewWithClock 创建聚合引擎并注入时钟（预设解析依赖"当前时间"，测试时注入固定值）
func NewWithClock(persons repository.PersonsRepository, records repository.RecordsRepository, logger *zap.Logger, now func() time.Time) *Engine {
	return &Engine{
		persons: persons,
		records: records,
		lexicon: domain.DefaultLexicon(),
		now:     now,
		logger:  logger,
	}
}

// Criteria 视图查询条件
// 文本条件为子串匹配、不区分大小写，空值不限制，多条件取交集
type Criteria struct {
	Name             string
	IDCard           string
	RecruitmentPlace string
	Company          string
	Platoon          string
	Squad            string
	Scope            TimeScope
}

func (c Criteria) personFilters() repository.PersonFilters {
	return repository.PersonFilters{
		Name:             c.Name,
		IDCard:           c.IDCard,
		RecruitmentPlace: c.RecruitmentPlace,
		Company:          c.Company,
		Platoon:          c.Platoon,
		Squad:            c.Squad,
	}
}

// GetExceptionView 异常状态统计视图（列表/导出用）
// 人员筛选下推到 store，时间范围经窗口合成后物化为扁平行
func (e *Engine) GetExceptionView(ctx context.Context, c Criteria) ([]domain.ExceptionViewRow, error) {
	from, to, err := c.Scope.Resolve(e.now())
	if err != nil {
		return nil, err
	}

	persons, err := e.persons.ListPersons(ctx, c.personFilters())
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	if len(persons) == 0 {
		return []domain.ExceptionViewRow{}, nil
	}

	idCards := make([]string, 0, len(persons))
	for _, p := range persons {
		idCards = append(idCards, p.IDCard)
	}

	lookups, recordDates, err := e.fetchRecords(ctx, idCards)
	if err != nil {
		return nil, err
	}

	window := SynthesizeWindow(from, to, recordDates)
	rows := Materialize(persons, window, lookups, e.lexicon)

	e.logger.Debug("materialized exception view",
		zap.Int("person_count", len(persons)),
		zap.Int("window_days", len(window)),
		zap.Int("row_count", len(rows)),
	)
	return rows, nil
}

// GetExceptionSeries 单人单来源的 0/1 序列（图表用）
// source 可以是六类来源之一或 total_exception；
// 窗口内每个日期一个点，无记录的日期为 0（图表需要连续坐标轴）
func (e *Engine) GetExceptionSeries(ctx context.Context, idCard string, scope TimeScope, source domain.SourceKey) ([]domain.SeriesPoint, error) {
	if source != domain.SourceTotal && !source.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}

	from, to, err := scope.Resolve(e.now())
	if err != nil {
		return nil, err
	}

	if _, err := e.persons.GetPerson(ctx, idCard); err != nil {
		return nil, err
	}

	lookups, recordDates, err := e.fetchRecords(ctx, []string{idCard})
	if err != nil {
		return nil, err
	}
	lookup := lookups[idCard]

	window := SynthesizeWindow(from, to, recordDates)
	points := make([]domain.SeriesPoint, 0, len(window))
	for _, date := range window {
		status := Aggregate(idCard, date, lookup, e.lexicon)
		flagged := status.Total
		if source != domain.SourceTotal {
			flagged = status.Flags[source]
		}
		value := 0
		if flagged {
			value = 1
		}
		points = append(points, domain.SeriesPoint{Date: date, Value: value})
	}
	return points, nil
}

// GetDailyBreakdown 单人单日的逐来源明细（"这天为什么被标异常"钻取用）
func (e *Engine) GetDailyBreakdown(ctx context.Context, idCard string, date time.Time) (*domain.DailyExceptionStatus, error) {
	if _, err := e.persons.GetPerson(ctx, idCard); err != nil {
		return nil, err
	}

	lookups, _, err := e.fetchRecords(ctx, []string{idCard})
	if err != nil {
		return nil, err
	}

	status := Aggregate(idCard, date, lookups[idCard], e.lexicon)
	return &status, nil
}

// ClassifyOne 单条记录的即席分类
// record 为 nil 时按"无记录=正常"返回 false；来源键与记录类型不符是调用错误
func (e *Engine) ClassifyOne(source domain.SourceKey, record domain.SourceRecord) (bool, error) {
	if !source.Valid() {
		return false, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
	if record == nil {
		return false, nil
	}
	if record.SourceKey() != source {
		return false, fmt.Errorf("record source %s does not match requested source %s", record.SourceKey(), source)
	}
	return record.Abnormal(e.lexicon), nil
}

// fetchRecords 拉取范围内人员的全部来源记录，构建逐人查找表和记录日期并集
// 日期界有意不下推：窗口合成必须看到名义范围之外的迟录记录
func (e *Engine) fetchRecords(ctx context.Context, idCards []string) (map[string]PersonRecords, []time.Time, error) {
	lookups := map[string]PersonRecords{}
	dateSet := map[time.Time]struct{}{}

	for _, source := range domain.SourceKeys {
		records, err := e.records.ListRecords(ctx, source, idCards, nil, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load %s records: %w", source, err)
		}
		for _, rec := range records {
			idCard := rec.PersonID()
			day := Day(rec.RecordedOn())

			lookup := lookups[idCard]
			if lookup == nil {
				lookup = PersonRecords{}
				lookups[idCard] = lookup
			}
			byDate := lookup[source]
			if byDate == nil {
				byDate = map[string]domain.SourceRecord{}
				lookup[source] = byDate
			}
			byDate[day.Format(domain.DateLayout)] = rec
			dateSet[day] = struct{}{}
		}
	}

	recordDates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		recordDates = append(recordDates, d)
	}
	return lookups, recordDates, nil
}
