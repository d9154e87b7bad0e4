package engine_test

import (
	"context"
	"testing"
	"time"

	"recruit-data/internal/domain"
	eng "recruit-data/internal/engine"
	"recruit-data/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.Local)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func newTestEngine(t *testing.T) (*eng.Engine, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	store.PutPerson(domain.PersonMaster{
		IDCard: "110101199001011234", Name: "张三", Gender: "男",
		RecruitmentPlace: "海淀区", Company: "一连", Platoon: "一排", Squad: "一班", SquadLeader: "王班长",
	})
	store.PutPerson(domain.PersonMaster{
		IDCard: "320102199202022345", Name: "李四", Gender: "男",
		RecruitmentPlace: "鼓楼区", Company: "二连", Platoon: "二排", Squad: "三班", SquadLeader: "赵班长",
	})
	engine := eng.NewWithClock(store, store, zap.NewNop(), func() time.Time { return testNow })
	return engine, store
}

func TestGetExceptionSeries_MedicalAndTotal(t *testing.T) {
	engine, store := newTestEngine(t)
	idCard := "110101199001011234"

	store.PutRecord(domain.MedicalScreening{
		IDCard: idCard, Date: date(2024, 3, 1), PhysicalStatus: domain.StatusAbnormal,
	})

	scope := eng.TimeScope{Start: ptr(date(2024, 3, 1)), End: ptr(date(2024, 3, 1))}

	points, err := engine.GetExceptionSeries(context.Background(), idCard, scope, domain.SourceMedicalScreening)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, date(2024, 3, 1), points[0].Date)
	assert.Equal(t, 1, points[0].Value)

	points, err = engine.GetExceptionSeries(context.Background(), idCard, scope, domain.SourceTotal)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1, points[0].Value)

	// 其它来源当日无记录：连续坐标轴上仍有点，值为 0
	points, err = engine.GetExceptionSeries(context.Background(), idCard, scope, domain.SourceDailyStat)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 0, points[0].Value)
}

func TestGetExceptionSeries_WindowKeepsLateRecord(t *testing.T) {
	engine, store := newTestEngine(t)
	idCard := "110101199001011234"

	// 7day 预设（03-04..03-10 相对固定 now），但 03-01 有迟录记录
	store.PutRecord(domain.DailyStat{IDCard: idCard, Date: date(2024, 3, 1), Mood: "紧张"})

	points, err := engine.GetExceptionSeries(context.Background(), idCard, eng.TimeScope{Preset: eng.Preset7Day}, domain.SourceTotal)
	require.NoError(t, err)
	require.Len(t, points, 8)
	assert.Equal(t, date(2024, 3, 1), points[0].Date)
	assert.Equal(t, 1, points[0].Value)
	assert.Equal(t, date(2024, 3, 4), points[1].Date)
	assert.Equal(t, 0, points[1].Value)
	assert.Equal(t, date(2024, 3, 10), points[7].Date)
}

func TestGetExceptionSeries_PersonNotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.GetExceptionSeries(context.Background(), "no-such-id", eng.TimeScope{Preset: eng.PresetAll}, domain.SourceTotal)
	require.ErrorIs(t, err, repository.ErrPersonNotFound)
}

func TestGetExceptionSeries_UnknownSource(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.GetExceptionSeries(context.Background(), "110101199001011234", eng.TimeScope{Preset: eng.PresetAll}, domain.SourceKey("mystery"))
	require.ErrorIs(t, err, eng.ErrUnknownSource)
}

func TestGetExceptionView_EmptyMonth(t *testing.T) {
	engine, _ := newTestEngine(t)

	rows, err := engine.GetExceptionView(context.Background(), eng.Criteria{
		IDCard: "110101199001011234",
		Scope:  eng.TimeScope{Start: ptr(date(2024, 3, 1)), End: ptr(date(2024, 3, 31))},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetExceptionView_InvalidRange(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.GetExceptionView(context.Background(), eng.Criteria{
		Scope: eng.TimeScope{Start: ptr(date(2024, 4, 1)), End: ptr(date(2024, 3, 1))},
	})
	require.ErrorIs(t, err, eng.ErrInvalidRange)
}

func TestGetExceptionView_RowsAndAttribution(t *testing.T) {
	engine, store := newTestEngine(t)
	zhangsan := "110101199001011234"
	lisi := "320102199202022345"

	store.PutRecord(domain.MedicalScreening{IDCard: zhangsan, Date: date(2024, 3, 1), MentalStatus: domain.StatusAbnormal})
	store.PutRecord(domain.DailyStat{IDCard: zhangsan, Date: date(2024, 3, 1), Management: domain.StatusAbnormal})
	store.PutRecord(domain.DailyStat{IDCard: zhangsan, Date: date(2024, 3, 2), Mood: "状态良好"})
	store.PutRecord(domain.TownInterview{IDCard: lisi, Date: date(2024, 3, 2), Thoughts: "对分配有抵触"})

	rows, err := engine.GetExceptionView(context.Background(), eng.Criteria{Scope: eng.TimeScope{Preset: eng.PresetAll}})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 人员按 id_card 升序、同一人按日期升序
	assert.Equal(t, zhangsan, rows[0].IDCard)
	assert.Equal(t, date(2024, 3, 1), rows[0].Date)
	assert.True(t, rows[0].MedicalScreening)
	assert.True(t, rows[0].DailyStat)
	assert.True(t, rows[0].TotalException)
	assert.Equal(t, "医学筛查、日常统计", rows[0].SourceAttribution)

	assert.Equal(t, zhangsan, rows[1].IDCard)
	assert.Equal(t, date(2024, 3, 2), rows[1].Date)
	assert.False(t, rows[1].TotalException)

	assert.Equal(t, lisi, rows[2].IDCard)
	assert.Equal(t, "李四", rows[2].Name)
	assert.True(t, rows[2].TownInterview)
	assert.Equal(t, "镇街走访", rows[2].SourceAttribution)
}

func TestGetExceptionView_FilterComposition(t *testing.T) {
	engine, store := newTestEngine(t)
	zhangsan := "110101199001011234"
	lisi := "320102199202022345"

	store.PutRecord(domain.DailyStat{IDCard: zhangsan, Date: date(2024, 3, 1), Mood: "紧张"})
	store.PutRecord(domain.DailyStat{IDCard: lisi, Date: date(2024, 3, 1), Mood: "紧张"})

	// 单位条件子串过滤
	rows, err := engine.GetExceptionView(context.Background(), eng.Criteria{
		Company: "二连",
		Scope:   eng.TimeScope{Preset: eng.PresetAll},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, lisi, rows[0].IDCard)

	// 条件取交集：单位命中但姓名不命中
	rows, err = engine.GetExceptionView(context.Background(), eng.Criteria{
		Company: "二连",
		Name:    "张",
		Scope:   eng.TimeScope{Preset: eng.PresetAll},
	})
	require.NoError(t, err)
	assert.Empty(t, rows)

	// 身份证号子串
	rows, err = engine.GetExceptionView(context.Background(), eng.Criteria{
		IDCard: "3201",
		Scope:  eng.TimeScope{Preset: eng.PresetAll},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, lisi, rows[0].IDCard)
}

func TestGetExceptionView_Idempotent(t *testing.T) {
	engine, store := newTestEngine(t)
	idCard := "110101199001011234"

	store.PutRecord(domain.MedicalScreening{IDCard: idCard, Date: date(2024, 3, 1), PhysicalStatus: domain.StatusAbnormal})
	store.PutRecord(domain.LeaderInterview{IDCard: idCard, Date: date(2024, 3, 3), Spirit: "情绪抑郁"})

	criteria := eng.Criteria{Scope: eng.TimeScope{Preset: eng.PresetAll}}
	first, err := engine.GetExceptionView(context.Background(), criteria)
	require.NoError(t, err)
	second, err := engine.GetExceptionView(context.Background(), criteria)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetDailyBreakdown(t *testing.T) {
	engine, store := newTestEngine(t)
	idCard := "110101199001011234"

	store.PutRecord(domain.PhysicalExamination{IDCard: idCard, Date: date(2024, 3, 5), BodyStatus: domain.StatusDisqualified})

	status, err := engine.GetDailyBreakdown(context.Background(), idCard, date(2024, 3, 5))
	require.NoError(t, err)
	assert.True(t, status.Total)
	assert.True(t, status.Flags[domain.SourcePhysicalExamination])
	assert.False(t, status.Flags[domain.SourceMedicalScreening])

	// 无记录的日期：全 false，不是错误
	status, err = engine.GetDailyBreakdown(context.Background(), idCard, date(2024, 3, 6))
	require.NoError(t, err)
	assert.False(t, status.Total)
}

func TestClassifyOne(t *testing.T) {
	engine, _ := newTestEngine(t)

	flagged, err := engine.ClassifyOne(domain.SourceDailyStat, domain.DailyStat{Mood: "有些焦虑"})
	require.NoError(t, err)
	assert.True(t, flagged)

	flagged, err = engine.ClassifyOne(domain.SourceDailyStat, domain.DailyStat{Mood: "不错"})
	require.NoError(t, err)
	assert.False(t, flagged)

	// nil 记录按"无记录=正常"处理
	flagged, err = engine.ClassifyOne(domain.SourceDailyStat, nil)
	require.NoError(t, err)
	assert.False(t, flagged)

	// 来源键与记录类型不符
	_, err = engine.ClassifyOne(domain.SourceMedicalScreening, domain.DailyStat{})
	require.Error(t, err)

	// 未知来源键
	_, err = engine.ClassifyOne(domain.SourceKey("mystery"), domain.DailyStat{})
	require.ErrorIs(t, err, eng.ErrUnknownSource)
}

func ptr(t time.Time) *time.Time { return &t }
