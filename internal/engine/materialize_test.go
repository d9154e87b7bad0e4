package engine

import (
	"testing"
	"time"

	"recruit-data/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize_OnlyDatesWithEvidence(t *testing.T) {
	lex := domain.DefaultLexicon()
	p := &domain.PersonMaster{IDCard: "A", Name: "张三", Company: "一连"}

	lookup := lookupWith(
		domain.MedicalScreening{IDCard: "A", Date: date(2024, 3, 2), PhysicalStatus: domain.StatusAbnormal},
		domain.DailyStat{IDCard: "A", Date: date(2024, 3, 4), Mood: "正常"},
	)
	window := []time.Time{date(2024, 3, 1), date(2024, 3, 2), date(2024, 3, 3), date(2024, 3, 4)}

	rows := Materialize([]*domain.PersonMaster{p}, window, map[string]PersonRecords{"A": lookup}, lex)

	// 03-01/03-03 无任何记录，不产出行；03-04 有记录但正常，仍产出行
	require.Len(t, rows, 2)
	assert.Equal(t, date(2024, 3, 2), rows[0].Date)
	assert.True(t, rows[0].TotalException)
	assert.Equal(t, date(2024, 3, 4), rows[1].Date)
	assert.False(t, rows[1].TotalException)
	assert.Empty(t, rows[1].SourceAttribution)
}

func TestMaterialize_JoinsPersonMaster(t *testing.T) {
	lex := domain.DefaultLexicon()
	p := &domain.PersonMaster{
		IDCard:           "110101199001011234",
		Name:             "李四",
		Gender:           "男",
		RecruitmentPlace: "海淀区",
		Company:          "二连",
		Platoon:          "一排",
		Squad:            "三班",
		SquadLeader:      "王班长",
	}
	lookup := lookupWith(domain.LeaderInterview{IDCard: p.IDCard, Date: date(2024, 3, 1), Thoughts: "有困难"})

	rows := Materialize([]*domain.PersonMaster{p}, []time.Time{date(2024, 3, 1)}, map[string]PersonRecords{p.IDCard: lookup}, lex)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, p.Name, row.Name)
	assert.Equal(t, p.RecruitmentPlace, row.RecruitmentPlace)
	assert.Equal(t, p.Company, row.Company)
	assert.Equal(t, p.Platoon, row.Platoon)
	assert.Equal(t, p.Squad, row.Squad)
	assert.Equal(t, p.SquadLeader, row.SquadLeader)
	assert.True(t, row.LeaderInterview)
	assert.True(t, row.TotalException)
}

func TestMaterialize_SourceAttribution(t *testing.T) {
	lex := domain.DefaultLexicon()
	p := &domain.PersonMaster{IDCard: "A"}
	d := date(2024, 3, 1)

	lookup := lookupWith(
		domain.MedicalScreening{IDCard: "A", Date: d, PhysicalStatus: domain.StatusAbnormal},
		domain.DailyStat{IDCard: "A", Date: d, Training: domain.StatusAbnormal},
		domain.TownInterview{IDCard: "A", Date: d, Thoughts: "无异常反映"}, // 命中"异常"子串
	)

	rows := Materialize([]*domain.PersonMaster{p}, []time.Time{d}, map[string]PersonRecords{"A": lookup}, lex)

	require.Len(t, rows, 1)
	// 按固定来源顺序、顿号连接
	assert.Equal(t, "医学筛查、日常统计、镇街走访", rows[0].SourceAttribution)
}

func TestMaterialize_SkipsPersonsWithoutRecords(t *testing.T) {
	lex := domain.DefaultLexicon()
	withRecords := &domain.PersonMaster{IDCard: "A"}
	noRecords := &domain.PersonMaster{IDCard: "B"}

	lookup := lookupWith(domain.DailyStat{IDCard: "A", Date: date(2024, 3, 1), Mood: "正常"})

	rows := Materialize(
		[]*domain.PersonMaster{withRecords, noRecords},
		[]time.Time{date(2024, 3, 1)},
		map[string]PersonRecords{"A": lookup},
		lex,
	)

	require.Len(t, rows, 1)
	assert.Equal(t, "A", rows[0].IDCard)
}

func TestExceptionViewRow_Flag(t *testing.T) {
	row := domain.ExceptionViewRow{DailyStat: true, TotalException: true}
	assert.True(t, row.Flag(domain.SourceDailyStat))
	assert.True(t, row.Flag(domain.SourceTotal))
	assert.False(t, row.Flag(domain.SourceMedicalScreening))
	assert.False(t, row.Flag(domain.SourceKey("nope")))
}
