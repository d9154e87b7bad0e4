package engine

import (
	"strings"
	"time"

	"recruit-data/internal/domain"
)

// Materialize 物化视图行：每个（人员，窗口内至少一类来源有记录的日期）一行
// 当日完全无记录的日期不产出行——它们只隐含存在于图表序列里，列表只展示有据可查的行。
// 行顺序：人员按入参顺序（store 按 id_card 升序返回），同一人按日期升序。
func Materialize(persons []*domain.PersonMaster, window []time.Time, lookups map[string]PersonRecords, lex *domain.Lexicon) []domain.ExceptionViewRow {
	rows := []domain.ExceptionViewRow{}
	for _, p := range persons {
		lookup := lookups[p.IDCard]
		if lookup == nil {
			continue
		}
		for _, date := range window {
			if !lookup.HasAny(date) {
				continue
			}
			status := Aggregate(p.IDCard, date, lookup, lex)
			rows = append(rows, buildRow(p, status))
		}
	}
	return rows
}

func buildRow(p *domain.PersonMaster, status domain.DailyExceptionStatus) domain.ExceptionViewRow {
	return domain.ExceptionViewRow{
		IDCard:           p.IDCard,
		Name:             p.Name,
		Gender:           p.Gender,
		RecruitmentPlace: p.RecruitmentPlace,
		Company:          p.Company,
		Platoon:          p.Platoon,
		Squad:            p.Squad,
		SquadLeader:      p.SquadLeader,
		Date:             status.Date,

		MedicalScreening:    status.Flags[domain.SourceMedicalScreening],
		PoliticalAssessment: status.Flags[domain.SourcePoliticalAssessment],
		PhysicalExamination: status.Flags[domain.SourcePhysicalExamination],
		DailyStat:           status.Flags[domain.SourceDailyStat],
		TownInterview:       status.Flags[domain.SourceTownInterview],
		LeaderInterview:     status.Flags[domain.SourceLeaderInterview],

		TotalException:    status.Total,
		SourceAttribution: attribution(status.Flags),
	}
}

// attribution 触发异常的来源显示名，按固定来源顺序、顿号连接
func attribution(flags map[domain.SourceKey]bool) string {
	var names []string
	for _, src := range domain.SourceKeys {
		if flags[src] {
			names = append(names, src.DisplayName())
		}
	}
	return strings.Join(names, "、")
}
