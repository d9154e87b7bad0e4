package domain

import "time"

// DateLayout 日期轴的统一格式，也是查询参数里日期的格式
const DateLayout = "2006-01-02"

// DailyExceptionStatus 单人单日的异常状态（派生数据，按需重算，不落库）
// Flags 的键只会是六类真实来源；某来源当日无记录时该键为 false（视为正常）
type DailyExceptionStatus struct {
	IDCard string             `json:"id_card"`
	Date   time.Time          `json:"date"`
	Flags  map[SourceKey]bool `json:"flags"`
	Total  bool               `json:"total"` // 六类标志的逻辑或
}

// ExceptionViewRow 异常状态统计视图行（派生、扁平化）
// 每个（人员，当日至少一类来源有记录的日期）产出一行
type ExceptionViewRow struct {
	IDCard           string    `json:"id_card"`
	Name             string    `json:"name"`
	Gender           string    `json:"gender"`
	RecruitmentPlace string    `json:"recruitment_place"`
	Company          string    `json:"company"`
	Platoon          string    `json:"platoon"`
	Squad            string    `json:"squad"`
	SquadLeader      string    `json:"squad_leader"`
	Date             time.Time `json:"date"`

	MedicalScreening    bool `json:"medical_screening"`
	PoliticalAssessment bool `json:"political_assessment"`
	PhysicalExamination bool `json:"physical_examination"`
	DailyStat           bool `json:"daily_stat"`
	TownInterview       bool `json:"town_interview"`
	LeaderInterview     bool `json:"leader_interview"`

	TotalException    bool   `json:"total_exception"`
	SourceAttribution string `json:"source_attribution"` // 触发异常的来源显示名，顿号连接
}

// Flag 按来源键取本行对应标志（导出和断言用，避免六个 if）
func (r *ExceptionViewRow) Flag(key SourceKey) bool {
	switch key {
	case SourceMedicalScreening:
		return r.MedicalScreening
	case SourcePoliticalAssessment:
		return r.PoliticalAssessment
	case SourcePhysicalExamination:
		return r.PhysicalExamination
	case SourceDailyStat:
		return r.DailyStat
	case SourceTownInterview:
		return r.TownInterview
	case SourceLeaderInterview:
		return r.LeaderInterview
	case SourceTotal:
		return r.TotalException
	default:
		return false
	}
}

// SeriesPoint 图表序列点：窗口内每个日期一个点，无记录则为 0
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"` // 0=正常 1=异常
}
