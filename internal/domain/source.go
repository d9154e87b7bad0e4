package domain

// SourceKey 记录来源标识
type SourceKey string

const (
	SourceMedicalScreening    SourceKey = "medical_screening"    // 医学筛查
	SourcePoliticalAssessment SourceKey = "political_assessment" // 政治考核
	SourcePhysicalExamination SourceKey = "physical_examination" // 体格检查
	SourceDailyStat           SourceKey = "daily_stat"           // 日常统计
	SourceTownInterview       SourceKey = "town_interview"       // 镇街走访谈话
	SourceLeaderInterview     SourceKey = "leader_interview"     // 骨干谈心记录

	// SourceTotal 聚合伪来源：六类来源的逻辑或，仅用于 series 查询
	SourceTotal SourceKey = "total_exception"
)

// SourceKeys 六类真实来源，固定顺序（视图列顺序与此一致）
var SourceKeys = []SourceKey{
	SourceMedicalScreening,
	SourcePoliticalAssessment,
	SourcePhysicalExamination,
	SourceDailyStat,
	SourceTownInterview,
	SourceLeaderInterview,
}

var sourceDisplayNames = map[SourceKey]string{
	SourceMedicalScreening:    "医学筛查",
	SourcePoliticalAssessment: "政治考核",
	SourcePhysicalExamination: "体格检查",
	SourceDailyStat:           "日常统计",
	SourceTownInterview:       "镇街走访",
	SourceLeaderInterview:     "骨干谈心",
}

// Valid 是否为六类真实来源之一（不含 total_exception）
func (k SourceKey) Valid() bool {
	_, ok := sourceDisplayNames[k]
	return ok
}

// DisplayName 来源中文显示名（用于 source_attribution 和导出表头）
func (k SourceKey) DisplayName() string {
	if name, ok := sourceDisplayNames[k]; ok {
		return name
	}
	return string(k)
}
