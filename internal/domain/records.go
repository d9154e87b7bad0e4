package domain

import "time"

// 状态字段字面量（录入端下拉固定选项）
const (
	StatusNormal       = "正常"
	StatusAbnormal     = "异常"
	StatusDisqualified = "不合格"
)

// SourceRecord 六类来源记录的统一能力
// 每类来源一个强类型结构，通过 SourceKey 分发，不做位置式取值。
// Abnormal 为纯函数：缺失/空字段一律视为"不异常"，绝不因脏数据报错。
type SourceRecord interface {
	SourceKey() SourceKey
	PersonID() string
	RecordedOn() time.Time
	Abnormal(lex *Lexicon) bool
}

// MedicalScreening 医学筛查记录
type MedicalScreening struct {
	IDCard         string    `json:"id_card"`
	Date           time.Time `json:"date"`
	PhysicalStatus string    `json:"physical_status"` // 身体状况：正常/异常
	MentalStatus   string    `json:"mental_status"`   // 心理状况：正常/异常
}

func (r MedicalScreening) SourceKey() SourceKey  { return SourceMedicalScreening }
func (r MedicalScreening) PersonID() string      { return r.IDCard }
func (r MedicalScreening) RecordedOn() time.Time { return r.Date }
func (r MedicalScreening) Abnormal(*Lexicon) bool {
	return r.PhysicalStatus == StatusAbnormal || r.MentalStatus == StatusAbnormal
}

// PoliticalAssessment 政治考核记录（叙述类）
type PoliticalAssessment struct {
	IDCard   string    `json:"id_card"`
	Date     time.Time `json:"date"`
	Thoughts string    `json:"thoughts"` // 思想情况
	Spirit   string    `json:"spirit"`   // 精神面貌
}

func (r PoliticalAssessment) SourceKey() SourceKey  { return SourcePoliticalAssessment }
func (r PoliticalAssessment) PersonID() string      { return r.IDCard }
func (r PoliticalAssessment) RecordedOn() time.Time { return r.Date }
func (r PoliticalAssessment) Abnormal(lex *Lexicon) bool {
	return lex.MatchBase(r.Thoughts) || lex.MatchBase(r.Spirit)
}

// PhysicalExamination 体格检查记录
type PhysicalExamination struct {
	IDCard     string    `json:"id_card"`
	Date       time.Time `json:"date"`
	BodyStatus string    `json:"body_status"` // 体检结论：正常/异常/不合格
}

func (r PhysicalExamination) SourceKey() SourceKey  { return SourcePhysicalExamination }
func (r PhysicalExamination) PersonID() string      { return r.IDCard }
func (r PhysicalExamination) RecordedOn() time.Time { return r.Date }
func (r PhysicalExamination) Abnormal(*Lexicon) bool {
	return r.BodyStatus == StatusAbnormal || r.BodyStatus == StatusDisqualified
}

// DailyStat 日常统计记录
// 前三个字段为叙述文本（扩展词表匹配），后两个为固定选项（字面比较）
type DailyStat struct {
	IDCard            string    `json:"id_card"`
	Date              time.Time `json:"date"`
	Mood              string    `json:"mood"`               // 情绪
	PhysicalCondition string    `json:"physical_condition"` // 身体状况
	MentalState       string    `json:"mental_state"`       // 精神状态
	Training          string    `json:"training"`           // 训练情况：正常/异常
	Management        string    `json:"management"`         // 管理情况：正常/异常
}

func (r DailyStat) SourceKey() SourceKey  { return SourceDailyStat }
func (r DailyStat) PersonID() string      { return r.IDCard }
func (r DailyStat) RecordedOn() time.Time { return r.Date }
func (r DailyStat) Abnormal(lex *Lexicon) bool {
	if lex.MatchDaily(r.Mood) || lex.MatchDaily(r.PhysicalCondition) || lex.MatchDaily(r.MentalState) {
		return true
	}
	return r.Training == StatusAbnormal || r.Management == StatusAbnormal
}

// TownInterview 镇街走访谈话记录（叙述类）
type TownInterview struct {
	IDCard   string    `json:"id_card"`
	Date     time.Time `json:"date"`
	Thoughts string    `json:"thoughts"`
	Spirit   string    `json:"spirit"`
}

func (r TownInterview) SourceKey() SourceKey  { return SourceTownInterview }
func (r TownInterview) PersonID() string      { return r.IDCard }
func (r TownInterview) RecordedOn() time.Time { return r.Date }
func (r TownInterview) Abnormal(lex *Lexicon) bool {
	return lex.MatchBase(r.Thoughts) || lex.MatchBase(r.Spirit)
}

// LeaderInterview 骨干谈心记录（叙述类）
type LeaderInterview struct {
	IDCard   string    `json:"id_card"`
	Date     time.Time `json:"date"`
	Thoughts string    `json:"thoughts"`
	Spirit   string    `json:"spirit"`
}

func (r LeaderInterview) SourceKey() SourceKey  { return SourceLeaderInterview }
func (r LeaderInterview) PersonID() string      { return r.IDCard }
func (r LeaderInterview) RecordedOn() time.Time { return r.Date }
func (r LeaderInterview) Abnormal(lex *Lexicon) bool {
	return lex.MatchBase(r.Thoughts) || lex.MatchBase(r.Spirit)
}
