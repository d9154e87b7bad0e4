package domain

// PersonMaster 人员基础信息（基础信息模块维护，本引擎只读）
// 自然主键为身份证号，六类来源记录通过 id_card 关联
type PersonMaster struct {
	IDCard           string `json:"id_card"`
	Name             string `json:"name"`
	Gender           string `json:"gender"`
	RecruitmentPlace string `json:"recruitment_place"` // 接兵地
	Company          string `json:"company"`           // 连
	Platoon          string `json:"platoon"`           // 排
	Squad            string `json:"squad"`             // 班
	SquadLeader      string `json:"squad_leader"`      // 班长
	InUnit           bool   `json:"in_unit"`           // 是否在队
}
