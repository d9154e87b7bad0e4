package repository

import (
	"context"
	"errors"

	"recruit-data/internal/domain"
)

// ErrPersonNotFound 人员不存在（单人查询时返回；批量场景由调用方静默跳过）
var ErrPersonNotFound = errors.New("person not found")

// PersonsRepository 人员基础信息访问接口（本服务只读）
// 使用强类型领域模型，不使用map[string]any
type PersonsRepository interface {
	GetPerson(ctx context.Context, idCard string) (*domain.PersonMaster, error)
	ListPersons(ctx context.Context, filters PersonFilters) ([]*domain.PersonMaster, error)
}

// PersonFilters 人员查询过滤器
// 所有条件为子串匹配、不区分大小写，空值表示不限制，多个条件取交集
type PersonFilters struct {
	Name             string
	IDCard           string
	RecruitmentPlace string
	Company          string
	Platoon          string
	Squad            string
}

// Empty 是否没有任何过滤条件
func (f PersonFilters) Empty() bool {
	return f.Name == "" && f.IDCard == "" && f.RecruitmentPlace == "" &&
		f.Company == "" && f.Platoon == "" && f.Squad == ""
}
