package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"recruit-data/internal/domain"
)

// PostgresPersonsRepository 人员基础信息Repository实现
type PostgresPersonsRepository struct {
	db *sql.DB
}

// NewPostgresPersonsRepository 创建人员Repository
func NewPostgresPersonsRepository(db *sql.DB) *PostgresPersonsRepository {
	return &PostgresPersonsRepository{db: db}
}

// 确保实现了接口
var _ PersonsRepository = (*PostgresPersonsRepository)(nil)

const personColumns = `
	id_card,
	name,
	gender,
	COALESCE(recruitment_place, '') AS recruitment_place,
	COALESCE(company, '') AS company,
	COALESCE(platoon, '') AS platoon,
	COALESCE(squad, '') AS squad,
	COALESCE(squad_leader, '') AS squad_leader,
	in_unit`

// GetPerson 根据身份证号获取人员信息
func (r *PostgresPersonsRepository) GetPerson(ctx context.Context, idCard string) (*domain.PersonMaster, error) {
	if idCard == "" {
		return nil, fmt.Errorf("id_card is required")
	}

	query := fmt.Sprintf(`SELECT %s FROM persons WHERE id_card = $1`, personColumns)

	var p domain.PersonMaster
	err := r.db.QueryRowContext(ctx, query, idCard).Scan(
		&p.IDCard,
		&p.Name,
		&p.Gender,
		&p.RecruitmentPlace,
		&p.Company,
		&p.Platoon,
		&p.Squad,
		&p.SquadLeader,
		&p.InUnit,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	return &p, nil
}

// ListPersons 查询人员列表（支持子串过滤，条件下推到数据库）
func (r *PostgresPersonsRepository) ListPersons(ctx context.Context, filters PersonFilters) ([]*domain.PersonMaster, error) {
	// 构建WHERE条件
	where := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	like := func(column, value string) {
		if value == "" {
			return
		}
		where = append(where, fmt.Sprintf("%s ILIKE $%d", column, argIdx))
		args = append(args, "%"+value+"%")
		argIdx++
	}

	like("name", filters.Name)
	like("id_card", filters.IDCard)
	like("recruitment_place", filters.RecruitmentPlace)
	like("company", filters.Company)
	like("platoon", filters.Platoon)
	like("squad", filters.Squad)

	query := fmt.Sprintf(`SELECT %s FROM persons WHERE %s ORDER BY id_card`,
		personColumns, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	defer rows.Close()

	var persons []*domain.PersonMaster
	for rows.Next() {
		var p domain.PersonMaster
		if err := rows.Scan(
			&p.IDCard,
			&p.Name,
			&p.Gender,
			&p.RecruitmentPlace,
			&p.Company,
			&p.Platoon,
			&p.Squad,
			&p.SquadLeader,
			&p.InUnit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate persons: %w", err)
	}

	return persons, nil
}
