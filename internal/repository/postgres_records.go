package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"recruit-data/internal/domain"

	"github.com/lib/pq"
)

// PostgresRecordsRepository 六类来源记录Repository实现
// 每类来源一张表，表内 (id_card, record_date) 唯一
type PostgresRecordsRepository struct {
	db *sql.DB
}

// NewPostgresRecordsRepository 创建来源记录Repository
func NewPostgresRecordsRepository(db *sql.DB) *PostgresRecordsRepository {
	return &PostgresRecordsRepository{db: db}
}

var _ RecordsRepository = (*PostgresRecordsRepository)(nil)

// ListRecords 查询某类来源的记录，按来源键分发到对应表
func (r *PostgresRecordsRepository) ListRecords(ctx context.Context, source domain.SourceKey, idCards []string, from, to *time.Time) ([]domain.SourceRecord, error) {
	switch source {
	case domain.SourceMedicalScreening:
		return r.listMedicalScreenings(ctx, idCards, from, to)
	case domain.SourcePoliticalAssessment:
		return r.listNarratives(ctx, "political_assessments", source, idCards, from, to)
	case domain.SourcePhysicalExamination:
		return r.listPhysicalExaminations(ctx, idCards, from, to)
	case domain.SourceDailyStat:
		return r.listDailyStats(ctx, idCards, from, to)
	case domain.SourceTownInterview:
		return r.listNarratives(ctx, "town_interviews", source, idCards, from, to)
	case domain.SourceLeaderInterview:
		return r.listNarratives(ctx, "leader_interviews", source, idCards, from, to)
	default:
		return nil, fmt.Errorf("unknown source key: %s", source)
	}
}

// recordsWhere 构建各来源表共用的WHERE条件
func recordsWhere(idCards []string, from, to *time.Time) (string, []any) {
	where := []string{"TRUE"}
	args := []any{}
	argIdx := 1

	if len(idCards) > 0 {
		where = append(where, fmt.Sprintf("id_card = ANY($%d)", argIdx))
		args = append(args, pq.Array(idCards))
		argIdx++
	}
	if from != nil {
		where = append(where, fmt.Sprintf("record_date >= $%d", argIdx))
		args = append(args, *from)
		argIdx++
	}
	if to != nil {
		where = append(where, fmt.Sprintf("record_date <= $%d", argIdx))
		args = append(args, *to)
		argIdx++
	}

	return strings.Join(where, " AND "), args
}

func (r *PostgresRecordsRepository) listMedicalScreenings(ctx context.Context, idCards []string, from, to *time.Time) ([]domain.SourceRecord, error) {
	whereClause, args := recordsWhere(idCards, from, to)
	query := fmt.Sprintf(`
		SELECT
			id_card,
			record_date,
			COALESCE(physical_status, '') AS physical_status,
			COALESCE(mental_status, '') AS mental_status
		FROM medical_screenings
		WHERE %s
		ORDER BY id_card, record_date`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical_screenings: %w", err)
	}
	defer rows.Close()

	var records []domain.SourceRecord
	for rows.Next() {
		var rec domain.MedicalScreening
		if err := rows.Scan(&rec.IDCard, &rec.Date, &rec.PhysicalStatus, &rec.MentalStatus); err != nil {
			return nil, fmt.Errorf("failed to scan medical_screening: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresRecordsRepository) listPhysicalExaminations(ctx context.Context, idCards []string, from, to *time.Time) ([]domain.SourceRecord, error) {
	whereClause, args := recordsWhere(idCards, from, to)
	query := fmt.Sprintf(`
		SELECT
			id_card,
			record_date,
			COALESCE(body_status, '') AS body_status
		FROM physical_examinations
		WHERE %s
		ORDER BY id_card, record_date`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query physical_examinations: %w", err)
	}
	defer rows.Close()

	var records []domain.SourceRecord
	for rows.Next() {
		var rec domain.PhysicalExamination
		if err := rows.Scan(&rec.IDCard, &rec.Date, &rec.BodyStatus); err != nil {
			return nil, fmt.Errorf("failed to scan physical_examination: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresRecordsRepository) listDailyStats(ctx context.Context, idCards []string, from, to *time.Time) ([]domain.SourceRecord, error) {
	whereClause, args := recordsWhere(idCards, from, to)
	query := fmt.Sprintf(`
		SELECT
			id_card,
			record_date,
			COALESCE(mood, '') AS mood,
			COALESCE(physical_condition, '') AS physical_condition,
			COALESCE(mental_state, '') AS mental_state,
			COALESCE(training, '') AS training,
			COALESCE(management, '') AS management
		FROM daily_stats
		WHERE %s
		ORDER BY id_card, record_date`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily_stats: %w", err)
	}
	defer rows.Close()

	var records []domain.SourceRecord
	for rows.Next() {
		var rec domain.DailyStat
		if err := rows.Scan(
			&rec.IDCard,
			&rec.Date,
			&rec.Mood,
			&rec.PhysicalCondition,
			&rec.MentalState,
			&rec.Training,
			&rec.Management,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily_stat: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// listNarratives 三张叙述类表（政治考核/镇街走访/骨干谈心）结构相同，共用一个查询
func (r *PostgresRecordsRepository) listNarratives(ctx context.Context, table string, source domain.SourceKey, idCards []string, from, to *time.Time) ([]domain.SourceRecord, error) {
	whereClause, args := recordsWhere(idCards, from, to)
	query := fmt.Sprintf(`
		SELECT
			id_card,
			record_date,
			COALESCE(thoughts, '') AS thoughts,
			COALESCE(spirit, '') AS spirit
		FROM %s
		WHERE %s
		ORDER BY id_card, record_date`, table, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var records []domain.SourceRecord
	for rows.Next() {
		var idCard, thoughts, spirit string
		var date time.Time
		if err := rows.Scan(&idCard, &date, &thoughts, &spirit); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		switch source {
		case domain.SourcePoliticalAssessment:
			records = append(records, domain.PoliticalAssessment{IDCard: idCard, Date: date, Thoughts: thoughts, Spirit: spirit})
		case domain.SourceTownInterview:
			records = append(records, domain.TownInterview{IDCard: idCard, Date: date, Thoughts: thoughts, Spirit: spirit})
		case domain.SourceLeaderInterview:
			records = append(records, domain.LeaderInterview{IDCard: idCard, Date: date, Thoughts: thoughts, Spirit: spirit})
		}
	}
	return records, rows.Err()
}

// UpsertDailyStat 写入/覆盖一条日常统计记录
// (id_card, record_date) 冲突时整行覆盖（后写覆盖先写的upsert约定）
func (r *PostgresRecordsRepository) UpsertDailyStat(ctx context.Context, rec *domain.DailyStat) error {
	if rec == nil || rec.IDCard == "" {
		return fmt.Errorf("id_card is required")
	}

	query := `
		INSERT INTO daily_stats (id_card, record_date, mood, physical_condition, mental_state, training, management)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id_card, record_date)
		DO UPDATE SET mood = EXCLUDED.mood,
		              physical_condition = EXCLUDED.physical_condition,
		              mental_state = EXCLUDED.mental_state,
		              training = EXCLUDED.training,
		              management = EXCLUDED.management`

	_, err := r.db.ExecContext(ctx, query,
		rec.IDCard,
		rec.Date,
		rec.Mood,
		rec.PhysicalCondition,
		rec.MentalState,
		rec.Training,
		rec.Management,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily_stat: %w", err)
	}
	return nil
}
