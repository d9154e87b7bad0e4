package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"recruit-data/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRecordsRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresRecordsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresRecordsRepository(db)
}

func TestListRecords_MedicalScreenings(t *testing.T) {
	db, mock, repo := setupRecordsRepo(t)
	defer db.Close()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	rows := sqlmock.NewRows([]string{"id_card", "record_date", "physical_status", "mental_status"}).
		AddRow("A", day, domain.StatusAbnormal, domain.StatusNormal)

	mock.ExpectQuery(`FROM medical_screenings`).
		WithArgs(pq.Array([]string{"A"})).
		WillReturnRows(rows)

	records, err := repo.ListRecords(context.Background(), domain.SourceMedicalScreening, []string{"A"}, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec, ok := records[0].(domain.MedicalScreening)
	require.True(t, ok)
	assert.Equal(t, "A", rec.IDCard)
	assert.Equal(t, domain.StatusAbnormal, rec.PhysicalStatus)
	assert.True(t, rec.Abnormal(domain.DefaultLexicon()))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecords_DailyStatsWithDateRange(t *testing.T) {
	db, mock, repo := setupRecordsRepo(t)
	defer db.Close()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)

	rows := sqlmock.NewRows([]string{
		"id_card", "record_date", "mood", "physical_condition", "mental_state", "training", "management",
	}).AddRow("A", from, "紧张", "良好", "饱满", domain.StatusNormal, domain.StatusNormal)

	mock.ExpectQuery(`FROM daily_stats`).
		WithArgs(pq.Array([]string{"A"}), from, to).
		WillReturnRows(rows)

	records, err := repo.ListRecords(context.Background(), domain.SourceDailyStat, []string{"A"}, &from, &to)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec, ok := records[0].(domain.DailyStat)
	require.True(t, ok)
	assert.Equal(t, "紧张", rec.Mood)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecords_NarrativeTables(t *testing.T) {
	db, mock, repo := setupRecordsRepo(t)
	defer db.Close()

	day := time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local)

	// 三张叙述类表结构相同，逐一验证分发到正确的表和类型
	cases := []struct {
		source domain.SourceKey
		table  string
	}{
		{domain.SourcePoliticalAssessment, "political_assessments"},
		{domain.SourceTownInterview, "town_interviews"},
		{domain.SourceLeaderInterview, "leader_interviews"},
	}

	for _, tc := range cases {
		rows := sqlmock.NewRows([]string{"id_card", "record_date", "thoughts", "spirit"}).
			AddRow("A", day, "有问题", "")

		mock.ExpectQuery(`FROM ` + tc.table).
			WillReturnRows(rows)

		records, err := repo.ListRecords(context.Background(), tc.source, nil, nil, nil)
		require.NoError(t, err, tc.table)
		require.Len(t, records, 1, tc.table)
		assert.Equal(t, tc.source, records[0].SourceKey(), tc.table)
		assert.True(t, records[0].Abnormal(domain.DefaultLexicon()), tc.table)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecords_UnknownSource(t *testing.T) {
	db, _, repo := setupRecordsRepo(t)
	defer db.Close()

	_, err := repo.ListRecords(context.Background(), domain.SourceKey("mystery"), nil, nil, nil)
	require.Error(t, err)
}

func TestUpsertDailyStat(t *testing.T) {
	db, mock, repo := setupRecordsRepo(t)
	defer db.Close()

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	rec := &domain.DailyStat{
		IDCard: "A", Date: day,
		Mood: "正常", PhysicalCondition: "良好", MentalState: "饱满",
		Training: domain.StatusNormal, Management: domain.StatusNormal,
	}

	mock.ExpectExec(`INSERT INTO daily_stats`).
		WithArgs(rec.IDCard, rec.Date, rec.Mood, rec.PhysicalCondition, rec.MentalState, rec.Training, rec.Management).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpsertDailyStat(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDailyStat_MissingIDCard(t *testing.T) {
	db, _, repo := setupRecordsRepo(t)
	defer db.Close()

	require.Error(t, repo.UpsertDailyStat(context.Background(), &domain.DailyStat{}))
	require.Error(t, repo.UpsertDailyStat(context.Background(), nil))
}
