package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"recruit-data/internal/domain"
)

// MemoryStore: 用于 DB 未就绪时的联测和单元测试
// 同时实现 PersonsRepository 和 RecordsRepository，
// 行为与 Postgres 实现对齐（子串过滤不区分大小写、(id_card, record_date) 唯一）
type MemoryStore struct {
	mu sync.RWMutex

	persons map[string]domain.PersonMaster // idCard -> person

	// records keyed by source, then "idCard|2006-01-02"
	records map[domain.SourceKey]map[string]domain.SourceRecord
}

func NewMemoryStore() *MemoryStore {
	records := map[domain.SourceKey]map[string]domain.SourceRecord{}
	for _, key := range domain.SourceKeys {
		records[key] = map[string]domain.SourceRecord{}
	}
	return &MemoryStore{
		persons: map[string]domain.PersonMaster{},
		records: records,
	}
}

var (
	_ PersonsRepository = (*MemoryStore)(nil)
	_ RecordsRepository = (*MemoryStore)(nil)
)

// PutPerson 写入人员（测试/联测数据装载用）
func (s *MemoryStore) PutPerson(p domain.PersonMaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons[p.IDCard] = p
}

// PutRecord 写入来源记录，同 (id_card, record_date) 覆盖
func (s *MemoryStore) PutRecord(rec domain.SourceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.SourceKey()][recordKey(rec.PersonID(), rec.RecordedOn())] = rec
}

func recordKey(idCard string, date time.Time) string {
	return idCard + "|" + date.Format(domain.DateLayout)
}

// localDay 按年月日重建到本地时区零点，日期比较不受入参时区影响
func localDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func (s *MemoryStore) GetPerson(_ context.Context, idCard string) (*domain.PersonMaster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.persons[idCard]
	if !ok {
		return nil, ErrPersonNotFound
	}
	return &p, nil
}

func (s *MemoryStore) ListPersons(_ context.Context, filters PersonFilters) ([]*domain.PersonMaster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var persons []*domain.PersonMaster
	for _, p := range s.persons {
		if !matchPerson(p, filters) {
			continue
		}
		p := p
		persons = append(persons, &p)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].IDCard < persons[j].IDCard })
	return persons, nil
}

func matchPerson(p domain.PersonMaster, f PersonFilters) bool {
	contains := func(value, needle string) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
	}
	return contains(p.Name, f.Name) &&
		contains(p.IDCard, f.IDCard) &&
		contains(p.RecruitmentPlace, f.RecruitmentPlace) &&
		contains(p.Company, f.Company) &&
		contains(p.Platoon, f.Platoon) &&
		contains(p.Squad, f.Squad)
}

func (s *MemoryStore) ListRecords(_ context.Context, source domain.SourceKey, idCards []string, from, to *time.Time) ([]domain.SourceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bySource, ok := s.records[source]
	if !ok {
		return nil, nil
	}

	idSet := map[string]struct{}{}
	for _, id := range idCards {
		idSet[id] = struct{}{}
	}

	var records []domain.SourceRecord
	for _, rec := range bySource {
		if len(idSet) > 0 {
			if _, ok := idSet[rec.PersonID()]; !ok {
				continue
			}
		}
		day := localDay(rec.RecordedOn())
		if from != nil && day.Before(localDay(*from)) {
			continue
		}
		if to != nil && day.After(localDay(*to)) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].PersonID() != records[j].PersonID() {
			return records[i].PersonID() < records[j].PersonID()
		}
		return records[i].RecordedOn().Before(records[j].RecordedOn())
	})
	return records, nil
}

func (s *MemoryStore) UpsertDailyStat(_ context.Context, rec *domain.DailyStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[domain.SourceDailyStat][recordKey(rec.IDCard, rec.Date)] = *rec
	return nil
}
