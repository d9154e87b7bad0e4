package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"recruit-data/internal/domain"
	"recruit-data/internal/engine"
	"recruit-data/internal/repository"

	"go.uber.org/zap"
)

// ExceptionHandler 异常状态统计 API
type ExceptionHandler struct {
	engine *engine.Engine
	logger *zap.Logger
}

func NewExceptionHandler(eng *engine.Engine, logger *zap.Logger) *ExceptionHandler {
	return &ExceptionHandler{engine: eng, logger: logger}
}

// exceptionRowDTO 视图行的响应形态（日期格式化为 2006-01-02）
type exceptionRowDTO struct {
	IDCard           string `json:"id_card"`
	Name             string `json:"name"`
	Gender           string `json:"gender"`
	RecruitmentPlace string `json:"recruitment_place"`
	Company          string `json:"company"`
	Platoon          string `json:"platoon"`
	Squad            string `json:"squad"`
	SquadLeader      string `json:"squad_leader"`
	Date             string `json:"date"`

	MedicalScreening    bool `json:"medical_screening"`
	PoliticalAssessment bool `json:"political_assessment"`
	PhysicalExamination bool `json:"physical_examination"`
	DailyStat           bool `json:"daily_stat"`
	TownInterview       bool `json:"town_interview"`
	LeaderInterview     bool `json:"leader_interview"`

	TotalException    bool   `json:"total_exception"`
	SourceAttribution string `json:"source_attribution"`
}

func toRowDTO(row domain.ExceptionViewRow) exceptionRowDTO {
	return exceptionRowDTO{
		IDCard:           row.IDCard,
		Name:             row.Name,
		Gender:           row.Gender,
		RecruitmentPlace: row.RecruitmentPlace,
		Company:          row.Company,
		Platoon:          row.Platoon,
		Squad:            row.Squad,
		SquadLeader:      row.SquadLeader,
		Date:             row.Date.Format(domain.DateLayout),

		MedicalScreening:    row.MedicalScreening,
		PoliticalAssessment: row.PoliticalAssessment,
		PhysicalExamination: row.PhysicalExamination,
		DailyStat:           row.DailyStat,
		TownInterview:       row.TownInterview,
		LeaderInterview:     row.LeaderInterview,

		TotalException:    row.TotalException,
		SourceAttribution: row.SourceAttribution,
	}
}

// GET /data/api/v1/exceptions/view
// params: name, id_card, recruitment_place, company, platoon, squad（子串过滤）
//         scope（预设名）或 start+end（2006-01-02，闭区间）
func (h *ExceptionHandler) GetView(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	rows, err := h.engine.GetExceptionView(r.Context(), criteria)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]exceptionRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toRowDTO(row))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// GET /data/api/v1/exceptions/series
// params: id_card（必填）, source（六类来源键或 total_exception，默认 total_exception）,
//         scope 或 start+end
func (h *ExceptionHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	idCard := q.Get("id_card")
	if idCard == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "id_card is required"})
		return
	}

	source := domain.SourceKey(q.Get("source"))
	if source == "" {
		source = domain.SourceTotal
	}

	scope, err := parseScope(q)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	points, err := h.engine.GetExceptionSeries(r.Context(), idCard, scope, source)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	type pointDTO struct {
		Date  string `json:"date"`
		Value int    `json:"value"`
	}
	items := make([]pointDTO, 0, len(points))
	for _, p := range points {
		items = append(items, pointDTO{Date: p.Date.Format(domain.DateLayout), Value: p.Value})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id_card": idCard,
		"source":  source,
		"items":   items,
	})
}

// GET /data/api/v1/exceptions/detail
// params: id_card, date — 单人单日的逐来源明细（钻取"这天为什么异常"）
func (h *ExceptionHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	idCard := q.Get("id_card")
	if idCard == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "id_card is required"})
		return
	}
	date, err := time.ParseInLocation(domain.DateLayout, q.Get("date"), time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "date must be in 2006-01-02 format"})
		return
	}

	status, err := h.engine.GetDailyBreakdown(r.Context(), idCard, date)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	flags := map[string]bool{}
	for key, flag := range status.Flags {
		flags[string(key)] = flag
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id_card": status.IDCard,
		"date":    status.Date.Format(domain.DateLayout),
		"flags":   flags,
		"total":   status.Total,
	})
}

// GET /data/api/v1/exceptions/export — 视图行导出为 xlsx 附件
func (h *ExceptionHandler) Export(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	rows, err := h.engine.GetExceptionView(r.Context(), criteria)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	data, err := GenerateExceptionExport(rows)
	if err != nil {
		h.logger.Error("failed to generate exception export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to generate export"})
		return
	}

	filename := fmt.Sprintf("exception_statistics_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func parseCriteria(q url.Values) (engine.Criteria, error) {
	scope, err := parseScope(q)
	if err != nil {
		return engine.Criteria{}, err
	}
	return engine.Criteria{
		Name:             q.Get("name"),
		IDCard:           q.Get("id_card"),
		RecruitmentPlace: q.Get("recruitment_place"),
		Company:          q.Get("company"),
		Platoon:          q.Get("platoon"),
		Squad:            q.Get("squad"),
		Scope:            scope,
	}, nil
}

func parseScope(q url.Values) (engine.TimeScope, error) {
	if preset := q.Get("scope"); preset != "" {
		return engine.TimeScope{Preset: preset}, nil
	}

	scope := engine.TimeScope{}
	if s := q.Get("start"); s != "" {
		start, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
		if err != nil {
			return scope, fmt.Errorf("%w: bad start date %q", engine.ErrInvalidRange, s)
		}
		scope.Start = &start
	}
	if s := q.Get("end"); s != "" {
		end, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
		if err != nil {
			return scope, fmt.Errorf("%w: bad end date %q", engine.ErrInvalidRange, s)
		}
		scope.End = &end
	}
	return scope, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError 引擎错误到 HTTP 状态码的映射
// 调用方输入错误 400，单人查无此人 404，其余（store 故障等）500
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidRange), errors.Is(err, engine.ErrUnknownSource):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
	case errors.Is(err, repository.ErrPersonNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}
