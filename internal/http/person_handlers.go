package httpapi

import (
	"net/http"

	"recruit-data/internal/repository"

	"go.uber.org/zap"
)

// PersonHandler 人员基础信息查询 API（只读；增删改归基础信息模块）
type PersonHandler struct {
	persons repository.PersonsRepository
	logger  *zap.Logger
}

func NewPersonHandler(persons repository.PersonsRepository, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{persons: persons, logger: logger}
}

// GET /admin/api/v1/persons
// params: name, id_card, recruitment_place, company, platoon, squad（子串过滤）
func (h *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := repository.PersonFilters{
		Name:             q.Get("name"),
		IDCard:           q.Get("id_card"),
		RecruitmentPlace: q.Get("recruitment_place"),
		Company:          q.Get("company"),
		Platoon:          q.Get("platoon"),
		Squad:            q.Get("squad"),
	}

	persons, err := h.persons.ListPersons(r.Context(), filters)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": persons,
		"count": len(persons),
	})
}
