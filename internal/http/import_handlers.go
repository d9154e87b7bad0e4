package httpapi

import (
	"errors"
	"net/http"

	"recruit-data/internal/service"

	"go.uber.org/zap"
)

// ImportHandler 日常统计批量导入 API
type ImportHandler struct {
	importer *service.BulkImporter
	maxRows  int
	logger   *zap.Logger
}

func NewImportHandler(importer *service.BulkImporter, maxRows int, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{importer: importer, maxRows: maxRows, logger: logger}
}

// POST /data/api/v1/daily-stats/import
// multipart 表单，字段名 file，内容为导入模板格式的 xlsx
func (h *ImportHandler) StartImport(w http.ResponseWriter, r *http.Request) {
	// 32MB 上限足够覆盖万行级模板
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid multipart form"})
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "file field is required"})
		return
	}
	defer file.Close()

	stats, err := ParseDailyStatWorkbook(file, h.maxRows)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	if err := h.importer.Start(stats, nil); err != nil {
		if errors.Is(err, service.ErrImportBusy) {
			writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
			return
		}
		h.logger.Error("failed to start bulk import", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to start import"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"accepted": len(stats),
	})
}

// GET /data/api/v1/daily-stats/import/progress
func (h *ImportHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.importer.Progress())
}

// POST /data/api/v1/daily-stats/import/cancel
func (h *ImportHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.importer.Cancel()
	writeJSON(w, http.StatusOK, h.importer.Progress())
}
