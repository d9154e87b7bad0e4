package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterExceptionRoutes 注册异常统计相关路由
func (r *Router) RegisterExceptionRoutes(h *ExceptionHandler) {
	r.Handle("/data/api/v1/exceptions/view", requireMethod(http.MethodGet, h.GetView))
	r.Handle("/data/api/v1/exceptions/series", requireMethod(http.MethodGet, h.GetSeries))
	r.Handle("/data/api/v1/exceptions/detail", requireMethod(http.MethodGet, h.GetDetail))
	r.Handle("/data/api/v1/exceptions/export", requireMethod(http.MethodGet, h.Export))
}

// RegisterPersonRoutes 注册人员查询路由
func (r *Router) RegisterPersonRoutes(h *PersonHandler) {
	r.Handle("/admin/api/v1/persons", requireMethod(http.MethodGet, h.ListPersons))
}

// RegisterImportRoutes 注册日常统计批量导入路由
func (r *Router) RegisterImportRoutes(h *ImportHandler) {
	r.Handle("/data/api/v1/daily-stats/import", requireMethod(http.MethodPost, h.StartImport))
	r.Handle("/data/api/v1/daily-stats/import/progress", requireMethod(http.MethodGet, h.GetProgress))
	r.Handle("/data/api/v1/daily-stats/import/cancel", requireMethod(http.MethodPost, h.Cancel))
}

func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}
