package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/core/report"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// Handler は社員台帳の HTTP ハンドラーです。
type Handler struct {
	svc       employee.UseCase
	archive   report.Archive
	threshold float64
	now       func() time.Time
	logger    zerolog.Logger
}

// Option は Handler の任意設定です。
type Option func(*Handler)

// WithArchive はレポート保存先を設定します。未設定の場合 POST /api/reports は 503 を返します。
func WithArchive(a report.Archive) Option {
	return func(h *Handler) { h.archive = a }
}

// WithSalaryThreshold は集計で使う給与しきい値の既定値を設定します。
func WithSalaryThreshold(v float64) Option {
	return func(h *Handler) { h.threshold = v }
}

// WithClock はレポートのファイル名に使う現在時刻を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// New は Handler を生成します。
func New(svc employee.UseCase, logger zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:       svc,
		threshold: report.DefaultSalaryThreshold,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes はルーティング済みの http.Handler を返します。
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/employees", func(er chi.Router) {
			er.Get("/", h.listEmployees)
			er.Post("/", h.createEmployee)
			er.Post("/refresh", h.refreshEmployees)
			er.Get("/{id}", h.getEmployee)
			er.Put("/{id}", h.updateEmployee)
			er.Delete("/{id}", h.deleteEmployee)
		})

		api.Route("/reports", func(rr chi.Router) {
			rr.Get("/employees.csv", h.downloadCSV)
			rr.Get("/summary", h.summary)
			rr.Post("/", h.archiveCSV)
		})
	})

	return r
}
