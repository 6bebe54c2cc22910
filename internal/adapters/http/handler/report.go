package handler

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/ogurasousui/employee-registry/internal/core/report"
)

func (h *Handler) downloadCSV(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	body, err := report.CSV(employees)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(h.now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	threshold := h.threshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			h.respondErr(w, r, errInvalidThreshold)
			return
		}
		threshold = v
	}

	employees, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.Summarize(employees, threshold).WriteText(&buf); err != nil {
		h.respondErr(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) archiveCSV(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.respondErr(w, r, errArchiveDisabled)
		return
	}

	employees, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	body, err := report.CSV(employees)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	name := report.FileName(h.now())
	location, err := h.archive.Save(r.Context(), name, body)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	h.logger.Info().Str("location", location).Int("count", len(employees)).Msg("report archived")
	respondJSON(w, http.StatusCreated, map[string]string{"name": name, "location": location})
}
