package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/employee-registry/internal/core/employee"
	"github.com/ogurasousui/employee-registry/internal/core/report"
)

type employeeRequest struct {
	Name   string  `json:"name"`
	CPF    string  `json:"cpf"`
	Birth  string  `json:"birth"`
	Role   string  `json:"role"`
	Salary float64 `json:"salary"`
}

func (r employeeRequest) fields() employee.Fields {
	return employee.Fields{
		Name:      r.Name,
		CPF:       r.CPF,
		BirthDate: r.Birth,
		Role:      r.Role,
		Salary:    r.Salary,
	}
}

type employeeResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CPF           string  `json:"cpf"`
	Birth         string  `json:"birth"`
	Role          string  `json:"role"`
	Salary        float64 `json:"salary"`
	BirthDisplay  string  `json:"birth_display"`
	SalaryDisplay string  `json:"salary_display"`
}

func toEmployeeResponse(e employee.Employee) employeeResponse {
	f := employee.FieldsOf(e)
	return employeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		CPF:           e.CPF,
		Birth:         f.BirthDate,
		Role:          e.Role,
		Salary:        e.Salary,
		BirthDisplay:  report.FormatDate(e.BirthDate),
		SalaryDisplay: report.FormatCurrency(e.Salary),
	}
}

type listEmployeesResponse struct {
	Employees []employeeResponse `json:"employees"`
	Count     int                `json:"count"`
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	respondJSON(w, http.StatusOK, listEmployeesResponse{Employees: out, Count: len(out)})
}

func (h *Handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toEmployeeResponse(e))
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEmployeeRequest(w, r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), req.fields())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/employees/"+created.ID)
	respondJSON(w, http.StatusCreated, toEmployeeResponse(created))
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	req, err := decodeEmployeeRequest(w, r)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req.fields())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toEmployeeResponse(updated))
}

func (h *Handler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirmed {
		h.respondErr(w, r, errConfirmationRequired)
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) refreshEmployees(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Refresh(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"state": res.State.String(),
		"count": len(res.Employees),
	})
}

func decodeEmployeeRequest(w http.ResponseWriter, r *http.Request) (employeeRequest, error) {
	var req employeeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return employeeRequest{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return req, nil
}
