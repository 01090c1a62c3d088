package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fieldserv/backoffice-go/internal/domain/payroll"
	"github.com/fieldserv/backoffice-go/internal/handler/http/response"
	"github.com/fieldserv/backoffice-go/internal/pkg/period"
	"github.com/fieldserv/backoffice-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	RegisterSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Create(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record created", result)
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePayrollFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, total, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payroll.UpdatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Update(r.Context(), id, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record updated", result)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted", nil)
}

func (h *payrollHandlerImpl) RegisterSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.RegisterSummary(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parsePayrollFilter reads the list query. The date window filters on when
// rows were entered (created_at), not on the pay period; exact period
// filtering goes through the period param.
func parsePayrollFilter(r *http.Request) (payroll.PayrollFilter, error) {
	q := r.URL.Query()

	filter := payroll.PayrollFilter{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("period"); v != "" {
		filter.Period = &v
	}
	if v := q.Get("labour_card"); v != "" {
		filter.LabourCard = &v
	}

	createdQuery := period.Query{}
	hasWindow := false
	if v := q.Get("start_date"); v != "" {
		date, ok := validator.IsValidDate(v)
		if !ok {
			return payroll.PayrollFilter{}, validator.ValidationErrors{
				{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"},
			}
		}
		createdQuery.Start = &date
		hasWindow = true
	}
	if v := q.Get("end_date"); v != "" {
		date, ok := validator.IsValidDate(v)
		if !ok {
			return payroll.PayrollFilter{}, validator.ValidationErrors{
				{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"},
			}
		}
		createdQuery.End = &date
		hasWindow = true
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return payroll.PayrollFilter{}, validator.ValidationErrors{
				{Field: "year", Message: "year must be a number"},
			}
		}
		createdQuery.Year = &year
		hasWindow = true
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			return payroll.PayrollFilter{}, validator.ValidationErrors{
				{Field: "month", Message: "month must be a number"},
			}
		}
		createdQuery.Month = &month
		hasWindow = true
	}

	if hasWindow {
		if (createdQuery.Start == nil) != (createdQuery.End == nil) {
			return payroll.PayrollFilter{}, validator.ValidationErrors{
				{Field: "start_date", Message: "start_date and end_date must be supplied together"},
			}
		}
		rng, err := period.Resolve(createdQuery, time.Now().UTC())
		if err != nil {
			return payroll.PayrollFilter{}, err
		}
		filter.CreatedFrom = &rng.Start
		filter.CreatedTo = &rng.End
	}

	return filter, nil
}
