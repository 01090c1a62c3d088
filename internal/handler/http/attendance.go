package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/handler/http/response"
	"github.com/fieldserv/backoffice-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked", result)
}

func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, response.NewMeta(filter.Page, filter.Limit, total))
}

func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

func parseAttendanceFilter(r *http.Request) (attendance.AttendanceFilter, error) {
	q := r.URL.Query()

	filter := attendance.AttendanceFilter{
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("project_id"); v != "" {
		filter.ProjectID = &v
	}
	if v := q.Get("type"); v != "" {
		t := attendance.Type(v)
		filter.Type = &t
	}
	if v := q.Get("date_from"); v != "" {
		date, ok := validator.IsValidDate(v)
		if !ok {
			return attendance.AttendanceFilter{}, validator.ValidationErrors{
				{Field: "date_from", Message: "date_from must be in YYYY-MM-DD format"},
			}
		}
		filter.DateFrom = &date
	}
	if v := q.Get("date_to"); v != "" {
		date, ok := validator.IsValidDate(v)
		if !ok {
			return attendance.AttendanceFilter{}, validator.ValidationErrors{
				{Field: "date_to", Message: "date_to must be in YYYY-MM-DD format"},
			}
		}
		// Half-open upper bound: include the full date_to day
		end := date.AddDate(0, 0, 1)
		filter.DateTo = &end
	}

	return filter, nil
}
