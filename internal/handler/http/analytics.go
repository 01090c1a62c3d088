package http

import (
	"net/http"
	"strconv"

	"github.com/fieldserv/backoffice-go/internal/domain/analytics"
	"github.com/fieldserv/backoffice-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AnalyticsHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	EmployeeTrend(w http.ResponseWriter, r *http.Request)
	ProjectSummary(w http.ResponseWriter, r *http.Request)
	AllProjectsSummary(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: analyticsService}
}

func (h *analyticsHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.analyticsService.Overview(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *analyticsHandlerImpl) EmployeeTrend(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))

	result, err := h.analyticsService.EmployeeTrend(r.Context(), employeeID, months)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *analyticsHandlerImpl) ProjectSummary(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	granularity := analytics.Granularity(r.URL.Query().Get("granularity"))

	result, err := h.analyticsService.ProjectSummary(r.Context(), projectID, granularity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *analyticsHandlerImpl) AllProjectsSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.analyticsService.AllProjectsSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
