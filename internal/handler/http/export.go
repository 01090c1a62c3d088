package http

import (
	"net/http"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/domain/payroll"
	"github.com/fieldserv/backoffice-go/internal/handler/http/response"
	"github.com/fieldserv/backoffice-go/internal/service/export"
	"github.com/go-chi/chi/v5"
)

const (
	exportPageSize = 100
	// exportRowLimit caps how many rows a single export pulls.
	exportRowLimit = 10000
)

type ExportHandler interface {
	AttendanceXLSX(w http.ResponseWriter, r *http.Request)
	PayrollRegisterXLSX(w http.ResponseWriter, r *http.Request)
	PayslipPDF(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService     export.ExportService
	attendanceService attendance.AttendanceService
	payrollService    payroll.PayrollService
}

func NewExportHandler(
	exportService export.ExportService,
	attendanceService attendance.AttendanceService,
	payrollService payroll.PayrollService,
) ExportHandler {
	return &exportHandlerImpl{
		exportService:     exportService,
		attendanceService: attendanceService,
		payrollService:    payrollService,
	}
}

func (h *exportHandlerImpl) AttendanceXLSX(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.Limit = exportPageSize

	var records []attendance.AttendanceResponse
	for page := 1; len(records) < exportRowLimit; page++ {
		filter.Page = page
		batch, total, err := h.attendanceService.List(r.Context(), filter)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		records = append(records, batch...)
		if len(batch) == 0 || int64(len(records)) >= total {
			break
		}
	}

	buf, err := h.exportService.AttendanceXLSX(records)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *exportHandlerImpl) PayrollRegisterXLSX(w http.ResponseWriter, r *http.Request) {
	periodStr := r.URL.Query().Get("period")

	summary, err := h.payrollService.RegisterSummary(r.Context(), periodStr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// The register reads top to bottom by employee name.
	filter := payroll.PayrollFilter{
		Period:    &periodStr,
		Limit:     exportPageSize,
		SortBy:    "employee_name",
		SortOrder: "asc",
	}
	var records []payroll.PayrollResponse
	for page := 1; len(records) < exportRowLimit; page++ {
		filter.Page = page
		batch, total, err := h.payrollService.List(r.Context(), filter)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		records = append(records, batch...)
		if len(batch) == 0 || int64(len(records)) >= total {
			break
		}
	}

	buf, err := h.exportService.PayrollRegisterXLSX(records, summary)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="payroll-register.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *exportHandlerImpl) PayslipPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buf, err := h.exportService.PayslipPDF(record)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip.pdf"`)
	_, _ = w.Write(buf.Bytes())
}
