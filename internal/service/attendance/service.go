package attendance

import (
	"context"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/domain/employee"
	"github.com/fieldserv/backoffice-go/internal/domain/identity"
	"github.com/fieldserv/backoffice-go/internal/domain/project"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	projectRepo    project.ProjectRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	projectRepo project.ProjectRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		projectRepo:    projectRepo,
	}
}

func (s *AttendanceServiceImpl) Mark(ctx context.Context, req *attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	exists, err := s.employeeRepo.Exists(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !exists {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
	}

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Date:       req.ParsedDate(),
		Present:    req.Present,
		MarkedBy:   &actor.UserID,
	}
	record.WorkingHours, record.OvertimeHours = attendance.DeriveHours(req.Present, req.ParsedHours())

	if req.Type == attendance.TypeProject {
		proj, err := s.projectRepo.GetByID(ctx, *req.ProjectID)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		if !proj.HasWorker(req.EmployeeID) {
			return attendance.AttendanceResponse{}, project.ErrWorkerNotAssigned
		}
		// Only the project's driver marks attendance on site; admins may
		// correct records from the office.
		if !actor.IsAdmin && !proj.IsDriver(actor.UserID) {
			return attendance.AttendanceResponse{}, attendance.ErrMarkNotPermitted
		}
		record.ProjectID = req.ProjectID
	}

	saved, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(saved), nil
}

func (s *AttendanceServiceImpl) GetByID(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(record), nil
}

func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return attendance.ToResponseList(records), total, nil
}

func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := identity.FromContext(ctx); err != nil {
		return err
	}
	return s.attendanceRepo.Delete(ctx, id)
}
