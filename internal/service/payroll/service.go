package payroll

import (
	"context"
	"errors"

	"github.com/fieldserv/backoffice-go/internal/domain/attendance"
	"github.com/fieldserv/backoffice-go/internal/domain/employee"
	"github.com/fieldserv/backoffice-go/internal/domain/identity"
	"github.com/fieldserv/backoffice-go/internal/domain/payroll"
	"github.com/fieldserv/backoffice-go/internal/pkg/database"
	"github.com/fieldserv/backoffice-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx             database.Transactor
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// currentInputs reads the live figures net is derived from: the employee's
// basic salary right now and the period's aggregated overtime right now.
// A missing expense profile degrades to a zero basic salary.
func (s *PayrollServiceImpl) currentInputs(ctx context.Context, employeeID string, p period.Period) (basic, overtime decimal.Decimal, err error) {
	profile, err := s.employeeRepo.GetExpenseProfile(ctx, employeeID)
	switch {
	case err == nil:
		basic = profile.BasicSalary
	case errors.Is(err, employee.ErrExpenseProfileNotFound):
		basic = decimal.Zero
	default:
		return decimal.Zero, decimal.Zero, err
	}

	overtime, err = s.attendanceRepo.SumOvertimeHours(ctx, employeeID, p.Start(), p.End())
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return basic, overtime, nil
}

func (s *PayrollServiceImpl) Create(ctx context.Context, req *payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	actor, err := identity.FromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	exists, err := s.employeeRepo.Exists(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !exists {
		return payroll.PayrollResponse{}, employee.ErrEmployeeNotFound
	}

	p := req.ParsedPeriod()

	// The unique constraint is the real guard; this check only gives a
	// cleaner error before doing the derivation work.
	taken, err := s.payrollRepo.ExistsForPeriod(ctx, req.EmployeeID, p.Month, p.Year, "")
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if taken {
		return payroll.PayrollResponse{}, payroll.ErrPayrollRecordAlreadyExists
	}

	basic, overtime, err := s.currentInputs(ctx, req.EmployeeID, p)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	record := payroll.Payroll{
		EmployeeID:           req.EmployeeID,
		PeriodMonth:          p.Month,
		PeriodYear:           p.Year,
		LabourCard:           req.LabourCard,
		LabourCardPersonalNo: req.LabourCardPersonalNo,
		Allowance:            req.Allowance,
		Deduction:            req.Deduction,
		Mess:                 req.Mess,
		Advance:              req.Advance,
		Net:                  payroll.ComputeNet(basic, req.Allowance, overtime, req.Deduction, req.Mess, req.Advance),
		Remark:               req.Remark,
		CreatedBy:            &actor.UserID,
	}

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	created.BasicSalary = basic
	created.OvertimeHours = overtime
	created.TotalEarning = basic.Add(created.Allowance).Add(overtime)
	return payroll.ToResponse(created), nil
}

func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetEnrichedByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return payroll.ToResponse(record), nil
}

func (s *PayrollServiceImpl) Update(ctx context.Context, id string, req *payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	// The row read, the period conflict check and the write must observe
	// one consistent state, so the whole read-modify-write runs in a
	// single transaction.
	var recordID string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		record, err := s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		keyChanged := false
		if req.EmployeeID != nil && *req.EmployeeID != record.EmployeeID {
			exists, err := s.employeeRepo.Exists(ctx, *req.EmployeeID)
			if err != nil {
				return err
			}
			if !exists {
				return employee.ErrEmployeeNotFound
			}
			record.EmployeeID = *req.EmployeeID
			keyChanged = true
		}
		if p := req.ParsedPeriod(); p != nil && (p.Month != record.PeriodMonth || p.Year != record.PeriodYear) {
			record.PeriodMonth = p.Month
			record.PeriodYear = p.Year
			keyChanged = true
		}

		if keyChanged {
			taken, err := s.payrollRepo.ExistsForPeriod(ctx, record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.ID)
			if err != nil {
				return err
			}
			if taken {
				return payroll.ErrPayrollRecordAlreadyExists
			}
		}

		if req.LabourCard != nil {
			record.LabourCard = req.LabourCard
		}
		if req.LabourCardPersonalNo != nil {
			record.LabourCardPersonalNo = req.LabourCardPersonalNo
		}
		if req.Remark != nil {
			record.Remark = req.Remark
		}
		if req.Allowance != nil {
			record.Allowance = req.Allowance.Decimal
		}
		if req.Deduction != nil {
			record.Deduction = req.Deduction.Decimal
		}
		if req.Mess != nil {
			record.Mess = req.Mess.Decimal
		}
		if req.Advance != nil {
			record.Advance = req.Advance.Decimal
		}

		// Net is always re-derived from current inputs when anything
		// feeding it moved; it is never patched incrementally.
		if req.TouchesMoney() || keyChanged {
			basic, overtime, err := s.currentInputs(ctx, record.EmployeeID, record.Period())
			if err != nil {
				return err
			}
			record.Net = payroll.ComputeNet(basic, record.Allowance, overtime, record.Deduction, record.Mess, record.Advance)
		}

		recordID = record.ID
		return s.payrollRepo.Update(ctx, record)
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.GetByID(ctx, recordID)
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return payroll.ToResponseList(records), total, nil
}

func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := identity.FromContext(ctx); err != nil {
		return err
	}
	return s.payrollRepo.Delete(ctx, id)
}

func (s *PayrollServiceImpl) RegisterSummary(ctx context.Context, periodStr string) (payroll.RegisterSummary, error) {
	p, err := period.Parse(periodStr)
	if err != nil {
		return payroll.RegisterSummary{}, err
	}
	return s.payrollRepo.GetRegisterSummary(ctx, p.Month, p.Year)
}
