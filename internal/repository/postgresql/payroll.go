package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldserv/backoffice-go/internal/domain/payroll"
	"github.com/fieldserv/backoffice-go/internal/pkg/database"
	"github.com/fieldserv/backoffice-go/internal/pkg/period"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, employee_id, period_month, period_year, labour_card,
		labour_card_personal_no, allowance, deduction, mess, advance, net,
		remark, created_by, created_at, updated_at`

// enrichedPayrollSelect attaches the employee's current basic salary and the
// period's current overtime sum to every row. Both are live reads, never
// cached copies, so edits to expense profiles or attendance show up on the
// next list call.
const enrichedPayrollSelect = `
	SELECT pr.id, pr.employee_id, pr.period_month, pr.period_year, pr.labour_card,
		   pr.labour_card_personal_no, pr.allowance, pr.deduction, pr.mess, pr.advance,
		   pr.net, pr.remark, pr.created_by, pr.created_at, pr.updated_at,
		   e.full_name,
		   COALESCE(ep.basic_salary, 0) AS basic_salary,
		   COALESCE((
			   SELECT SUM(a.overtime_hours)
			   FROM attendances a
			   WHERE a.employee_id = pr.employee_id
				 AND a.present
				 AND a.date >= make_date(pr.period_year, pr.period_month, 1)
				 AND a.date < make_date(pr.period_year, pr.period_month, 1) + INTERVAL '1 month'
		   ), 0) AS overtime_hours
	FROM payroll_records pr
	JOIN employees e ON e.id = pr.employee_id
	LEFT JOIN employee_expense_profiles ep ON ep.employee_id = pr.employee_id
`

func scanEnrichedPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodMonth, &p.PeriodYear, &p.LabourCard,
		&p.LabourCardPersonalNo, &p.Allowance, &p.Deduction, &p.Mess, &p.Advance,
		&p.Net, &p.Remark, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.BasicSalary, &p.OvertimeHours,
	)
	if err != nil {
		return payroll.Payroll{}, err
	}
	p.TotalEarning = p.BasicSalary.Add(p.Allowance).Add(p.OvertimeHours)
	return p, nil
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_month, period_year, labour_card,
			labour_card_personal_no, allowance, deduction, mess, advance, net,
			remark, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + payrollColumns

	var p payroll.Payroll
	err := q.QueryRow(ctx, query,
		uuid.NewString(), record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.LabourCard, record.LabourCardPersonalNo, record.Allowance,
		record.Deduction, record.Mess, record.Advance, record.Net,
		record.Remark, record.CreatedBy,
	).Scan(
		&p.ID, &p.EmployeeID, &p.PeriodMonth, &p.PeriodYear, &p.LabourCard,
		&p.LabourCardPersonalNo, &p.Allowance, &p.Deduction, &p.Mess, &p.Advance,
		&p.Net, &p.Remark, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.Payroll{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE id = $1`

	var p payroll.Payroll
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EmployeeID, &p.PeriodMonth, &p.PeriodYear, &p.LabourCard,
		&p.LabourCardPersonalNo, &p.Allowance, &p.Deduction, &p.Mess, &p.Advance,
		&p.Net, &p.Remark, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetEnrichedByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := enrichedPayrollSelect + ` WHERE pr.id = $1`

	p, err := scanEnrichedPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	var err error
	if excludeID == "" {
		err = q.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM payroll_records
				WHERE employee_id = $1 AND period_month = $2 AND period_year = $3
			)`, employeeID, month, year).Scan(&exists)
	} else {
		err = q.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM payroll_records
				WHERE employee_id = $1 AND period_month = $2 AND period_year = $3 AND id <> $4
			)`, employeeID, month, year, excludeID).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("failed to check payroll period: %w", err)
	}

	return exists, nil
}

func (r *payrollRepository) Update(ctx context.Context, record payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records SET
			employee_id = $1,
			period_month = $2,
			period_year = $3,
			labour_card = $4,
			labour_card_personal_no = $5,
			allowance = $6,
			deduction = $7,
			mess = $8,
			advance = $9,
			net = $10,
			remark = $11,
			updated_at = NOW()
		WHERE id = $12
	`

	tag, err := q.Exec(ctx, query,
		record.EmployeeID, record.PeriodMonth, record.PeriodYear,
		record.LabourCard, record.LabourCardPersonalNo, record.Allowance,
		record.Deduction, record.Mess, record.Advance, record.Net,
		record.Remark, record.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.ErrPayrollRecordAlreadyExists
		}
		return fmt.Errorf("failed to update payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("pr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if p := filter.ParsedPeriod(); p != nil {
		conditions = append(conditions, fmt.Sprintf("pr.period_month = $%d AND pr.period_year = $%d", argIdx, argIdx+1))
		args = append(args, p.Month, p.Year)
		argIdx += 2
	}
	if filter.LabourCard != nil {
		conditions = append(conditions, fmt.Sprintf("pr.labour_card = $%d", argIdx))
		args = append(args, *filter.LabourCard)
		argIdx++
	}
	// Creation-time window: when the row was entered, not the pay period
	if filter.CreatedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("pr.created_at >= $%d", argIdx))
		args = append(args, *filter.CreatedFrom)
		argIdx++
	}
	if filter.CreatedTo != nil {
		conditions = append(conditions, fmt.Sprintf("pr.created_at < $%d", argIdx))
		args = append(args, *filter.CreatedTo)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM payroll_records pr
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	sortColumns := map[string]string{
		"created_at":    "pr.created_at",
		"employee_name": "e.full_name",
		"net":           "pr.net",
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}
	var orderBy string
	if filter.SortBy == "period" {
		orderBy = fmt.Sprintf("pr.period_year %s, pr.period_month %s", sortOrder, sortOrder)
	} else {
		sortColumn, ok := sortColumns[filter.SortBy]
		if !ok {
			sortColumn = "pr.created_at"
		}
		orderBy = sortColumn + " " + sortOrder
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s, pr.id LIMIT $%d OFFSET $%d`,
		enrichedPayrollSelect, where, orderBy, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		p, err := scanEnrichedPayroll(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, total, nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}

func (r *payrollRepository) GetRegisterSummary(ctx context.Context, month, year int) (payroll.RegisterSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(allowance), 0),
			   COALESCE(SUM(deduction), 0),
			   COALESCE(SUM(mess), 0),
			   COALESCE(SUM(advance), 0),
			   COALESCE(SUM(net), 0)
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
	`

	var s payroll.RegisterSummary
	err := q.QueryRow(ctx, query, month, year).Scan(
		&s.TotalRecords, &s.TotalAllowance, &s.TotalDeduction,
		&s.TotalMess, &s.TotalAdvance, &s.TotalNet,
	)
	if err != nil {
		return payroll.RegisterSummary{}, fmt.Errorf("failed to get payroll register summary: %w", err)
	}
	s.Period = period.Period{Month: month, Year: year}.String()

	return s, nil
}
