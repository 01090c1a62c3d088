package payroll

import (
	"strings"
	"time"

	"github.com/fieldserv/backoffice-go/internal/pkg/period"
	"github.com/fieldserv/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL DTOs
// ========================================

// FlexibleAmount decodes a monetary field from a JSON number or a numeric
// string. Anything that fails to parse, including null, becomes zero
// instead of failing the request, and negative input is clamped to zero.
// Update callers rely on this lenient behavior; creation stays strict.
type FlexibleAmount struct {
	decimal.Decimal
}

func (f *FlexibleAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		f.Decimal = decimal.Zero
		return nil
	}
	f.Decimal = d
	return nil
}

type CreatePayrollRequest struct {
	EmployeeID           string          `json:"employee_id"`
	Period               string          `json:"period"`
	LabourCard           *string         `json:"labour_card,omitempty"`
	LabourCardPersonalNo *string         `json:"labour_card_personal_no,omitempty"`
	Allowance            decimal.Decimal `json:"allowance"`
	Deduction            decimal.Decimal `json:"deduction"`
	Mess                 decimal.Decimal `json:"mess"`
	Advance              decimal.Decimal `json:"advance"`
	Remark               *string         `json:"remark,omitempty"`

	parsedPeriod period.Period
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.LabourCard != nil && !validator.IsValidLabourCard(*r.LabourCard) {
		errs = append(errs, validator.ValidationError{
			Field:   "labour_card",
			Message: "labour_card must be numeric and at most 20 characters",
		})
	}
	if r.LabourCardPersonalNo != nil && !validator.IsValidLabourCard(*r.LabourCardPersonalNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "labour_card_personal_no",
			Message: "labour_card_personal_no must be numeric and at most 20 characters",
		})
	}

	if validator.IsEmpty(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period is required",
		})
	} else if p, err := period.Parse(r.Period); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be in MM-YYYY format",
		})
	} else {
		r.parsedPeriod = p
	}

	for _, amount := range []struct {
		field string
		value decimal.Decimal
	}{
		{"allowance", r.Allowance},
		{"deduction", r.Deduction},
		{"mess", r.Mess},
		{"advance", r.Advance},
	} {
		if amount.value.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   amount.field,
				Message: amount.field + " must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedPeriod returns the decoded pay period. Valid after Validate.
func (r *CreatePayrollRequest) ParsedPeriod() period.Period {
	return r.parsedPeriod
}

type UpdatePayrollRequest struct {
	EmployeeID           *string         `json:"employee_id,omitempty"`
	Period               *string         `json:"period,omitempty"`
	LabourCard           *string         `json:"labour_card,omitempty"`
	LabourCardPersonalNo *string         `json:"labour_card_personal_no,omitempty"`
	Allowance            *FlexibleAmount `json:"allowance,omitempty"`
	Deduction            *FlexibleAmount `json:"deduction,omitempty"`
	Mess                 *FlexibleAmount `json:"mess,omitempty"`
	Advance              *FlexibleAmount `json:"advance,omitempty"`
	Remark               *string         `json:"remark,omitempty"`

	parsedPeriod *period.Period
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil {
		if validator.IsEmpty(*r.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must not be empty",
			})
		} else if !validator.IsValidUUID(*r.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must be a valid UUID",
			})
		}
	}

	if r.LabourCard != nil && !validator.IsValidLabourCard(*r.LabourCard) {
		errs = append(errs, validator.ValidationError{
			Field:   "labour_card",
			Message: "labour_card must be numeric and at most 20 characters",
		})
	}
	if r.LabourCardPersonalNo != nil && !validator.IsValidLabourCard(*r.LabourCardPersonalNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "labour_card_personal_no",
			Message: "labour_card_personal_no must be numeric and at most 20 characters",
		})
	}

	if r.Period != nil {
		if p, err := period.Parse(*r.Period); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: "period must be in MM-YYYY format",
			})
		} else {
			r.parsedPeriod = &p
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedPeriod returns the decoded pay period when the request carries one.
// Valid after Validate.
func (r *UpdatePayrollRequest) ParsedPeriod() *period.Period {
	return r.parsedPeriod
}

// TouchesMoney reports whether the update changes a field that feeds the
// net computation, which forces a full re-derivation.
func (r *UpdatePayrollRequest) TouchesMoney() bool {
	return r.Allowance != nil || r.Deduction != nil || r.Mess != nil || r.Advance != nil
}

type PayrollFilter struct {
	EmployeeID *string
	Period     *string
	LabourCard *string

	// Creation-time window over when the row was entered, not the pay
	// period it covers. Resolved by the handler from explicit dates or
	// year/month query params.
	CreatedFrom *time.Time
	CreatedTo   *time.Time

	Page      int
	Limit     int
	SortBy    string
	SortOrder string

	parsedPeriod *period.Period
}

var payrollSortFields = []string{"created_at", "employee_name", "net", "period"}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if !validator.IsInSlice(f.SortBy, payrollSortFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "invalid sort field",
		})
	}

	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort order must be asc or desc",
		})
	}

	if f.Period != nil {
		if p, err := period.Parse(*f.Period); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: "period must be in MM-YYYY format",
			})
		} else {
			f.parsedPeriod = &p
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedPeriod returns the decoded exact-period filter, if any. Valid
// after Validate.
func (f *PayrollFilter) ParsedPeriod() *period.Period {
	return f.parsedPeriod
}

type PayrollResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	Period               string          `json:"period"`
	LabourCard           *string         `json:"labour_card,omitempty"`
	LabourCardPersonalNo *string         `json:"labour_card_personal_no,omitempty"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	Allowance            decimal.Decimal `json:"allowance"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	TotalEarning         decimal.Decimal `json:"total_earning"`
	Deduction            decimal.Decimal `json:"deduction"`
	Mess                 decimal.Decimal `json:"mess"`
	Advance              decimal.Decimal `json:"advance"`
	Net                  decimal.Decimal `json:"net"`
	Remark               *string         `json:"remark,omitempty"`
	CreatedBy            *string         `json:"created_by,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func ToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:                   p.ID,
		EmployeeID:           p.EmployeeID,
		EmployeeName:         p.EmployeeName,
		Period:               p.Period().String(),
		LabourCard:           p.LabourCard,
		LabourCardPersonalNo: p.LabourCardPersonalNo,
		BasicSalary:          p.BasicSalary,
		Allowance:            p.Allowance,
		OvertimeHours:        p.OvertimeHours,
		TotalEarning:         p.TotalEarning,
		Deduction:            p.Deduction,
		Mess:                 p.Mess,
		Advance:              p.Advance,
		Net:                  p.Net,
		Remark:               p.Remark,
		CreatedBy:            p.CreatedBy,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func ToResponseList(records []Payroll) []PayrollResponse {
	responses := make([]PayrollResponse, 0, len(records))
	for _, p := range records {
		responses = append(responses, ToResponse(p))
	}
	return responses
}

// RegisterSummary aggregates one period's payroll register.
type RegisterSummary struct {
	Period         string          `json:"period"`
	TotalRecords   int64           `json:"total_records"`
	TotalAllowance decimal.Decimal `json:"total_allowance"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	TotalMess      decimal.Decimal `json:"total_mess"`
	TotalAdvance   decimal.Decimal `json:"total_advance"`
	TotalNet       decimal.Decimal `json:"total_net"`
}
