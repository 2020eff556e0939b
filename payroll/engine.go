package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dayflow.app/dayflow/core/apperror"
	"dayflow.app/dayflow/core/models"
)

// Formula selects which compensation fields a disbursement covers. The
// profile page shows base+HRA+allowances as "Total Monthly" while historic
// payroll only ever paid base salary; whether the rest is paid out-of-band is
// a business decision, so both variants exist and the deployment picks one.
type Formula string

const (
	// FormulaBase disburses base salary only.
	FormulaBase Formula = "base"
	// FormulaGross disburses base salary + HRA + allowances.
	FormulaGross Formula = "gross"
)

func ParseFormula(s string) (Formula, error) {
	switch Formula(s) {
	case FormulaBase, "":
		return FormulaBase, nil
	case FormulaGross:
		return FormulaGross, nil
	}
	return "", fmt.Errorf("unknown payroll formula %q", s)
}

// ComputeAmount evaluates the formula against the employee's current
// compensation fields.
func ComputeAmount(formula Formula, emp *models.Employee) float64 {
	switch formula {
	case FormulaGross:
		return emp.BaseSalary + emp.HRA + emp.Allowances
	default:
		return emp.BaseSalary
	}
}

// PeriodKey is the yyyy-MM pay-period bucket of a disbursement date.
func PeriodKey(t time.Time) string {
	return t.Format("2006-01")
}

// Engine computes and records salary disbursements. Records are append-only;
// nothing here mutates or deletes a ledger entry.
type Engine struct {
	DB      *gorm.DB
	Formula Formula

	// SinglePayPerPeriod rejects a second disbursement for the same
	// (user, yyyy-MM). Off preserves the historic behavior where HR could
	// pay twice in one period.
	SinglePayPerPeriod bool
}

func NewEngine(db *gorm.DB, formula Formula, singlePayPerPeriod bool) *Engine {
	return &Engine{DB: db, Formula: formula, SinglePayPerPeriod: singlePayPerPeriod}
}

// Process reads the target's compensation fresh at call time and appends one
// ledger entry. A cached or stale salary must never be disbursed.
func (e *Engine) Process(ctx context.Context, actorRole, targetUserID string, now time.Time) (*models.PayrollRecord, error) {
	if actorRole != models.RoleHR {
		return nil, apperror.ErrForbidden
	}

	var emp models.Employee
	err := e.DB.WithContext(ctx).First(&emp, "user_id = ?", targetUserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFoundf("employee %s not found", targetUserID)
	}
	if err != nil {
		return nil, fmt.Errorf("process payroll for %s: %w", targetUserID, err)
	}

	amount := ComputeAmount(e.Formula, &emp)
	if amount <= 0 {
		return nil, fmt.Errorf("process payroll for %s: %w", targetUserID, apperror.ErrInvalidSalary)
	}

	period := PeriodKey(now)
	if e.SinglePayPerPeriod {
		var count int64
		err := e.DB.WithContext(ctx).
			Model(&models.PayrollRecord{}).
			Where("user_id = ? AND pay_period = ?", targetUserID, period).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("process payroll for %s: %w", targetUserID, err)
		}
		if count > 0 {
			return nil, fmt.Errorf("process payroll for %s: %w", targetUserID, apperror.ErrAlreadyPaidPeriod)
		}
	}

	rec := models.PayrollRecord{
		UserID:       targetUserID,
		SalaryAmount: amount,
		PayDate:      now,
		PayPeriod:    period,
		Status:       models.PayrollPaid,
	}
	if err := e.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("process payroll for %s: %w", targetUserID, err)
	}
	return &rec, nil
}

func (e *Engine) History(ctx context.Context, userID string) ([]models.PayrollRecord, error) {
	var recs []models.PayrollRecord
	err := e.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pay_date DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (e *Engine) HistoryAll(ctx context.Context, actorRole string) ([]models.PayrollRecord, error) {
	if actorRole != models.RoleHR {
		return nil, apperror.ErrForbidden
	}
	var recs []models.PayrollRecord
	err := e.DB.WithContext(ctx).
		Order("pay_date DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
