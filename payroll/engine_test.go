package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dayflow.app/dayflow/core"
	"dayflow.app/dayflow/core/apperror"
	"dayflow.app/dayflow/core/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, core.Migrate(db))
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, userID string, baseSalary float64) {
	t.Helper()
	emp := models.Employee{
		UserID:       userID,
		EmployeeCode: "EMP-" + userID,
		FullName:     "Employee " + userID,
		Role:         models.RoleEmployee,
		BaseSalary:   baseSalary,
		HRA:          500,
		Allowances:   250,
	}
	require.NoError(t, db.Create(&emp).Error)
}

func TestParseFormula(t *testing.T) {
	tests := []struct {
		in      string
		want    Formula
		wantErr bool
	}{
		{"", FormulaBase, false},
		{"base", FormulaBase, false},
		{"gross", FormulaGross, false},
		{"net", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormula(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestComputeAmount(t *testing.T) {
	emp := &models.Employee{BaseSalary: 5000, HRA: 500, Allowances: 250}
	assert.Equal(t, 5000.0, ComputeAmount(FormulaBase, emp))
	assert.Equal(t, 5750.0, ComputeAmount(FormulaGross, emp))
}

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "2025-03", PeriodKey(time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-04", PeriodKey(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestProcessAppendsLedgerEntry(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "user-1", 5000)
	engine := NewEngine(db, FormulaBase, false)

	now := time.Date(2025, 3, 28, 10, 0, 0, 0, time.UTC)
	rec, err := engine.Process(context.Background(), models.RoleHR, "user-1", now)
	require.NoError(t, err)

	assert.Equal(t, 5000.0, rec.SalaryAmount)
	assert.Equal(t, "2025-03", rec.PayPeriod)
	assert.Equal(t, models.PayrollPaid, rec.Status)
}

func TestProcessRequiresHR(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "user-1", 5000)
	engine := NewEngine(db, FormulaBase, false)

	_, err := engine.Process(context.Background(), models.RoleEmployee, "user-1", time.Now())
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestProcessUnknownEmployee(t *testing.T) {
	engine := NewEngine(openTestDB(t), FormulaBase, false)

	_, err := engine.Process(context.Background(), models.RoleHR, "ghost", time.Now())
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.NotFound, appErr.Kind)
}

func TestProcessRejectsNonPositiveAmount(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "user-1", 0)
	engine := NewEngine(db, FormulaBase, false)

	_, err := engine.Process(context.Background(), models.RoleHR, "user-1", time.Now())
	assert.ErrorIs(t, err, apperror.ErrInvalidSalary)
}

func TestProcessReadsSalaryFresh(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "user-1", 5000)
	engine := NewEngine(db, FormulaBase, false)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	rec, err := engine.Process(ctx, models.RoleHR, "user-1", now)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, rec.SalaryAmount)

	// a raise between runs must show up in the next disbursement
	require.NoError(t, db.Model(&models.Employee{}).
		Where("user_id = ?", "user-1").
		Update("base_salary", 6000).Error)

	rec, err = engine.Process(ctx, models.RoleHR, "user-1", now.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 6000.0, rec.SalaryAmount)
}

func TestProcessSinglePayPerPeriod(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "user-1", 5000)
	engine := NewEngine(db, FormulaBase, true)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	_, err := engine.Process(ctx, models.RoleHR, "user-1", now)
	require.NoError(t, err)

	_, err = engine.Process(ctx, models.RoleHR, "user-1", now.AddDate(0, 0, 5))
	assert.ErrorIs(t, err, apperror.ErrAlreadyPaidPeriod)

	// next period is fine again
	_, err = engine.Process(ctx, models.RoleHR, "user-1", now.AddDate(0, 1, 0))
	assert.NoError(t, err)
}

func TestProcessTwicePerPeriodAllowedByDefault(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "user-1", 5000)
	engine := NewEngine(db, FormulaBase, false)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	_, err := engine.Process(ctx, models.RoleHR, "user-1", now)
	require.NoError(t, err)
	_, err = engine.Process(ctx, models.RoleHR, "user-1", now.AddDate(0, 0, 5))
	require.NoError(t, err)

	recs, err := engine.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestHistoryScopesAndOrders(t *testing.T) {
	db := openTestDB(t)
	seedEmployee(t, db, "user-1", 5000)
	seedEmployee(t, db, "user-2", 4000)
	engine := NewEngine(db, FormulaBase, false)
	ctx := context.Background()

	older := time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 28, 10, 0, 0, 0, time.UTC)
	_, err := engine.Process(ctx, models.RoleHR, "user-1", older)
	require.NoError(t, err)
	_, err = engine.Process(ctx, models.RoleHR, "user-1", newer)
	require.NoError(t, err)
	_, err = engine.Process(ctx, models.RoleHR, "user-2", newer)
	require.NoError(t, err)

	recs, err := engine.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "2025-03", recs[0].PayPeriod)

	all, err := engine.HistoryAll(ctx, models.RoleHR)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = engine.HistoryAll(ctx, models.RoleEmployee)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
