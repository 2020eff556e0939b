package leave

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
	"dayflow.app/dayflow/utils"
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

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		reason    string
		wantErr   error
	}{
		{"valid range", "2025-04-01", "2025-04-03", "family event", nil},
		{"single day", "2025-04-01", "2025-04-01", "appointment", nil},
		{"end before start", "2025-04-03", "2025-04-01", "family event", apperror.ErrInvalidRange},
		{"empty reason", "2025-04-01", "2025-04-03", "", apperror.ErrEmptyReason},
		{"whitespace reason", "2025-04-01", "2025-04-03", "   ", apperror.ErrEmptyReason},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmission(utils.MustParseDate(tt.startDate), utils.MustParseDate(tt.endDate), tt.reason)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidDecision(t *testing.T) {
	assert.True(t, ValidDecision(models.LeaveApproved))
	assert.True(t, ValidDecision(models.LeaveRejected))
	assert.False(t, ValidDecision(models.LeavePending))
	assert.False(t, ValidDecision("approved"))
}

func TestSubmitCreatesPending(t *testing.T) {
	w := NewWorkflow(openTestDB(t))

	req, err := w.Submit(context.Background(), "user-1",
		utils.MustParseDate("2025-04-01"), utils.MustParseDate("2025-04-03"), "  family event  ")
	require.NoError(t, err)

	assert.Equal(t, models.LeavePending, req.Status)
	assert.Equal(t, "2025-04-01", req.StartDate)
	assert.Equal(t, "2025-04-03", req.EndDate)
	assert.Equal(t, "family event", req.Reason)
	assert.Nil(t, req.DecidedAt)
}

func TestDecideApproves(t *testing.T) {
	w := NewWorkflow(openTestDB(t))
	ctx := context.Background()

	req, err := w.Submit(ctx, "user-1",
		utils.MustParseDate("2025-04-01"), utils.MustParseDate("2025-04-03"), "family event")
	require.NoError(t, err)

	decided, err := w.Decide(ctx, models.RoleHR, req.ID, models.LeaveApproved, "enjoy")
	require.NoError(t, err)
	assert.Equal(t, models.LeaveApproved, decided.Status)
	require.NotNil(t, decided.AdminComment)
	assert.Equal(t, "enjoy", *decided.AdminComment)
	assert.NotNil(t, decided.DecidedAt)
}

func TestDecideIsTerminal(t *testing.T) {
	w := NewWorkflow(openTestDB(t))
	ctx := context.Background()

	req, err := w.Submit(ctx, "user-1",
		utils.MustParseDate("2025-04-01"), utils.MustParseDate("2025-04-03"), "family event")
	require.NoError(t, err)

	_, err = w.Decide(ctx, models.RoleHR, req.ID, models.LeaveApproved, "")
	require.NoError(t, err)

	// the losing decision must not flip an already-approved request
	_, err = w.Decide(ctx, models.RoleHR, req.ID, models.LeaveRejected, "")
	assert.ErrorIs(t, err, apperror.ErrNotPending)

	var stored models.LeaveRequest
	require.NoError(t, w.DB.First(&stored, req.ID).Error)
	assert.Equal(t, models.LeaveApproved, stored.Status)
}

func TestDecideRequiresHR(t *testing.T) {
	w := NewWorkflow(openTestDB(t))

	_, err := w.Decide(context.Background(), models.RoleEmployee, 1, models.LeaveApproved, "")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDecideUnknownRequest(t *testing.T) {
	w := NewWorkflow(openTestDB(t))

	_, err := w.Decide(context.Background(), models.RoleHR, 999, models.LeaveApproved, "")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.NotFound, appErr.Kind)
}

func TestDecideRejectsInvalidDecision(t *testing.T) {
	w := NewWorkflow(openTestDB(t))

	_, err := w.Decide(context.Background(), models.RoleHR, 1, "Maybe", "")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.Validation, appErr.Kind)
}

func TestListForEmployeeScopesByUser(t *testing.T) {
	w := NewWorkflow(openTestDB(t))
	ctx := context.Background()

	_, err := w.Submit(ctx, "user-1", utils.MustParseDate("2025-04-01"), utils.MustParseDate("2025-04-01"), "a")
	require.NoError(t, err)
	_, err = w.Submit(ctx, "user-2", utils.MustParseDate("2025-04-02"), utils.MustParseDate("2025-04-02"), "b")
	require.NoError(t, err)

	mine, err := w.ListForEmployee(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "user-1", mine[0].UserID)

	all, err := w.ListAll(ctx, models.RoleHR)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = w.ListAll(ctx, models.RoleEmployee)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestDecidedAtSetOnDecision(t *testing.T) {
	w := NewWorkflow(openTestDB(t))
	ctx := context.Background()

	req, err := w.Submit(ctx, "user-1",
		utils.MustParseDate("2025-04-01"), utils.MustParseDate("2025-04-01"), "appointment")
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	decided, err := w.Decide(ctx, models.RoleHR, req.ID, models.LeaveRejected, "")
	require.NoError(t, err)
	require.NotNil(t, decided.DecidedAt)
	assert.True(t, decided.DecidedAt.After(before))
	assert.Nil(t, decided.AdminComment)
}
