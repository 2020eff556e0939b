package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"dayflow.app/dayflow/core/apperror"
	"dayflow.app/dayflow/core/models"
)

// ValidateSubmission applies the request-shape rules. Both dates are
// inclusive; the range is a single day when they are equal.
func ValidateSubmission(startDate, endDate time.Time, reason string) error {
	if endDate.Before(startDate) {
		return apperror.ErrInvalidRange
	}
	if strings.TrimSpace(reason) == "" {
		return apperror.ErrEmptyReason
	}
	return nil
}

// ValidDecision reports whether s names a terminal state.
func ValidDecision(s string) bool {
	return s == models.LeaveApproved || s == models.LeaveRejected
}

// Workflow owns the leave-request lifecycle: employees create Pending
// requests, HR moves them to Approved or Rejected exactly once.
type Workflow struct {
	DB *gorm.DB
}

func NewWorkflow(db *gorm.DB) *Workflow {
	return &Workflow{DB: db}
}

func (w *Workflow) Submit(ctx context.Context, userID string, startDate, endDate time.Time, reason string) (*models.LeaveRequest, error) {
	if err := ValidateSubmission(startDate, endDate, reason); err != nil {
		return nil, err
	}

	req := models.LeaveRequest{
		UserID:    userID,
		StartDate: startDate.Format("2006-01-02"),
		EndDate:   endDate.Format("2006-01-02"),
		Reason:    strings.TrimSpace(reason),
		Status:    models.LeavePending,
	}
	if err := w.DB.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, fmt.Errorf("submit leave for %s: %w", userID, err)
	}
	return &req, nil
}

// Decide applies the terminal transition. The UPDATE is conditioned on
// status = Pending; when two decisions race, the loser's update matches zero
// rows and surfaces NotPending.
func (w *Workflow) Decide(ctx context.Context, actorRole string, requestID uint, decision, comment string) (*models.LeaveRequest, error) {
	if actorRole != models.RoleHR {
		return nil, apperror.ErrForbidden
	}
	if !ValidDecision(decision) {
		return nil, apperror.Validationf("InvalidDecision", "decision must be %s or %s", models.LeaveApproved, models.LeaveRejected)
	}

	updates := map[string]any{
		"status":     decision,
		"decided_at": time.Now(),
	}
	if comment != "" {
		updates["admin_comment"] = comment
	}

	res := w.DB.WithContext(ctx).
		Model(&models.LeaveRequest{}).
		Where("id = ? AND status = ?", requestID, models.LeavePending).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("decide leave %d: %w", requestID, res.Error)
	}
	if res.RowsAffected == 0 {
		var existing models.LeaveRequest
		err := w.DB.WithContext(ctx).First(&existing, requestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFoundf("leave request %d not found", requestID)
		}
		if err != nil {
			return nil, fmt.Errorf("decide leave %d: %w", requestID, err)
		}
		return nil, fmt.Errorf("decide leave %d: %w", requestID, apperror.ErrNotPending)
	}

	var req models.LeaveRequest
	if err := w.DB.WithContext(ctx).First(&req, requestID).Error; err != nil {
		return nil, fmt.Errorf("decide leave %d: %w", requestID, err)
	}
	return &req, nil
}

func (w *Workflow) ListForEmployee(ctx context.Context, userID string) ([]models.LeaveRequest, error) {
	var reqs []models.LeaveRequest
	err := w.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (w *Workflow) ListAll(ctx context.Context, actorRole string) ([]models.LeaveRequest, error) {
	if actorRole != models.RoleHR {
		return nil, apperror.ErrForbidden
	}
	var reqs []models.LeaveRequest
	err := w.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
