package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dayflow.app/dayflow/core/apperror"
	"dayflow.app/dayflow/core/models"
)

// SessionDate gives the calendar date a session belongs to, in the reporting
// timezone. A record keeps the date of its own check-in, so a shift running
// past midnight stays attributed to its start date.
func SessionDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// Tracker owns the per-user daily check-in/check-out state. Two concurrent
// check-ins cannot both succeed: the (user_id, date) unique index decides the
// winner and the loser observes AlreadyCheckedIn.
type Tracker struct {
	DB  *gorm.DB
	Loc *time.Location
}

func NewTracker(db *gorm.DB, loc *time.Location) *Tracker {
	return &Tracker{DB: db, Loc: loc}
}

func (t *Tracker) CheckIn(ctx context.Context, userID string, now time.Time) (*models.AttendanceRecord, error) {
	var open models.AttendanceRecord
	err := t.DB.WithContext(ctx).
		Where("user_id = ? AND check_out IS NULL", userID).
		First(&open).Error
	if err == nil {
		return nil, fmt.Errorf("check in %s: %w", userID, apperror.ErrAlreadyCheckedIn)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check in %s: %w", userID, err)
	}

	rec := models.AttendanceRecord{
		UserID:  userID,
		Date:    SessionDate(now, t.Loc),
		CheckIn: now,
	}
	if err := t.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("check in %s: %w", userID, apperror.ErrAlreadyCheckedIn)
		}
		return nil, fmt.Errorf("check in %s: %w", userID, err)
	}
	return &rec, nil
}

func (t *Tracker) CheckOut(ctx context.Context, userID string, now time.Time) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := t.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check out %s: %w", userID, apperror.ErrNoOpenSession)
	}
	if err != nil {
		return nil, fmt.Errorf("check out %s: %w", userID, err)
	}
	if !rec.Open() {
		// A retried check-out must not overwrite the stored timestamp.
		return nil, fmt.Errorf("check out %s: %w", userID, apperror.ErrAlreadyCheckedOut)
	}

	res := t.DB.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Where("id = ? AND check_out IS NULL", rec.ID).
		Update("check_out", now)
	if res.Error != nil {
		return nil, fmt.Errorf("check out %s: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("check out %s: %w", userID, apperror.ErrAlreadyCheckedOut)
	}

	rec.CheckOut = &now
	return &rec, nil
}

// TodayRecord returns today's session, or nil when the user has not checked
// in yet.
func (t *Tracker) TodayRecord(ctx context.Context, userID string, now time.Time) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := t.DB.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, SessionDate(now, t.Loc)).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t *Tracker) History(ctx context.Context, userID string, limit int, excludeToday bool, now time.Time) ([]models.AttendanceRecord, error) {
	q := t.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")
	if excludeToday {
		q = q.Where("date <> ?", SessionDate(now, t.Loc))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recs []models.AttendanceRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
