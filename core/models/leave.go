package models

import "time"

const (
	LeavePending  = "Pending"
	LeaveApproved = "Approved"
	LeaveRejected = "Rejected"
)

// LeaveRequest moves Pending -> Approved or Pending -> Rejected exactly once.
// The decision is a compare-and-set on status so two concurrent HR decisions
// cannot both apply.
type LeaveRequest struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string `gorm:"column:user_id;type:char(36);not null;index" json:"userId"`
	StartDate string `gorm:"column:start_date;type:char(10);not null" json:"startDate"`
	EndDate   string `gorm:"column:end_date;type:char(10);not null" json:"endDate"`
	Reason    string `gorm:"column:reason;type:varchar(512);not null" json:"reason"`

	Status       string     `gorm:"column:status;type:varchar(16);not null;default:Pending" json:"status"`
	AdminComment *string    `gorm:"column:admin_comment;type:varchar(512)" json:"adminComment"`
	DecidedAt    *time.Time `gorm:"column:decided_at" json:"decidedAt"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
