package models

import "time"

// AttendanceRecord is one work session for one employee on one calendar date.
// Date is derived from CheckIn in the reporting timezone, never from the
// query-time clock, so a session spanning midnight stays on its start date.
// The (user_id, date) unique index is what makes concurrent check-ins safe.
type AttendanceRecord struct {
	ID       uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   string     `gorm:"column:user_id;type:char(36);not null;uniqueIndex:idx_attendance_user_date,priority:1;index" json:"userId"`
	Date     string     `gorm:"column:date;type:char(10);not null;uniqueIndex:idx_attendance_user_date,priority:2" json:"date"`
	CheckIn  time.Time  `gorm:"column:check_in;not null" json:"checkIn"`
	CheckOut *time.Time `gorm:"column:check_out" json:"checkOut"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// Open reports whether the session has not been checked out yet.
func (r *AttendanceRecord) Open() bool {
	return r.CheckOut == nil
}
