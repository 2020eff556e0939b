package models

import "time"

const PayrollPaid = "Paid"

// PayrollRecord is an append-only ledger entry. SalaryAmount is whatever the
// payroll formula produced from the employee's compensation at Process time;
// PayPeriod is the yyyy-MM key of PayDate.
type PayrollRecord struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       string    `gorm:"column:user_id;type:char(36);not null;index" json:"userId"`
	SalaryAmount float64   `gorm:"column:salary_amount;type:decimal(13,2);not null" json:"salaryAmount"`
	PayDate      time.Time `gorm:"column:pay_date;not null" json:"payDate"`
	PayPeriod    string    `gorm:"column:pay_period;type:char(7);not null;index" json:"payPeriod"`
	Status       string    `gorm:"column:status;type:varchar(16);not null;default:Paid" json:"status"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}
