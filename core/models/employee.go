package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	RoleEmployee = "Employee"
	RoleHR       = "HR"
)

// Employee is the directory profile for one account. UserID comes from the
// identity provider and never changes; EmployeeCode is the human-facing id
// printed on badges. Role and EmployeeCode are fixed at registration.
type Employee struct {
	UserID       string `gorm:"column:user_id;type:char(36);primaryKey" json:"userId"`
	EmployeeCode string `gorm:"column:employee_code;type:varchar(32);uniqueIndex;not null" json:"employeeId"`
	FullName     string `gorm:"column:full_name;type:varchar(255);not null" json:"fullName"`
	Role         string `gorm:"column:role;type:varchar(16);not null" json:"role"`

	Department  string     `gorm:"column:department;type:varchar(128)" json:"department"`
	Designation string     `gorm:"column:designation;type:varchar(128)" json:"designation"`
	JoiningDate *time.Time `gorm:"column:joining_date;type:date" json:"joiningDate"`

	BaseSalary float64 `gorm:"column:base_salary;type:decimal(13,2);default:0" json:"baseSalary"`
	HRA        float64 `gorm:"column:hra;type:decimal(13,2);default:0" json:"hra"`
	Allowances float64 `gorm:"column:allowances;type:decimal(13,2);default:0" json:"allowances"`

	Address   string         `gorm:"column:address;type:varchar(512)" json:"address"`
	Phone     string         `gorm:"column:phone;type:varchar(32)" json:"phone"`
	AvatarRef string         `gorm:"column:avatar_ref;type:varchar(512)" json:"avatarRef"`
	Documents datatypes.JSON `gorm:"column:documents" json:"documents"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}

// Document is one entry of the Documents JSON sequence. Ref is an object-store
// key or URL; the server never interprets it.
type Document struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
}

func (e *Employee) DocumentList() ([]Document, error) {
	if len(e.Documents) == 0 {
		return nil, nil
	}
	var docs []Document
	if err := json.Unmarshal(e.Documents, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (e *Employee) SetDocumentList(docs []Document) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	e.Documents = raw
	return nil
}
