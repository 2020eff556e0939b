package directory

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

// Service owns employee profile records. Attendance, leave and payroll read
// through it; nothing else writes the employees table.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ContactUpdate is the employee-editable field set. Nil means "leave as is".
type ContactUpdate struct {
	FullName  *string
	Phone     *string
	Address   *string
	AvatarRef *string
}

// EmploymentUpdate is the HR-editable field set.
type EmploymentUpdate struct {
	Department  *string
	Designation *string
	JoiningDate *time.Time
	BaseSalary  *float64
	HRA         *float64
	Allowances  *float64
}

func (s *Service) Get(ctx context.Context, userID string) (*models.Employee, error) {
	var emp models.Employee
	err := s.DB.WithContext(ctx).First(&emp, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFoundf("employee %s not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// GetByEmployeeCode resolves the human-facing badge code, the only id badge
// readers know about.
func (s *Service) GetByEmployeeCode(ctx context.Context, code string) (*models.Employee, error) {
	var emp models.Employee
	err := s.DB.WithContext(ctx).First(&emp, "employee_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFoundf("employee with code %s not found", code)
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Service) ListByRole(ctx context.Context, role string) ([]models.Employee, error) {
	var emps []models.Employee
	err := s.DB.WithContext(ctx).
		Where("role = ?", role).
		Order("employee_code ASC").
		Find(&emps).Error
	if err != nil {
		return nil, err
	}
	return emps, nil
}

func (s *Service) ListAll(ctx context.Context) ([]models.Employee, error) {
	var emps []models.Employee
	err := s.DB.WithContext(ctx).
		Order("employee_code ASC").
		Find(&emps).Error
	if err != nil {
		return nil, err
	}
	return emps, nil
}

// Register creates the profile half of account registration. Role and
// employee code are fixed here and never change afterwards.
func (s *Service) Register(ctx context.Context, userID, fullName, employeeCode, role string) (*models.Employee, error) {
	if role != models.RoleEmployee && role != models.RoleHR {
		return nil, apperror.Validationf("InvalidRole", "role must be %s or %s", models.RoleEmployee, models.RoleHR)
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, apperror.Validationf("EmptyName", "fullName must not be blank")
	}
	if strings.TrimSpace(employeeCode) == "" {
		return nil, apperror.Validationf("EmptyEmployeeCode", "employeeId must not be blank")
	}

	emp := models.Employee{
		UserID:       userID,
		EmployeeCode: employeeCode,
		FullName:     strings.TrimSpace(fullName),
		Role:         role,
	}
	if err := s.DB.WithContext(ctx).Create(&emp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("register %s: %w", userID, apperror.ErrProfileExists)
		}
		return nil, fmt.Errorf("register %s: %w", userID, err)
	}
	return &emp, nil
}

// UpdateContactInfo applies the employee self-service allow-list and returns
// the mutated entity so callers never need a follow-up read.
func (s *Service) UpdateContactInfo(ctx context.Context, userID string, upd ContactUpdate) (*models.Employee, error) {
	emp, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if upd.FullName != nil {
		if strings.TrimSpace(*upd.FullName) == "" {
			return nil, apperror.Validationf("EmptyName", "fullName must not be blank")
		}
		emp.FullName = strings.TrimSpace(*upd.FullName)
		updates["full_name"] = emp.FullName
	}
	if upd.Phone != nil {
		emp.Phone = *upd.Phone
		updates["phone"] = emp.Phone
	}
	if upd.Address != nil {
		emp.Address = *upd.Address
		updates["address"] = emp.Address
	}
	if upd.AvatarRef != nil {
		emp.AvatarRef = *upd.AvatarRef
		updates["avatar_ref"] = emp.AvatarRef
	}
	if len(updates) == 0 {
		return emp, nil
	}

	err = s.DB.WithContext(ctx).
		Model(&models.Employee{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("update contact info %s: %w", userID, err)
	}
	return emp, nil
}

// UpdateEmploymentInfo applies the HR-only allow-list. Money fields must be
// non-negative.
func (s *Service) UpdateEmploymentInfo(ctx context.Context, actorRole, userID string, upd EmploymentUpdate) (*models.Employee, error) {
	if actorRole != models.RoleHR {
		return nil, apperror.ErrForbidden
	}
	for _, amount := range []*float64{upd.BaseSalary, upd.HRA, upd.Allowances} {
		if amount != nil && *amount < 0 {
			return nil, apperror.ErrInvalidSalary
		}
	}

	emp, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if upd.Department != nil {
		emp.Department = *upd.Department
		updates["department"] = emp.Department
	}
	if upd.Designation != nil {
		emp.Designation = *upd.Designation
		updates["designation"] = emp.Designation
	}
	if upd.JoiningDate != nil {
		emp.JoiningDate = upd.JoiningDate
		updates["joining_date"] = emp.JoiningDate
	}
	if upd.BaseSalary != nil {
		emp.BaseSalary = *upd.BaseSalary
		updates["base_salary"] = emp.BaseSalary
	}
	if upd.HRA != nil {
		emp.HRA = *upd.HRA
		updates["hra"] = emp.HRA
	}
	if upd.Allowances != nil {
		emp.Allowances = *upd.Allowances
		updates["allowances"] = emp.Allowances
	}
	if len(updates) == 0 {
		return emp, nil
	}

	err = s.DB.WithContext(ctx).
		Model(&models.Employee{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return nil, fmt.Errorf("update employment info %s: %w", userID, err)
	}
	return emp, nil
}

// AddDocument appends a {name, ref} entry to the profile's document list.
func (s *Service) AddDocument(ctx context.Context, userID, name, ref string) (*models.Employee, error) {
	emp, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	docs, err := emp.DocumentList()
	if err != nil {
		return nil, fmt.Errorf("add document %s: %w", userID, err)
	}
	docs = append(docs, models.Document{Name: name, Ref: ref})
	if err := emp.SetDocumentList(docs); err != nil {
		return nil, fmt.Errorf("add document %s: %w", userID, err)
	}

	err = s.DB.WithContext(ctx).
		Model(&models.Employee{}).
		Where("user_id = ?", userID).
		Update("documents", emp.Documents).Error
	if err != nil {
		return nil, fmt.Errorf("add document %s: %w", userID, err)
	}
	return emp, nil
}
