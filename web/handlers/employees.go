package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow.app/dayflow/core/models"
	"dayflow.app/dayflow/directory"
	"dayflow.app/dayflow/web/common"
	"dayflow.app/dayflow/web/middlewares"
)

type EmploymentUpdateDTO struct {
	Department  *string          `json:"department,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	JoiningDate *common.DateOnly `json:"joiningDate,omitempty"`
	BaseSalary  *float64         `json:"baseSalary,omitempty"`
	HRA         *float64         `json:"hra,omitempty"`
	Allowances  *float64         `json:"allowances,omitempty"`
}

// ListEmployees serves the HR dashboard roster. Defaults to the Employee role
// the way the dashboard lists it; ?role=HR shows the HR staff themselves.
func (h *Handler) ListEmployees(c *gin.Context) {
	role := c.DefaultQuery("role", models.RoleEmployee)
	if role != models.RoleEmployee && role != models.RoleHR {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", "Invalid role"))
		return
	}

	emps, err := h.Directory.ListByRole(c.Request.Context(), role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(emps, int64(len(emps))))
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)
	targetUserID := c.Param("id")

	var dto EmploymentUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", common.FormatBindingError(err)))
		return
	}

	upd := directory.EmploymentUpdate{
		Department:  dto.Department,
		Designation: dto.Designation,
		BaseSalary:  dto.BaseSalary,
		HRA:         dto.HRA,
		Allowances:  dto.Allowances,
	}
	if dto.JoiningDate != nil {
		upd.JoiningDate = &dto.JoiningDate.Time
	}

	emp, err := h.Directory.UpdateEmploymentInfo(c.Request.Context(), identity.Role, targetUserID, upd)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(emp))
}
