package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dayflow.app/dayflow/core/models"
	"dayflow.app/dayflow/web/common"
	"dayflow.app/dayflow/web/middlewares"
)

type RegisterDTO struct {
	FullName   string `json:"fullName" binding:"required"`
	EmployeeID string `json:"employeeId"`
	Role       string `json:"role" binding:"omitempty,oneof=Employee HR"`
}

// Register creates the directory profile for a freshly authenticated
// account. The identity provider owns the credential; this is the server
// half of registration. Role and employee id are fixed here for good.
func (h *Handler) Register(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", common.FormatBindingError(err)))
		return
	}

	role := dto.Role
	if role == "" {
		role = models.RoleEmployee
	}
	code := strings.TrimSpace(dto.EmployeeID)
	if code == "" {
		code = "EMP-" + strings.ToUpper(uuid.NewString()[:8])
	}

	emp, err := h.Directory.Register(c.Request.Context(), identity.UserID, dto.FullName, code, role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(emp))
}
