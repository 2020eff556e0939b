package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dayflow.app/dayflow/web/common"
	"dayflow.app/dayflow/web/middlewares"
)

type LeaveSubmitDTO struct {
	StartDate *common.DateOnly `json:"startDate" binding:"required"`
	EndDate   *common.DateOnly `json:"endDate" binding:"required"`
	Reason    string           `json:"reason" binding:"required"`
}

type LeaveDecisionDTO struct {
	Decision string `json:"decision" binding:"required,oneof=Approved Rejected"`
	Comment  string `json:"comment"`
}

func (h *Handler) SubmitLeave(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	var dto LeaveSubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", common.FormatBindingError(err)))
		return
	}

	req, err := h.Leave.Submit(c.Request.Context(), identity.UserID, dto.StartDate.Time, dto.EndDate.Time, dto.Reason)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(req))
}

func (h *Handler) MyLeave(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	reqs, err := h.Leave.ListForEmployee(c.Request.Context(), identity.UserID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(reqs, int64(len(reqs))))
}

func (h *Handler) AllLeave(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	reqs, err := h.Leave.ListAll(c.Request.Context(), identity.Role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(reqs, int64(len(reqs))))
}

func (h *Handler) DecideLeave(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", "Invalid id"))
		return
	}

	var dto LeaveDecisionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Validation", common.FormatBindingError(err)))
		return
	}

	req, err := h.Leave.Decide(c.Request.Context(), identity.Role, uint(id), dto.Decision, dto.Comment)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	h.Metrics.LeaveDecisions.WithLabelValues(dto.Decision).Inc()
	c.JSON(http.StatusOK, common.NewSuccessResponse(req))
}
