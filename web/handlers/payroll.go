package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dayflow.app/dayflow/core/apperror"
	"dayflow.app/dayflow/core/models"
	"dayflow.app/dayflow/payroll"
	"dayflow.app/dayflow/web/common"
	"dayflow.app/dayflow/web/middlewares"
)

func (h *Handler) MyPayroll(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	recs, err := h.Payroll.History(c.Request.Context(), identity.UserID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(recs, int64(len(recs))))
}

func (h *Handler) AllPayroll(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	recs, err := h.Payroll.HistoryAll(c.Request.Context(), identity.Role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(recs, int64(len(recs))))
}

func (h *Handler) ProcessPayroll(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)
	targetUserID := c.Param("userId")

	rec, err := h.Payroll.Process(c.Request.Context(), identity.Role, targetUserID, time.Now())
	if err != nil {
		h.Metrics.PayrollRuns.WithLabelValues(payrollResult(err)).Inc()
		common.RespondError(c, err)
		return
	}

	h.Metrics.PayrollRuns.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, common.NewSuccessResponse(rec))
}

// ExportPayroll streams the full ledger as an xlsx workbook.
func (h *Handler) ExportPayroll(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	recs, err := h.Payroll.HistoryAll(c.Request.Context(), identity.Role)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	emps, err := h.Directory.ListAll(c.Request.Context())
	if err != nil {
		common.RespondError(c, err)
		return
	}
	byUser := make(map[string]models.Employee, len(emps))
	for _, emp := range emps {
		byUser[emp.UserID] = emp
	}

	rows := make([]payroll.ReportRow, 0, len(recs))
	for _, rec := range recs {
		emp := byUser[rec.UserID]
		rows = append(rows, payroll.ReportRow{
			EmployeeCode: emp.EmployeeCode,
			FullName:     emp.FullName,
			Department:   emp.Department,
			SalaryAmount: rec.SalaryAmount,
			PayDate:      rec.PayDate,
			Status:       rec.Status,
			PayPeriod:    rec.PayPeriod,
		})
	}

	buf, err := payroll.GenerateExcelReport(rows)
	if err != nil {
		if errors.Is(err, payroll.ErrNoRecords) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("NotFound", "no payroll records to export"))
			return
		}
		common.RespondError(c, err)
		return
	}

	filename := fmt.Sprintf("payroll-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func payrollResult(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidSalary),
		errors.Is(err, apperror.ErrAlreadyPaidPeriod),
		errors.Is(err, apperror.ErrForbidden):
		return "rejected"
	}
	return "error"
}
