package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dayflow.app/dayflow/core/apperror"
	"dayflow.app/dayflow/web/common"
	"dayflow.app/dayflow/web/middlewares"
)

func (h *Handler) CheckIn(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	rec, err := h.Tracker.CheckIn(c.Request.Context(), identity.UserID, time.Now())
	if err != nil {
		h.Metrics.CheckinsTotal.WithLabelValues(checkinResult(err)).Inc()
		common.RespondError(c, err)
		return
	}

	h.Metrics.CheckinsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusCreated, common.NewSuccessResponse(rec))
}

func (h *Handler) CheckOut(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	rec, err := h.Tracker.CheckOut(c.Request.Context(), identity.UserID, time.Now())
	if err != nil {
		h.Metrics.CheckoutsTotal.WithLabelValues(checkoutResult(err)).Inc()
		common.RespondError(c, err)
		return
	}

	h.Metrics.CheckoutsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, common.NewSuccessResponse(rec))
}

func (h *Handler) TodayAttendance(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	rec, err := h.Tracker.TodayRecord(c.Request.Context(), identity.UserID, time.Now())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	// rec is nil when the caller has not checked in today; the client treats
	// that as "show the check-in button".
	c.JSON(http.StatusOK, common.NewSuccessResponse(rec))
}

func (h *Handler) AttendanceHistory(c *gin.Context) {
	identity, _ := middlewares.CurrentIdentity(c)

	limit := 30
	if val, err := strconv.Atoi(c.Query("limit")); err == nil && val > 0 {
		limit = val
	}
	excludeToday := c.Query("excludeToday") == "true"

	recs, err := h.Tracker.History(c.Request.Context(), identity.UserID, limit, excludeToday, time.Now())
	if err != nil {
		common.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(recs, int64(len(recs))))
}

func checkinResult(err error) string {
	if errors.Is(err, apperror.ErrAlreadyCheckedIn) {
		return "already_checked_in"
	}
	return "error"
}

func checkoutResult(err error) string {
	switch {
	case errors.Is(err, apperror.ErrNoOpenSession):
		return "no_open_session"
	case errors.Is(err, apperror.ErrAlreadyCheckedOut):
		return "already_checked_out"
	}
	return "error"
}
