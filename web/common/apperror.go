package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dayflow.app/dayflow/core/apperror"
)

// RespondError translates a service error into the HTTP surface. Typed
// domain errors map by kind; anything else is a 500 and the detail stays in
// the server log.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		c.JSON(statusFor(appErr.Kind), NewErrorResponse(appErr.Code, appErr.Message))
		return
	}

	log.Println("Unexpected error:", err)
	c.JSON(http.StatusInternalServerError, NewErrorResponse("Internal", "unexpected server error"))
}

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.Unauthenticated:
		return http.StatusUnauthorized
	case apperror.Forbidden:
		return http.StatusForbidden
	case apperror.NotFound:
		return http.StatusNotFound
	case apperror.Validation:
		return http.StatusBadRequest
	case apperror.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
