package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/magnatehq/magnate-server/internal/errors"
)

// statusForCode maps application error codes onto HTTP statuses.
var statusForCode = map[string]int{
	apperrors.ErrCodeNotFound:          http.StatusNotFound,
	apperrors.ErrCodeInvalidInput:      http.StatusBadRequest,
	apperrors.ErrCodeValidationError:   http.StatusBadRequest,
	apperrors.ErrCodeUnauthorized:      http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:         http.StatusForbidden,
	apperrors.ErrCodeConflict:          http.StatusConflict,
	apperrors.ErrCodeInsufficientFunds: http.StatusUnprocessableEntity,
	apperrors.ErrCodeCompanyInactive:   http.StatusUnprocessableEntity,
}

// abortWithError writes a JSON error body with the status implied by the
// error's code. Anything that is not an AppError is a 500.
func abortWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status, ok := statusForCode[appErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// uuidParam reads a path parameter as a UUID, aborting with a 400 on
// malformed input. The bool reports whether the handler should continue.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return uuid.Nil, false
	}
	return id, true
}
