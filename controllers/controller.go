package controllers

import (
	"strconv"

	"github.com/evalle012006/sg-sub011/errors"
	"github.com/evalle012006/sg-sub011/response"

	"github.com/gin-gonic/gin"
)

// respondError maps an AppError to the matching HTTP envelope. Ledger and
// transition violations are client errors with the invariant named;
// storage failures stay a bare 500.
func respondError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		response.ServerError(c)
		return
	}

	switch appErr.Code {
	case errors.ErrCodeDBNotFound, errors.ErrCodeUserNotFound:
		response.NotFound(c)
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken,
		errors.ErrCodeMissingToken, errors.ErrCodeInvalidPassword:
		response.Unauthorized(c)
	case errors.ErrCodeUserExists, errors.ErrCodeDBDuplicate:
		response.Conflict(c, appErr.Message)
	case errors.ErrCodeInvalidTransition, errors.ErrCodeBudgetExceeded,
		errors.ErrCodeOverConsumption, errors.ErrCodeUnderflow,
		errors.ErrCodeReferentialIntegrity, errors.ErrCodeUnknownStatus:
		response.BadRequest(c, appErr.Message)
	case errors.ErrCodeValidation, errors.ErrCodeRequiredField,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidEmail,
		errors.ErrCodeInvalidPhone, errors.ErrCodeInvalidCode,
		errors.ErrCodeExpiredCode, errors.ErrCodeInvalidRole:
		response.ValidationError(c, appErr.Message)
	case errors.ErrCodeStorage:
		response.ServerError(c)
	default:
		response.ServerError(c)
	}
}

func parsePagination(c *gin.Context) (page, limit int) {
	page = 0
	limit = 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	return page, limit
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
