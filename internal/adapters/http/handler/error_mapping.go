package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/Amsaho/jobhunt/internal/core/application"
	"github.com/Amsaho/jobhunt/internal/core/company"
	"github.com/Amsaho/jobhunt/internal/core/job"
	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error."

// toHTTPStatus はドメインエラーを HTTP ステータスへ変換します。
func toHTTPStatus(err error) int {
	switch {
	case errors.Is(err, account.ErrMissingFields),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrPasswordTooLong),
		errors.Is(err, account.ErrInvalidRole),
		errors.Is(err, account.ErrInvalidID),
		errors.Is(err, account.ErrEmailAlreadyExists),
		errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidID),
		errors.Is(err, application.ErrAlreadyApplied),
		errors.Is(err, application.ErrTransitionNotAllowed),
		errors.Is(err, company.ErrInvalidID),
		errors.Is(err, job.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrUserNotFound),
		errors.Is(err, application.ErrApplicationNotFound),
		errors.Is(err, application.ErrApplicantNotFound),
		errors.Is(err, company.ErrCompanyNotFound),
		errors.Is(err, job.ErrJobNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError はエラーをレスポンスへ書き込みます。500 の場合は詳細を返さずログにのみ残します。
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status := toHTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Any("error", err),
		)
		fail(c, status, internalErrorMessage)
		return
	}
	fail(c, status, err.Error())
}
