package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dancerfit/admin-dashboard/internal/adminapi"
	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/pagination"
	"dancerfit/admin-dashboard/internal/service"
	"dancerfit/admin-dashboard/internal/submission"
)

// respondError maps service and remote errors to a status and message.
// fallback is shown when the remote API gave no message of its own.
func respondError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	var (
		verr   *submission.ValidationError
		inErr  *service.InputError
		apiErr *adminapi.Error
	)
	switch {
	case errors.As(err, &verr):
		abortWithError(c, http.StatusUnprocessableEntity, verr.Message)
	case errors.As(err, &inErr):
		abortWithError(c, http.StatusUnprocessableEntity, inErr.Message)
	case errors.Is(err, pagination.ErrInvalidPage), errors.Is(err, service.ErrUnknownKind),
		errors.Is(err, pagination.ErrNoNextPage), errors.Is(err, pagination.ErrNoPreviousPage):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, adminapi.ErrNoCredentials):
		abortWithError(c, http.StatusUnauthorized, "Session has expired, please log in again")
	case errors.As(err, &apiErr) && apiErr.Unauthorized():
		abortWithError(c, http.StatusUnauthorized, adminapi.UserMessage(err, "Session has expired, please log in again"))
	case errors.As(err, &apiErr):
		log.Warn("remote api rejected request", "status", apiErr.Status, "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusBadGateway, adminapi.UserMessage(err, fallback))
	case errors.Is(err, adminapi.ErrTransport), errors.Is(err, adminapi.ErrDecode):
		log.Error("remote api unavailable", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusBadGateway, fallback)
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// isRemoteRejection reports a 4xx answer from the remote API.
func isRemoteRejection(err error) bool {
	var apiErr *adminapi.Error
	return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
}

func remoteMessage(err error, fallback string) string {
	return adminapi.UserMessage(err, fallback)
}
