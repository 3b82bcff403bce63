package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnavailable, domain.KindInvalidState, domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as JSON. Internal errors are attached to the gin
// context for the request logger and never leak their text.
func writeError(c *gin.Context, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error", Kind: string(domain.KindInternal)})
		return
	}
	c.AbortWithStatusJSON(statusFor(domainErr.Kind), errorResponse{Error: domainErr.Reason, Kind: string(domainErr.Kind)})
}

func badRequest(c *gin.Context, reason string) {
	writeError(c, domain.ValidationError(reason))
}
