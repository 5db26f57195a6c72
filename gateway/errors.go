package gateway

import (
	"errors"
	"net/http"

	"github.com/example/agrigrow/pkg/service"
	"github.com/gin-gonic/gin"
)

func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindMissingFields, service.KindInvalidInput, service.KindOutOfStock, service.KindInvalidTransition:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error) (int, gin.H) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		return http.StatusInternalServerError, gin.H{"message": "Internal server error"}
	}

	body := gin.H{"message": svcErr.Message}
	if svcErr.Detail != "" {
		body["error"] = svcErr.Detail
	}
	if svcErr.Kind == service.KindOutOfStock {
		body["maxQuantity"] = svcErr.MaxQuantity
	}
	return statusFor(svcErr.Kind), body
}

// writeError renders err as JSON. Store failures keep their cause out of the
// response and are attached to the request for the logger.
func writeError(c *gin.Context, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

func abortWithError(c *gin.Context, err error) {
	writeError(c, err)
	c.Abort()
}

func badRequestBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "error": err.Error()})
}
