package handler

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req FeedCreateRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// Add error to context for middleware logging
		c.Error(err)

		// Check if it's a validation error
		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp.WithTimestamp())
		} else {
			// JSON parsing error or other binding errors
			c.JSON(sharedError.InvalidRequest.Status, sharedError.InvalidRequest.WithTimestamp())
		}
		return false
	}
	return true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging.
	// gin의 Context.Error는 nil을 받으면 panic하므로 걸러낸다.
	if err != nil {
		c.Error(err)
	}

	// Send error response
	c.JSON(errResp.Status, errResp.WithTimestamp())
}

// RespondDomainError resolves a domain error into its registered response,
// falling back to InternalServerError for unknown errors.
func RespondDomainError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}
