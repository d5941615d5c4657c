package response

import (
	"errors"
	"net/http"

	"tailorshop/internal/logger"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
)

const maxErrorMessageLen = 500

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{"data": data})
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func Page(c *gin.Context, data any, meta pagination.Meta) {
	c.JSON(http.StatusOK, gin.H{
		"data":       data,
		"pagination": meta,
	})
}

// EmptyPage answers a list request whose table is not migrated yet.
func EmptyPage(c *gin.Context, p pagination.Params) {
	Page(c, []any{}, pagination.NewMeta(p, 0))
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"error":   message,
		"details": details,
	})
}

// Fail maps err onto the error envelope and aborts the chain. Unexpected errors are
// logged and surfaced with a bounded message.
func Fail(c *gin.Context, err error) {
	status := apperr.Status(err)

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperr.KindUnexpected {
		logger.FromContext(c.Request.Context()).WithError(err).Error("request failed")
		c.AbortWithStatusJSON(status, gin.H{
			"error":   "internal error",
			"message": Truncate(err.Error(), maxErrorMessageLen),
		})
		return
	}

	body := gin.H{"error": appErr.Message}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(status, body)
}

func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// FailList is Fail for list endpoints: a table that is not migrated yet reads as an
// empty page instead of an error.
func FailList(c *gin.Context, err error, p pagination.Params) {
	if apperr.Is(err, apperr.KindSchemaNotReady) {
		EmptyPage(c, p)
		return
	}
	Fail(c, err)
}
