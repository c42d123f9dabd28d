package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Big-jpg/swipehire/internal/feed"
)

var statusByKind = map[feed.Kind]int{
	feed.KindUnauthorized: http.StatusUnauthorized,
	feed.KindForbidden:    http.StatusForbidden,
	feed.KindPrecondition: http.StatusPreconditionFailed,
	feed.KindNotFound:     http.StatusNotFound,
	feed.KindInvalid:      http.StatusBadRequest,
	feed.KindConflict:     http.StatusConflict,
	feed.KindStorage:      http.StatusInternalServerError,
}

func statusFor(err error) int {
	if status, ok := statusByKind[feed.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// abortWithError writes {"error": msg} and logs server-side failures with
// their cause.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		requestLogger(c, s.logger).Error("request failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": feed.Message(err), "kind": feed.KindOf(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "kind": feed.KindInvalid})
}
