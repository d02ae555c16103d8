package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/Anas-en/College-event-management/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

// Recovery turns a handler panic into a 500 carrying the request id, so the
// response can be matched to the logged stack.
func Recovery(log logger.Logger) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			requestID := c.GetString(requestIDKey)
			c.Set("error", fmt.Sprint(rec))

			log.LogAttrs(c.Request.Context(), logger.ErrorLevel, "panic in handler",
				logger.String("method", c.Request.Method),
				logger.String("path", c.Request.URL.Path),
				logger.String("request_id", requestID),
				logger.Any("panic", rec),
				logger.String("stack", string(debug.Stack())),
			)

			msg := "internal server error"
			if requestID != "" {
				msg += " (request " + requestID + ")"
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
		}()

		c.Next()
	}
}
