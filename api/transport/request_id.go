package transport

import (
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware tags each request with a short id, reusing an incoming one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			generated, err := gonanoid.New(12)
			if err != nil {
				logging.Log.Errorf("failed to generate request id: %v", err)
			}
			id = generated
		}

		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		logging.Log.WithField(requestIDKey, id).Infof("%s %s", c.Request.Method, c.Request.URL.Path)

		c.Next()
	}
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
