package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/contract-ledger/internal/logger"
)

// RequestLogger пишет одну строку на запрос в общий логгер.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		}
		if profile := CurrentProfile(c); profile != nil {
			fields["profile_id"] = profile.ID
		}
		logger.Log.WithFields(fields).Info("http request")
	}
}
