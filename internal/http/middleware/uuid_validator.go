package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
)

// UUIDValidator проверяет, что параметр с указанным именем является валидным UUID.
// Использование: router.GET("/contracts/:id", UUIDValidator("id"), handler.GetContract)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param(paramName)
		if idStr == "" {
			abortWithError(c, apperror.Newf(apperror.ErrCodeInvalidParameter, "параметр %s обязателен", paramName))
			return
		}

		if _, err := uuid.Parse(idStr); err != nil {
			abortWithError(c, apperror.Newf(apperror.ErrCodeInvalidParameter, "параметр %s должен быть валидным UUID", paramName))
			return
		}

		c.Next()
	}
}
