package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/contract-ledger/internal/logger"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
)

// ErrorResponse тело ответа с ошибкой.
type ErrorResponse struct {
	Error string             `json:"error"`
	Code  apperror.ErrorCode `json:"code"`
}

// ErrorHandler обрабатывает ошибки централизованно.
// Ошибки, добавленные через c.Error, приводятся к AppError; внутренние причины наружу не отдаются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		appErr := apperror.From(c.Errors.Last().Err)
		fields := logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"code":   appErr.Code,
		}
		if appErr.HTTPStatus >= 500 {
			logger.Log.WithFields(fields).WithError(appErr.Cause).Error("request failed")
		} else {
			logger.Log.WithFields(fields).Debug(appErr.Message)
		}

		c.JSON(appErr.HTTPStatus, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
	}
}

// abortWithError прерывает цепочку и отдаёт ошибку в формате ErrorHandler.
func abortWithError(c *gin.Context, err *apperror.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, ErrorResponse{Error: err.Message, Code: err.Code})
}
