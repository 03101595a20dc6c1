package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/http/middleware"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/policy"
)

// Caller извлекает профиль вызывающего с учётом требований операции.
// Для policy.Anonymous профиль может быть nil.
func Caller(c *gin.Context, capability policy.Capability) (*models.Profile, error) {
	profile := middleware.CurrentProfile(c)
	if err := policy.RequireCaller(capability, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CurrentProfile извлекает профиль вызывающего из контекста.
// Consolidates caller lookup across handlers
func CurrentProfile(c *gin.Context) (*models.Profile, error) {
	return Caller(c, policy.Authenticated)
}

// ParseUUIDParam parses UUID from URL parameter
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, apperror.Newf(apperror.ErrCodeInvalidParameter, "параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, apperror.Newf(apperror.ErrCodeInvalidParameter, "параметр %s должен быть валидным UUID", paramName)
	}

	return parsed, nil
}

// BindAndValidate binds JSON request and returns properly formatted error
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInvalidParameter, "некорректное тело запроса")
	}
	return nil
}

// BindQuery разбирает параметры строки запроса.
func BindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInvalidParameter, "некорректные параметры запроса")
	}
	return nil
}

// Fail передаёт ошибку в ErrorHandler и прерывает цепочку.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}
