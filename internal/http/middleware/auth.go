package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/contract-ledger/internal/logger"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/repository"
)

// ContextProfileKey ключ профиля вызывающего в gin.Context.
const ContextProfileKey = "profile"

type TokenParser interface {
	ParseAccess(token string) (uuid.UUID, string, error)
}

type ProfileLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// ProfileMiddleware проверяет JWT access токен и загружает профиль вызывающего.
func ProfileMiddleware(tokens TokenParser, profiles ProfileLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		profileID, _, err := tokens.ParseAccess(raw)
		if err != nil || profileID == uuid.Nil {
			abortWithError(c, apperror.New(apperror.ErrCodeUnauthorized, "токен невалиден"))
			return
		}

		profile, err := profiles.GetByID(c.Request.Context(), profileID)
		if err != nil {
			if errors.Is(err, repository.ErrProfileNotFound) {
				abortWithError(c, apperror.New(apperror.ErrCodeUnauthorized, "профиль не найден"))
				return
			}
			logger.Log.WithError(err).WithField("profile_id", profileID).Error("auth: не удалось загрузить профиль")
			abortWithError(c, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить профиль"))
			return
		}

		c.Set(ContextProfileKey, profile)
		c.Next()
	}
}

// CurrentProfile возвращает профиль, сохранённый ProfileMiddleware, или nil.
func CurrentProfile(c *gin.Context) *models.Profile {
	raw, exists := c.Get(ContextProfileKey)
	if !exists {
		return nil
	}
	profile, _ := raw.(*models.Profile)
	return profile
}
