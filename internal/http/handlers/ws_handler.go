package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/contract-ledger/internal/http/handlers/common"
	"github.com/ignatzorin/contract-ledger/internal/http/middleware"
	"github.com/ignatzorin/contract-ledger/internal/logger"
	"github.com/ignatzorin/contract-ledger/internal/models"
	"github.com/ignatzorin/contract-ledger/internal/pkg/apperror"
	"github.com/ignatzorin/contract-ledger/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений для событий об оплатах и пополнениях.
type WSHandler struct {
	hub      *ws.Hub
	tokens   middleware.TokenParser
	profiles middleware.ProfileLoader
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(hub *ws.Hub, tokens middleware.TokenParser, profiles middleware.ProfileLoader, allowedOrigins []string) *WSHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &WSHandler{
		hub:      hub,
		tokens:   tokens,
		profiles: profiles,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

// Handle обслуживает GET /ws?token=...
// Браузер не умеет передавать заголовок Authorization при открытии WebSocket, поэтому токен идёт в query.
func (h *WSHandler) Handle(c *gin.Context) {
	profile, err := h.resolve(c.Request.Context(), c.Query("token"))
	if err != nil {
		common.Fail(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		logger.Log.WithError(err).WithField("profile_id", profile.ID).Warn("ws: upgrade не удался")
		return
	}

	client := ws.NewClient(conn, h.hub, profile.ID)
	h.hub.Register(client)

	client.Run(c.Request.Context())
}

func (h *WSHandler) resolve(ctx context.Context, rawToken string) (*models.Profile, error) {
	if rawToken == "" {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "access токен обязателен")
	}

	profileID, _, err := h.tokens.ParseAccess(rawToken)
	if err != nil || profileID == uuid.Nil {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "невалидный access токен")
	}

	profile, err := h.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, apperror.New(apperror.ErrCodeUnauthorized, "профиль не найден")
	}
	return profile, nil
}
