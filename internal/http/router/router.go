package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/contract-ledger/internal/config"
	"github.com/ignatzorin/contract-ledger/internal/http/handlers"
	"github.com/ignatzorin/contract-ledger/internal/http/middleware"
)

// Handlers набор хэндлеров, из которых собирается роутер. Seed может быть nil.
type Handlers struct {
	Health    *handlers.HealthHandler
	Contracts *handlers.ContractHandler
	Jobs      *handlers.JobHandler
	Balances  *handlers.BalanceHandler
	Admin     *handlers.AdminHandler
	WS        *handlers.WSHandler
	Seed      *handlers.SeedHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	tokens middleware.TokenParser,
	profiles middleware.ProfileLoader,
) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	r.GET("/health", h.Health.Health)
	r.GET("/ws", h.WS.Handle)

	if h.Seed != nil && cfg.IsDevelopment() {
		r.POST("/seed", h.Seed.Seed)
	}

	// Админские отчёты не требуют профиля
	admin := r.Group("/admin")
	{
		admin.GET("/best-profession", h.Admin.BestProfession)
		admin.GET("/best-clients", h.Admin.BestClients)
	}

	// Защищённые маршруты
	protected := r.Group("/")
	protected.Use(middleware.ProfileMiddleware(tokens, profiles))
	{
		protected.GET("/contracts", h.Contracts.ListContracts)
		protected.GET("/contracts/:id", middleware.UUIDValidator("id"), h.Contracts.GetContract)

		protected.GET("/jobs/unpaid", h.Jobs.ListUnpaid)
		protected.POST("/jobs/:job_id/pay", middleware.UUIDValidator("job_id"), h.Jobs.Pay)

		protected.POST("/balances/deposit/:userId", middleware.UUIDValidator("userId"), h.Balances.Deposit)
	}

	return r
}
