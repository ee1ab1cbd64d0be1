package handler

import (
	"splitledger/internal/adapter/http/middleware"
	redisStore "splitledger/internal/adapter/storage/redis"
	"splitledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	ExpenseSvc     ports.ExpenseService
	ReportingSvc   ports.ReportingService
	UserSvc        ports.UserService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/refresh", rl("auth_login"), authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	expenseHandler := NewExpenseHandler(deps.ExpenseSvc)
	balanceHandler := NewBalanceHandler(deps.ReportingSvc)
	userHandler := NewUserHandler(deps.UserSvc)

	users := v1.Group("/users", jwtAuth)
	{
		users.GET("/me", userHandler.Me)
	}

	expenses := v1.Group("/expenses", jwtAuth)
	{
		expenses.POST("", rl("expenses"), expenseHandler.Create)
		expenses.GET("", rl("expenses"), expenseHandler.List)
		expenses.GET("/all", rl("expenses"), expenseHandler.ListAll)
	}

	balances := v1.Group("/balances", jwtAuth)
	{
		balances.GET("", rl("balances"), balanceHandler.GetBalances)
		balances.GET("/sheet", rl("balance_sheet"), balanceHandler.DownloadSheet)
	}

	return r
}
