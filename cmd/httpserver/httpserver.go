// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bankist/bankist/internal/accountdelivery"
	"github.com/bankist/bankist/internal/accountservice"
	"github.com/bankist/bankist/internal/accountstore"
	"github.com/bankist/bankist/internal/domain"
	"github.com/bankist/bankist/internal/middleware"
	"github.com/bankist/bankist/internal/sessiondelivery"
	"github.com/bankist/bankist/internal/sessionservice"
	"github.com/bankist/bankist/internal/transferdelivery"
	"github.com/bankist/bankist/internal/transferservice"
	"github.com/bankist/bankist/pkg/configpkg"
	"github.com/bankist/bankist/pkg/schedpkg"
)

// Server holds the account store, the handlers router and configuration.
type Server struct {
	Store    *accountstore.Store
	Sessions *sessionservice.Service
	Engine   *gin.Engine
	Config   configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates a Server with instantiated domains and routes over the given
// initial accounts.
func New(accounts []domain.Account, sched schedpkg.Scheduler, logger zerolog.Logger, config configpkg.Config) *Server {
	store := accountstore.New(accounts)

	sessionService := sessionservice.New(store, sched, config)
	accountService := accountservice.New(store, sessionService)
	transferService := transferservice.New(store, sched, config.LoanApprovalDelay)
	transferService.OnLoanApplied = sessionService.ResetByUsername

	sessionHandler := sessiondelivery.NewHandler(sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService, sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/sessions", sessionHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService))

	authRoutes.GET("/sessions/countdown", sessionHandler.Countdown)
	authRoutes.DELETE("/sessions", sessionHandler.Logout)

	authRoutes.GET("/accounts/statement", accountHandler.Statement)
	authRoutes.DELETE("/accounts", accountHandler.Close)

	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.POST("/loans", transferHandler.RequestLoan)

	return &Server{
		Store:    store,
		Sessions: sessionService,
		Engine:   engine,
		Config:   config,
	}
}
