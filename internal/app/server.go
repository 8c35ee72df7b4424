package app

import (
	"fmt"

	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/db"
	"ofertare-gateway/internal/guard"
	authHandler "ofertare-gateway/internal/handlers/auth"
	"ofertare-gateway/internal/handlers/resources"
	"ofertare-gateway/internal/middleware"
	"ofertare-gateway/internal/session"
	authService "ofertare-gateway/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &Server{cfg: cfg, engine: gin.New()}, nil
}

func (s *Server) Start() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- Session store -----
	store, err := s.buildSessionStore()
	if err != nil {
		return err
	}

	// ----- Token refresh (shared, deduplicated) -----
	refresher := apiclient.NewRefresher(s.cfg.APIBaseURL, s.cfg.API.Refresh, nil, logger)

	// ----- Route guard -----
	g := guard.New(protectionRules(s.cfg), s.cfg.Gateway)

	// ----- Services -----
	authSvc := authService.NewAuthService(s.cfg.APIBaseURL, s.cfg.API, store, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		Auth:     authHandler.NewAuthHandler(authSvc, logger),
		Clients:  resources.NewClientsHandler(store, refresher, s.cfg, logger),
		Offers:   resources.NewOffersHandler(store, refresher, s.cfg, logger),
		Products: resources.NewProductsHandler(store, refresher, s.cfg, logger),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(logger),
		guard.Middleware(g, store, logger),
	)

	SetupRouter(s.engine, handlers)

	logger.Info("gateway listening",
		zap.String("addr", s.cfg.HTTPAddr),
		zap.String("backend", s.cfg.APIBaseURL.String()),
		zap.String("session_backend", s.cfg.SessionBackend),
	)
	return s.engine.Run(s.cfg.HTTPAddr)
}

func (s *Server) buildSessionStore() (session.Store, error) {
	switch s.cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := db.NewRedisClient(db.RedisConfig{
			Addr:     s.cfg.RedisAddr,
			Password: s.cfg.RedisPass,
			PoolSize: 10,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis session store: %w", err)
		}
		return session.NewRedisStore(client, s.cfg.CookieMaxAge, s.cfg.CookieDomain, s.cfg.CookieSecure), nil
	default:
		return session.NewCookieStore(s.cfg.CookieMaxAge, s.cfg.CookieDomain, s.cfg.CookieSecure), nil
	}
}

// protectionRules is the static route protection table: the dashboard paths
// and the gateway's own endpoints. Exact rules beat prefix rules, so
// /auth/login stays public while the rest of /auth requires a session.
func protectionRules(cfg config.AppConfig) guard.RuleSet {
	return guard.NewRuleSet(
		guard.PublicRoute{Path: cfg.Gateway.Login},
		guard.PublicRoute{Path: cfg.Gateway.Register},
		guard.PublicRoute{Path: cfg.Gateway.Unauthorized},
		guard.PublicRoute{Path: "/auth/login"},

		guard.AuthenticatedRoute{Path: cfg.Gateway.Landing},
		guard.AuthenticatedRoute{Path: "/greetings"},
		guard.AuthenticatedRoute{Path: "/account/my-account"},
		guard.AuthenticatedRoute{Path: "/meetings"},
		guard.AuthenticatedRoute{Path: "/auth"},

		guard.AuthenticatedRoute{Path: "/clients", Roles: []string{config.RoleUser}},
		guard.AuthenticatedRoute{Path: "/offers", Roles: []string{config.RoleUser}},
		guard.AuthenticatedRoute{Path: "/offers/new-offer", Roles: []string{config.RoleUser}},
		guard.AuthenticatedRoute{Path: "/products", Roles: []string{config.RoleUser}},
		guard.AuthenticatedRoute{Path: "/products/new-product", Roles: []string{config.RoleAdmin}},
	)
}
