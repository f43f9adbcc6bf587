package app

import (
	"context"
	"time"

	playAPI "tarot_slots/internal/api/play"
	wsAPI "tarot_slots/internal/api/ws"
	"tarot_slots/internal/config"
	"tarot_slots/internal/config/env"
	"tarot_slots/internal/middleware"
	"tarot_slots/internal/repository"
	"tarot_slots/internal/repository/history_repo"
	"tarot_slots/internal/repository/session_repo"
	"tarot_slots/internal/repository/stats_repo"
	"tarot_slots/internal/service"
	"tarot_slots/internal/service/play"
	"tarot_slots/internal/service/spin"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

type ServiceProvider struct {
	// Logging
	logCfg config.LogConfig
	logger *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Game bits
	gameCfg config.GameConfig
	game    *spin.Game

	// Session bits
	sessionCfg  config.SessionConfig
	jwtCfg      config.JWTConfig
	sessionRepo repository.SessionRepository
	historyRepo repository.HistoryRepository
	statsRepo   repository.StatsRepository
	playServ    service.PlayService
	playHand    *playAPI.Handler
	wsHand      *wsAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		logger, err := newLogger(sp.LogCfg())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = logger
	}
	return sp.logger
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

// TXManager транзакции Postgres, без PG_DSN - вызов без транзакции
func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if !sp.PgConfig().Enabled() {
			sp.txManager = history_repo.NewMemoryTxManager()
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfig()
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) Game() *spin.Game {
	if sp.game == nil {
		sp.game = spin.NewGame(sp.GameCfg(), sp.Logger())
	}
	return sp.game
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get session token config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) SessionRepository() repository.SessionRepository {
	if sp.sessionRepo == nil {
		sp.sessionRepo = session_repo.NewSessionRepository()
	}
	return sp.sessionRepo
}

func (sp *ServiceProvider) HistoryRepository(ctx context.Context) repository.HistoryRepository {
	if sp.historyRepo == nil {
		if sp.PgConfig().Enabled() {
			sp.historyRepo = history_repo.NewHistoryRepository(sp.DBClient(ctx))
		} else {
			sp.Logger().Info("PG_DSN is empty, play history is kept in memory")
			sp.historyRepo = history_repo.NewMemoryHistoryRepository()
		}
	}
	return sp.historyRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(0)
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) PlayService(ctx context.Context) service.PlayService {
	if sp.playServ == nil {
		sp.playServ = play.NewPlayService(
			sp.Game(),
			sp.SessionCfg(),
			sp.JWTCfg(),
			sp.SessionRepository(),
			sp.HistoryRepository(ctx),
			sp.StatsRepository(),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.playServ
}

func (sp *ServiceProvider) PlayHandler(ctx context.Context) *playAPI.Handler {
	if sp.playHand == nil {
		sp.playHand = playAPI.NewHandler(playAPI.HandlerDeps{
			Serv:   sp.PlayService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.playHand
}

func (sp *ServiceProvider) WSHandler(ctx context.Context) *wsAPI.Handler {
	if sp.wsHand == nil {
		sp.wsHand = wsAPI.NewHandler(wsAPI.HandlerDeps{
			Serv:           sp.PlayService(ctx),
			Logger:         sp.Logger(),
			OriginPatterns: []string{"*"},
		})
	}
	return sp.wsHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = newRouter(sp.PlayHandler(ctx), sp.WSHandler(ctx), sp.JWTCfg().AccessTokenSecretKey())
	}

	return sp.router
}

func newRouter(playHandler *playAPI.Handler, wsHandler *wsAPI.Handler, secretKey []byte) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	// Websocket живет дольше таймаута запроса
	r.With(middleware.Auth(secretKey)).Get("/ws", wsHandler.Serve)

	r.Group(func(rr chi.Router) {
		rr.Use(chiMiddleware.Timeout(requestTimeout))

		rr.Get("/health", playHandler.Health)
		rr.Get("/stats", playHandler.Stats)
		rr.Post("/session", playHandler.Open)

		// Session endpoints
		rr.Group(func(auth chi.Router) {
			auth.Use(middleware.Auth(secretKey))

			auth.Get("/session", playHandler.State)
			auth.Delete("/session", playHandler.Close)
			auth.Put("/session/bet", playHandler.SetBet)
			auth.Put("/session/seed", playHandler.SetSeed)

			auth.Post("/spin", playHandler.Spin)
			auth.Post("/spin/force", playHandler.ForceSpin)

			auth.Post("/feature/lovers/offer", playHandler.LoversOffer)
			auth.Post("/feature/lovers/select", playHandler.LoversSelect)
			auth.Post("/feature/round", playHandler.PlayRound)

			auth.Get("/history", playHandler.History)
		})
	})

	return r
}
