package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "askrelay/docs"
	"askrelay/internal/ai"
	"askrelay/internal/config"
	"askrelay/internal/handler"
	"askrelay/internal/pkg/mongodb"
	"askrelay/internal/pkg/stats"
	"askrelay/internal/repository"
	"askrelay/internal/server/middleware"
	"askrelay/internal/service"
)

const defaultShutdownTimeout = 10 * time.Second

// Server HTTP 服务器
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	mongo    *mongodb.Client
	counter  *stats.RedisCounter
	relaySvc *service.RelayService
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	aiClient, err := ai.NewClient(&cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	// 问答流水 (可选)
	var mongoClient *mongodb.Client
	var journal service.ExchangeRecorder
	if cfg.Mongo.URI != "" {
		client, err := mongodb.New(&cfg.Mongo)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to MongoDB, continuing without exchange journal")
		} else {
			mongoClient = client
			journal = repository.NewExchangeRepo(client.Database())
			log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

			if err := mongodb.EnsureIndexes(client.Database()); err != nil {
				log.Warn().Err(err).Msg("failed to ensure indexes")
			}
		}
	}

	// 结果计数 (可选)
	var redisCounter *stats.RedisCounter
	var counter service.OutcomeCounter
	if cfg.Redis.Addr != "" {
		rc, err := stats.NewRedisCounter(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without outcome stats")
		} else {
			redisCounter = rc
			counter = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:      cfg,
		engine:   engine,
		mongo:    mongoClient,
		counter:  redisCounter,
		relaySvc: service.NewRelayService(aiClient, journal, counter),
	}

	srv.setupRoutes()

	log.Info().
		Str("model", cfg.AI.Model).
		Str("upstream", cfg.AI.CompletionsURL()).
		Bool("journal", journal != nil).
		Bool("stats", counter != nil).
		Msg("relay initialized")

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())

	components := map[string]handler.Pinger{"mongo": nil, "redis": nil}
	if s.mongo != nil {
		components["mongo"] = s.mongo
	}
	if s.counter != nil {
		components["redis"] = s.counter
	}
	healthHandler := handler.NewHealthHandler(components)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	askHandler := handler.NewAskHandler(s.relaySvc)
	s.engine.POST("/ask", askHandler.Ask)

	statsHandler := handler.NewStatsHandler(s.relaySvc)
	s.engine.GET("/stats", statsHandler.Stats)
}

// Run 启动服务器，ctx 取消后优雅退出
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		timeout := s.cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		s.close()
		return err
	case err := <-errCh:
		s.close()
		return err
	}
}

func (s *Server) close() {
	if s.mongo != nil {
		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
	}
	if s.counter != nil {
		if err := s.counter.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
