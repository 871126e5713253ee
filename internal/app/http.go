package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-minutes/internal/config"
	"github.com/adanyl0v/go-minutes/internal/delivery/http/v1"
	"github.com/adanyl0v/go-minutes/internal/generation"
	"github.com/adanyl0v/go-minutes/internal/materialize"
	"github.com/adanyl0v/go-minutes/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	generationClient := generation.NewClient(
		globalLogger,
		cfg.Generation.BaseURL,
		cfg.Generation.Timeout,
	)
	webhook := materialize.NewWebhook(
		globalLogger,
		cfg.Materialize.WebhookURL,
		cfg.Materialize.Timeout,
	)

	mutationService := services.NewMutationService(globalLogger, globalPostgresPool)
	minutesService := services.NewMinutesService(globalLogger, globalPostgresPool, generationClient, webhook)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool, generationClient, webhook, mutationService)

	v1Handler := v1.New(
		globalLogger,
		minutesService,
		taskService,
		mutationService,
		cfg.JWT.SigningKey,
	)
	router = router.Group("/api/v1")

	sessionRouter := router.Group("/sessions/:session_id", v1Handler.HandleActorMiddleware)
	sessionRouter.GET("", v1Handler.HandleGetSession)
	sessionRouter.POST("/minutes", v1Handler.HandleGenerateMinutes)
	sessionRouter.PUT("/minutes", v1Handler.HandleSubmitMinutesRevision)
	sessionRouter.POST("/actions", v1Handler.HandleSessionAction)
	sessionRouter.POST("/tasks/extract", v1Handler.HandleExtractTasks)
	sessionRouter.POST("/tasks", v1Handler.HandleAddTask)
	sessionRouter.PATCH("/tasks/:task_id", v1Handler.HandleUpdateTask)
	sessionRouter.DELETE("/tasks/:task_id", v1Handler.HandleDeleteTask)
	sessionRouter.GET("/mutations", v1Handler.HandleListMutations)

	actorRouter := router.Group("/actors/:actor_id", v1Handler.HandleActorMiddleware)
	actorRouter.GET("/mutations/stats", v1Handler.HandleActorMutationStats)
}
