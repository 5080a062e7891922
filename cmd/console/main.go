package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"classroomclient/internal/api"
	"classroomclient/internal/config"
	"classroomclient/internal/domain"
	"classroomclient/internal/logging"
	"classroomclient/internal/poller"
	"classroomclient/internal/screen"
	"classroomclient/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	logger := logging.New(zapLogger)

	cfg, err := config.New()
	if err != nil {
		logger.Fatal(ctx, "cannot create config", zap.Error(err))
	}

	var blob session.Blob
	if cfg.RedisURL != "" {
		redisConn := redis.NewClient(&redis.Options{
			Addr: cfg.RedisURL,
		})
		blob = session.NewRedisBlob(redisConn)
		logger.Info(ctx, "session storage: redis", zap.String("addr", cfg.RedisURL))
	} else {
		blob = session.NewFileBlob(cfg.SessionFile)
		logger.Info(ctx, "session storage: file", zap.String("path", cfg.SessionFile))
	}

	store := session.NewStore(ctx, blob)

	client := api.New(cfg.BackendURL, store, logger, api.WithTimeout(cfg.HTTPTimeout))
	feeds := screen.NewFeedSet(client)

	// One notification poller per signed-in user, started at login and torn
	// down at logout or shutdown.
	var pollerMu sync.Mutex
	pollers := make(map[int]func())

	startPoller := func(userID int) {
		pollerMu.Lock()
		defer pollerMu.Unlock()
		if _, running := pollers[userID]; running {
			return
		}
		p := poller.New(fmt.Sprintf("notifications-%d", userID), cfg.PollInterval, logger,
			func(ctx context.Context) error {
				return feeds.Refresh(ctx, userID)
			})
		pollers[userID] = p.Start(ctx)
	}
	stopPollers := func() {
		pollerMu.Lock()
		defer pollerMu.Unlock()
		for userID, stopPoller := range pollers {
			stopPoller()
			delete(pollers, userID)
		}
	}

	cancelSub := store.Subscribe(func(profile *domain.UserProfile) {
		if profile == nil {
			stopPollers()
			return
		}
		startPoller(profile.ID)
	})
	defer cancelSub()

	if profile, ok := store.Current(); ok {
		logger.Info(ctx, "resuming session", zap.Int("user_id", profile.ID), zap.String("role", string(profile.Role)))
		startPoller(profile.ID)
	}

	handler := screen.NewHandler(client, store, feeds, logger)
	router := screen.NewRouter(handler, store, logger)

	port := fmt.Sprintf(":%d", cfg.ConsolePort)
	logger.Info(ctx, "Starting console", zap.String("port", port), zap.String("backend", cfg.BackendURL))

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "cannot start http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info(ctx, "Shutting down console...")

	stopPollers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal(ctx, "server forced to shutdown", zap.Error(err))
	}
	logger.Info(ctx, "Console stopped")
}
