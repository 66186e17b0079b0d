package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/config"
	"cpmsdash/internal/db"
	"cpmsdash/internal/httpapi"
	"cpmsdash/internal/logging"
	"cpmsdash/internal/queries"
	"cpmsdash/internal/querycache"
	"cpmsdash/internal/repo"
	"cpmsdash/internal/services"
	"cpmsdash/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg.Session)
	if err != nil {
		log.Fatal("open session store", zap.Error(err))
	}
	defer closeStore()

	var (
		audit   services.CommandLog = services.NopCommandLog{}
		history httpapi.CommandHistory
	)
	if cfg.Database.URL != "" {
		d, err := db.Connect(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal("connect database", zap.Error(err))
		}
		defer d.Close()
		if err := repo.EnsureSchema(ctx, d.Pool); err != nil {
			log.Fatal("ensure schema", zap.Error(err))
		}
		commands := repo.NewCommandsRepo(d.Pool)
		audit, history = commands, commands
	} else {
		log.Info("database not configured, remote command audit disabled")
	}

	// the dashboard front end performs the actual redirect from the 401 body
	nav := apiclient.NavigatorFunc(func(_ context.Context, route string) {
		log.Info("session ended, sign-in required", zap.String("route", route))
	})
	api := apiclient.New(cfg.ClientOptions(), store, nav, log.Named("api"))

	cache := querycache.New(cfg.QueryOptions(), log.Named("cache"))
	defer func() { _ = cache.Close() }()
	api.OnUnauthorized(func(context.Context) { cache.Clear() })

	auth := services.NewAuthService(api, store, nav, log.Named("auth"))
	remote := services.NewRemoteCommandService(api, audit, log.Named("remote"))
	q := queries.New(cache, services.NewCatalog(api), remote, auth)

	srv := httpapi.NewServer(cfg, q, auth, history, log.Named("http"))
	httpServer := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("dashboard listening", zap.String("addr", cfg.HTTP.ListenAddr), zap.String("api", cfg.API.BaseURL))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = httpServer.Shutdown(ctx2)
	log.Info("dashboard shutdown complete")
}

func openStore(ctx context.Context, cfg config.SessionConfig) (session.Store, func(), error) {
	if cfg.Backend != config.SessionRedis {
		return session.NewMemoryStore(), func() {}, nil
	}
	rs, err := session.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		return nil, nil, err
	}
	return rs, func() { _ = rs.Close() }, nil
}
