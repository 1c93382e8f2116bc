// Command fieldrulesd serves the profile rules, validation endpoints and the
// profile form over HTTP.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/fieldrules/modules/profile"
	"github.com/dmitrymomot/fieldrules/pkg/config"
	"github.com/dmitrymomot/fieldrules/pkg/environment"
	"github.com/dmitrymomot/fieldrules/pkg/httpserver"
	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/redis"
	"github.com/dmitrymomot/fieldrules/pkg/requestid"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

const service = "fieldrulesd"

type appConfig struct {
	Env       environment.Environment `env:"APP_ENV" envDefault:"development"`
	MountPath string                  `env:"PROFILE_MOUNT_PATH" envDefault:"/profile"`
	HTTP      httpserver.Config
	Redis     redis.Config
}

func main() {
	os.Exit(serve())
}

// serve returns the process exit code so that its deferred cleanup runs
// before main exits.
func serve() int {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load config", logger.Error(err))
		return 1
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, service),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", logger.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	ev, err := validator.Default()
	if err != nil {
		return err
	}
	log.Info("rule catalog loaded",
		logger.CatalogVersion(ev.Catalog().Version()),
		slog.Int("rules", ev.Catalog().Len()),
	)

	var (
		store  profile.Store = profile.NewMemoryStore()
		checks []httpserver.Check
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		store = profile.NewRedisStore(client)
		checks = append(checks, httpserver.Check(redis.Healthcheck(client)))
	} else {
		log.Warn("REDIS_URL is not set, profiles are kept in memory")
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware, environment.Middleware(cfg.Env))
	r.Get("/healthz", httpserver.HealthHandler(log))
	r.Get("/readyz", httpserver.HealthHandler(log, checks...))
	r.Mount(cfg.MountPath, profile.Router(profile.NewHandler(ev, store, log,
		profile.WithBasePath(cfg.MountPath),
		profile.WithSchemaTitle("Profile API"),
	)))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, cfg.MountPath+"/form", http.StatusFound)
	})

	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}
